package gateways

import (
	"context"
	"net/url"
	"strings"

	"donation_interface/internal/domain/entities"
	"donation_interface/internal/infrastructure/config"
	"donation_interface/internal/usecase"

	"github.com/shopspring/decimal"
)

// Returned when INSERT_ORDERWITHPAYMENT reuses an order id.
const globalCollectOrderExists = "300620"

// Payment product ids by payment method and submethod.
var globalCollectProducts = map[string]string{
	"cc/visa":     "1",
	"cc/amex":     "2",
	"cc/mc":       "3",
	"cc/maestro":  "117",
	"cc/discover": "128",
	"cc/jcb":      "125",
	"bt/":         "11",
	"rtbt/ideal":  "809",
	"ew/paypal":   "840",
}

func globalCollectCode(s config.GatewaySettings) gatewayCode {
	return gatewayCode{
		responses: globalCollectResponses{},
		staging: map[string]usecase.StagingFunc{
			"amount":          stageMinorUnits,
			"language":        stageLanguage,
			"payment_product": stagePaymentProduct,
			"returnto":        stageReturnTo(s.ReturnURL),
		},
		pre: map[string]usecase.TransactionHook{
			"INSERT_ORDERWITHPAYMENT": func(ctx context.Context, a *usecase.GatewayAdapter) error {
				return a.RunPreProcessHooks(ctx)
			},
		},
		post: map[string]usecase.TransactionHook{
			"INSERT_ORDERWITHPAYMENT": globalCollectAfterInsert,
			"GET_ORDERSTATUS":         globalCollectAfterStatus,
		},
	}
}

// Amounts travel in minor units.
func stageMinorUnits(s *usecase.StagedData, mode usecase.StagingMode) {
	amt, err := decimal.NewFromString(s.Value("amount"))
	if err != nil {
		return
	}
	if mode == usecase.StagingResponse {
		s.Set("amount", amt.Shift(-2).StringFixed(2))
		return
	}
	s.Set("amount", amt.Shift(2).Round(0).String())
}

func stageLanguage(s *usecase.StagedData, _ usecase.StagingMode) {
	lang := strings.ToLower(strings.TrimSpace(s.Value("language")))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		lang = "en"
	}
	s.Set("language", lang)
}

func stagePaymentProduct(s *usecase.StagedData, _ usecase.StagingMode) {
	if s.Value("payment_product") != "" {
		return
	}
	key := strings.ToLower(s.Value("payment_method") + "/" + s.Value("payment_submethod"))
	if id, ok := globalCollectProducts[key]; ok {
		s.Set("payment_product", id)
	}
}

// stageReturnTo sends the donor back with the order id so the status of the
// order can be looked up on return.
func stageReturnTo(returnURL string) usecase.StagingFunc {
	return func(s *usecase.StagedData, mode usecase.StagingMode) {
		if mode != usecase.StagingRequest {
			return
		}
		base := s.Value("returnto")
		if base == "" {
			base = returnURL
		}
		if base == "" {
			return
		}
		u, err := url.Parse(base)
		if err != nil {
			return
		}
		q := u.Query()
		q.Set("order_id", s.Value("order_id"))
		u.RawQuery = q.Encode()
		s.Set("returnto", u.String())
	}
}

type globalCollectResponses struct{}

func (globalCollectResponses) Status(resp usecase.ParsedResponse) bool {
	return resp.Fields["RESULT"] == "OK"
}

func (globalCollectResponses) Errors(resp usecase.ParsedResponse) map[string]string {
	errs := map[string]string{}
	for _, node := range resp.Tree.FindAll("ERROR") {
		e := node.ChildText()
		if e["CODE"] != "" {
			errs[e["CODE"]] = e["MESSAGE"]
		}
	}
	return errs
}

func (globalCollectResponses) Data(resp usecase.ParsedResponse) map[string]string {
	data := resp.Tree.Find("ROW").ChildText()
	for k, v := range resp.Tree.Find("STATUS").ChildText() {
		data[k] = v
	}
	return data
}

func (globalCollectResponses) Process(txn string, result entities.TransactionResult, codes usecase.CodeClassifier) usecase.ResponseDecision {
	if _, ok := result.Errors[globalCollectOrderExists]; ok {
		return usecase.ResponseDecision{ErrCode: globalCollectOrderExists, RetryVars: []string{"order_id"}}
	}

	d := usecase.ResponseDecision{GatewayTxnID: result.Data["ORDERID"]}
	if code := result.Data["STATUSID"]; code != "" {
		d.TxnMessage = "STATUSID " + code
		if status, ok := codes.FindCodeAction(txn, "STATUSID", code); ok {
			d.Outcome = status
		}
	}
	if !result.Status && d.Outcome == "" && len(result.Errors) > 0 {
		d.Outcome = entities.FinalStatusFailed
	}
	if result.Data["CVVRESULT"] == "N" || result.Data["AVSRESULT"] == "N" {
		d.Action = entities.ActionReview
	}
	return d
}

// A hosted order is left pending with a form to send the donor to. Anything
// else is final.
func globalCollectAfterInsert(ctx context.Context, a *usecase.GatewayAdapter) error {
	res := a.Result()
	if form := res.Data["FORMACTION"]; form != "" && res.Outcome == entities.FinalStatusPending {
		a.SetRedirect(form)
		a.SendLimboMessage(ctx)
		return nil
	}
	if err := a.FinalizeFromOutcome(ctx); err != nil {
		return err
	}
	return a.RunPostProcessHooks(ctx)
}

func globalCollectAfterStatus(ctx context.Context, a *usecase.GatewayAdapter) error {
	res := a.Result()
	if res.Outcome == "" || res.Outcome == entities.FinalStatusPending {
		return nil
	}
	if err := a.FinalizeFromOutcome(ctx); err != nil {
		return err
	}
	a.SendLimboAntimessage(ctx)
	return a.RunPostProcessHooks(ctx)
}
