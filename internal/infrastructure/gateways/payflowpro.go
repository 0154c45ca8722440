package gateways

import (
	"context"
	"strings"
	"unicode"

	"donation_interface/internal/domain/entities"
	"donation_interface/internal/infrastructure/config"
	"donation_interface/internal/usecase"

	"github.com/shopspring/decimal"
)

const (
	payflowApproved = "0"
	payflowReview   = "126"
)

func payflowProCode(config.GatewaySettings) gatewayCode {
	return gatewayCode{
		responses: payflowProResponses{},
		staging: map[string]usecase.StagingFunc{
			"amount":     stageFixedAmount,
			"card_num":   stageCardNumber,
			"expiration": stageExpiration,
		},
		pre: map[string]usecase.TransactionHook{
			"Sale": func(ctx context.Context, a *usecase.GatewayAdapter) error {
				return a.RunPreProcessHooks(ctx)
			},
		},
		post: map[string]usecase.TransactionHook{
			"Sale": func(ctx context.Context, a *usecase.GatewayAdapter) error {
				if err := a.FinalizeFromOutcome(ctx); err != nil {
					return err
				}
				return a.RunPostProcessHooks(ctx)
			},
		},
	}
}

func stageFixedAmount(s *usecase.StagedData, _ usecase.StagingMode) {
	amt, err := decimal.NewFromString(s.Value("amount"))
	if err != nil {
		return
	}
	s.Set("amount", amt.StringFixed(2))
}

func stageCardNumber(s *usecase.StagedData, _ usecase.StagingMode) {
	s.Set("card_num", digitsOnly(s.Value("card_num")))
}

// Expiration dates are sent as MMYY. MM/YYYY, MMYYYY and MM/YY are accepted.
func stageExpiration(s *usecase.StagedData, _ usecase.StagingMode) {
	d := digitsOnly(s.Value("expiration"))
	switch len(d) {
	case 6:
		d = d[:2] + d[4:]
	case 3:
		d = "0" + d
	}
	s.Set("expiration", d)
}

func digitsOnly(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, v)
}

type payflowProResponses struct{}

func (payflowProResponses) Status(resp usecase.ParsedResponse) bool {
	code := resp.Fields["RESULT"]
	return code == payflowApproved || code == payflowReview
}

func (r payflowProResponses) Errors(resp usecase.ParsedResponse) map[string]string {
	if r.Status(resp) {
		return map[string]string{}
	}
	return map[string]string{resp.Fields["RESULT"]: resp.Fields["RESPMSG"]}
}

func (payflowProResponses) Data(resp usecase.ParsedResponse) map[string]string {
	data := make(map[string]string, len(resp.Fields))
	for k, v := range resp.Fields {
		data[k] = v
	}
	return data
}

func (payflowProResponses) Process(txn string, result entities.TransactionResult, codes usecase.CodeClassifier) usecase.ResponseDecision {
	d := usecase.ResponseDecision{
		GatewayTxnID: result.Data["PNREF"],
		TxnMessage:   result.Data["RESPMSG"],
	}
	if status, ok := codes.FindCodeAction(txn, "RESULT", result.Data["RESULT"]); ok {
		d.Outcome = status
	}
	if result.Data["CVV2MATCH"] == "N" {
		d.Action = entities.ActionReview
	}
	return d
}
