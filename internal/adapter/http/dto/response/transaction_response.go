package response

import (
	"donation_interface/internal/domain/entities"
	"donation_interface/internal/usecase"
)

type TransactionResponse struct {
	Status       bool              `json:"status"`
	Message      string            `json:"message"`
	Action       string            `json:"action"`
	FinalStatus  string            `json:"final_status,omitempty"`
	GatewayTxnID string            `json:"gateway_txn_id,omitempty"`
	TxnMessage   string            `json:"txn_message,omitempty"`
	RedirectURL  string            `json:"redirect_url,omitempty"`
	ResultPage   string            `json:"result_page,omitempty"`
	LastForm     string            `json:"last_form,omitempty"`
	OrderID      string            `json:"order_id,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
}

// FromTransactionResult never exposes the raw gateway exchange.
func FromTransactionResult(r entities.TransactionResult) TransactionResponse {
	errs := copyFields(r.Errors)
	return TransactionResponse{
		Status:       r.Status,
		Message:      r.Message,
		Action:       r.Action.String(),
		FinalStatus:  string(r.FinalStatus),
		GatewayTxnID: r.GatewayTxnID,
		TxnMessage:   r.TxnMessage,
		RedirectURL:  r.RedirectURL,
		OrderID:      r.Data["order_id"],
		Errors:       errs,
		Data:         copyFields(r.Data),
	}
}

func FromSubmitDonationOutput(o usecase.SubmitDonationOutput) TransactionResponse {
	res := FromTransactionResult(o.Result)
	res.ResultPage = o.ResultPage
	res.LastForm = o.LastForm
	return res
}

type EditTokenResponse struct {
	Gateway string `json:"gateway"`
	Token   string `json:"token"`
}

func copyFields(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
