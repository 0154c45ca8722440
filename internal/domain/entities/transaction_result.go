package entities

// TransactionResult accumulates everything one orchestrator run learned.
type TransactionResult struct {
	Status       bool              `json:"status"`
	Message      string            `json:"message"`
	Errors       map[string]string `json:"errors"`
	Data         map[string]string `json:"data,omitempty"`
	Action       ValidationAction  `json:"action"`
	RawResponse  string            `json:"-"`
	UnparsedData string            `json:"-"`
	HTTPStatus   int               `json:"-"`
	GatewayTxnID string            `json:"gateway_txn_id,omitempty"`
	TxnMessage   string            `json:"txn_message,omitempty"`
	RedirectURL  string            `json:"redirect_url,omitempty"`
	// Outcome is what the response codes of the latest exchange classified
	// to. It can change between polling iterations.
	Outcome FinalStatus `json:"outcome,omitempty"`
	// FinalStatus is written once per attempt through finalization.
	FinalStatus FinalStatus `json:"final_status,omitempty"`
}

func NewTransactionResult() TransactionResult {
	return TransactionResult{
		Errors: map[string]string{},
		Data:   map[string]string{},
	}
}

func (r *TransactionResult) AddError(code, message string) {
	if r.Errors == nil {
		r.Errors = map[string]string{}
	}
	r.Errors[code] = message
}

func (r TransactionResult) HasErrors() bool {
	return len(r.Errors) > 0
}
