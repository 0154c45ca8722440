package usecase

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"

	"donation_interface/internal/domain/entities"
)

// memSessions is a plain map-backed session store for tests that inspect
// session state directly.
type memSessions struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

func newMemSessions() *memSessions {
	return &memSessions{data: map[string]map[string]string{}}
}

func (m *memSessions) Get(_ context.Context, ns, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[ns][key]
	return v, ok, nil
}

func (m *memSessions) Set(_ context.Context, ns, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[ns] == nil {
		m.data[ns] = map[string]string{}
	}
	m.data[ns][key] = value
	return nil
}

func (m *memSessions) Clear(_ context.Context, ns string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(keys) == 0 {
		delete(m.data, ns)
		return nil
	}
	for _, k := range keys {
		delete(m.data[ns], k)
	}
	return nil
}

func (m *memSessions) has(ns, key string) bool {
	_, ok, _ := m.Get(context.Background(), ns, key)
	return ok
}

// sequentialIDs hands out order ids 1001, 1002, ...
func sequentialIDs() func() string {
	n := 1000
	return func() string {
		n++
		return strconv.Itoa(n)
	}
}

func leaves(names ...string) []entities.FieldNode {
	nodes := make([]entities.FieldNode, len(names))
	for i, n := range names {
		nodes[i] = entities.FieldNode{Name: n}
	}
	return nodes
}

func intPtr(v int) *int { return &v }

// flatTestResponses reads RESULT/PNREF/RESPMSG responses. RESULT 7 asks for
// the order id to be regenerated.
type flatTestResponses struct{}

func (flatTestResponses) Status(resp ParsedResponse) bool {
	return resp.Fields["RESULT"] == "0" || resp.Fields["RESULT"] == "126"
}

func (r flatTestResponses) Errors(resp ParsedResponse) map[string]string {
	if r.Status(resp) {
		return nil
	}
	return map[string]string{resp.Fields["RESULT"]: resp.Fields["RESPMSG"]}
}

func (flatTestResponses) Data(resp ParsedResponse) map[string]string {
	return resp.Fields
}

func (flatTestResponses) Process(txn string, result entities.TransactionResult, codes CodeClassifier) ResponseDecision {
	if result.Data["RESULT"] == "7" {
		return ResponseDecision{ErrCode: "7", RetryVars: []string{"order_id"}}
	}
	d := ResponseDecision{GatewayTxnID: result.Data["PNREF"], TxnMessage: result.Data["RESPMSG"]}
	if s, ok := codes.FindCodeAction(txn, "RESULT", result.Data["RESULT"]); ok {
		d.Outcome = s
	}
	if result.Data["CVV2MATCH"] == "N" {
		d.Action = entities.ActionReview
	}
	return d
}

func finalizeAndNotify(ctx context.Context, a *GatewayAdapter) error {
	if err := a.FinalizeFromOutcome(ctx); err != nil {
		return err
	}
	return a.RunPostProcessHooks(ctx)
}

func testReturnValues(t *testing.T) *entities.ReturnValueMap {
	t.Helper()
	rv := entities.NewReturnValueMap()
	for _, txn := range []string{"Sale", "Status"} {
		ranges := []struct {
			status entities.FinalStatus
			lower  int
			upper  *int
		}{
			{entities.FinalStatusComplete, 0, nil},
			{entities.FinalStatusFailed, 1, intPtr(125)},
			{entities.FinalStatusPending, 126, nil},
			{entities.FinalStatusFailed, 127, intPtr(999)},
		}
		for _, r := range ranges {
			if err := rv.AddCodeRange(txn, "RESULT", r.status, r.lower, r.upper); err != nil {
				t.Fatalf("add range: %v", err)
			}
		}
	}
	return rv
}

// testFlatConfig is a small namevalue gateway in the shape of a card
// processor.
func testFlatConfig(t *testing.T) GatewayConfig {
	t.Helper()
	return GatewayConfig{
		Name:              "Test Gateway",
		Identifier:        "testgw",
		GlobalPrefix:      "wgTestGateway",
		CommunicationType: entities.CommunicationNameValue,
		URL:               "https://gateway.test/pay",
		AccountName:       "main",
		AccountInfo:       map[string]string{"USER": "merchant"},
		VarMap: map[string]string{
			"AMT":     "amount",
			"CUR":     "currency_code",
			"COUNTRY": "country",
			"INV":     "order_id",
			"NAME":    "fname",
			"COMMENT": "comment",
		},
		DataConstraints: map[string]entities.DataConstraint{
			"fname": {Type: "alphanumeric", Length: 5},
		},
		StagedVars:       []string{"fname", "amount"},
		PostDataDefaults: map[string]string{"fname": "Anon"},
		RequiredFields:   []string{"amount", "currency_code"},
		ErrorMap:         map[string]string{"7": "Duplicate order."},
		Salt:             "pepper",
		Transactions: map[string]entities.TransactionDefinition{
			"Sale": {
				Request: leaves("USER", "TRXTYPE", "AMT", "CUR", "COUNTRY", "INV", "NAME", "COMMENT"),
				Values:  map[string]string{"TRXTYPE": "S"},
			},
			"Status": {
				Request:       leaves("USER", "TRXTYPE", "INV"),
				Values:        map[string]string{"TRXTYPE": "I"},
				LoopForStatus: []entities.FinalStatus{entities.FinalStatusComplete, entities.FinalStatusFailed},
			},
		},
		ReturnValues: testReturnValues(t),
		Responses:    flatTestResponses{},
		PreProcess: map[string]TransactionHook{
			"sale": func(ctx context.Context, a *GatewayAdapter) error { return a.RunPreProcessHooks(ctx) },
		},
		PostProcess: map[string]TransactionHook{
			"Sale":   finalizeAndNotify,
			"Status": finalizeAndNotify,
		},
	}
}

func mustDefinition(t *testing.T, cfg GatewayConfig) *GatewayDefinition {
	t.Helper()
	def, err := NewGatewayDefinition(cfg)
	if err != nil {
		t.Fatalf("unexpected definition error: %v", err)
	}
	return def
}

func newTestDonation(fields map[string]string) *entities.Donation {
	return entities.NewDonation(fields, entities.DonationOptions{Gateway: "testgw", OrderIDs: sequentialIDs()})
}

// flatValue extracts the value of name from a name[len]=value payload.
func flatValue(payload, name string) string {
	for _, pair := range strings.Split(payload, "&") {
		if strings.HasPrefix(pair, name+"[") {
			if i := strings.Index(pair, "]="); i >= 0 {
				return pair[i+2:]
			}
		}
	}
	return ""
}
