package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"donation_interface/internal/domain/entities"
	mock_interfaces "donation_interface/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type fixedFilter struct {
	name  string
	score int
}

func (f fixedFilter) Name() string                             { return f.name }
func (f fixedFilter) Score(context.Context, FilterContext) int { return f.score }

func flatResponse(body string) entities.TransportResponse {
	return entities.TransportResponse{Body: body, StatusCode: 200, Attempts: 1}
}

func signedFields(t *testing.T, sessions *memSessions, session string, fields map[string]string) map[string]string {
	t.Helper()
	fields["token"] = NewRetryContext(sessions, session).EditToken(context.Background(), "pepper")
	return fields
}

func TestGatewayAdapter_DoTransaction_Complete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	queue := mock_interfaces.NewMockINotificationQueue(ctrl)
	repo := mock_interfaces.NewMockIContributionTrackingRepository(ctrl)

	def := mustDefinition(t, testFlatConfig(t))
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{
		"amount":        "25.5",
		"currency_code": "EUR",
		"country":       "FR",
		"fname":         "Jonathan",
		"email":         "jonathan@example.org",
	}))

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ct entities.ContributionTracking) (entities.ContributionTracking, error) {
			if ct.Amount != "25.50" || ct.Gateway != "testgw" {
				t.Fatalf("unexpected tracking row: %+v", ct)
			}
			return ct, nil
		})

	var payload string
	transport.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req entities.TransportRequest) (entities.TransportResponse, bool) {
			payload = req.Payload
			if req.URL != "https://gateway.test/pay" {
				t.Fatalf("unexpected url %q", req.URL)
			}
			if req.CommunicationType != entities.CommunicationNameValue {
				t.Fatalf("unexpected communication type %q", req.CommunicationType)
			}
			return flatResponse("RESULT=0&PNREF=V19A&RESPMSG=Approved"), true
		})

	queue.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg entities.QueueMessage) error {
			if msg.Queue != entities.QueueDefault {
				t.Fatalf("expected default queue, got %q", msg.Queue)
			}
			if msg.CorrelationID != "testgw-1001" {
				t.Fatalf("unexpected correlation id %q", msg.CorrelationID)
			}
			if msg.Body["gateway_txn_id"] != "V19A" || msg.Body["amount"] != "25.50" {
				t.Fatalf("unexpected message body %v", msg.Body)
			}
			return nil
		})

	a := NewGatewayAdapter(def, donation, AdapterOptions{
		Transport: transport,
		Retry:     NewRetryContext(sessions, "s1"),
		Tracker:   NewContributionTrackingUseCase(repo),
		Queue:     queue,
	})
	if !a.CheckTokens(ctx) {
		t.Fatalf("expected matching edit token")
	}

	res := a.DoTransaction(ctx, "Sale")

	if !res.Status {
		t.Fatalf("expected successful result, got errors %v", res.Errors)
	}
	if res.Outcome != entities.FinalStatusComplete || res.FinalStatus != entities.FinalStatusComplete {
		t.Fatalf("expected complete, got outcome=%q final=%q", res.Outcome, res.FinalStatus)
	}
	if res.Message != "Sale Transaction Successful!" {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if res.GatewayTxnID != "V19A" || res.TxnMessage != "Approved" {
		t.Fatalf("unexpected gateway ids %q %q", res.GatewayTxnID, res.TxnMessage)
	}
	if res.Action != entities.ActionProcess {
		t.Fatalf("expected process, got %s", res.Action)
	}
	if !strings.Contains(payload, "AMT[5]=25.50") {
		t.Fatalf("expected amount pair in payload, got %q", payload)
	}
	for field, want := range map[string]string{
		"USER":    "merchant",
		"TRXTYPE": "S",
		"CUR":     "EUR",
		"COUNTRY": "FR",
		"INV":     "1001",
		"NAME":    "Jonat",
	} {
		if got := flatValue(payload, field); got != want {
			t.Fatalf("expected %s=%q, got %q (payload %q)", field, want, got, payload)
		}
	}
	if strings.Contains(payload, "COMMENT[") {
		t.Fatalf("empty fields must be left out, got %q", payload)
	}
	if a.State() != StateTerminal {
		t.Fatalf("expected terminal state, got %s", a.State())
	}

	if v, _, _ := sessions.Get(ctx, "s1", sessionKeyNumAttempt); v != "1" {
		t.Fatalf("expected one finalized attempt, got %q", v)
	}
	if sessions.has("s1", sessionKeyDonor) || sessions.has("s1", sessionKeyEditToken) {
		t.Fatalf("expected hard reset after complete")
	}
	if donation.NumAttempt() != 1 {
		t.Fatalf("expected donation attempt counter 1, got %d", donation.NumAttempt())
	}
}

func TestGatewayAdapter_DoTransaction_TokenMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	def := mustDefinition(t, testFlatConfig(t))
	NewRetryContext(sessions, "s1").EditToken(ctx, "pepper")

	donation := newTestDonation(map[string]string{
		"amount": "10", "currency_code": "USD", "token": "forged",
	})
	a := NewGatewayAdapter(def, donation, AdapterOptions{Transport: transport, Retry: NewRetryContext(sessions, "s1")})
	if a.CheckTokens(ctx) {
		t.Fatalf("expected token mismatch")
	}

	res := a.DoTransaction(ctx, "Sale")
	if res.Status {
		t.Fatalf("expected failure")
	}
	if _, ok := res.Errors[ErrorCodeTokenMismatch]; !ok {
		t.Fatalf("expected token mismatch error, got %v", res.Errors)
	}
	if res.Message != def.ErrorMessage(ErrorCodeValidation) {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if res.FinalStatus != "" {
		t.Fatalf("nothing should be finalized, got %q", res.FinalStatus)
	}
}

func TestGatewayAdapter_DoTransaction_ValidationErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	def := mustDefinition(t, testFlatConfig(t))
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{"amount": "abc"}))

	a := NewGatewayAdapter(def, donation, AdapterOptions{Transport: transport, Retry: NewRetryContext(sessions, "s1")})
	a.CheckTokens(ctx)

	res := a.DoTransaction(ctx, "Sale")
	if res.Status {
		t.Fatalf("expected failure")
	}
	if _, ok := res.Errors["amount"]; !ok {
		t.Fatalf("expected amount error, got %v", res.Errors)
	}
	if _, ok := res.Errors["currency_code"]; !ok {
		t.Fatalf("expected currency_code error, got %v", res.Errors)
	}

	a.AddData(map[string]string{"amount": "5", "currency_code": "USD"})
	if errs := a.Revalidate(); len(errs) != 0 {
		t.Fatalf("expected no errors after fixing the data, got %v", errs)
	}
}

func TestGatewayAdapter_DoTransaction_CommunicationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	def := mustDefinition(t, testFlatConfig(t))
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{"amount": "10", "currency_code": "USD"}))

	transport.EXPECT().Send(gomock.Any(), gomock.Any()).
		Return(entities.TransportResponse{StatusCode: 403, Attempts: 3}, false)

	a := NewGatewayAdapter(def, donation, AdapterOptions{Transport: transport, Retry: NewRetryContext(sessions, "s1")})
	a.CheckTokens(ctx)
	res := a.DoTransaction(ctx, "Sale")

	if res.Status {
		t.Fatalf("expected failure")
	}
	if res.Errors[ErrorCodeCommunication] != def.ErrorMessage(ErrorCodeCommunication) {
		t.Fatalf("expected communication error, got %v", res.Errors)
	}
	if res.FinalStatus != "" {
		t.Fatalf("undelivered requests must not finalize, got %q", res.FinalStatus)
	}
}

func TestGatewayAdapter_DoTransaction_UnparseableResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	def := mustDefinition(t, testFlatConfig(t))
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{"amount": "10", "currency_code": "USD"}))

	transport.EXPECT().Send(gomock.Any(), gomock.Any()).Return(flatResponse("<html>gateway down</html>"), true)

	a := NewGatewayAdapter(def, donation, AdapterOptions{Transport: transport, Retry: NewRetryContext(sessions, "s1")})
	a.CheckTokens(ctx)
	res := a.DoTransaction(ctx, "Sale")

	if res.Status {
		t.Fatalf("expected failure")
	}
	if _, ok := res.Errors[ErrorCodeDefault]; !ok {
		t.Fatalf("expected default error code, got %v", res.Errors)
	}
	if res.Message != "Sale Transaction FAILED!" {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if res.FinalStatus != "" {
		t.Fatalf("an unclassified response must not finalize, got %q", res.FinalStatus)
	}
	if res.RawResponse != "<html>gateway down</html>" {
		t.Fatalf("expected raw response to be kept, got %q", res.RawResponse)
	}
}

func TestGatewayAdapter_DoTransaction_RecoverableErrorRegeneratesOrderID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	def := mustDefinition(t, testFlatConfig(t))
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{"amount": "10", "currency_code": "USD"}))

	var invoices []string
	transport.EXPECT().Send(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(
		func(_ context.Context, req entities.TransportRequest) (entities.TransportResponse, bool) {
			invoices = append(invoices, flatValue(req.Payload, "INV"))
			return flatResponse("RESULT=7&RESPMSG=Duplicate"), true
		})

	a := NewGatewayAdapter(def, donation, AdapterOptions{Transport: transport, Retry: NewRetryContext(sessions, "s1")})
	a.CheckTokens(ctx)
	res := a.DoTransaction(ctx, "Sale")

	if got := strings.Join(invoices, ","); got != "1001,1002,1003" {
		t.Fatalf("expected a fresh order id per attempt, got %s", got)
	}
	if res.Status {
		t.Fatalf("expected failure after exhausting attempts")
	}
	if res.Errors["7"] != "Duplicate order." {
		t.Fatalf("expected mapped gateway error, got %v", res.Errors)
	}
	if donor := NewRetryContext(sessions, "s1").DonorData(ctx); donor["order_id"] != "1003" {
		t.Fatalf("expected session to carry the last order id, got %q", donor["order_id"])
	}
}

func TestGatewayAdapter_DoTransaction_PollsUntilStatusSettles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	cfg := testFlatConfig(t)
	cfg.RetryWindow = time.Minute
	def := mustDefinition(t, cfg)

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{"amount": "10", "currency_code": "USD"}))

	gomock.InOrder(
		transport.EXPECT().Send(gomock.Any(), gomock.Any()).Return(flatResponse("RESULT=126&PNREF=P1&RESPMSG=Under review"), true),
		transport.EXPECT().Send(gomock.Any(), gomock.Any()).Return(entities.TransportResponse{StatusCode: 500}, false),
		transport.EXPECT().Send(gomock.Any(), gomock.Any()).Return(flatResponse("RESULT=0&PNREF=P1&RESPMSG=Approved"), true),
	)

	a := NewGatewayAdapter(def, donation, AdapterOptions{Transport: transport, Retry: NewRetryContext(sessions, "s1")})
	a.CheckTokens(ctx)
	res := a.DoTransaction(ctx, "Status")

	if !res.Status || res.FinalStatus != entities.FinalStatusComplete {
		t.Fatalf("expected complete after polling, got status=%t final=%q", res.Status, res.FinalStatus)
	}
	if got := NewRetryContext(sessions, "s1").Velocity(ctx); len(got) != 3 {
		t.Fatalf("expected one velocity stamp per transmission, got %d", len(got))
	}
}

func TestGatewayAdapter_DoTransaction_PollingStopsWhenWindowElapses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	def := mustDefinition(t, testFlatConfig(t))
	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{"amount": "10", "currency_code": "USD"}))

	transport.EXPECT().Send(gomock.Any(), gomock.Any()).Return(flatResponse("RESULT=126&PNREF=P1"), true)

	a := NewGatewayAdapter(def, donation, AdapterOptions{Transport: transport, Retry: NewRetryContext(sessions, "s1")})
	a.CheckTokens(ctx)
	res := a.DoTransaction(ctx, "Status")

	if res.Outcome != entities.FinalStatusPending || res.FinalStatus != entities.FinalStatusPending {
		t.Fatalf("expected pending after one poll, got outcome=%q final=%q", res.Outcome, res.FinalStatus)
	}
}

func TestGatewayAdapter_DoTransaction_PollingDropsStaleOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	cfg := testFlatConfig(t)
	cfg.RetryWindow = time.Minute
	def := mustDefinition(t, cfg)

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{"amount": "10", "currency_code": "USD"}))

	gomock.InOrder(
		transport.EXPECT().Send(gomock.Any(), gomock.Any()).Return(flatResponse("RESULT=126&PNREF=P1&RESPMSG=Under review"), true),
		transport.EXPECT().Send(gomock.Any(), gomock.Any()).Return(flatResponse("RESULT=5000&RESPMSG=Unknown"), true).MinTimes(1),
	)

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(10 * time.Second)
		return clock
	}

	a := NewGatewayAdapter(def, donation, AdapterOptions{Transport: transport, Retry: NewRetryContext(sessions, "s1"), Clock: tick})
	a.CheckTokens(ctx)
	res := a.DoTransaction(ctx, "Status")

	if res.Outcome != "" || res.FinalStatus != "" {
		t.Fatalf("expected no outcome from an unranged poll, got outcome=%q final=%q", res.Outcome, res.FinalStatus)
	}
	if res.GatewayTxnID != "" || res.TxnMessage == "Under review" {
		t.Fatalf("expected earlier poll findings to be dropped, got txnid=%q msg=%q", res.GatewayTxnID, res.TxnMessage)
	}
	if res.Status {
		t.Fatalf("expected unsuccessful status for an unranged code")
	}
}

func TestGatewayAdapter_DoTransaction_UndeliveredPollDropsStaleOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	cfg := testFlatConfig(t)
	cfg.RetryWindow = time.Minute
	def := mustDefinition(t, cfg)

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{"amount": "10", "currency_code": "USD"}))

	gomock.InOrder(
		transport.EXPECT().Send(gomock.Any(), gomock.Any()).Return(flatResponse("RESULT=126&PNREF=P1"), true),
		transport.EXPECT().Send(gomock.Any(), gomock.Any()).Return(entities.TransportResponse{StatusCode: 500}, false).MinTimes(1),
	)

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(10 * time.Second)
		return clock
	}

	a := NewGatewayAdapter(def, donation, AdapterOptions{Transport: transport, Retry: NewRetryContext(sessions, "s1"), Clock: tick})
	a.CheckTokens(ctx)
	res := a.DoTransaction(ctx, "Status")

	if res.Outcome != "" || res.FinalStatus != "" || res.GatewayTxnID != "" {
		t.Fatalf("expected no findings after undelivered polls, got outcome=%q final=%q txnid=%q",
			res.Outcome, res.FinalStatus, res.GatewayTxnID)
	}
	if _, ok := res.Errors[ErrorCodeCommunication]; !ok {
		t.Fatalf("expected communication error, got %v", res.Errors)
	}
}

func TestGatewayAdapter_DoTransaction_FilterReject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	def := mustDefinition(t, testFlatConfig(t))
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{"amount": "10", "currency_code": "USD"}))

	filters := NewCustomFilters(nil, fixedFilter{name: "bad_ip", score: 95})
	a := NewGatewayAdapter(def, donation, AdapterOptions{
		Transport: transport,
		Retry:     NewRetryContext(sessions, "s1"),
		Filters:   filters,
	})
	a.CheckTokens(ctx)
	res := a.DoTransaction(ctx, "Sale")

	if res.Status {
		t.Fatalf("expected rejection")
	}
	if _, ok := res.Errors[ErrorCodeValidation]; !ok {
		t.Fatalf("expected validation error, got %v", res.Errors)
	}
	if res.Action != entities.ActionReject {
		t.Fatalf("expected reject, got %s", res.Action)
	}
	if filters.RiskScore() != 95 {
		t.Fatalf("expected risk score 95, got %d", filters.RiskScore())
	}
	if sessions.has("s1", sessionKeyDonor) || sessions.has("s1", sessionKeyEditToken) {
		t.Fatalf("expected the session to be killed")
	}
}

func TestGatewayAdapter_DoTransaction_FilterReviewStopsTransmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	def := mustDefinition(t, testFlatConfig(t))
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{"amount": "10", "currency_code": "USD"}))

	a := NewGatewayAdapter(def, donation, AdapterOptions{
		Transport: transport,
		Retry:     NewRetryContext(sessions, "s1"),
		Filters:   NewCustomFilters(nil, fixedFilter{name: "velocity", score: 65}),
	})
	a.CheckTokens(ctx)
	res := a.DoTransaction(ctx, "Sale")

	if res.Action != entities.ActionReview {
		t.Fatalf("expected review, got %s", res.Action)
	}
	if !sessions.has("s1", sessionKeyDonor) {
		t.Fatalf("only a reject kills the session")
	}
}

func TestGatewayAdapter_DoTransaction_RedirectHandoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	def := mustDefinition(t, GatewayConfig{
		Name:              "Hosted",
		Identifier:        "hosted",
		CommunicationType: entities.CommunicationRedirect,
		URL:               "https://pay.test/checkout",
		AccountInfo:       map[string]string{"business": "donations@example.org"},
		VarMap: map[string]string{
			"amount":        "amount",
			"currency_code": "currency_code",
			"custom":        "contribution_tracking_id",
		},
		RequiredFields: []string{"amount", "currency_code"},
		Salt:           "pepper",
		Transactions: map[string]entities.TransactionDefinition{
			"Donate": {
				Request:           leaves("business", "item_name", "amount", "currency_code", "custom"),
				Values:            map[string]string{"item_name": "Donation"},
				FinalizeOnHandoff: entities.FinalStatusComplete,
			},
		},
	})

	sessions := newMemSessions()
	transport := mock_interfaces.NewMockIGatewayTransport(ctrl)
	queue := mock_interfaces.NewMockINotificationQueue(ctrl)
	donation := entities.NewDonation(
		signedFields(t, sessions, "s1", map[string]string{"amount": "10", "currency_code": "USD"}),
		entities.DonationOptions{Gateway: "hosted", OrderIDs: sequentialIDs()},
	)

	queue.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg entities.QueueMessage) error {
			if msg.Queue != entities.QueueLimbo || msg.Antimessage {
				t.Fatalf("expected a limbo message, got %+v", msg)
			}
			if msg.CorrelationID != "hosted-1001" {
				t.Fatalf("unexpected correlation id %q", msg.CorrelationID)
			}
			return nil
		})

	a := NewGatewayAdapter(def, donation, AdapterOptions{
		Transport: transport,
		Retry:     NewRetryContext(sessions, "s1"),
		Queue:     queue,
	})
	a.CheckTokens(ctx)
	res := a.DoTransaction(ctx, "Donate")

	want := "https://pay.test/checkout?amount=10.00&business=donations%40example.org&currency_code=USD&item_name=Donation"
	if res.RedirectURL != want {
		t.Fatalf("unexpected redirect\nwant %s\ngot  %s", want, res.RedirectURL)
	}
	if res.Data["redirect"] != want {
		t.Fatalf("expected redirect in data, got %v", res.Data)
	}
	if !res.Status || res.FinalStatus != entities.FinalStatusComplete {
		t.Fatalf("expected handoff to finalize complete, got status=%t final=%q", res.Status, res.FinalStatus)
	}
	if res.Message != "Donate Transaction Successful!" {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestGatewayAdapter_DoTransaction_UnknownTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	sessions := newMemSessions()
	def := mustDefinition(t, testFlatConfig(t))
	donation := newTestDonation(signedFields(t, sessions, "s1", map[string]string{"amount": "10", "currency_code": "USD"}))

	a := NewGatewayAdapter(def, donation, AdapterOptions{
		Transport: mock_interfaces.NewMockIGatewayTransport(ctrl),
		Retry:     NewRetryContext(sessions, "s1"),
	})
	a.CheckTokens(ctx)
	res := a.DoTransaction(ctx, "Refund")

	if _, ok := res.Errors[ErrorCodeConfiguration]; !ok {
		t.Fatalf("expected configuration error, got %v", res.Errors)
	}
}

func TestGatewayAdapter_FinalizeInternalStatus(t *testing.T) {
	ctx := context.Background()
	sessions := newMemSessions()
	def := mustDefinition(t, testFlatConfig(t))

	t.Run("only once per attempt", func(t *testing.T) {
		a := NewGatewayAdapter(def, newTestDonation(map[string]string{"amount": "1"}), AdapterOptions{Retry: NewRetryContext(sessions, "once")})
		if err := a.FinalizeInternalStatus(ctx, entities.FinalStatusFailed); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := a.FinalizeInternalStatus(ctx, entities.FinalStatusComplete)
		if !errors.Is(err, ErrFinalStatusAlreadySet) {
			t.Fatalf("expected ErrFinalStatusAlreadySet, got %v", err)
		}
		if a.Result().FinalStatus != entities.FinalStatusFailed {
			t.Fatalf("expected first status to stick, got %q", a.Result().FinalStatus)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		a := NewGatewayAdapter(def, newTestDonation(nil), AdapterOptions{})
		err := a.FinalizeInternalStatus(ctx, entities.FinalStatus("lost"))
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) || !errors.Is(err, entities.ErrInvalidFinalStatus) {
			t.Fatalf("expected configuration error wrapping ErrInvalidFinalStatus, got %v", err)
		}
	})

	t.Run("failed keeps donor data", func(t *testing.T) {
		retry := NewRetryContext(sessions, "soft")
		retry.AddDonorData(ctx, map[string]string{"email": "a@example.org", "order_id": "1"})
		a := NewGatewayAdapter(def, newTestDonation(nil), AdapterOptions{Retry: retry})
		if err := a.FinalizeInternalStatus(ctx, entities.FinalStatusFailed); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		donor := retry.DonorData(ctx)
		if donor["email"] != "a@example.org" {
			t.Fatalf("expected email to survive a soft reset, got %v", donor)
		}
		if _, ok := donor["order_id"]; ok {
			t.Fatalf("expected order_id to be dropped, got %v", donor)
		}
	})
}

func TestGatewayAdapter_SetValidationAction(t *testing.T) {
	def := mustDefinition(t, testFlatConfig(t))
	a := NewGatewayAdapter(def, newTestDonation(nil), AdapterOptions{})

	a.SetValidationAction(entities.ActionReview, false)
	a.SetValidationAction(entities.ActionProcess, false)
	if a.ValidationAction() != entities.ActionReview {
		t.Fatalf("action must never be lowered without reset, got %s", a.ValidationAction())
	}

	a.SetValidationAction(entities.ActionReject, false)
	if a.ValidationAction() != entities.ActionReject {
		t.Fatalf("expected reject, got %s", a.ValidationAction())
	}

	a.SetValidationAction(entities.ValidationAction(42), true)
	if a.ValidationAction() != entities.ActionReject {
		t.Fatalf("invalid actions must be ignored, got %s", a.ValidationAction())
	}

	a.SetValidationAction(entities.ActionProcess, true)
	if a.ValidationAction() != entities.ActionProcess {
		t.Fatalf("expected reset to process, got %s", a.ValidationAction())
	}
}

func TestGatewayAdapter_GatewayAccount(t *testing.T) {
	def := mustDefinition(t, testFlatConfig(t))

	a := NewGatewayAdapter(def, newTestDonation(nil), AdapterOptions{})
	if got := a.Donation().Value("gateway_account"); got != "main" {
		t.Fatalf("expected default account, got %q", got)
	}

	a = NewGatewayAdapter(def, newTestDonation(map[string]string{"gateway_account": "backup"}), AdapterOptions{})
	if got := a.Donation().Value("gateway_account"); got != "backup" {
		t.Fatalf("expected submitted account to win, got %q", got)
	}
}
