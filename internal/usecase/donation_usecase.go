package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"donation_interface/internal/domain/entities"
	"donation_interface/internal/usecase/interfaces"
)

var (
	ErrUnknownGateway   = errors.New("unknown gateway")
	ErrInvalidSessionID = errors.New("invalid session id")
)

// GatewayRuntime is what a registered gateway needs at request time.
type GatewayRuntime struct {
	Definition *GatewayDefinition
	Transport  interfaces.IGatewayTransport
	// Filters builds a fresh filter chain per donation. Nil disables
	// fraud scoring.
	Filters      func() *CustomFilters
	QueueEnabled bool
	// ResultPage returns the thank-you page, or the fail page when success
	// is false, for the donor language. Nil when none is configured.
	ResultPage func(success bool, language string) string
}

// SubmitDonationInput is one posted donation form.
type SubmitDonationInput struct {
	Gateway         string
	Transaction     string
	SessionID       string
	Form            string
	ExternalOrderID string
	Fields          map[string]string
}

// SubmitDonationOutput is the engine result plus where the donor goes next.
type SubmitDonationOutput struct {
	Result entities.TransactionResult
	// ResultPage is set once the attempt has a final status.
	ResultPage string
	// LastForm is the form a donor resumes from after a failed attempt.
	LastForm string
}

// GatewaySummary describes a registered gateway.
type GatewaySummary struct {
	Identifier        string
	Name              string
	CommunicationType entities.CommunicationType
	Transactions      []string
}

// IDonationUseCase runs donation forms through the gateway engine.

type IDonationUseCase interface {
	Submit(ctx context.Context, in SubmitDonationInput) (SubmitDonationOutput, error)
	IssueEditToken(ctx context.Context, gateway, sessionID string) (string, error)
	ListGateways() []GatewaySummary
}

type DonationUseCase struct {
	gateways map[string]GatewayRuntime
	sessions interfaces.ISessionStore
	tracking IContributionTrackingUseCase
	queue    interfaces.INotificationQueue
}

var _ IDonationUseCase = (*DonationUseCase)(nil)

func NewDonationUseCase(
	gateways map[string]GatewayRuntime,
	sessions interfaces.ISessionStore,
	tracking IContributionTrackingUseCase,
	queue interfaces.INotificationQueue,
) *DonationUseCase {
	return &DonationUseCase{gateways: gateways, sessions: sessions, tracking: tracking, queue: queue}
}

func (u *DonationUseCase) Submit(ctx context.Context, in SubmitDonationInput) (SubmitDonationOutput, error) {
	gateway := strings.ToLower(strings.TrimSpace(in.Gateway))
	log.Printf("[donation][usecase] submit start gateway=%s txn=%s session=%s", gateway, in.Transaction, in.SessionID)

	rt, ok := u.gateways[gateway]
	if !ok {
		return SubmitDonationOutput{}, ErrUnknownGateway
	}
	if _, ok := rt.Definition.Transaction(in.Transaction); !ok {
		return SubmitDonationOutput{}, ErrUnknownTransaction
	}
	if strings.TrimSpace(in.SessionID) == "" {
		return SubmitDonationOutput{}, ErrInvalidSessionID
	}

	retry := NewRetryContext(u.sessions, in.SessionID)
	fields := mergeSessionDonor(in.Fields, retry.DonorData(ctx))
	if id := fields["utm_source_id"]; id != "" {
		fields["utm_source"] = entities.NormalizeUtmSource(fields["utm_source"], id)
	}

	// An order still in flight keeps its id until it is finalized.
	orderID := strings.TrimSpace(in.ExternalOrderID)
	if orderID == "" {
		orderID = strings.TrimSpace(fields["order_id"])
	}
	donation := entities.NewDonation(fields, entities.DonationOptions{
		Gateway:         gateway,
		ExternalOrderID: orderID,
	})
	u.saveFirstAttempt(ctx, donation, retry.AttemptCount(ctx))

	opts := AdapterOptions{
		Transport: rt.Transport,
		Retry:     retry,
	}
	if u.tracking != nil {
		opts.Tracker = u.tracking
	}
	if rt.QueueEnabled {
		opts.Queue = u.queue
	}
	if rt.Filters != nil {
		opts.Filters = rt.Filters()
	}

	adapter := NewGatewayAdapter(rt.Definition, donation, opts)
	retry.PushForm(ctx, in.Form)
	adapter.CheckTokens(ctx)

	result := adapter.DoTransaction(ctx, in.Transaction)
	log.Printf("[donation][usecase] submit done gateway=%s txn=%s order_id=%s status=%t final_status=%q errors=%d",
		gateway, in.Transaction, donation.Value("order_id"), result.Status, result.FinalStatus, len(result.Errors))

	out := SubmitDonationOutput{
		Result:     result,
		ResultPage: resultPage(rt, result, donation.Value("language")),
	}
	if !result.Status {
		out.LastForm = retry.LastForm(ctx)
	}
	return out, nil
}

// resultPage is "" while the attempt has no final status or hands the donor
// to the gateway's hosted page.
func resultPage(rt GatewayRuntime, res entities.TransactionResult, language string) string {
	if rt.ResultPage == nil || res.FinalStatus == "" || res.RedirectURL != "" {
		return ""
	}
	return rt.ResultPage(res.FinalStatus.Successful(), language)
}

// mergeSessionDonor fills fields the form left blank from the session's
// donor snapshot.
func mergeSessionDonor(form, donor map[string]string) map[string]string {
	fields := make(map[string]string, len(form)+len(donor))
	for k, v := range donor {
		fields[k] = v
	}
	for k, v := range form {
		if v != "" || fields[k] == "" {
			fields[k] = v
		}
	}
	return fields
}

// The first attempt of a landing-page donation gets its tracking row
// before anything else happens.
func (u *DonationUseCase) saveFirstAttempt(ctx context.Context, d *entities.Donation, attempts int) {
	if u.tracking == nil || attempts != 0 || d.IsSomething("contribution_tracking_id") {
		return
	}
	if !d.IsSomething("utm_source_id") && d.Value("_nocache_") != "true" {
		return
	}
	if _, err := u.tracking.Save(ctx, d); err != nil {
		log.Printf("[donation][usecase] contribution tracking save failed order_id=%s err=%v", d.Value("order_id"), err)
	}
}

func (u *DonationUseCase) IssueEditToken(ctx context.Context, gateway, sessionID string) (string, error) {
	rt, ok := u.gateways[strings.ToLower(strings.TrimSpace(gateway))]
	if !ok {
		return "", ErrUnknownGateway
	}
	if strings.TrimSpace(sessionID) == "" {
		return "", ErrInvalidSessionID
	}
	return NewRetryContext(u.sessions, sessionID).EditToken(ctx, rt.Definition.salt), nil
}

func (u *DonationUseCase) ListGateways() []GatewaySummary {
	out := make([]GatewaySummary, 0, len(u.gateways))
	for _, rt := range u.gateways {
		d := rt.Definition
		out = append(out, GatewaySummary{
			Identifier:        d.Identifier(),
			Name:              d.Name(),
			CommunicationType: d.CommunicationType(),
			Transactions:      d.TransactionNames(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}
