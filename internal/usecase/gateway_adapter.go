package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"donation_interface/internal/domain/entities"
	"donation_interface/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

// Application-level attempts per DoTransaction call.
const maxApplicationAttempts = 3

// TransactionState is where an orchestrator run currently is.
type TransactionState int

const (
	StateIdle TransactionState = iota
	StatePreProcessing
	StateBuildingRequest
	StateTransmitting
	StateClassifying
	StatePostProcessing
	StateTerminal
)

var transactionStateNames = [...]string{
	"idle", "pre_processing", "building_request", "transmitting",
	"classifying", "post_processing", "terminal",
}

func (s TransactionState) String() string {
	if s < StateIdle || s > StateTerminal {
		return fmt.Sprintf("TransactionState(%d)", int(s))
	}
	return transactionStateNames[s]
}

// ContributionTracker keeps the contribution tracking row of a donation in
// sync before each transmission.
type ContributionTracker interface {
	UpdateFromDonation(ctx context.Context, d *entities.Donation, force bool) error
}

// AdapterOptions carries the collaborators of one GatewayAdapter. Only
// Transport and Retry are required; missing optional collaborators turn
// their step into a no-op.
type AdapterOptions struct {
	Transport interfaces.IGatewayTransport
	Retry     *RetryContext
	Tracker   ContributionTracker
	Queue     interfaces.INotificationQueue
	Filters   *CustomFilters
	Clock     func() time.Time
}

// GatewayAdapter runs transactions of one gateway for one donation. It is
// not safe for concurrent use.
type GatewayAdapter struct {
	def       *GatewayDefinition
	donation  *entities.Donation
	transport interfaces.IGatewayTransport
	retry     *RetryContext
	tracker   ContributionTracker
	queue     interfaces.INotificationQueue
	filters   *CustomFilters
	now       func() time.Time

	unstaged map[string]string
	staged   *StagedData
	txn      entities.TransactionDefinition
	hasTxn   bool
	result   entities.TransactionResult
	action   entities.ValidationAction
	state    TransactionState

	validationErrors map[string]string
	manualErrors     map[string]string
}

func NewGatewayAdapter(def *GatewayDefinition, donation *entities.Donation, opts AdapterOptions) *GatewayAdapter {
	a := &GatewayAdapter{
		def:          def,
		donation:     donation,
		transport:    opts.Transport,
		retry:        opts.Retry,
		tracker:      opts.Tracker,
		queue:        opts.Queue,
		filters:      opts.Filters,
		now:          opts.Clock,
		result:       entities.NewTransactionResult(),
		manualErrors: map[string]string{},
	}
	if a.now == nil {
		a.now = time.Now
	}
	if def.accountName != "" && !donation.IsSomething("gateway_account") {
		donation.AddData(map[string]string{"gateway_account": def.accountName})
	}
	a.refreshUnstaged()
	a.Revalidate()
	return a
}

func (a *GatewayAdapter) Definition() *GatewayDefinition { return a.def }

func (a *GatewayAdapter) Donation() *entities.Donation { return a.donation }

func (a *GatewayAdapter) State() TransactionState { return a.state }

func (a *GatewayAdapter) Result() entities.TransactionResult { return a.result }

func (a *GatewayAdapter) ValidationAction() entities.ValidationAction { return a.action }

// CurrentTransaction returns the name of the transaction being run.
func (a *GatewayAdapter) CurrentTransaction() string { return a.txn.Name }

// Staged returns a copy of the staged data of the latest staging pass.
func (a *GatewayAdapter) Staged() map[string]string {
	if a.staged == nil {
		return map[string]string{}
	}
	return a.staged.Snapshot()
}

func (a *GatewayAdapter) refreshUnstaged() {
	a.unstaged = a.donation.Escaped()
}

// AddData merges fields into the donation and restages if a staged field
// may have changed.
func (a *GatewayAdapter) AddData(data map[string]string) {
	a.donation.AddData(data)
	a.refreshUnstaged()
	if a.hasTxn {
		a.StageData(StagingRequest)
	}
}

// Revalidate recomputes the data validation errors.
func (a *GatewayAdapter) Revalidate() map[string]string {
	errs := map[string]string{}
	for _, field := range a.def.requiredFields {
		if field == "amount" {
			amt, err := decimal.NewFromString(a.donation.Value("amount"))
			if err != nil || !amt.IsPositive() {
				errs["amount"] = "Please enter a valid donation amount."
			}
			continue
		}
		if !a.donation.IsSomething(field) {
			errs[field] = fmt.Sprintf("The %s field is required.", field)
		}
	}
	a.validationErrors = errs
	return copyStrings(errs)
}

// CheckTokens compares the submitted form token with the session token.
func (a *GatewayAdapter) CheckTokens(ctx context.Context) bool {
	if a.retry != nil && a.retry.MatchEditToken(ctx, a.donation.Value("token"), a.def.salt) {
		delete(a.manualErrors, ErrorCodeTokenMismatch)
		return true
	}
	log.Printf("[gateway][adapter] edit token mismatch gateway=%s order_id=%s",
		a.def.identifier, a.donation.Value("order_id"))
	a.manualErrors[ErrorCodeTokenMismatch] = a.def.ErrorMessage(ErrorCodeTokenMismatch)
	return false
}

// ValidationErrors returns data validation errors and manual errors.
func (a *GatewayAdapter) ValidationErrors() map[string]string {
	all := copyStrings(a.validationErrors)
	for k, v := range a.manualErrors {
		all[k] = v
	}
	return all
}

// SetValidationAction raises the action. reset forces the given value.
func (a *GatewayAdapter) SetValidationAction(action entities.ValidationAction, reset bool) {
	if !action.Valid() {
		log.Printf("[gateway][adapter] ignoring invalid validation action=%d", int(action))
		return
	}
	if reset || action > a.action {
		a.action = action
	}
}

// DoTransaction runs txn to a result. Recoverable gateway errors are
// retried with the identifiers the gateway names regenerated.
func (a *GatewayAdapter) DoTransaction(ctx context.Context, txn string) entities.TransactionResult {
	if errs := a.ValidationErrors(); len(errs) > 0 {
		log.Printf("[gateway][adapter] refusing transaction with validation errors gateway=%s txn=%s errors=%d",
			a.def.identifier, txn, len(errs))
		res := entities.NewTransactionResult()
		res.Errors = errs
		res.Message = a.def.ErrorMessage(ErrorCodeValidation)
		res.Action = a.action
		a.result = res
		a.state = StateTerminal
		return res
	}

	if a.retry != nil {
		a.retry.AddDonorData(ctx, a.donation.DonorSnapshot())
	}

	var result entities.TransactionResult
	for attempt := 1; ; attempt++ {
		var retryVars []string
		result, retryVars = a.doTransactionInternal(ctx, txn)
		if len(retryVars) == 0 {
			break
		}
		if attempt >= maxApplicationAttempts {
			log.Printf("[gateway][adapter] giving up on recoverable error gateway=%s txn=%s attempts=%d",
				a.def.identifier, txn, attempt)
			break
		}
		log.Printf("[gateway][adapter] repeating transaction gateway=%s txn=%s attempt=%d regenerate=%v",
			a.def.identifier, txn, attempt+1, retryVars)
		a.regenerate(ctx, retryVars)
	}
	return result
}

func (a *GatewayAdapter) regenerate(ctx context.Context, fields []string) {
	for _, f := range fields {
		if !a.donation.Regenerate(f) {
			log.Printf("[gateway][adapter] cannot regenerate field=%s gateway=%s", f, a.def.identifier)
		}
	}
	a.refreshUnstaged()
	if a.retry != nil {
		a.retry.AddDonorData(ctx, a.donation.DonorSnapshot())
	}
}

func (a *GatewayAdapter) doTransactionInternal(ctx context.Context, name string) (entities.TransactionResult, []string) {
	a.result = entities.NewTransactionResult()
	a.SetValidationAction(entities.ActionProcess, true)
	a.state = StatePreProcessing

	if err := a.setCurrentTransaction(name); err != nil {
		return a.configurationFailure(err), nil
	}
	a.StageData(StagingRequest)

	if hook := a.def.preProcessHook(name); hook != nil {
		if err := hook(ctx, a); err != nil {
			return a.configurationFailure(err), nil
		}
	}
	if a.action != entities.ActionProcess {
		log.Printf("[gateway][adapter] transaction stopped by validation action gateway=%s txn=%s action=%s",
			a.def.identifier, name, a.action)
		return a.failure(ErrorCodeValidation), nil
	}

	a.trackContribution(ctx)

	if a.def.CommunicationTypeFor(a.txn) == entities.CommunicationRedirect {
		return a.handoff(ctx)
	}

	a.state = StateBuildingRequest
	payload, err := a.buildPayload(false)
	if err != nil {
		return a.configurationFailure(err), nil
	}

	a.state = StateTransmitting
	delivered, decision := a.transmitAndClassify(ctx, payload)
	if !delivered {
		return a.failure(ErrorCodeCommunication), nil
	}
	if len(decision.RetryVars) > 0 {
		code := decision.ErrCode
		if code == "" {
			code = ErrorCodeDefault
		}
		return a.failure(code), decision.RetryVars
	}

	a.state = StatePostProcessing
	if hook := a.def.postProcessHook(name); hook != nil {
		if err := hook(ctx, a); err != nil {
			return a.configurationFailure(err), nil
		}
	}

	a.result.Action = a.action
	a.result.Message = a.outcomeMessage()
	a.state = StateTerminal
	return a.result, nil
}

func (a *GatewayAdapter) setCurrentTransaction(name string) error {
	txn, ok := a.def.Transaction(name)
	if !ok {
		a.hasTxn = false
		return &ConfigurationError{Gateway: a.def.identifier, Transaction: name, Err: ErrUnknownTransaction}
	}
	a.txn = txn
	a.hasTxn = true
	return nil
}

func (a *GatewayAdapter) handoff(ctx context.Context) (entities.TransactionResult, []string) {
	a.state = StateBuildingRequest
	redirect, err := a.buildPayload(false)
	if err != nil {
		return a.configurationFailure(err), nil
	}

	a.sendLimbo(ctx, false)
	a.result.Status = true
	a.SetRedirect(redirect)
	if a.txn.FinalizeOnHandoff != "" {
		if err := a.FinalizeInternalStatus(ctx, a.txn.FinalizeOnHandoff); err != nil {
			return a.configurationFailure(err), nil
		}
	}
	a.result.Action = a.action
	a.result.Message = a.outcomeMessage()
	a.state = StateTerminal
	return a.result, nil
}

func (a *GatewayAdapter) transmitAndClassify(ctx context.Context, payload string) (bool, ResponseDecision) {
	req := entities.TransportRequest{
		URL:               a.def.URLFor(a.txn),
		Payload:           payload,
		CommunicationType: a.def.CommunicationTypeFor(a.txn),
		RequestID:         a.donation.Value("order_id"),
	}

	start := a.now()
	var (
		delivered bool
		decision  ResponseDecision
	)
	for {
		a.state = StateTransmitting
		if a.retry != nil {
			a.retry.RecordVelocity(ctx, a.now())
		}
		a.clearClassification()
		var resp entities.TransportResponse
		resp, delivered = a.transport.Send(ctx, req)
		a.saveCommunicationStats(resp, delivered)
		if delivered {
			a.state = StateClassifying
			decision = a.classify(resp)
		}

		if !a.txn.LoopsForStatus() || len(decision.RetryVars) > 0 {
			break
		}
		if delivered && a.txn.InLoopSet(a.result.Outcome) {
			break
		}
		if a.now().Sub(start) >= a.def.retryWindow {
			log.Printf("[gateway][adapter] status polling window elapsed gateway=%s txn=%s outcome=%q",
				a.def.identifier, a.txn.Name, a.result.Outcome)
			break
		}
		if !sleepContext(ctx, a.def.pollInterval) {
			break
		}
	}
	return delivered, decision
}

// clearClassification drops what the previous poll classified, so an
// unranged or undelivered poll never finalizes from stale findings.
func (a *GatewayAdapter) clearClassification() {
	a.result.Outcome = ""
	a.result.GatewayTxnID = ""
	a.result.TxnMessage = ""
	a.result.Errors = map[string]string{}
	a.result.Data = map[string]string{}
}

func (a *GatewayAdapter) classify(resp entities.TransportResponse) ResponseDecision {
	a.clearClassification()
	a.result.RawResponse = resp.Body
	a.result.HTTPStatus = resp.StatusCode

	parsed, err := ParseResponse(resp.Body, a.def.CommunicationTypeFor(a.txn), a.def.resultMarker)
	if err != nil {
		log.Printf("[gateway][classifier] discarding response gateway=%s txn=%s err=%v body=%q",
			a.def.identifier, a.txn.Name, err, resp.Body)
		a.result.Status = false
		a.result.AddError(ErrorCodeDefault, a.def.ErrorMessage(ErrorCodeDefault))
		return ResponseDecision{}
	}

	h := a.def.responses
	a.result.UnparsedData = parsed.Unparsed
	a.result.Status = h.Status(parsed)
	for code, msg := range h.Errors(parsed) {
		a.result.AddError(code, msg)
	}
	for k, v := range h.Data(parsed) {
		a.result.Data[k] = v
	}

	decision := h.Process(a.txn.Name, a.result, a.def)
	if decision.Outcome != "" {
		a.result.Outcome = decision.Outcome
	}
	if decision.GatewayTxnID != "" {
		a.result.GatewayTxnID = decision.GatewayTxnID
	}
	if decision.TxnMessage != "" {
		a.result.TxnMessage = decision.TxnMessage
	}
	a.SetValidationAction(decision.Action, false)
	return decision
}

// FinalizeInternalStatus records the terminal status of this attempt and
// resets the session accordingly. It can be called once per attempt.
func (a *GatewayAdapter) FinalizeInternalStatus(ctx context.Context, status entities.FinalStatus) error {
	if !status.Valid() {
		return &ConfigurationError{Gateway: a.def.identifier, Transaction: a.txn.Name,
			Err: fmt.Errorf("%w: %q", entities.ErrInvalidFinalStatus, status)}
	}
	if a.result.FinalStatus != "" {
		return &ConfigurationError{Gateway: a.def.identifier, Transaction: a.txn.Name, Err: ErrFinalStatusAlreadySet}
	}
	a.result.FinalStatus = status
	a.donation.IncrementNumAttempt()
	a.refreshUnstaged()

	if a.retry == nil {
		return nil
	}
	attempts := a.retry.IncrementAttempt(ctx)
	a.retry.ResetForStatus(ctx, status, attempts)
	log.Printf("[gateway][adapter] finalized gateway=%s order_id=%s status=%s attempts=%d",
		a.def.identifier, a.donation.Value("order_id"), status, attempts)
	return nil
}

// FinalizeFromOutcome finalizes with the classified outcome when there is one.
func (a *GatewayAdapter) FinalizeFromOutcome(ctx context.Context) error {
	if a.result.Outcome == "" {
		log.Printf("[gateway][adapter] no outcome determined gateway=%s txn=%s order_id=%s",
			a.def.identifier, a.txn.Name, a.donation.Value("order_id"))
		return nil
	}
	return a.FinalizeInternalStatus(ctx, a.result.Outcome)
}

// RunPreProcessHooks scores the donation with the custom filters and raises
// the validation action. A reject kills the session.
func (a *GatewayAdapter) RunPreProcessHooks(ctx context.Context) error {
	if a.filters == nil {
		return nil
	}
	a.SetValidationAction(a.filters.Run(ctx, a.filterContext(ctx)), false)
	if a.action == entities.ActionReject && a.retry != nil {
		a.retry.KillAll(ctx)
	}
	return nil
}

// RunPostProcessHooks lets filters record the attempt and notifies the
// downstream queue of the final status.
func (a *GatewayAdapter) RunPostProcessHooks(ctx context.Context) error {
	if a.filters != nil {
		a.filters.PostProcess(ctx, a.filterContext(ctx))
	}
	a.sendNotification(ctx)
	return nil
}

func (a *GatewayAdapter) sendNotification(ctx context.Context) {
	if a.queue == nil {
		return
	}
	queue, ok := entities.QueueForStatus(a.result.FinalStatus)
	if !ok {
		log.Printf("[gateway][queue] no queue for status gateway=%s order_id=%s status=%q",
			a.def.identifier, a.donation.Value("order_id"), a.result.FinalStatus)
		return
	}
	msg := entities.NewQueueMessage(queue, a.def.identifier, a.donation.NotificationFields(),
		a.result.GatewayTxnID, a.result.TxnMessage, a.now())
	if err := a.queue.Send(ctx, msg); err != nil {
		log.Printf("[gateway][queue] send failed queue=%s correlation_id=%s err=%v", queue, msg.CorrelationID, err)
	}
}

// sendLimbo records a donation that left for the gateway, or voids that
// record once its status is known.
func (a *GatewayAdapter) sendLimbo(ctx context.Context, antimessage bool) {
	if a.queue == nil {
		return
	}
	msg := entities.NewQueueMessage(entities.QueueLimbo, a.def.identifier, a.donation.NotificationFields(),
		a.result.GatewayTxnID, a.result.TxnMessage, a.now())
	if antimessage {
		msg = entities.NewAntimessage(a.def.identifier, a.donation.Value("order_id"), a.result.GatewayTxnID)
	}
	if err := a.queue.Send(ctx, msg); err != nil {
		log.Printf("[gateway][queue] limbo send failed correlation_id=%s antimessage=%t err=%v",
			msg.CorrelationID, antimessage, err)
	}
}

// SetRedirect points the donor at a hosted payment page.
func (a *GatewayAdapter) SetRedirect(u string) {
	a.result.RedirectURL = u
	a.result.Data["redirect"] = u
}

// SendLimboMessage is used by hooks of hosted payment flows.
func (a *GatewayAdapter) SendLimboMessage(ctx context.Context) { a.sendLimbo(ctx, false) }

// SendLimboAntimessage voids the limbo message of this order.
func (a *GatewayAdapter) SendLimboAntimessage(ctx context.Context) { a.sendLimbo(ctx, true) }

func (a *GatewayAdapter) trackContribution(ctx context.Context) {
	if a.tracker == nil {
		return
	}
	if err := a.tracker.UpdateFromDonation(ctx, a.donation, false); err != nil {
		log.Printf("[gateway][adapter] contribution tracking update failed gateway=%s order_id=%s err=%v",
			a.def.identifier, a.donation.Value("order_id"), err)
		return
	}
	a.refreshUnstaged()
	a.StageData(StagingRequest)
}

func (a *GatewayAdapter) failure(code string) entities.TransactionResult {
	msg := a.def.ErrorMessage(code)
	a.result.Status = false
	a.result.Message = msg
	a.result.AddError(code, msg)
	a.result.Action = a.action
	a.state = StateTerminal
	return a.result
}

func (a *GatewayAdapter) configurationFailure(err error) entities.TransactionResult {
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		cfgErr = &ConfigurationError{Gateway: a.def.identifier, Transaction: a.txn.Name, Err: err}
	}
	log.Printf("[gateway][adapter] %v", cfgErr)
	a.result = entities.NewTransactionResult()
	return a.failure(ErrorCodeConfiguration)
}

func (a *GatewayAdapter) outcomeMessage() string {
	if a.result.Status {
		return a.txn.Name + " Transaction Successful!"
	}
	return a.txn.Name + " Transaction FAILED!"
}

func (a *GatewayAdapter) saveCommunicationStats(resp entities.TransportResponse, delivered bool) {
	log.Printf("[gateway][stats] gateway=%s txn=%s order_id=%s delivered=%t http_status=%d attempts=%d duration=%s",
		a.def.identifier, a.txn.Name, a.donation.Value("order_id"), delivered, resp.StatusCode, resp.Attempts, resp.Duration)
}

func (a *GatewayAdapter) filterContext(ctx context.Context) FilterContext {
	return adapterFilterContext{a: a, ctx: ctx}
}

type adapterFilterContext struct {
	a   *GatewayAdapter
	ctx context.Context
}

func (c adapterFilterContext) Value(field string) string { return c.a.unstaged[field] }
func (c adapterFilterContext) GatewayIdentifier() string { return c.a.def.identifier }
func (c adapterFilterContext) Now() time.Time            { return c.a.now() }

func (c adapterFilterContext) SessionVelocity() []int64 {
	if c.a.retry == nil {
		return nil
	}
	return c.a.retry.Velocity(c.ctx)
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
