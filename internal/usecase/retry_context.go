package usecase

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"donation_interface/internal/domain/entities"
	"donation_interface/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const (
	sessionKeyDonor      = "Donor"
	sessionKeyNumAttempt = "numAttempt"
	sessionKeyVelocity   = "velocity"
	sessionKeyFormStack  = "form_stack"
	sessionKeyEditToken  = "edit_token"

	maxAttemptsBeforeHardReset = 3
	maxFormStack               = 10
)

// Cleared from the donor snapshot by a soft reset.
var softResetDonorFields = []string{"order_id", "contribution_tracking_id"}

// RetryContext owns the donor session: attempt count, donor snapshot, form
// history, velocity stamps and the edit token. Store failures are logged and
// treated as empty state.
type RetryContext struct {
	store     interfaces.ISessionStore
	namespace string
}

func NewRetryContext(store interfaces.ISessionStore, namespace string) *RetryContext {
	return &RetryContext{store: store, namespace: namespace}
}

func (r *RetryContext) Namespace() string {
	return r.namespace
}

func (r *RetryContext) get(ctx context.Context, key string) (string, bool) {
	v, ok, err := r.store.Get(ctx, r.namespace, key)
	if err != nil {
		log.Printf("[gateway][session] get failed session=%s key=%s err=%v", r.namespace, key, err)
		return "", false
	}
	return v, ok
}

func (r *RetryContext) set(ctx context.Context, key, value string) {
	if err := r.store.Set(ctx, r.namespace, key, value); err != nil {
		log.Printf("[gateway][session] set failed session=%s key=%s err=%v", r.namespace, key, err)
	}
}

func (r *RetryContext) clear(ctx context.Context, keys ...string) {
	if err := r.store.Clear(ctx, r.namespace, keys...); err != nil {
		log.Printf("[gateway][session] clear failed session=%s keys=%v err=%v", r.namespace, keys, err)
	}
}

func (r *RetryContext) getJSON(ctx context.Context, key string, dst any) bool {
	raw, ok := r.get(ctx, key)
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("[gateway][session] corrupt value session=%s key=%s err=%v", r.namespace, key, err)
		return false
	}
	return true
}

func (r *RetryContext) setJSON(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[gateway][session] encode failed session=%s key=%s err=%v", r.namespace, key, err)
		return
	}
	r.set(ctx, key, string(b))
}

func (r *RetryContext) AttemptCount(ctx context.Context) int {
	raw, _ := r.get(ctx, sessionKeyNumAttempt)
	n, _ := strconv.Atoi(raw)
	return n
}

func (r *RetryContext) IncrementAttempt(ctx context.Context) int {
	n := r.AttemptCount(ctx) + 1
	r.set(ctx, sessionKeyNumAttempt, strconv.Itoa(n))
	return n
}

// AddDonorData merges fields into the stored donor snapshot.
func (r *RetryContext) AddDonorData(ctx context.Context, fields map[string]string) {
	donor := r.DonorData(ctx)
	for k, v := range fields {
		donor[k] = v
	}
	r.setJSON(ctx, sessionKeyDonor, donor)
}

func (r *RetryContext) DonorData(ctx context.Context) map[string]string {
	donor := map[string]string{}
	r.getJSON(ctx, sessionKeyDonor, &donor)
	return donor
}

// PushForm records the last form the donor was shown.
func (r *RetryContext) PushForm(ctx context.Context, form string) {
	if form == "" {
		return
	}
	var stack []string
	r.getJSON(ctx, sessionKeyFormStack, &stack)
	if len(stack) > 0 && stack[len(stack)-1] == form {
		return
	}
	stack = append(stack, form)
	if len(stack) > maxFormStack {
		stack = stack[len(stack)-maxFormStack:]
	}
	r.setJSON(ctx, sessionKeyFormStack, stack)
}

// LastForm returns the last known good form, "" when none was recorded.
func (r *RetryContext) LastForm(ctx context.Context) string {
	var stack []string
	if !r.getJSON(ctx, sessionKeyFormStack, &stack) || len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1]
}

func (r *RetryContext) RecordVelocity(ctx context.Context, now time.Time) {
	stamps := r.Velocity(ctx)
	stamps = append(stamps, now.Unix())
	r.setJSON(ctx, sessionKeyVelocity, stamps)
}

func (r *RetryContext) Velocity(ctx context.Context) []int64 {
	var stamps []int64
	r.getJSON(ctx, sessionKeyVelocity, &stamps)
	return stamps
}

// EditToken returns the salted form token of this session, creating the
// session secret on first use.
func (r *RetryContext) EditToken(ctx context.Context, salt string) string {
	secret, ok := r.get(ctx, sessionKeyEditToken)
	if !ok || secret == "" {
		secret = uuid.NewString()
		r.set(ctx, sessionKeyEditToken, secret)
	}
	return saltToken(secret, salt)
}

// MatchEditToken reports whether token was issued by EditToken for salt.
func (r *RetryContext) MatchEditToken(ctx context.Context, token, salt string) bool {
	secret, ok := r.get(ctx, sessionKeyEditToken)
	if !ok || secret == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(saltToken(secret, salt)), []byte(token)) == 1
}

func saltToken(secret, salt string) string {
	sum := sha256.Sum256([]byte(secret + salt))
	return hex.EncodeToString(sum[:])
}

// SoftReset drops the identifiers of the finished attempt and keeps the rest
// of the donor data for the next one.
func (r *RetryContext) SoftReset(ctx context.Context) {
	donor := r.DonorData(ctx)
	for _, f := range softResetDonorFields {
		delete(donor, f)
	}
	r.setJSON(ctx, sessionKeyDonor, donor)
}

// HardReset drops donor data and the edit token. Attempt count, velocity
// stamps and form history survive.
func (r *RetryContext) HardReset(ctx context.Context) {
	r.clear(ctx, sessionKeyDonor, sessionKeyEditToken)
}

// KillAll drops the whole session.
func (r *RetryContext) KillAll(ctx context.Context) {
	r.clear(ctx)
}

// ResetForStatus applies the reset that follows a finalized attempt.
func (r *RetryContext) ResetForStatus(ctx context.Context, status entities.FinalStatus, attempts int) {
	if attempts > maxAttemptsBeforeHardReset || status.RequiresHardReset() {
		r.HardReset(ctx)
		return
	}
	r.SoftReset(ctx)
}
