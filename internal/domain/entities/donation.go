package entities

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	amountPattern   = regexp.MustCompile(`^\d+(\.(\d+)?)?$`)
	entityPattern   = regexp.MustCompile(`^&(#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);`)
	utmCCSourcePart = regexp.MustCompile(`^cc[0-9]`)
)

// Fields mirrored from the primary address when the secondary one is blank.
var addressFallbacks = [][2]string{
	{"fname2", "fname"},
	{"lname2", "lname"},
	{"street2", "street"},
	{"city2", "city"},
	{"state2", "state"},
	{"zip2", "zip"},
	{"country2", "country"},
}

var donorSessionFields = []string{
	"email", "fname", "mname", "lname", "street", "city", "state", "zip",
	"country", "contribution_tracking_id", "referrer", "order_id",
}

var trackingFields = []string{
	"note", "referrer", "anonymous", "utm_source", "utm_medium", "utm_campaign",
	"optout", "language",
}

var notificationFields = []string{
	"contribution_tracking_id", "optout", "anonymous", "comment", "size",
	"premium_language", "utm_source", "utm_medium", "utm_campaign", "language",
	"referrer", "email", "fname", "mname", "lname", "street", "city", "state",
	"country", "zip", "fname2", "lname2", "street2", "city2", "state2",
	"country2", "zip2", "gateway", "gateway_account", "payment_method",
	"payment_submethod", "currency_code", "amount", "user_ip", "order_id",
}

// DonationOptions controls how a Donation is normalized.
type DonationOptions struct {
	Gateway string
	// ExternalOrderID pins order_id and i_order_id to a caller-supplied value.
	ExternalOrderID string
	// OrderIDs generates fresh order ids. Defaults to a time+random id.
	OrderIDs func() string
}

// Donation is the normalized donor input of one request. Values are stored as
// given and HTML-escaped on every read.
type Donation struct {
	fields          map[string]string
	gateway         string
	externalOrderID string
	newOrderID      func() string
	orderID         string
}

func NewDonation(raw map[string]string, opts DonationOptions) *Donation {
	d := &Donation{
		fields:          make(map[string]string, len(raw)+8),
		gateway:         opts.Gateway,
		externalOrderID: opts.ExternalOrderID,
		newOrderID:      opts.OrderIDs,
	}
	if d.newOrderID == nil {
		d.newOrderID = GenerateOrderID
	}
	for k, v := range raw {
		d.fields[k] = v
	}
	d.normalize()
	return d
}

// GenerateOrderID returns the microsecond part of the clock followed by four
// random digits.
func GenerateOrderID() string {
	return fmt.Sprintf("%d%d", time.Now().Nanosecond()/1000, 1000+rand.Intn(9000))
}

func (d *Donation) normalize() {
	d.normalizeAmount()
	d.normalizeAddress()
	d.normalizeOrderIDs()
	if d.gateway != "" {
		d.fields["gateway"] = d.gateway
	}
	d.normalizeOptOuts()
}

func (d *Donation) normalizeAmount() {
	amount := d.fields["amount"]
	if d.IsSomething("amount") && amountPattern.MatchString(amount) {
		d.fields["amount"] = formatAmount(amount)
		return
	}
	other := d.fields["amountOther"]
	switch {
	case d.IsSomething("amountOther") && amountPattern.MatchString(other):
		d.fields["amount"] = formatAmount(other)
	case amount == "-1":
		d.fields["amount"] = other
	default:
		d.fields["amount"] = "0.00"
	}
}

func formatAmount(v string) string {
	dec, err := decimal.NewFromString(strings.TrimSuffix(v, "."))
	if err != nil {
		return "0.00"
	}
	return dec.StringFixed(2)
}

func (d *Donation) normalizeAddress() {
	for _, pair := range addressFallbacks {
		if !d.IsSomething(pair[0]) && d.IsSomething(pair[1]) {
			d.fields[pair[0]] = d.fields[pair[1]]
		}
	}
}

func (d *Donation) normalizeOrderIDs() {
	if d.externalOrderID != "" {
		d.fields["order_id"] = d.externalOrderID
		d.fields["i_order_id"] = d.externalOrderID
		return
	}
	if d.orderID == "" {
		d.orderID = d.newOrderID()
	}
	d.fields["order_id"] = d.orderID
	if !d.IsSomething("i_order_id") {
		d.fields["i_order_id"] = d.orderID
	}
}

// Forms collect opt-ins; tracking stores opt-outs.
func (d *Donation) normalizeOptOuts() {
	d.fields["optout"] = "1"
	if d.fields["email-opt"] == "1" {
		d.fields["optout"] = "0"
	}
	d.fields["anonymous"] = "1"
	if d.fields["comment-option"] == "1" {
		d.fields["anonymous"] = "0"
	}
}

// AddData merges fields and normalizes the record again.
func (d *Donation) AddData(data map[string]string) {
	if len(data) == 0 {
		return
	}
	for k, v := range data {
		d.fields[k] = v
	}
	d.normalize()
}

// Regenerate replaces a generated identifier. It reports false for fields
// that are not generated.
func (d *Donation) Regenerate(field string) bool {
	switch field {
	case "order_id":
		d.externalOrderID = ""
		d.orderID = d.newOrderID()
		d.fields["order_id"] = d.orderID
	case "i_order_id":
		d.fields["i_order_id"] = d.newOrderID()
	default:
		return false
	}
	return true
}

func (d *Donation) IncrementNumAttempt() {
	n, err := strconv.Atoi(d.fields["numAttempt"])
	if err != nil {
		n = 0
	}
	d.fields["numAttempt"] = strconv.Itoa(n + 1)
}

func (d *Donation) NumAttempt() int {
	n, _ := strconv.Atoi(d.fields["numAttempt"])
	return n
}

// IsSomething reports whether the field holds a non-empty value.
func (d *Donation) IsSomething(key string) bool {
	return d.fields[key] != ""
}

// Value returns the escaped value of a field, "" when absent.
func (d *Donation) Value(key string) string {
	v, ok := d.fields[key]
	if !ok {
		return ""
	}
	return EscapeHTML(v)
}

// Escaped returns the escaped view of every field.
func (d *Donation) Escaped() map[string]string {
	out := make(map[string]string, len(d.fields))
	for k, v := range d.fields {
		out[k] = EscapeHTML(v)
	}
	return out
}

func (d *Donation) DonorSnapshot() map[string]string {
	return d.pick(donorSessionFields)
}

// NotificationFields is the donor whitelist carried by queue messages.
func (d *Donation) NotificationFields() map[string]string {
	return d.pick(notificationFields)
}

// TrackingData returns the contribution tracking columns. Empty values are
// left out.
func (d *Donation) TrackingData(now time.Time) map[string]string {
	out := d.pick(trackingFields)
	out["ts"] = now.UTC().Format("20060102150405")
	return out
}

func (d *Donation) pick(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if d.IsSomething(k) {
			out[k] = d.Value(k)
		}
	}
	return out
}

// UtmSourceIsCCLanding reports whether the landing part of utm_source names a
// single-step card form (cc<N>).
func (d *Donation) UtmSourceIsCCLanding() bool {
	parts := strings.Split(d.fields["utm_source"], ".")
	return len(parts) > 1 && utmCCSourcePart.MatchString(parts[1])
}

// NormalizeUtmSource rewrites utm_source to banner.landing.cc form. A
// sourceID marks the single-step card form cc<sourceID> as the landing page.
func NormalizeUtmSource(source, sourceID string) string {
	if sourceID == "0" {
		sourceID = ""
	}
	correct := "cc"
	if sourceID != "" {
		correct = "cc" + sourceID + ".cc"
	}
	if strings.HasSuffix(source, correct) {
		return source
	}

	parts := strings.Split(source, ".")
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	if sourceID != "" {
		parts[1] = "cc" + sourceID
	}
	parts[2] = "cc"
	return strings.Join(parts, ".")
}

// EscapeHTML escapes &, ", < and > leaving existing entities untouched.
func EscapeHTML(v string) string {
	if !strings.ContainsAny(v, `&"<>`) {
		return v
	}
	var b strings.Builder
	b.Grow(len(v) + 16)
	for i := 0; i < len(v); i++ {
		switch c := v[i]; c {
		case '&':
			if entityPattern.MatchString(v[i:]) {
				b.WriteByte(c)
			} else {
				b.WriteString("&amp;")
			}
		case '"':
			b.WriteString("&quot;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
