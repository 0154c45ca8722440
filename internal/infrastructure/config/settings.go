package config

import (
	"net/url"
	"strings"
	"time"
)

// GatewaySettings is everything a gateway reads from configuration.
type GatewaySettings struct {
	URL               string
	Timeout           time.Duration
	RetrySeconds      time.Duration
	PollInterval      time.Duration
	UseHTTPProxy      bool
	HTTPProxy         string
	ClientTimeoutHint bool
	EnableQueue       bool
	Salt              string
	ReturnURL         string
	AccountName       string
	// AccountInfo keys are lowercase.
	AccountInfo     map[string]string
	RecurringLength string
	ThankYouPage    string
	FailPage        string

	IPVelocity      VelocitySettings
	SessionVelocity VelocitySettings
	// RiskScoreRanges maps a validation action name to its score interval.
	RiskScoreRanges map[string][2]int
}

// VelocitySettings configures one velocity filter.
type VelocitySettings struct {
	Enabled   bool
	Threshold int
	FailScore int
	Window    time.Duration
}

// GatewaySettings resolves the settings of the gateway with the given
// global prefix.
func (r *Resolver) GatewaySettings(prefix string) GatewaySettings {
	return GatewaySettings{
		URL:               r.gatewayURL(prefix),
		Timeout:           r.Seconds(prefix, "Timeout", 30*time.Second),
		RetrySeconds:      r.Seconds(prefix, "RetrySeconds", 60*time.Second),
		PollInterval:      r.Seconds(prefix, "PollSeconds", 2*time.Second),
		UseHTTPProxy:      r.Bool(prefix, "UseHTTPProxy", false),
		HTTPProxy:         r.String(prefix, "HTTPProxy", ""),
		ClientTimeoutHint: r.Bool(prefix, "ClientTimeoutHint", false),
		EnableQueue:       r.Bool(prefix, "EnableQueue", false),
		Salt:              r.String(prefix, "Salt", ""),
		ReturnURL:         r.String(prefix, "ReturnURL", ""),
		AccountName:       r.String(prefix, "AccountName", ""),
		AccountInfo:       r.StringMap(prefix, "AccountInfo"),
		RecurringLength:   r.String(prefix, "RecurringLength", ""),
		ThankYouPage:      r.String(prefix, "ThankYouPage", ""),
		FailPage:          r.String(prefix, "FailPage", ""),
		IPVelocity: VelocitySettings{
			Enabled:   r.Bool(prefix, "EnableIPVelocityFilter", false),
			Threshold: r.Int(prefix, "IPVelocityThreshhold", 3),
			FailScore: r.Int(prefix, "IPVelocityFailScore", 100),
			Window:    r.Seconds(prefix, "IPVelocityTimeout", 5*time.Minute),
		},
		SessionVelocity: VelocitySettings{
			Enabled:   r.Bool(prefix, "EnableSessionVelocityFilter", false),
			Threshold: r.Int(prefix, "SessionVelocityThreshold", 3),
			FailScore: r.Int(prefix, "SessionVelocityFailScore", 100),
			Window:    r.Seconds(prefix, "SessionVelocityWindow", 5*time.Minute),
		},
		RiskScoreRanges: r.IntRanges(prefix, "CustomFiltersRiskScore"),
	}
}

// gatewayURL prefers TestingURL while the gateway runs in test mode.
func (r *Resolver) gatewayURL(prefix string) string {
	if r.Bool(prefix, "Test", false) {
		if u := r.String(prefix, "TestingURL", ""); u != "" {
			return u
		}
	}
	return r.String(prefix, "URL", "")
}

// PageURL appends the language to a thank-you or fail page.
func PageURL(page, language string) string {
	if page == "" || language == "" {
		return page
	}
	sep := "?"
	if strings.Contains(page, "?") {
		sep = "&"
	}
	return page + sep + "uselang=" + url.QueryEscape(language)
}
