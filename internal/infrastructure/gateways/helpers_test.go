package gateways

import (
	"context"
	"strconv"
	"testing"
	"time"

	"donation_interface/internal/adapter/persistence/repository"
	"donation_interface/internal/domain/entities"
	"donation_interface/internal/infrastructure/config"
	"donation_interface/internal/usecase"

	"github.com/stretchr/testify/require"
)

type staticSettings map[string]config.GatewaySettings

func (s staticSettings) GatewaySettings(prefix string) config.GatewaySettings {
	return s[prefix]
}

func testSettings() staticSettings {
	return staticSettings{
		"wgGlobalCollectGateway": {
			Salt:        "gc-salt",
			ReturnURL:   "https://donate.example.org/return",
			AccountInfo: map[string]string{"merchantid": "1234", "ipaddress": "10.1.1.1"},
			EnableQueue: true,
		},
		"wgPayflowProGateway": {
			Salt:         "pf-salt",
			AccountInfo:  map[string]string{"user": "alice", "vendor": "wiki", "partner": "PayPal", "pwd": "secret"},
			IPVelocity:   config.VelocitySettings{Enabled: true, Threshold: 3, FailScore: 100, Window: time.Minute},
			ThankYouPage: "https://donate.example.org/thank-you",
			FailPage:     "https://donate.example.org/fail?src=pfp",
		},
		"wgPaypalGateway": {
			ReturnURL:       "https://donate.example.org/thanks",
			AccountInfo:     map[string]string{"accountemail": "donate@example.org"},
			RecurringLength: "12",
		},
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(testSettings())
	require.NoError(t, err)
	return r
}

func definition(t *testing.T, id string) *usecase.GatewayDefinition {
	t.Helper()
	g, err := testRegistry(t).Get(id)
	require.NoError(t, err)
	return g.Definition
}

func sequentialIDs() func() string {
	n := 1000
	return func() string {
		n++
		return strconv.Itoa(n)
	}
}

func newDonation(gateway string, fields map[string]string) *entities.Donation {
	return entities.NewDonation(fields, entities.DonationOptions{Gateway: gateway, OrderIDs: sequentialIDs()})
}

// signedAdapter returns an adapter whose donation carries a valid edit token.
func signedAdapter(t *testing.T, def *usecase.GatewayDefinition, salt string, fields map[string]string, opts usecase.AdapterOptions) *usecase.GatewayAdapter {
	t.Helper()
	ctx := context.Background()
	retry := usecase.NewRetryContext(repository.NewMemorySessionStore(), "session-1")
	fields["token"] = retry.EditToken(ctx, salt)
	opts.Retry = retry

	a := usecase.NewGatewayAdapter(def, newDonation(def.Identifier(), fields), opts)
	require.True(t, a.CheckTokens(ctx))
	return a
}
