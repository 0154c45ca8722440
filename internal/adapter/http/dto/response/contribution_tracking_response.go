package response

import (
	"donation_interface/internal/domain/entities"
	"time"
)

type ContributionTrackingResponse struct {
	ID           string    `json:"id"`
	Gateway      string    `json:"gateway"`
	Amount       string    `json:"amount"`
	CurrencyCode string    `json:"currency_code"`
	Language     string    `json:"language,omitempty"`
	Referrer     string    `json:"referrer,omitempty"`
	UtmSource    string    `json:"utm_source,omitempty"`
	UtmMedium    string    `json:"utm_medium,omitempty"`
	UtmCampaign  string    `json:"utm_campaign,omitempty"`
	Anonymous    bool      `json:"anonymous"`
	Optout       bool      `json:"optout"`
	TS           string    `json:"ts"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromContributionTracking(t entities.ContributionTracking) ContributionTrackingResponse {
	return ContributionTrackingResponse{
		ID:           t.ID,
		Gateway:      t.Gateway,
		Amount:       t.Amount,
		CurrencyCode: t.CurrencyCode,
		Language:     t.Language,
		Referrer:     t.Referrer,
		UtmSource:    t.UtmSource,
		UtmMedium:    t.UtmMedium,
		UtmCampaign:  t.UtmCampaign,
		Anonymous:    t.Anonymous,
		Optout:       t.Optout,
		TS:           t.TS,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
