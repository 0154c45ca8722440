package entities

import "time"

// ContributionTracking is the analytics row kept for every donation attempt.
//
// Storage model (DynamoDB):
//   - PK: id
type ContributionTracking struct {
	ID           string    `json:"id"`
	Note         string    `json:"note,omitempty"`
	Referrer     string    `json:"referrer,omitempty"`
	Anonymous    bool      `json:"anonymous"`
	UtmSource    string    `json:"utm_source,omitempty"`
	UtmMedium    string    `json:"utm_medium,omitempty"`
	UtmCampaign  string    `json:"utm_campaign,omitempty"`
	Optout       bool      `json:"optout"`
	Language     string    `json:"language,omitempty"`
	Gateway      string    `json:"gateway,omitempty"`
	Amount       string    `json:"amount,omitempty"`
	CurrencyCode string    `json:"currency_code,omitempty"`
	TS           string    `json:"ts"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ContributionTrackingFromDonation copies the tracked columns of a donation.
func ContributionTrackingFromDonation(d *Donation, now time.Time) ContributionTracking {
	data := d.TrackingData(now)
	return ContributionTracking{
		ID:           d.Value("contribution_tracking_id"),
		Note:         data["note"],
		Referrer:     data["referrer"],
		Anonymous:    data["anonymous"] == "1",
		UtmSource:    data["utm_source"],
		UtmMedium:    data["utm_medium"],
		UtmCampaign:  data["utm_campaign"],
		Optout:       data["optout"] == "1",
		Language:     data["language"],
		Gateway:      d.Value("gateway"),
		Amount:       d.Value("amount"),
		CurrencyCode: d.Value("currency_code"),
		TS:           data["ts"],
	}
}
