package request

import (
	"errors"
	"strings"
)

var (
	ErrInvalidExpiration = errors.New("invalid card expiration")
)

// DonationRequest is the donation form as posted by the landing pages.
//
// Field names follow the form, not the gateway: ToFields maps them onto the
// normalized donation fields the engine stages and serializes.
type DonationRequest struct {
	Amount           string `json:"amount" form:"amount"`
	AmountOther      string `json:"amountOther" form:"amountOther"`
	CurrencyCode     string `json:"currency_code" form:"currency_code"`
	PaymentMethod    string `json:"payment_method" form:"payment_method"`
	PaymentSubmethod string `json:"payment_submethod" form:"payment_submethod"`
	IssuerID         string `json:"issuer_id" form:"issuer_id"`

	Email    string `json:"emailAdd" form:"emailAdd"`
	FName    string `json:"fname" form:"fname"`
	LName    string `json:"lname" form:"lname"`
	Street   string `json:"street" form:"street"`
	City     string `json:"city" form:"city"`
	State    string `json:"state" form:"state"`
	Zip      string `json:"zip" form:"zip"`
	Country  string `json:"country" form:"country"`
	Language string `json:"uselang" form:"uselang"`

	CardNum  string `json:"card_num" form:"card_num"`
	CardType string `json:"card_type" form:"card_type"`
	CVV      string `json:"cvv" form:"cvv"`
	Month    string `json:"mos" form:"mos"`
	Year     string `json:"year" form:"year"`

	OrderID                string `json:"order_id" form:"order_id"`
	ContributionTrackingID string `json:"contribution_tracking_id" form:"contribution_tracking_id"`
	Recurring              string `json:"recurring" form:"recurring"`
	Comment                string `json:"comment" form:"comment"`
	Referrer               string `json:"referrer" form:"referrer"`
	UtmSource              string `json:"utm_source" form:"utm_source"`
	UtmSourceID            string `json:"utm_source_id" form:"utm_source_id"`
	UtmMedium              string `json:"utm_medium" form:"utm_medium"`
	UtmCampaign            string `json:"utm_campaign" form:"utm_campaign"`
	Optout                 string `json:"email-opt" form:"email-opt"`
	Anonymous              string `json:"comment-option" form:"comment-option"`
	Token                  string `json:"token" form:"token"`
	Form                   string `json:"form" form:"form"`
	NoCache                string `json:"_nocache_" form:"_nocache_"`
}

// ResolveExpiration joins mos and year as MMYY. Both empty is no expiration.
func (r DonationRequest) ResolveExpiration() (string, error) {
	mos := strings.TrimSpace(r.Month)
	year := strings.TrimSpace(r.Year)
	if mos == "" && year == "" {
		return "", nil
	}
	if len(mos) == 1 {
		mos = "0" + mos
	}
	if len(year) == 4 {
		year = year[2:]
	}
	if len(mos) != 2 || len(year) != 2 || !isDigits(mos) || !isDigits(year) || mos < "01" || mos > "12" {
		return "", ErrInvalidExpiration
	}
	return mos + year, nil
}

// ToFields returns the normalized donation fields. Blank values are kept so
// the engine can fill them from the session.
func (r DonationRequest) ToFields(userIP string) (map[string]string, error) {
	expiration, err := r.ResolveExpiration()
	if err != nil {
		return nil, err
	}
	fields := map[string]string{
		"amount":                   strings.TrimSpace(r.Amount),
		"amountOther":              strings.TrimSpace(r.AmountOther),
		"currency_code":            strings.ToUpper(strings.TrimSpace(r.CurrencyCode)),
		"payment_method":           strings.TrimSpace(r.PaymentMethod),
		"payment_submethod":        strings.TrimSpace(r.PaymentSubmethod),
		"issuer_id":                strings.TrimSpace(r.IssuerID),
		"email":                    strings.TrimSpace(r.Email),
		"fname":                    strings.TrimSpace(r.FName),
		"lname":                    strings.TrimSpace(r.LName),
		"street":                   strings.TrimSpace(r.Street),
		"city":                     strings.TrimSpace(r.City),
		"state":                    strings.TrimSpace(r.State),
		"zip":                      strings.TrimSpace(r.Zip),
		"country":                  strings.ToUpper(strings.TrimSpace(r.Country)),
		"language":                 strings.ToLower(strings.TrimSpace(r.Language)),
		"card_num":                 strings.Join(strings.Fields(r.CardNum), ""),
		"card_type":                strings.TrimSpace(r.CardType),
		"cvv":                      strings.TrimSpace(r.CVV),
		"expiration":               expiration,
		"order_id":                 strings.TrimSpace(r.OrderID),
		"contribution_tracking_id": strings.TrimSpace(r.ContributionTrackingID),
		"recurring":                strings.TrimSpace(r.Recurring),
		"comment":                  strings.TrimSpace(r.Comment),
		"referrer":                 strings.TrimSpace(r.Referrer),
		"utm_source":               strings.TrimSpace(r.UtmSource),
		"utm_source_id":            strings.TrimSpace(r.UtmSourceID),
		"utm_medium":               strings.TrimSpace(r.UtmMedium),
		"utm_campaign":             strings.TrimSpace(r.UtmCampaign),
		"email-opt":                strings.TrimSpace(r.Optout),
		"comment-option":           strings.TrimSpace(r.Anonymous),
		"token":                    strings.TrimSpace(r.Token),
		"_nocache_":                strings.TrimSpace(r.NoCache),
		"user_ip":                  strings.TrimSpace(userIP),
	}
	return fields, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
