package gateways

import (
	"context"

	"donation_interface/internal/infrastructure/config"
	"donation_interface/internal/usecase"
)

var paypalCountries = map[string]bool{
	"AU": true, "AT": true, "BE": true, "BR": true, "CA": true, "CH": true,
	"CN": true, "DE": true, "ES": true, "GB": true, "FR": true, "IT": true,
	"NL": true, "PL": true, "PT": true, "RU": true, "US": true,
}

var paypalFullLocales = map[string]bool{
	"da_DK": true, "he_IL": true, "id_ID": true, "jp_JP": true, "no_NO": true,
	"pt_BR": true, "ru_RU": true, "sv_SE": true, "th_TH": true, "tr_TR": true,
	"zh_CN": true, "zh_HK": true, "zh_TW": true,
}

func paypalCode(config.GatewaySettings) gatewayCode {
	setMethod := func(_ context.Context, a *usecase.GatewayAdapter) error {
		if !a.Donation().IsSomething("payment_method") {
			a.AddData(map[string]string{"payment_method": "paypal"})
		}
		return nil
	}
	return gatewayCode{
		staging: map[string]usecase.StagingFunc{
			"recurring_length": stageRecurringLength,
			"locale":           stageLocale,
		},
		pre: map[string]usecase.TransactionHook{
			"Donate":          setMethod,
			"DonateXclick":    setMethod,
			"DonateRecurring": setMethod,
		},
	}
}

func stageRecurringLength(s *usecase.StagedData, _ usecase.StagingMode) {
	if v, ok := s.Get("recurring_length"); ok && v == "" {
		s.Unset("recurring_length")
	}
}

// The full language_COUNTRY locale wins over the bare country.
func stageLocale(s *usecase.StagedData, _ usecase.StagingMode) {
	country := s.Value("country")
	if paypalCountries[country] {
		s.Set("locale", country)
	}
	if locale := s.Value("language") + "_" + country; paypalFullLocales[locale] {
		s.Set("locale", locale)
	}
}
