package settings

import "feeb/internal/pricing"

// Settings are the per-restaurant display settings: how prices are
// rendered on the public menu and which language the menu uses.
type Settings struct {
	Currency    pricing.Currency `json:"currency"`
	PriceFormat pricing.Format   `json:"price_format"`
	Language    string           `json:"language"`
}

// Defaults returns the settings a freshly onboarded restaurant gets.
func Defaults() Settings {
	return Settings{
		Currency:    pricing.EUR,
		PriceFormat: pricing.FormatSimple,
		Language:    "en",
	}
}

// Options converts the settings into formatter options.
func (s Settings) Options() pricing.Options {
	return pricing.Options{Currency: s.Currency, Format: s.PriceFormat}
}
