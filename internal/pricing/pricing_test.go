package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"7.50", 7.5, true},
		{"€7,50", 7.5, true},
		{"$ 12", 12, true},
		{"  8,25 EUR ", 8.25, true},
		{"-3.10", -3.1, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"€", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePrice(tt.in)
		assert.Equalf(t, tt.ok, ok, "ParsePrice(%q) ok", tt.in)
		if tt.ok {
			assert.InDeltaf(t, tt.want, got, 1e-9, "ParsePrice(%q)", tt.in)
		}
	}
}

func TestFormatValue_AllVariants(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatValuta, "€7.50"},
		{FormatNoValuta, "7.50"},
		{FormatCommaValuta, "€7,50"},
		{FormatCommaNoValuta, "7,50"},
		{FormatSimple, "7.50"},
		{FormatMinimalist, "7.5"},
		{FormatSimpleComma, "7,50"},
		{FormatMinimalistComma, "7,5"},
	}

	for _, tt := range tests {
		got := FormatValue(7.5, Options{Currency: EUR, Format: tt.format})
		assert.Equalf(t, tt.want, got, "format %s", tt.format)
	}
}

func TestFormatValue_USDSymbol(t *testing.T) {
	assert.Equal(t, "$7.50", FormatValue(7.5, Options{Currency: USD, Format: FormatValuta}))
}

func TestFormatValue_TrimKeepsSignificantCents(t *testing.T) {
	opts := Options{Currency: EUR, Format: FormatMinimalist}

	assert.Equal(t, "7.25", FormatValue(7.25, opts))
	assert.Equal(t, "7", FormatValue(7.00, opts))
	assert.Equal(t, "7.1", FormatValue(7.10, opts))
}

func TestFormatValue_RoundsHalfAwayFromZero(t *testing.T) {
	opts := Options{Currency: EUR, Format: FormatSimple}

	// 2.375 and 2.125 are exact in binary, so *100 lands exactly on .5.
	assert.Equal(t, "2.38", FormatValue(2.375, opts))
	assert.Equal(t, "2.13", FormatValue(2.125, opts))
	assert.Equal(t, "-2.38", FormatValue(-2.375, opts))
}

func TestFormatValue_NegativeSignBeforeSymbol(t *testing.T) {
	got := FormatValue(-7.5, Options{Currency: EUR, Format: FormatCommaValuta})
	assert.Equal(t, "-€7,50", got)
}

func TestFormatValue_UnknownFormatFallsBackToSimple(t *testing.T) {
	assert.Equal(t, "7.50", FormatValue(7.5, Options{Currency: EUR, Format: Format("bogus")}))
}

func TestFormatPrice(t *testing.T) {
	opts := Options{Currency: EUR, Format: FormatValuta}

	assert.Equal(t, "€7.50", FormatPrice("7.5", opts))
	assert.Equal(t, "€7.50", FormatPrice("€7,50", opts))
	assert.Equal(t, "", FormatPrice("", opts))
	assert.Equal(t, "", FormatPrice("   ", opts))
	// Unparsable entries pass through trimmed.
	assert.Equal(t, "market price", FormatPrice(" market price ", opts))
}

func TestFormatAndCurrencyValidation(t *testing.T) {
	assert.True(t, FormatMinimalistComma.Valid())
	assert.False(t, Format("fancy").Valid())
	assert.True(t, EUR.Valid())
	assert.False(t, Currency("GBP").Valid())
}
