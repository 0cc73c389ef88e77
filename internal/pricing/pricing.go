package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Currency is the operator's display currency.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
)

// Symbol returns the currency symbol. Unknown values fall back to EUR.
func (c Currency) Symbol() string {
	if c == USD {
		return "$"
	}
	return "€"
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	return c == EUR || c == USD
}

// Format selects one of the 8 fixed price rendering variants.
type Format string

const (
	FormatValuta          Format = "valuta"
	FormatNoValuta        Format = "no_valuta"
	FormatCommaValuta     Format = "comma_valuta"
	FormatCommaNoValuta   Format = "comma_no_valuta"
	FormatSimple          Format = "simple"
	FormatMinimalist      Format = "minimalist"
	FormatSimpleComma     Format = "simple_comma"
	FormatMinimalistComma Format = "minimalist_comma"
)

type variant struct {
	symbol bool
	comma  bool
	trim   bool
}

// formatTable is the closed enumeration of rendering variants.
var formatTable = map[Format]variant{
	FormatValuta:          {symbol: true},
	FormatNoValuta:        {},
	FormatCommaValuta:     {symbol: true, comma: true},
	FormatCommaNoValuta:   {comma: true},
	FormatSimple:          {},
	FormatMinimalist:      {trim: true},
	FormatSimpleComma:     {comma: true},
	FormatMinimalistComma: {comma: true, trim: true},
}

// Valid reports whether f is one of the 8 variants.
func (f Format) Valid() bool {
	_, ok := formatTable[f]
	return ok
}

// Options carries the operator's display settings into the formatter.
type Options struct {
	Currency Currency
	Format   Format
}

// ParsePrice leniently parses user-entered price text. It tolerates
// mixed locale input like "€7,50". The second return is false when the
// input holds no parsable number.
func ParsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), ",", ".")
	if cleaned == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// FormatValue renders a numeric price according to the options.
// Rounding is half away from zero at the cent boundary.
func FormatValue(v float64, opts Options) string {
	f, ok := formatTable[opts.Format]
	if !ok {
		f = formatTable[FormatSimple]
	}

	neg := v < 0
	rounded := math.Round(math.Abs(v)*100) / 100

	var s string
	if f.trim {
		// Round to 2 decimals, then re-parse to drop insignificant zeros.
		fixed := strconv.FormatFloat(rounded, 'f', 2, 64)
		trimmed, _ := strconv.ParseFloat(fixed, 64)
		s = strconv.FormatFloat(trimmed, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(rounded, 'f', 2, 64)
	}

	if f.comma {
		s = strings.Replace(s, ".", ",", 1)
	}
	if f.symbol {
		s = opts.Currency.Symbol() + s
	}
	if neg {
		s = "-" + s
	}
	return s
}

// FormatPrice renders a stored price string for display. Empty input
// yields ""; unparsable input passes through trimmed rather than
// erroring, so odd operator entries stay visible as typed.
func FormatPrice(raw string, opts Options) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	v, ok := ParsePrice(trimmed)
	if !ok {
		return trimmed
	}
	return FormatValue(v, opts)
}
