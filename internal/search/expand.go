package search

import (
	"strings"
	"unicode"
)

// Expansion is the result of expanding a raw menu-search query.
// Phrase is the trimmed, lower-cased query ("" when the query was
// empty); Terms is the deduplicated set of stemmed tokens plus their
// synonyms, in deterministic first-seen order.
type Expansion struct {
	Phrase string   `json:"phrase"`
	Terms  []string `json:"terms"`
}

// Expand tokenizes a free-text query and expands each token through
// the static synonym table, so "eggplants" also matches dishes listing
// "aubergine". The result feeds a containment filter, not a ranked
// search.
func Expand(raw string) Expansion {
	phrase := strings.ToLower(strings.TrimSpace(raw))
	if phrase == "" {
		return Expansion{}
	}

	tokens := strings.FieldsFunc(phrase, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '-' || r == '/'
	})

	seen := make(map[string]bool)
	terms := []string{}
	add := func(term string) {
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		terms = append(terms, term)
	}

	for _, tok := range tokens {
		stemmed := stem(tok)
		add(stemmed)
		for _, syn := range synonymIndex[stemmed] {
			add(syn)
		}
	}

	return Expansion{Phrase: phrase, Terms: terms}
}

// stem applies the naive singular/plural normalizer: strip a trailing
// "es" from tokens longer than 4 runes, else a trailing "s" from
// tokens longer than 3.
func stem(token string) string {
	switch {
	case len(token) > 4 && strings.HasSuffix(token, "es"):
		return token[:len(token)-2]
	case len(token) > 3 && strings.HasSuffix(token, "s"):
		return token[:len(token)-1]
	default:
		return token
	}
}
