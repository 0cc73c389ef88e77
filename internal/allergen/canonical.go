package allergen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tag is a raw allergen annotation carried by an ingredient line.
// Only Code is required; everything else is best-effort data from
// the taxonomy import or the operator.
type Tag struct {
	Code          string `json:"code"`
	Name          string `json:"name,omitempty"`
	CanonicalCode string `json:"canonical_code,omitempty"`
	CanonicalName string `json:"canonical_name,omitempty"`
	FamilyCode    string `json:"family_code,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	MarkerType    string `json:"marker_type,omitempty"`
}

// Ingredient is the minimal ingredient shape the engine needs.
type Ingredient struct {
	Name string
	Tags []Tag
}

// Canonical is a normalized, deduplicated allergen entry.
// Code is always lower-case and namespaced (default prefix "en:").
type Canonical struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	FamilyCode string `json:"family_code,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
}

// NormalizeCode lower-cases and trims a raw allergen code and prefixes
// it with "en:" when it carries no namespace. Empty input stays empty.
func NormalizeCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if strings.Contains(code, ":") {
		return code
	}
	return "en:" + code
}

// BareCode strips the namespace prefix from a normalized code.
func BareCode(code string) string {
	if i := strings.Index(code, ":"); i >= 0 {
		return code[i+1:]
	}
	return code
}

// fallbackName derives a title-cased display name from the code suffix,
// e.g. "en:brazil-nuts" -> "Brazil Nuts".
func fallbackName(code string) string {
	bare := BareCode(code)
	parts := strings.FieldsFunc(bare, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '_' || r == '-'
	})
	for i, p := range parts {
		// First rune, not first byte: codes can carry non-ASCII
		// suffixes like "œufs".
		r, size := utf8.DecodeRuneInString(p)
		parts[i] = string(unicode.ToUpper(r)) + p[size:]
	}
	return strings.Join(parts, " ")
}

// CanonicalAllergens normalizes the raw allergen tags of an ingredient
// list into a deduplicated set of canonical allergens, in first-seen
// order. The first occurrence of a code wins for name and family.
func CanonicalAllergens(ingredients []Ingredient) []Canonical {
	seen := make(map[string]bool)
	out := []Canonical{}

	for _, ing := range ingredients {
		for _, tag := range ing.Tags {
			src := tag.CanonicalCode
			if strings.TrimSpace(src) == "" {
				src = tag.Code
			}
			code := NormalizeCode(src)
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true

			familyCode := strings.ToLower(strings.TrimSpace(tag.FamilyCode))
			familyName := strings.TrimSpace(tag.FamilyName)
			if familyCode == "" {
				if fam, ok := LookupFamily(BareCode(code)); ok {
					familyCode = fam.Code
					familyName = fam.Name
				}
			} else if familyName == "" {
				if fam, ok := familyByCode[familyCode]; ok {
					familyName = fam.Name
				}
			}

			name := strings.TrimSpace(tag.CanonicalName)
			if name == "" {
				name = strings.TrimSpace(tag.Name)
			}
			if name == "" {
				name = fallbackName(code)
			}

			out = append(out, Canonical{
				Code:       code,
				Name:       name,
				FamilyCode: familyCode,
				FamilyName: familyName,
			})
		}
	}

	return out
}
