package allergen

import "strings"

// Summary is the per-dish allergen rollup. Codes holds both the
// namespaced and bare form of every canonical and raw code so lookups
// work from either convention.
type Summary struct {
	Allergens   []Canonical
	Codes       map[string]bool
	FamilyCodes map[string]bool
	Markers     map[string]bool
}

// Summarize builds the per-dish allergen summary from an ingredient
// list. Pure; nil input yields an empty summary.
func Summarize(ingredients []Ingredient) Summary {
	s := Summary{
		Allergens:   CanonicalAllergens(ingredients),
		Codes:       make(map[string]bool),
		FamilyCodes: make(map[string]bool),
		Markers:     make(map[string]bool),
	}

	addCode := func(raw string) {
		code := NormalizeCode(raw)
		if code == "" {
			return
		}
		s.Codes[code] = true
		s.Codes[BareCode(code)] = true
	}

	for _, a := range s.Allergens {
		addCode(a.Code)
		if a.FamilyCode != "" {
			s.FamilyCodes[a.FamilyCode] = true
		}
	}

	for _, ing := range ingredients {
		for _, tag := range ing.Tags {
			addCode(tag.Code)
			addCode(tag.CanonicalCode)
			if fc := strings.ToLower(strings.TrimSpace(tag.FamilyCode)); fc != "" {
				s.FamilyCodes[fc] = true
			}
			if mt := strings.ToLower(strings.TrimSpace(tag.MarkerType)); mt != "" {
				s.Markers[mt] = true
			}
		}
	}

	return s
}

// Markers that disqualify both vegan and vegetarian regardless of codes.
var animalMarkers = map[string]bool{
	"animal":         true,
	"animal_product": true,
	"meat":           true,
}

// Bare codes that disqualify a vegetarian classification.
var nonVegetarianCodes = []string{
	"meat", "gelatin", "gelatine", "lard",
	"animal-fat", "animal_fat", "animal-derivative", "animal_derivative",
	"fish", "crustaceans", "molluscs",
}

// Bare codes that disqualify a vegan classification (superset of the
// vegetarian set: dairy, eggs and honey additionally disqualify).
var nonVeganCodes = append([]string{
	"milk", "dairy", "egg", "eggs", "honey",
}, nonVegetarianCodes...)

// Families that disqualify both classifications.
var nonVegetarianFamilies = []string{"fish", "crustaceans", "molluscs"}

// VeganFriendly reports whether a dish with the given summary can be
// marked vegan. Conservative: any known-exclusionary marker, code or
// family disqualifies; absence of data does not.
func VeganFriendly(s Summary) bool {
	return friendly(s, nonVeganCodes)
}

// VegetarianFriendly reports whether a dish with the given summary can
// be marked vegetarian. Tolerates dairy, eggs and honey.
func VegetarianFriendly(s Summary) bool {
	return friendly(s, nonVegetarianCodes)
}

func friendly(s Summary, excluded []string) bool {
	for marker := range s.Markers {
		if animalMarkers[marker] {
			return false
		}
	}
	for _, code := range excluded {
		if s.Codes[code] {
			return false
		}
	}
	for _, fam := range nonVegetarianFamilies {
		if s.FamilyCodes[fam] {
			return false
		}
	}
	return true
}
