package allergen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalAllergens_NilInput(t *testing.T) {
	assert.Empty(t, CanonicalAllergens(nil))
}

func TestCanonicalAllergens_NormalizesAndPrefixes(t *testing.T) {
	got := CanonicalAllergens([]Ingredient{
		{Name: "flour", Tags: []Tag{{Code: "  Wheat "}}},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "en:wheat", got[0].Code)
	assert.Equal(t, "cereals_gluten", got[0].FamilyCode)
	assert.Equal(t, "Cereals containing gluten", got[0].FamilyName)
}

func TestCanonicalAllergens_KeepsExistingNamespace(t *testing.T) {
	got := CanonicalAllergens([]Ingredient{
		{Tags: []Tag{{Code: "FR:Crustacés"}}},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "fr:crustacés", got[0].Code)
}

func TestCanonicalAllergens_DeduplicatesFirstSeenWins(t *testing.T) {
	got := CanonicalAllergens([]Ingredient{
		{Tags: []Tag{{Code: "en:wheat", Name: "Wheat"}}},
		{Tags: []Tag{{Code: "wheat", Name: "Durum Wheat"}}},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Wheat", got[0].Name)
}

func TestCanonicalAllergens_NoDuplicateCodes(t *testing.T) {
	ingredients := []Ingredient{
		{Tags: []Tag{{Code: "en:milk"}, {Code: "milk"}, {Code: "eggs"}}},
		{Tags: []Tag{{Code: "MILK"}, {Code: "en:eggs"}}},
	}

	got := CanonicalAllergens(ingredients)

	codes := make(map[string]int)
	for _, a := range got {
		codes[a.Code]++
	}
	for code, n := range codes {
		assert.Equalf(t, 1, n, "code %s appears %d times", code, n)
	}
	assert.Len(t, got, 2)
}

func TestCanonicalAllergens_Idempotent(t *testing.T) {
	ingredients := []Ingredient{
		{Tags: []Tag{{Code: "en:wheat"}, {Code: "honey"}}},
		{Tags: []Tag{{Code: "en:walnuts"}}},
	}

	first := CanonicalAllergens(ingredients)
	second := CanonicalAllergens(ingredients)

	assert.Equal(t, first, second)
}

func TestCanonicalAllergens_PrefersCanonicalFields(t *testing.T) {
	got := CanonicalAllergens([]Ingredient{
		{Tags: []Tag{{
			Code:          "en:semolina",
			Name:          "Semolina",
			CanonicalCode: "en:wheat",
			CanonicalName: "Wheat",
		}}},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "en:wheat", got[0].Code)
	assert.Equal(t, "Wheat", got[0].Name)
}

func TestCanonicalAllergens_FallbackNameFromCode(t *testing.T) {
	got := CanonicalAllergens([]Ingredient{
		{Tags: []Tag{{Code: "en:brazil-nuts"}}},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Brazil Nuts", got[0].Name)
}

func TestCanonicalAllergens_FallbackNameMultibyte(t *testing.T) {
	got := CanonicalAllergens([]Ingredient{
		{Tags: []Tag{{Code: "en:œufs"}}},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Œufs", got[0].Name)
}

func TestCanonicalAllergens_SkipsEmptyCodes(t *testing.T) {
	got := CanonicalAllergens([]Ingredient{
		{Tags: []Tag{{Code: "   "}, {Code: ""}, {Code: "en:milk"}}},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "en:milk", got[0].Code)
}

func TestCanonicalAllergens_ExplicitFamilyWins(t *testing.T) {
	got := CanonicalAllergens([]Ingredient{
		{Tags: []Tag{{
			Code:       "en:wheat",
			FamilyCode: "Custom_Family",
			FamilyName: "Custom family",
		}}},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "custom_family", got[0].FamilyCode)
	assert.Equal(t, "Custom family", got[0].FamilyName)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "en:wheat", NormalizeCode(" Wheat "))
	assert.Equal(t, "de:weizen", NormalizeCode("DE:Weizen"))
	assert.Equal(t, "", NormalizeCode("  "))
}
