package allergen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_CollectsBothCodeForms(t *testing.T) {
	s := Summarize([]Ingredient{
		{Tags: []Tag{{Code: "en:wheat"}}},
		{Tags: []Tag{{Code: "honey"}}},
	})

	assert.True(t, s.Codes["en:wheat"])
	assert.True(t, s.Codes["wheat"])
	assert.True(t, s.Codes["en:honey"])
	assert.True(t, s.Codes["honey"])
	assert.True(t, s.FamilyCodes["cereals_gluten"])
}

func TestSummarize_CollectsMarkers(t *testing.T) {
	s := Summarize([]Ingredient{
		{Tags: []Tag{{Code: "en:gelatin", MarkerType: " Animal "}}},
	})

	assert.True(t, s.Markers["animal"])
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := Summarize(nil)

	assert.Empty(t, s.Allergens)
	assert.Empty(t, s.Codes)
	assert.Empty(t, s.FamilyCodes)
	assert.Empty(t, s.Markers)
}

func TestVeganFriendly_HoneyOnly(t *testing.T) {
	s := Summarize([]Ingredient{
		{Tags: []Tag{{Code: "en:honey"}}},
	})

	assert.False(t, VeganFriendly(s))
	assert.True(t, VegetarianFriendly(s))
}

func TestVeganFriendly_MeatOnly(t *testing.T) {
	s := Summarize([]Ingredient{
		{Tags: []Tag{{Code: "en:meat"}}},
	})

	assert.False(t, VeganFriendly(s))
	assert.False(t, VegetarianFriendly(s))
}

func TestFriendly_DairyAndEggsAreVegetarian(t *testing.T) {
	s := Summarize([]Ingredient{
		{Tags: []Tag{{Code: "en:milk"}, {Code: "en:eggs"}}},
	})

	assert.False(t, VeganFriendly(s))
	assert.True(t, VegetarianFriendly(s))
}

func TestFriendly_AnimalMarkerDisqualifiesBoth(t *testing.T) {
	s := Summarize([]Ingredient{
		{Tags: []Tag{{Code: "en:glaze", MarkerType: "animal_product"}}},
	})

	assert.False(t, VeganFriendly(s))
	assert.False(t, VegetarianFriendly(s))
}

func TestFriendly_FishFamilyDisqualifiesBoth(t *testing.T) {
	// Salmon has no explicit family tag; it resolves to the fish
	// family through the static table.
	s := Summarize([]Ingredient{
		{Tags: []Tag{{Code: "en:salmon"}}},
	})

	assert.False(t, VeganFriendly(s))
	assert.False(t, VegetarianFriendly(s))
}

func TestFriendly_EmptyDataIsFriendly(t *testing.T) {
	s := Summarize([]Ingredient{{Name: "water"}})

	assert.True(t, VeganFriendly(s))
	assert.True(t, VegetarianFriendly(s))
}

func TestFriendly_GelatinDisqualifiesBoth(t *testing.T) {
	s := Summarize([]Ingredient{
		{Tags: []Tag{{Code: "en:gelatin"}}},
	})

	assert.False(t, VeganFriendly(s))
	assert.False(t, VegetarianFriendly(s))
}
