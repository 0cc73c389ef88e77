package recipe

import (
	"strings"
	"time"
)

// Recipe is a dish owned by a restaurant. Recipes start life either
// confirmed (created by the operator) or as unconfirmed suggestions
// imported from a menu upload. Price stays TEXT on purpose: operators
// type things like "market price" and we render, not reject.
type Recipe struct {
	ID              int       `json:"id"`
	RestaurantID    int       `json:"restaurant_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Instructions    string    `json:"instructions,omitempty"`
	MenuCategory    string    `json:"menu_category,omitempty"`
	ServingSize     string    `json:"serving_size,omitempty"`
	Price           string    `json:"price,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	SpecialNotes    string    `json:"special_notes,omitempty"`
	ProminenceScore *float64  `json:"prominence_score,omitempty"`
	Confirmed       bool      `json:"confirmed"`
	IsOnMenu        bool      `json:"is_on_menu"`
	CreatedAt       time.Time `json:"created_at"`
	Lines           []Line    `json:"ingredients"`
}

// Line is one ingredient row of a recipe. IngredientID links into the
// taxonomy when the name has been resolved; nil means unresolved.
type Line struct {
	ID           int      `json:"id"`
	RecipeID     int      `json:"recipe_id"`
	IngredientID *int     `json:"ingredient_id,omitempty"`
	Name         string   `json:"name"`
	Quantity     *float64 `json:"quantity,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Confirmed    bool     `json:"confirmed"`
}

// dedupeLines drops empty names and case-insensitive duplicate names,
// keeping the first occurrence, so what a save stores is exactly what
// a re-read returns.
func dedupeLines(lines []Line) []Line {
	seen := make(map[string]bool)
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		line.Name = name
		out = append(out, line)
	}
	return out
}
