package menu

import "time"

// Section is a named grouping of dishes on the public menu, ordered by
// Position. Archiving hides a section without losing its links.
type Section struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Name         string    `json:"name"`
	Position     int       `json:"position"`
	IsArchived   bool      `json:"is_archived"`
	CreatedAt    time.Time `json:"created_at"`
}

// Dish is the public face of a recipe: just what a guest needs to pick
// something to eat, with the price rendered per restaurant settings.
type Dish struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	MenuCategory string `json:"menu_category,omitempty"`
	DisplayPrice string `json:"display_price"`
	ImageURL     string `json:"image_url,omitempty"`
	AllergenText string `json:"allergen_text"`
	Vegan        bool   `json:"vegan"`
	Vegetarian   bool   `json:"vegetarian"`
}

// BrowseSection is a section plus its visible dishes.
type BrowseSection struct {
	Section
	Dishes []Dish `json:"dishes"`
}
