package ingredient

import (
	"time"

	"feeb/internal/allergen"
)

// Ingredient is a taxonomy entry an operator can attach to recipe
// lines. Allergen tags hang off the taxonomy so every recipe using
// the ingredient inherits its bookkeeping.
type Ingredient struct {
	ID          int            `json:"id"`
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	ParentCode  string         `json:"parent_code,omitempty"`
	Source      string         `json:"source"`
	LastUpdated time.Time      `json:"last_updated"`
	Allergens   []allergen.Tag `json:"allergens"`
}
