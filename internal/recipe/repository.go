package recipe

import (
	"context"

	"feeb/internal/allergen"
)

type Repository interface {
	Create(ctx context.Context, r *Recipe) error
	GetByID(ctx context.Context, id int) (*Recipe, error)
	ListByRestaurant(ctx context.Context, restaurantID int) ([]Recipe, error)
	ListSuggestions(ctx context.Context, restaurantID int, minProminence float64) ([]Recipe, error)
	Update(ctx context.Context, r *Recipe) error
	Delete(ctx context.Context, id int) error
	ReplaceLines(ctx context.Context, recipeID int, lines []Line) error
	SetConfirmed(ctx context.Context, id int, confirmed bool) error
	SetOnMenu(ctx context.Context, id int, onMenu bool) error
	// AllergenIngredients returns the recipe's resolved ingredients with
	// their taxonomy allergen tags, shaped for the classification engine.
	AllergenIngredients(ctx context.Context, recipeID int) ([]allergen.Ingredient, error)
}
