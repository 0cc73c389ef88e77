package menu

import (
	"context"

	"feeb/internal/allergen"
	"feeb/internal/recipe"
)

type Repository interface {
	CreateSection(ctx context.Context, s *Section) error
	GetSection(ctx context.Context, id int) (*Section, error)
	ListSections(ctx context.Context, restaurantID int) ([]Section, error)
	ArchiveSection(ctx context.Context, id int) error
	AddRecipe(ctx context.Context, sectionID, recipeID, position int) error
	RemoveRecipe(ctx context.Context, sectionID, recipeID int) error
	// ListSectionRecipes returns the section's recipes that are
	// confirmed and flagged on-menu, in link position order.
	ListSectionRecipes(ctx context.Context, sectionID int) ([]recipe.Recipe, error)
	// ListOnMenu returns every visible recipe of the restaurant with
	// its ingredient lines, for the public search endpoint.
	ListOnMenu(ctx context.Context, restaurantID int) ([]recipe.Recipe, error)
	AllergenIngredients(ctx context.Context, recipeID int) ([]allergen.Ingredient, error)
}
