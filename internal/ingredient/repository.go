package ingredient

import (
	"context"

	"feeb/internal/allergen"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Ingredient, error)
	GetByName(ctx context.Context, name string) (*Ingredient, error)
	ListAll(ctx context.Context) ([]Ingredient, error)
	Create(ctx context.Context, ing *Ingredient) error
	AddAllergens(ctx context.Context, ingredientID int, tags []allergen.Tag) error
}
