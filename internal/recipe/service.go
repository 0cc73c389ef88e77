package recipe

import (
	"context"
	"errors"

	"feeb/internal/allergen"
	"feeb/internal/pricing"
	"feeb/internal/settings"
)

// Suggestions below this prominence are noise from the extractor and
// stay hidden until the score improves or the operator searches.
const SuggestionProminenceFloor = 0.35

var (
	ErrNotFound     = errors.New("recipe not found")
	ErrUnauthorized = errors.New("unauthorized")
)

type OwnershipChecker interface {
	IsOwner(ctx context.Context, restaurantID int, userID string) (bool, error)
}

type SettingsReader interface {
	Get(ctx context.Context, restaurantID int) (settings.Settings, error)
}

// IngredientResolver links raw line names to the taxonomy.
type IngredientResolver interface {
	ResolveID(ctx context.Context, name string) (int, error)
}

// View is a recipe enriched with everything the operator screens need:
// the rendered price and the derived allergen and dietary information.
type View struct {
	Recipe
	DisplayPrice string               `json:"display_price"`
	Allergens    []allergen.Canonical `json:"allergens"`
	AllergenText string               `json:"allergen_text"`
	Vegan        bool                 `json:"vegan"`
	Vegetarian   bool                 `json:"vegetarian"`
}

type Service struct {
	repo     Repository
	owners   OwnershipChecker
	settings SettingsReader
	resolver IngredientResolver
}

func NewService(repo Repository, owners OwnershipChecker, settingsReader SettingsReader, resolver IngredientResolver) *Service {
	return &Service{repo: repo, owners: owners, settings: settingsReader, resolver: resolver}
}

// --------------------------------------------------
// Create recipe (operator entry, confirmed immediately)
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, restaurantID int, userID string, recipe Recipe) (*View, error) {
	if err := s.checkOwner(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	if recipe.Name == "" {
		return nil, errors.New("recipe name is required")
	}

	recipe.RestaurantID = restaurantID
	recipe.Confirmed = true
	recipe.Lines = dedupeLines(recipe.Lines)
	s.resolveLines(ctx, recipe.Lines)

	if err := s.repo.Create(ctx, &recipe); err != nil {
		return nil, err
	}
	return s.view(ctx, &recipe)
}

// --------------------------------------------------
// Get single recipe with derived fields
// --------------------------------------------------
func (s *Service) Get(ctx context.Context, recipeID int, userID string) (*View, error) {
	recipe, err := s.authorized(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, recipe)
}

// --------------------------------------------------
// List confirmed recipes for a restaurant
// --------------------------------------------------
func (s *Service) List(ctx context.Context, restaurantID int, userID string) ([]View, error) {
	if err := s.checkOwner(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	recipes, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, recipes)
}

// --------------------------------------------------
// List import suggestions (unconfirmed, prominent enough)
// --------------------------------------------------
func (s *Service) ListSuggestions(ctx context.Context, restaurantID int, userID string) ([]View, error) {
	if err := s.checkOwner(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	recipes, err := s.repo.ListSuggestions(ctx, restaurantID, SuggestionProminenceFloor)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, recipes)
}

// --------------------------------------------------
// Update recipe
// --------------------------------------------------
func (s *Service) Update(ctx context.Context, recipeID int, userID string, next Recipe) (*View, error) {
	current, err := s.authorized(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if next.Name == "" {
		return nil, errors.New("recipe name is required")
	}

	next.ID = current.ID
	next.RestaurantID = current.RestaurantID
	next.Lines = dedupeLines(next.Lines)
	s.resolveLines(ctx, next.Lines)

	if err := s.repo.Update(ctx, &next); err != nil {
		return nil, err
	}
	return s.Get(ctx, recipeID, userID)
}

// --------------------------------------------------
// Delete recipe (also used to dismiss a suggestion)
// --------------------------------------------------
func (s *Service) Delete(ctx context.Context, recipeID int, userID string) error {
	if _, err := s.authorized(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, recipeID)
}

// --------------------------------------------------
// Confirm a suggestion into a real recipe
// --------------------------------------------------
func (s *Service) Confirm(ctx context.Context, recipeID int, userID string) (*View, error) {
	if _, err := s.authorized(ctx, recipeID, userID); err != nil {
		return nil, err
	}
	if err := s.repo.SetConfirmed(ctx, recipeID, true); err != nil {
		return nil, err
	}
	return s.Get(ctx, recipeID, userID)
}

// --------------------------------------------------
// Toggle menu visibility
// --------------------------------------------------
func (s *Service) SetOnMenu(ctx context.Context, recipeID int, userID string, onMenu bool) error {
	recipe, err := s.authorized(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if onMenu && !recipe.Confirmed {
		return errors.New("unconfirmed recipe cannot go on the menu")
	}
	return s.repo.SetOnMenu(ctx, recipeID, onMenu)
}

// --------------------------------------------------
// Internals
// --------------------------------------------------

func (s *Service) checkOwner(ctx context.Context, restaurantID int, userID string) error {
	isOwner, err := s.owners.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrUnauthorized
	}
	return nil
}

func (s *Service) authorized(ctx context.Context, recipeID int, userID string) (*Recipe, error) {
	recipe, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := s.checkOwner(ctx, recipe.RestaurantID, userID); err != nil {
		return nil, err
	}
	return recipe, nil
}

// resolveLines best-effort links lines to the taxonomy. A failed
// resolution leaves the line unlinked rather than failing the save.
func (s *Service) resolveLines(ctx context.Context, lines []Line) {
	if s.resolver == nil {
		return
	}
	for i := range lines {
		if lines[i].IngredientID != nil || lines[i].Name == "" {
			continue
		}
		if id, err := s.resolver.ResolveID(ctx, lines[i].Name); err == nil {
			lines[i].IngredientID = &id
		}
	}
}

func (s *Service) view(ctx context.Context, recipe *Recipe) (*View, error) {
	opts := pricing.Options{Currency: pricing.EUR, Format: pricing.FormatSimple}
	if cfg, err := s.settings.Get(ctx, recipe.RestaurantID); err == nil {
		opts = cfg.Options()
	}

	ingredients, err := s.repo.AllergenIngredients(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	summary := allergen.Summarize(ingredients)

	return &View{
		Recipe:       *recipe,
		DisplayPrice: pricing.FormatPrice(recipe.Price, opts),
		Allergens:    summary.Allergens,
		AllergenText: allergen.FormatList(summary.Allergens),
		Vegan:        allergen.VeganFriendly(summary),
		Vegetarian:   allergen.VegetarianFriendly(summary),
	}, nil
}

func (s *Service) views(ctx context.Context, recipes []Recipe) ([]View, error) {
	out := make([]View, 0, len(recipes))
	for i := range recipes {
		v, err := s.view(ctx, &recipes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}
