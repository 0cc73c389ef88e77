package menu

import (
	"context"
	"errors"

	"feeb/internal/allergen"
	"feeb/internal/pricing"
	"feeb/internal/recipe"
	"feeb/internal/search"
	"feeb/internal/settings"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrUnauthorized    = errors.New("unauthorized")
)

type OwnershipChecker interface {
	IsOwner(ctx context.Context, restaurantID int, userID string) (bool, error)
}

type SettingsReader interface {
	Get(ctx context.Context, restaurantID int) (settings.Settings, error)
}

type Service struct {
	repo     Repository
	owners   OwnershipChecker
	settings SettingsReader
}

func NewService(repo Repository, owners OwnershipChecker, settingsReader SettingsReader) *Service {
	return &Service{repo: repo, owners: owners, settings: settingsReader}
}

// --------------------------------------------------
// Section management (operator, authenticated)
// --------------------------------------------------

func (s *Service) CreateSection(ctx context.Context, restaurantID int, userID, name string) (*Section, error) {
	if err := s.checkOwner(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errors.New("section name is required")
	}

	section := &Section{RestaurantID: restaurantID, Name: name}
	if err := s.repo.CreateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *Service) ListSections(ctx context.Context, restaurantID int, userID string) ([]Section, error) {
	if err := s.checkOwner(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListSections(ctx, restaurantID)
}

func (s *Service) ArchiveSection(ctx context.Context, sectionID int, userID string) error {
	if _, err := s.authorizedSection(ctx, sectionID, userID); err != nil {
		return err
	}
	return s.repo.ArchiveSection(ctx, sectionID)
}

func (s *Service) AddRecipe(ctx context.Context, sectionID, recipeID, position int, userID string) error {
	if _, err := s.authorizedSection(ctx, sectionID, userID); err != nil {
		return err
	}
	return s.repo.AddRecipe(ctx, sectionID, recipeID, position)
}

func (s *Service) RemoveRecipe(ctx context.Context, sectionID, recipeID int, userID string) error {
	if _, err := s.authorizedSection(ctx, sectionID, userID); err != nil {
		return err
	}
	return s.repo.RemoveRecipe(ctx, sectionID, recipeID)
}

// --------------------------------------------------
// Public browse
// --------------------------------------------------

// Browse returns the guest-facing menu: active sections with their
// visible dishes, prices rendered per restaurant settings.
func (s *Service) Browse(ctx context.Context, restaurantID int) ([]BrowseSection, error) {
	opts := s.displayOptions(ctx, restaurantID)

	sections, err := s.repo.ListSections(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	out := make([]BrowseSection, 0, len(sections))
	for _, section := range sections {
		recipes, err := s.repo.ListSectionRecipes(ctx, section.ID)
		if err != nil {
			return nil, err
		}

		bs := BrowseSection{Section: section, Dishes: []Dish{}}
		for i := range recipes {
			dish, err := s.dish(ctx, &recipes[i], opts)
			if err != nil {
				return nil, err
			}
			bs.Dishes = append(bs.Dishes, dish)
		}
		out = append(out, bs)
	}
	return out, nil
}

// --------------------------------------------------
// Public search
// --------------------------------------------------

// Search finds visible dishes whose name, description, category or any
// ingredient line matches the expanded query. "eggplant" finds dishes
// listing aubergine.
func (s *Service) Search(ctx context.Context, restaurantID int, query string) ([]Dish, error) {
	expansion := search.Expand(query)
	if expansion.Phrase == "" {
		return []Dish{}, nil
	}

	recipes, err := s.repo.ListOnMenu(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	opts := s.displayOptions(ctx, restaurantID)
	matches := []Dish{}
	for i := range recipes {
		if !matchesRecipe(&recipes[i], expansion.Terms) {
			continue
		}
		dish, err := s.dish(ctx, &recipes[i], opts)
		if err != nil {
			return nil, err
		}
		matches = append(matches, dish)
	}
	return matches, nil
}

func matchesRecipe(r *recipe.Recipe, terms []string) bool {
	if search.MatchesAny(r.Name, terms) ||
		search.MatchesAny(r.Description, terms) ||
		search.MatchesAny(r.MenuCategory, terms) {
		return true
	}
	for _, line := range r.Lines {
		if search.MatchesAny(line.Name, terms) {
			return true
		}
	}
	return false
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

func (s *Service) authorizedSection(ctx context.Context, sectionID int, userID string) (*Section, error) {
	section, err := s.repo.GetSection(ctx, sectionID)
	if err != nil {
		return nil, ErrSectionNotFound
	}
	if err := s.checkOwner(ctx, section.RestaurantID, userID); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *Service) displayOptions(ctx context.Context, restaurantID int) pricing.Options {
	if cfg, err := s.settings.Get(ctx, restaurantID); err == nil {
		return cfg.Options()
	}
	return settings.Defaults().Options()
}

func (s *Service) dish(ctx context.Context, r *recipe.Recipe, opts pricing.Options) (Dish, error) {
	ingredients, err := s.repo.AllergenIngredients(ctx, r.ID)
	if err != nil {
		return Dish{}, err
	}
	summary := allergen.Summarize(ingredients)

	return Dish{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		MenuCategory: r.MenuCategory,
		DisplayPrice: pricing.FormatPrice(r.Price, opts),
		ImageURL:     r.ImageURL,
		AllergenText: allergen.FormatList(summary.Allergens),
		Vegan:        allergen.VeganFriendly(summary),
		Vegetarian:   allergen.VegetarianFriendly(summary),
	}, nil
}
