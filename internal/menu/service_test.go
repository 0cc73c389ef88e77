package menu

import (
	"context"
	"errors"
	"testing"

	"feeb/internal/allergen"
	"feeb/internal/pricing"
	"feeb/internal/recipe"
	"feeb/internal/settings"
)

// --------------------------------------------------
// Mocks
// --------------------------------------------------

type mockRepo struct {
	sections       map[int]*Section
	sectionRecipes map[int][]int
	recipes        map[int]*recipe.Recipe
	allergens      map[int][]allergen.Ingredient
	nextID         int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		sections:       make(map[int]*Section),
		sectionRecipes: make(map[int][]int),
		recipes:        make(map[int]*recipe.Recipe),
		allergens:      make(map[int][]allergen.Ingredient),
		nextID:         1,
	}
}

func (m *mockRepo) addRecipe(r recipe.Recipe) int {
	r.ID = m.nextID
	m.nextID++
	m.recipes[r.ID] = &r
	return r.ID
}

func (m *mockRepo) CreateSection(ctx context.Context, s *Section) error {
	s.ID = m.nextID
	m.nextID++
	s.Position = len(m.sections) + 1
	stored := *s
	m.sections[s.ID] = &stored
	return nil
}

func (m *mockRepo) GetSection(ctx context.Context, id int) (*Section, error) {
	s, ok := m.sections[id]
	if !ok {
		return nil, errors.New("section not found")
	}
	copied := *s
	return &copied, nil
}

func (m *mockRepo) ListSections(ctx context.Context, restaurantID int) ([]Section, error) {
	var out []Section
	for _, s := range m.sections {
		if s.RestaurantID == restaurantID && !s.IsArchived {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockRepo) ArchiveSection(ctx context.Context, id int) error {
	if s, ok := m.sections[id]; ok {
		s.IsArchived = true
	}
	return nil
}

func (m *mockRepo) AddRecipe(ctx context.Context, sectionID, recipeID, position int) error {
	m.sectionRecipes[sectionID] = append(m.sectionRecipes[sectionID], recipeID)
	return nil
}

func (m *mockRepo) RemoveRecipe(ctx context.Context, sectionID, recipeID int) error {
	kept := m.sectionRecipes[sectionID][:0]
	for _, id := range m.sectionRecipes[sectionID] {
		if id != recipeID {
			kept = append(kept, id)
		}
	}
	m.sectionRecipes[sectionID] = kept
	return nil
}

func (m *mockRepo) ListSectionRecipes(ctx context.Context, sectionID int) ([]recipe.Recipe, error) {
	var out []recipe.Recipe
	for _, id := range m.sectionRecipes[sectionID] {
		r := m.recipes[id]
		if r.Confirmed && r.IsOnMenu {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRepo) ListOnMenu(ctx context.Context, restaurantID int) ([]recipe.Recipe, error) {
	var out []recipe.Recipe
	for _, r := range m.recipes {
		if r.RestaurantID == restaurantID && r.Confirmed && r.IsOnMenu {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRepo) AllergenIngredients(ctx context.Context, recipeID int) ([]allergen.Ingredient, error) {
	return m.allergens[recipeID], nil
}

type mockOwners struct {
	owner string
}

func (m *mockOwners) IsOwner(ctx context.Context, restaurantID int, userID string) (bool, error) {
	return userID == m.owner, nil
}

type mockSettings struct {
	cfg settings.Settings
}

func (m *mockSettings) Get(ctx context.Context, restaurantID int) (settings.Settings, error) {
	return m.cfg, nil
}

func newTestService(repo *mockRepo, cfg settings.Settings) *Service {
	return NewService(repo, &mockOwners{owner: "owner-1"}, &mockSettings{cfg: cfg})
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestCreateSection_Unauthorized(t *testing.T) {
	service := newTestService(newMockRepo(), settings.Defaults())

	_, err := service.CreateSection(context.Background(), 1, "intruder", "Starters")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestBrowse_OnlyVisibleDishes(t *testing.T) {
	repo := newMockRepo()
	service := newTestService(repo, settings.Defaults())

	section, err := service.CreateSection(context.Background(), 1, "owner-1", "Mains")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	visible := repo.addRecipe(recipe.Recipe{RestaurantID: 1, Name: "Risotto", Price: "14", Confirmed: true, IsOnMenu: true})
	hidden := repo.addRecipe(recipe.Recipe{RestaurantID: 1, Name: "Draft Dish", Confirmed: true, IsOnMenu: false})
	repo.AddRecipe(context.Background(), section.ID, visible, 1)
	repo.AddRecipe(context.Background(), section.ID, hidden, 2)

	menu, err := service.Browse(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(menu) != 1 {
		t.Fatalf("expected 1 section, got %d", len(menu))
	}
	if len(menu[0].Dishes) != 1 || menu[0].Dishes[0].Name != "Risotto" {
		t.Fatalf("expected only the visible dish, got %+v", menu[0].Dishes)
	}
	if menu[0].Dishes[0].DisplayPrice != "14.00" {
		t.Errorf("expected display price 14.00, got %q", menu[0].Dishes[0].DisplayPrice)
	}
}

func TestBrowse_RendersSettingsAndAllergens(t *testing.T) {
	repo := newMockRepo()
	service := newTestService(repo, settings.Settings{
		Currency:    pricing.USD,
		PriceFormat: pricing.FormatValuta,
		Language:    "en",
	})

	section, _ := service.CreateSection(context.Background(), 1, "owner-1", "Desserts")
	id := repo.addRecipe(recipe.Recipe{RestaurantID: 1, Name: "Panna Cotta", Price: "7.5", Confirmed: true, IsOnMenu: true})
	repo.AddRecipe(context.Background(), section.ID, id, 1)
	repo.allergens[id] = []allergen.Ingredient{
		{Name: "cream", Tags: []allergen.Tag{{Code: "en:milk", Name: "Milk"}}},
	}

	menu, err := service.Browse(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dish := menu[0].Dishes[0]
	if dish.DisplayPrice != "$7.50" {
		t.Errorf("expected $7.50, got %q", dish.DisplayPrice)
	}
	if dish.AllergenText != "Milk" {
		t.Errorf("expected allergen text Milk, got %q", dish.AllergenText)
	}
	if dish.Vegan || !dish.Vegetarian {
		t.Errorf("expected vegetarian but not vegan, got vegan=%v vegetarian=%v", dish.Vegan, dish.Vegetarian)
	}
}

func TestSearch_MatchesIngredientSynonym(t *testing.T) {
	repo := newMockRepo()
	service := newTestService(repo, settings.Defaults())

	repo.addRecipe(recipe.Recipe{
		RestaurantID: 1, Name: "Melanzane", Confirmed: true, IsOnMenu: true,
		Lines: []recipe.Line{{Name: "aubergine"}},
	})
	repo.addRecipe(recipe.Recipe{
		RestaurantID: 1, Name: "Margherita", Confirmed: true, IsOnMenu: true,
		Lines: []recipe.Line{{Name: "tomato"}, {Name: "mozzarella"}},
	})

	dishes, err := service.Search(context.Background(), 1, "eggplant")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dishes) != 1 || dishes[0].Name != "Melanzane" {
		t.Fatalf("expected Melanzane via synonym match, got %+v", dishes)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	repo := newMockRepo()
	service := newTestService(repo, settings.Defaults())
	repo.addRecipe(recipe.Recipe{RestaurantID: 1, Name: "Risotto", Confirmed: true, IsOnMenu: true})

	dishes, err := service.Search(context.Background(), 1, "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dishes) != 0 {
		t.Errorf("expected no dishes for empty query, got %d", len(dishes))
	}
}

func TestArchiveSection_HidesFromBrowse(t *testing.T) {
	repo := newMockRepo()
	service := newTestService(repo, settings.Defaults())

	section, _ := service.CreateSection(context.Background(), 1, "owner-1", "Specials")
	if err := service.ArchiveSection(context.Background(), section.ID, "owner-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	menu, err := service.Browse(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(menu) != 0 {
		t.Errorf("expected archived section hidden, got %d sections", len(menu))
	}
}
