package recipe

import (
	"context"
	"errors"
	"testing"

	"feeb/internal/allergen"
	"feeb/internal/pricing"
	"feeb/internal/settings"
)

// --------------------------------------------------
// Mocks
// --------------------------------------------------

type mockRepo struct {
	recipes   map[int]*Recipe
	allergens map[int][]allergen.Ingredient
	nextID    int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		recipes:   make(map[int]*Recipe),
		allergens: make(map[int][]allergen.Ingredient),
		nextID:    1,
	}
}

func (m *mockRepo) Create(ctx context.Context, r *Recipe) error {
	r.ID = m.nextID
	m.nextID++
	stored := *r
	m.recipes[r.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int) (*Recipe, error) {
	r, ok := m.recipes[id]
	if !ok {
		return nil, errors.New("recipe not found")
	}
	copied := *r
	return &copied, nil
}

func (m *mockRepo) ListByRestaurant(ctx context.Context, restaurantID int) ([]Recipe, error) {
	var out []Recipe
	for _, r := range m.recipes {
		if r.RestaurantID == restaurantID && r.Confirmed {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRepo) ListSuggestions(ctx context.Context, restaurantID int, minProminence float64) ([]Recipe, error) {
	var out []Recipe
	for _, r := range m.recipes {
		if r.RestaurantID != restaurantID || r.Confirmed {
			continue
		}
		score := 0.0
		if r.ProminenceScore != nil {
			score = *r.ProminenceScore
		}
		if score >= minProminence {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRepo) Update(ctx context.Context, r *Recipe) error {
	stored := *r
	m.recipes[r.ID] = &stored
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int) error {
	delete(m.recipes, id)
	return nil
}

func (m *mockRepo) ReplaceLines(ctx context.Context, recipeID int, lines []Line) error {
	if r, ok := m.recipes[recipeID]; ok {
		r.Lines = lines
	}
	return nil
}

func (m *mockRepo) SetConfirmed(ctx context.Context, id int, confirmed bool) error {
	if r, ok := m.recipes[id]; ok {
		r.Confirmed = confirmed
	}
	return nil
}

func (m *mockRepo) SetOnMenu(ctx context.Context, id int, onMenu bool) error {
	if r, ok := m.recipes[id]; ok {
		r.IsOnMenu = onMenu
	}
	return nil
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

type mockResolver struct {
	ids map[string]int
}

func (m *mockResolver) ResolveID(ctx context.Context, name string) (int, error) {
	if id, ok := m.ids[name]; ok {
		return id, nil
	}
	return 0, errors.New("unresolved")
}

func newTestService(repo *mockRepo) *Service {
	return NewService(
		repo,
		&mockOwners{owner: "owner-1"},
		&mockSettings{cfg: settings.Defaults()},
		&mockResolver{ids: map[string]int{"milk": 7}},
	)
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestCreate_ConfirmedAndResolved(t *testing.T) {
	repo := newMockRepo()
	service := newTestService(repo)

	view, err := service.Create(context.Background(), 1, "owner-1", Recipe{
		Name:  "Panna Cotta",
		Price: "7.5",
		Lines: []Line{{Name: "milk"}, {Name: "mystery herb"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !view.Confirmed {
		t.Error("expected operator-created recipe to be confirmed")
	}
	if view.DisplayPrice != "7.50" {
		t.Errorf("expected display price 7.50, got %q", view.DisplayPrice)
	}

	stored := repo.recipes[view.ID]
	if stored.Lines[0].IngredientID == nil || *stored.Lines[0].IngredientID != 7 {
		t.Error("expected milk line linked to taxonomy")
	}
	if stored.Lines[1].IngredientID != nil {
		t.Error("expected unresolved line to stay unlinked")
	}
}

func TestCreate_DedupesIngredientLines(t *testing.T) {
	repo := newMockRepo()
	service := newTestService(repo)

	view, err := service.Create(context.Background(), 1, "owner-1", Recipe{
		Name: "Caprese",
		Lines: []Line{
			{Name: " Tomato "},
			{Name: "tomato"},
			{Name: ""},
			{Name: "basil"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.recipes[view.ID]
	if len(stored.Lines) != 2 {
		t.Fatalf("expected 2 deduped lines, got %d", len(stored.Lines))
	}
	if stored.Lines[0].Name != "Tomato" || stored.Lines[1].Name != "basil" {
		t.Errorf("expected first occurrence kept with trimmed name, got %+v", stored.Lines)
	}
	if len(view.Lines) != len(stored.Lines) {
		t.Errorf("expected response to echo the stored line set")
	}
}

func TestCreate_Unauthorized(t *testing.T) {
	service := newTestService(newMockRepo())

	_, err := service.Create(context.Background(), 1, "intruder", Recipe{Name: "Soup"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGet_DerivesAllergenAndDietaryFields(t *testing.T) {
	repo := newMockRepo()
	service := newTestService(repo)

	view, err := service.Create(context.Background(), 1, "owner-1", Recipe{Name: "Panna Cotta"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.allergens[view.ID] = []allergen.Ingredient{
		{Name: "cream", Tags: []allergen.Tag{{Code: "en:milk", Name: "Milk"}}},
	}

	got, err := service.Get(context.Background(), view.ID, "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.AllergenText != "Milk" {
		t.Errorf("expected allergen text Milk, got %q", got.AllergenText)
	}
	if got.Vegan {
		t.Error("milk must disqualify vegan")
	}
	if !got.Vegetarian {
		t.Error("milk must not disqualify vegetarian")
	}
}

func TestListSuggestions_ProminenceFloor(t *testing.T) {
	repo := newMockRepo()
	service := newTestService(repo)

	high := 0.9
	low := 0.1
	repo.Create(context.Background(), &Recipe{RestaurantID: 1, Name: "Prominent", ProminenceScore: &high})
	repo.Create(context.Background(), &Recipe{RestaurantID: 1, Name: "Faint", ProminenceScore: &low})

	views, err := service.ListSuggestions(context.Background(), 1, "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(views) != 1 || views[0].Name != "Prominent" {
		t.Fatalf("expected only the prominent suggestion, got %+v", views)
	}
}

func TestConfirm_PromotesSuggestion(t *testing.T) {
	repo := newMockRepo()
	service := newTestService(repo)

	score := 0.8
	suggestion := &Recipe{RestaurantID: 1, Name: "Imported Dish", ProminenceScore: &score}
	repo.Create(context.Background(), suggestion)

	view, err := service.Confirm(context.Background(), suggestion.ID, "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.Confirmed {
		t.Error("expected recipe confirmed")
	}
}

func TestSetOnMenu_RejectsUnconfirmed(t *testing.T) {
	repo := newMockRepo()
	service := newTestService(repo)

	suggestion := &Recipe{RestaurantID: 1, Name: "Draft"}
	repo.Create(context.Background(), suggestion)

	err := service.SetOnMenu(context.Background(), suggestion.ID, "owner-1", true)
	if err == nil {
		t.Fatal("expected error for unconfirmed recipe")
	}
}

func TestView_PriceUsesRestaurantSettings(t *testing.T) {
	repo := newMockRepo()
	service := NewService(
		repo,
		&mockOwners{owner: "owner-1"},
		&mockSettings{cfg: settings.Settings{
			Currency:    pricing.EUR,
			PriceFormat: pricing.FormatCommaValuta,
			Language:    "nl",
		}},
		nil,
	)

	view, err := service.Create(context.Background(), 1, "owner-1", Recipe{Name: "Bitterballen", Price: "7.5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.DisplayPrice != "€7,50" {
		t.Errorf("expected €7,50, got %q", view.DisplayPrice)
	}
}
