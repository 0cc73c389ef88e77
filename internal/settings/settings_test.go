package settings

import (
	"context"
	"testing"

	"feeb/internal/pricing"
)

// --------------------------------------------------
// Mocks
// --------------------------------------------------

type mockRepo struct {
	store map[int]Settings
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: map[int]Settings{1: Defaults()}}
}

func (m *mockRepo) Get(ctx context.Context, restaurantID int) (Settings, error) {
	return m.store[restaurantID], nil
}

func (m *mockRepo) Update(ctx context.Context, restaurantID int, s Settings) error {
	m.store[restaurantID] = s
	return nil
}

type mockOwners struct{ owner string }

func (m *mockOwners) IsOwner(ctx context.Context, restaurantID int, userID string) (bool, error) {
	return userID == m.owner, nil
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestGet_Defaults(t *testing.T) {
	service := NewService(newMockRepo(), &mockOwners{owner: "owner-1"})

	s, err := service.Get(context.Background(), 1, "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Currency != pricing.EUR {
		t.Errorf("expected EUR default, got %s", s.Currency)
	}
	if s.PriceFormat != pricing.FormatSimple {
		t.Errorf("expected simple default, got %s", s.PriceFormat)
	}
	if s.Language != "en" {
		t.Errorf("expected en default, got %s", s.Language)
	}
}

func TestGet_Unauthorized(t *testing.T) {
	service := NewService(newMockRepo(), &mockOwners{owner: "owner-1"})

	if _, err := service.Get(context.Background(), 1, "stranger"); err == nil {
		t.Fatal("expected unauthorized error")
	}
}

func TestUpdate_Success(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo, &mockOwners{owner: "owner-1"})

	next := Settings{
		Currency:    pricing.USD,
		PriceFormat: pricing.FormatCommaValuta,
		Language:    "nl",
	}

	saved, err := service.Update(context.Background(), 1, "owner-1", next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved != next {
		t.Errorf("expected %+v, got %+v", next, saved)
	}
	if repo.store[1] != next {
		t.Error("expected settings to be persisted")
	}
}

func TestUpdate_RejectsUnknownValues(t *testing.T) {
	service := NewService(newMockRepo(), &mockOwners{owner: "owner-1"})
	ctx := context.Background()

	cases := []Settings{
		{Currency: "GBP", PriceFormat: pricing.FormatSimple, Language: "en"},
		{Currency: pricing.EUR, PriceFormat: "fancy", Language: "en"},
		{Currency: pricing.EUR, PriceFormat: pricing.FormatSimple, Language: "xx"},
	}

	for _, next := range cases {
		if _, err := service.Update(ctx, 1, "owner-1", next); err == nil {
			t.Errorf("expected rejection for %+v", next)
		}
	}
}
