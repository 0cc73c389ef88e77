package settings

import (
	"context"
	"errors"
)

var supportedLanguages = map[string]bool{
	"en": true,
	"nl": true,
	"de": true,
	"fr": true,
	"it": true,
	"es": true,
}

type OwnershipChecker interface {
	IsOwner(ctx context.Context, restaurantID int, userID string) (bool, error)
}

type Service struct {
	repo   Repository
	owners OwnershipChecker
}

func NewService(repo Repository, owners OwnershipChecker) *Service {
	return &Service{repo: repo, owners: owners}
}

func (s *Service) Get(ctx context.Context, restaurantID int, userID string) (Settings, error) {
	if err := s.checkOwner(ctx, restaurantID, userID); err != nil {
		return Settings{}, err
	}
	return s.repo.Get(ctx, restaurantID)
}

func (s *Service) Update(ctx context.Context, restaurantID int, userID string, next Settings) (Settings, error) {
	if err := s.checkOwner(ctx, restaurantID, userID); err != nil {
		return Settings{}, err
	}

	if !next.Currency.Valid() {
		return Settings{}, errors.New("unsupported currency")
	}
	if !next.PriceFormat.Valid() {
		return Settings{}, errors.New("unsupported price format")
	}
	if !supportedLanguages[next.Language] {
		return Settings{}, errors.New("unsupported language")
	}

	if err := s.repo.Update(ctx, restaurantID, next); err != nil {
		return Settings{}, err
	}
	return next, nil
}

func (s *Service) checkOwner(ctx context.Context, restaurantID int, userID string) error {
	isOwner, err := s.owners.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		return errors.New("unauthorized")
	}
	return nil
}
