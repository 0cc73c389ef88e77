package restaurant

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Storage interface {
	UploadMultipartFile(ctx context.Context, key string, file *multipart.FileHeader) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
}

func NewService(repo Repository, storage Storage) *Service {
	return &Service{repo: repo, storage: storage}
}

// --------------------------------------------------
// Create restaurant (onboarding)
// --------------------------------------------------
func (s *Service) CreateRestaurant(
	ctx context.Context,
	name string,
	city string,
	cuisineType string,
	shortDescription string,
	opensAt string,
	closesAt string,
	ownerID string,
) (*Restaurant, error) {

	if name == "" || city == "" || cuisineType == "" {
		return nil, errors.New("missing required fields")
	}

	restaurant := &Restaurant{
		OwnerID:          ownerID,
		Name:             name,
		City:             city,
		CuisineType:      cuisineType,
		ShortDescription: shortDescription,
		OpensAt:          opensAt,
		ClosesAt:         closesAt,
		Status:           "pending",
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// --------------------------------------------------
// List restaurants owned by user
// --------------------------------------------------
func (s *Service) ListMyRestaurants(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// --------------------------------------------------
// Ownership check (used by other feature packages)
// --------------------------------------------------
func (s *Service) IsOwner(ctx context.Context, restaurantID int, userID string) (bool, error) {
	return s.repo.IsOwner(ctx, restaurantID, userID)
}

// --------------------------------------------------
// Upload logo image
// --------------------------------------------------
func (s *Service) UploadLogo(
	ctx context.Context,
	restaurantID int,
	userID string,
	file *multipart.FileHeader,
) (string, error) {

	isOwner, err := s.repo.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return "", err
	}
	if !isOwner {
		return "", errors.New("unauthorized")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		return "", errors.New("invalid file")
	}

	key := fmt.Sprintf(
		"restaurants/%d/logo/%s%s",
		restaurantID,
		uuid.New().String(),
		ext,
	)

	url, err := s.storage.UploadMultipartFile(ctx, key, file)
	if err != nil {
		return "", err
	}

	if err := s.repo.SaveLogoURL(ctx, restaurantID, url); err != nil {
		return "", err
	}

	return url, nil
}
