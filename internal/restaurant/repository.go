package restaurant

import "context"

type Repository interface {
	Create(ctx context.Context, restaurant *Restaurant) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error)
	GetByID(ctx context.Context, restaurantID int) (*Restaurant, error)
	IsOwner(ctx context.Context, restaurantID int, userID string) (bool, error)
	SaveLogoURL(ctx context.Context, restaurantID int, url string) error
}
