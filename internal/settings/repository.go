package settings

import "context"

type Repository interface {
	Get(ctx context.Context, restaurantID int) (Settings, error)
	Update(ctx context.Context, restaurantID int, s Settings) error
}
