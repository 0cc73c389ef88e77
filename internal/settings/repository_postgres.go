package settings

import (
	"context"
	"errors"

	"feeb/internal/pricing"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, restaurantID int) (Settings, error) {
	var currency, format, language string

	err := r.db.QueryRow(ctx, `
		SELECT currency, price_format, language
		FROM restaurants
		WHERE id = $1
	`, restaurantID).Scan(&currency, &format, &language)
	if err != nil {
		return Settings{}, errors.New("restaurant not found")
	}

	return Settings{
		Currency:    pricing.Currency(currency),
		PriceFormat: pricing.Format(format),
		Language:    language,
	}, nil
}

func (r *PostgresRepository) Update(ctx context.Context, restaurantID int, s Settings) error {
	_, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET currency = $2, price_format = $3, language = $4
		WHERE id = $1
	`, restaurantID, string(s.Currency), string(s.PriceFormat), s.Language)
	return err
}
