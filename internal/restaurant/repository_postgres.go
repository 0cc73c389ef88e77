package restaurant

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	query := `
		INSERT INTO restaurants
			(owner_id, name, city, cuisine_type, short_description, opens_at, closes_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		restaurant.OwnerID,
		restaurant.Name,
		restaurant.City,
		restaurant.CuisineType,
		restaurant.ShortDescription,
		restaurant.OpensAt,
		restaurant.ClosesAt,
		restaurant.Status,
	).Scan(&restaurant.ID, &restaurant.CreatedAt)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	query := `
		SELECT id, owner_id, name, city, cuisine_type,
		       COALESCE(short_description, ''), COALESCE(opens_at, ''), COALESCE(closes_at, ''),
		       status, COALESCE(logo_url, ''), created_at
		FROM restaurants
		WHERE owner_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Restaurant
	for rows.Next() {
		rest := &Restaurant{}
		if err := rows.Scan(
			&rest.ID, &rest.OwnerID, &rest.Name, &rest.City, &rest.CuisineType,
			&rest.ShortDescription, &rest.OpensAt, &rest.ClosesAt,
			&rest.Status, &rest.LogoURL, &rest.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, restaurantID int) (*Restaurant, error) {
	query := `
		SELECT id, owner_id, name, city, cuisine_type,
		       COALESCE(short_description, ''), COALESCE(opens_at, ''), COALESCE(closes_at, ''),
		       status, COALESCE(logo_url, ''), created_at
		FROM restaurants
		WHERE id = $1
	`
	rest := &Restaurant{}
	err := r.db.QueryRow(ctx, query, restaurantID).Scan(
		&rest.ID, &rest.OwnerID, &rest.Name, &rest.City, &rest.CuisineType,
		&rest.ShortDescription, &rest.OpensAt, &rest.ClosesAt,
		&rest.Status, &rest.LogoURL, &rest.CreatedAt,
	)
	if err != nil {
		return nil, errors.New("restaurant not found")
	}
	return rest, nil
}

func (r *PostgresRepository) IsOwner(ctx context.Context, restaurantID int, userID string) (bool, error) {
	query := `SELECT 1 FROM restaurants WHERE id = $1 AND owner_id = $2 LIMIT 1`
	row := r.db.QueryRow(ctx, query, restaurantID, userID)

	var exists int
	if err := row.Scan(&exists); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *PostgresRepository) SaveLogoURL(ctx context.Context, restaurantID int, url string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE restaurants SET logo_url = $2 WHERE id = $1
	`, restaurantID, url)
	return err
}
