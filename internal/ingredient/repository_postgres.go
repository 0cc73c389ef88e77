package ingredient

import (
	"context"
	"errors"

	"feeb/internal/allergen"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const ingredientColumns = `
	id, code, name, COALESCE(parent_code, ''), source, last_updated
`

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*Ingredient, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		WHERE code = $1
	`, code)

	ing := &Ingredient{}
	if err := row.Scan(&ing.ID, &ing.Code, &ing.Name, &ing.ParentCode, &ing.Source, &ing.LastUpdated); err != nil {
		return nil, errors.New("ingredient not found")
	}

	if err := r.loadAllergens(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Ingredient, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		WHERE LOWER(name) = LOWER($1)
		LIMIT 1
	`, name)

	ing := &Ingredient{}
	if err := row.Scan(&ing.ID, &ing.Code, &ing.Name, &ing.ParentCode, &ing.Source, &ing.LastUpdated); err != nil {
		return nil, errors.New("ingredient not found")
	}

	if err := r.loadAllergens(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Code, &ing.Name, &ing.ParentCode, &ing.Source, &ing.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, ing *Ingredient) error {
	// Concurrent resolves may race on the same code; the conflict
	// clause plus re-select keeps Create idempotent.
	_, err := r.db.Exec(ctx, `
		INSERT INTO ingredients (code, name, parent_code, source)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		ON CONFLICT (code) DO NOTHING
	`, ing.Code, ing.Name, ing.ParentCode, ing.Source)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, `
		SELECT id, last_updated FROM ingredients WHERE code = $1
	`, ing.Code).Scan(&ing.ID, &ing.LastUpdated)
}

func (r *PostgresRepository) AddAllergens(ctx context.Context, ingredientID int, tags []allergen.Tag) error {
	for _, tag := range tags {
		_, err := r.db.Exec(ctx, `
			INSERT INTO ingredient_allergens
				(ingredient_id, code, name, canonical_code, canonical_name,
				 family_code, family_name, marker_type)
			VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''),
			        NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		`, ingredientID, tag.Code, tag.Name, tag.CanonicalCode, tag.CanonicalName,
			tag.FamilyCode, tag.FamilyName, tag.MarkerType)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) loadAllergens(ctx context.Context, ing *Ingredient) error {
	rows, err := r.db.Query(ctx, `
		SELECT code, COALESCE(name, ''), COALESCE(canonical_code, ''),
		       COALESCE(canonical_name, ''), COALESCE(family_code, ''),
		       COALESCE(family_name, ''), COALESCE(marker_type, '')
		FROM ingredient_allergens
		WHERE ingredient_id = $1
		ORDER BY id
	`, ing.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tag allergen.Tag
		if err := rows.Scan(
			&tag.Code, &tag.Name, &tag.CanonicalCode, &tag.CanonicalName,
			&tag.FamilyCode, &tag.FamilyName, &tag.MarkerType,
		); err != nil {
			return err
		}
		ing.Allergens = append(ing.Allergens, tag)
	}
	return rows.Err()
}
