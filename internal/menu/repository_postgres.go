package menu

import (
	"context"
	"errors"

	"feeb/internal/allergen"
	"feeb/internal/recipe"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db      *pgxpool.Pool
	recipes *recipe.PostgresRepository
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db, recipes: recipe.NewPostgresRepository(db)}
}

func (r *PostgresRepository) CreateSection(ctx context.Context, s *Section) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO menu_sections (restaurant_id, name, position)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(position), 0) + 1
			 FROM menu_sections WHERE restaurant_id = $1))
		RETURNING id, position, created_at
	`, s.RestaurantID, s.Name).Scan(&s.ID, &s.Position, &s.CreatedAt)
}

func (r *PostgresRepository) GetSection(ctx context.Context, id int) (*Section, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, restaurant_id, name, position, is_archived, created_at
		FROM menu_sections
		WHERE id = $1
	`, id)

	s := &Section{}
	if err := row.Scan(&s.ID, &s.RestaurantID, &s.Name, &s.Position, &s.IsArchived, &s.CreatedAt); err != nil {
		return nil, errors.New("section not found")
	}
	return s, nil
}

func (r *PostgresRepository) ListSections(ctx context.Context, restaurantID int) ([]Section, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, restaurant_id, name, position, is_archived, created_at
		FROM menu_sections
		WHERE restaurant_id = $1 AND is_archived = FALSE
		ORDER BY position, id
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Section
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.RestaurantID, &s.Name, &s.Position, &s.IsArchived, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ArchiveSection(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `UPDATE menu_sections SET is_archived = TRUE WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) AddRecipe(ctx context.Context, sectionID, recipeID, position int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO menu_section_recipes (section_id, recipe_id, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (section_id, recipe_id) DO UPDATE SET position = $3
	`, sectionID, recipeID, position)
	return err
}

func (r *PostgresRepository) RemoveRecipe(ctx context.Context, sectionID, recipeID int) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM menu_section_recipes
		WHERE section_id = $1 AND recipe_id = $2
	`, sectionID, recipeID)
	return err
}

func (r *PostgresRepository) ListSectionRecipes(ctx context.Context, sectionID int) ([]recipe.Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id
		FROM menu_section_recipes msr
		JOIN recipes r ON r.id = msr.recipe_id
		WHERE msr.section_id = $1
		  AND r.confirmed = TRUE AND r.is_on_menu = TRUE
		ORDER BY msr.position NULLS LAST, r.name
	`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		rec, err := r.recipes.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (r *PostgresRepository) ListOnMenu(ctx context.Context, restaurantID int) ([]recipe.Recipe, error) {
	all, err := r.recipes.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	visible := make([]recipe.Recipe, 0, len(all))
	for _, rec := range all {
		if rec.IsOnMenu {
			visible = append(visible, rec)
		}
	}
	return visible, nil
}

func (r *PostgresRepository) AllergenIngredients(ctx context.Context, recipeID int) ([]allergen.Ingredient, error) {
	return r.recipes.AllergenIngredients(ctx, recipeID)
}
