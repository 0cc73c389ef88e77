package recipe

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

const recipeColumns = `
	id, restaurant_id, name,
	COALESCE(description, ''), COALESCE(instructions, ''),
	COALESCE(menu_category, ''), COALESCE(serving_size, ''),
	COALESCE(price, ''), COALESCE(image_url, ''),
	COALESCE(special_notes, ''), prominence_score,
	confirmed, is_on_menu, created_at
`

func scanRecipe(row interface{ Scan(dest ...any) error }, r *Recipe) error {
	return row.Scan(
		&r.ID, &r.RestaurantID, &r.Name,
		&r.Description, &r.Instructions,
		&r.MenuCategory, &r.ServingSize,
		&r.Price, &r.ImageURL,
		&r.SpecialNotes, &r.ProminenceScore,
		&r.Confirmed, &r.IsOnMenu, &r.CreatedAt,
	)
}

func (r *PostgresRepository) Create(ctx context.Context, recipe *Recipe) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO recipes
			(restaurant_id, name, description, instructions, menu_category,
			 serving_size, price, image_url, special_notes,
			 prominence_score, confirmed, is_on_menu)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''),
		        NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''),
		        $10, $11, $12)
		RETURNING id, created_at
	`,
		recipe.RestaurantID, recipe.Name, recipe.Description, recipe.Instructions,
		recipe.MenuCategory, recipe.ServingSize, recipe.Price, recipe.ImageURL,
		recipe.SpecialNotes, recipe.ProminenceScore, recipe.Confirmed, recipe.IsOnMenu,
	).Scan(&recipe.ID, &recipe.CreatedAt)
	if err != nil {
		return err
	}

	return r.ReplaceLines(ctx, recipe.ID, recipe.Lines)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Recipe, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE id = $1
	`, id)

	recipe := &Recipe{}
	if err := scanRecipe(row, recipe); err != nil {
		return nil, errors.New("recipe not found")
	}

	lines, err := r.loadLines(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	recipe.Lines = lines
	return recipe, nil
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID int) ([]Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE restaurant_id = $1 AND confirmed = TRUE
		ORDER BY name
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collect(ctx, rows)
}

func (r *PostgresRepository) ListSuggestions(ctx context.Context, restaurantID int, minProminence float64) ([]Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE restaurant_id = $1
		  AND confirmed = FALSE
		  AND COALESCE(prominence_score, 0) >= $2
		ORDER BY prominence_score DESC NULLS LAST, name
	`, restaurantID, minProminence)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collect(ctx, rows)
}

func (r *PostgresRepository) Update(ctx context.Context, recipe *Recipe) error {
	_, err := r.db.Exec(ctx, `
		UPDATE recipes
		SET name = $2, description = NULLIF($3, ''), instructions = NULLIF($4, ''),
		    menu_category = NULLIF($5, ''), serving_size = NULLIF($6, ''),
		    price = NULLIF($7, ''), image_url = NULLIF($8, ''),
		    special_notes = NULLIF($9, '')
		WHERE id = $1
	`,
		recipe.ID, recipe.Name, recipe.Description, recipe.Instructions,
		recipe.MenuCategory, recipe.ServingSize, recipe.Price, recipe.ImageURL,
		recipe.SpecialNotes,
	)
	if err != nil {
		return err
	}

	return r.ReplaceLines(ctx, recipe.ID, recipe.Lines)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) ReplaceLines(ctx context.Context, recipeID int, lines []Line) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID); err != nil {
		return err
	}

	// Deduped up front so the unique (recipe_id, name) constraint never
	// silently swallows a line.
	for _, line := range dedupeLines(lines) {
		_, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients
				(recipe_id, ingredient_id, name, quantity, unit, notes, confirmed)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		`, recipeID, line.IngredientID, line.Name, line.Quantity, line.Unit, line.Notes, line.Confirmed)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) SetConfirmed(ctx context.Context, id int, confirmed bool) error {
	_, err := r.db.Exec(ctx, `UPDATE recipes SET confirmed = $2 WHERE id = $1`, id, confirmed)
	return err
}

func (r *PostgresRepository) SetOnMenu(ctx context.Context, id int, onMenu bool) error {
	_, err := r.db.Exec(ctx, `UPDATE recipes SET is_on_menu = $2 WHERE id = $1`, id, onMenu)
	return err
}

func (r *PostgresRepository) AllergenIngredients(ctx context.Context, recipeID int) ([]allergen.Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ri.name,
		       ia.code, COALESCE(ia.name, ''), COALESCE(ia.canonical_code, ''),
		       COALESCE(ia.canonical_name, ''), COALESCE(ia.family_code, ''),
		       COALESCE(ia.family_name, ''), COALESCE(ia.marker_type, '')
		FROM recipe_ingredients ri
		JOIN ingredient_allergens ia ON ia.ingredient_id = ri.ingredient_id
		WHERE ri.recipe_id = $1
		ORDER BY ri.id, ia.id
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := make(map[string]int)
	var out []allergen.Ingredient

	for rows.Next() {
		var name string
		var tag allergen.Tag
		if err := rows.Scan(
			&name,
			&tag.Code, &tag.Name, &tag.CanonicalCode, &tag.CanonicalName,
			&tag.FamilyCode, &tag.FamilyName, &tag.MarkerType,
		); err != nil {
			return nil, err
		}

		idx, ok := byName[name]
		if !ok {
			idx = len(out)
			byName[name] = idx
			out = append(out, allergen.Ingredient{Name: name})
		}
		out[idx].Tags = append(out[idx].Tags, tag)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) collect(ctx context.Context, rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]Recipe, error) {
	var out []Recipe
	for rows.Next() {
		var recipe Recipe
		if err := scanRecipe(rows, &recipe); err != nil {
			return nil, err
		}
		out = append(out, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		lines, err := r.loadLines(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Lines = lines
	}
	return out, nil
}

func (r *PostgresRepository) loadLines(ctx context.Context, recipeID int) ([]Line, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, recipe_id, ingredient_id, name, quantity,
		       COALESCE(unit, ''), COALESCE(notes, ''), confirmed
		FROM recipe_ingredients
		WHERE recipe_id = $1
		ORDER BY id
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var line Line
		if err := rows.Scan(
			&line.ID, &line.RecipeID, &line.IngredientID, &line.Name,
			&line.Quantity, &line.Unit, &line.Notes, &line.Confirmed,
		); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, rows.Err()
}
