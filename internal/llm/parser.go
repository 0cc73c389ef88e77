package llm

import (
	"context"
	"encoding/json"
	"errors"
)

type ExtractedMenu struct {
	Recipes []ExtractedRecipe `json:"recipes"`
}

type ExtractedRecipe struct {
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	MenuCategory    string                `json:"menu_category"`
	Price           string                `json:"price"`
	ProminenceScore float64               `json:"prominence_score"`
	Ingredients     []ExtractedIngredient `json:"ingredients"`
}

type ExtractedIngredient struct {
	Name      string   `json:"name"`
	Allergens []string `json:"allergens"`
}

// ExtractRecipes runs the client and decodes its strict-JSON output.
func ExtractRecipes(
	ctx context.Context,
	client Client,
	menuText string,
) ([]ExtractedRecipe, error) {

	rawJSON, err := client.ExtractMenu(ctx, menuText)
	if err != nil {
		return nil, err
	}

	var parsed ExtractedMenu
	if err := json.Unmarshal([]byte(rawJSON), &parsed); err != nil {
		return nil, errors.New("invalid LLM JSON output")
	}

	return parsed.Recipes, nil
}
