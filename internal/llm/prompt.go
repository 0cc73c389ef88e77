package llm

import "fmt"

// BuildMenuExtractPrompt wraps raw menu text in the extraction prompt.
// The model must answer with JSON only; anything else is rejected.
func BuildMenuExtractPrompt(menuText string) string {
	return fmt.Sprintf(`You are a menu digitization assistant for restaurants.

Extract every dish from the menu text below into JSON with EXACTLY this shape:

{
  "recipes": [
    {
      "name": "string",
      "description": "string or empty",
      "menu_category": "string or empty",
      "price": "string exactly as printed, or empty",
      "prominence_score": 0.0,
      "ingredients": [
        {
          "name": "string",
          "allergens": ["en:wheat", "en:milk"]
        }
      ]
    }
  ]
}

Rules:
- prominence_score is 0.0-1.0: how prominently the dish is featured.
- allergens use lower-case codes with an "en:" prefix.
- Do NOT invent dishes. Do NOT output markdown. JSON ONLY.

MENU TEXT:
%s`, menuText)
}
