package ingredient

import (
	"context"
	"strings"

	"feeb/internal/allergen"
	"feeb/internal/search"
)

// ResolveResult is returned by Resolve.
type ResolveResult struct {
	Ingredient Ingredient `json:"ingredient"`
	Confidence float64    `json:"confidence"`
	Created    bool       `json:"created"`
}

type Service struct {
	repo      Repository
	threshold float64
}

func NewService(repo Repository, threshold float64) *Service {
	return &Service{repo: repo, threshold: threshold}
}

// Lookup fetches a taxonomy ingredient by exact (case-insensitive)
// name, with its allergen tags.
func (s *Service) Lookup(ctx context.Context, name string) (*Ingredient, error) {
	return s.repo.GetByName(ctx, search.Normalize(name))
}

// Resolve finds the best-matching taxonomy ingredient for a raw name.
// Exact name matches win immediately; otherwise the best Levenshtein
// similarity above the configured threshold is used. Below threshold a
// new ingredient is auto-created so operator entries never dead-end.
func (s *Service) Resolve(ctx context.Context, rawName string) (ResolveResult, error) {
	normalized := search.Normalize(rawName)

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return ResolveResult{}, err
	}

	var best Ingredient
	bestScore := -1.0

	for _, ing := range all {
		if search.Normalize(ing.Name) == normalized {
			return ResolveResult{Ingredient: ing, Confidence: 1.0, Created: false}, nil
		}
		if score := search.Similarity(normalized, search.Normalize(ing.Name)); score > bestScore {
			bestScore = score
			best = ing
		}
	}

	if bestScore >= s.threshold {
		return ResolveResult{Ingredient: best, Confidence: bestScore, Created: false}, nil
	}

	created := &Ingredient{
		Code:   allergen.NormalizeCode(slugify(normalized)),
		Name:   normalized,
		Source: "operator",
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return ResolveResult{}, err
	}

	return ResolveResult{Ingredient: *created, Confidence: 0, Created: true}, nil
}

// ApplyAllergenCodes tags an ingredient with raw allergen codes, as
// delivered by menu extraction. Codes are normalized; names and
// families are filled in later by the classification engine.
func (s *Service) ApplyAllergenCodes(ctx context.Context, ingredientID int, codes []string) error {
	var tags []allergen.Tag
	for _, code := range codes {
		normalized := allergen.NormalizeCode(code)
		if normalized == "" {
			continue
		}
		tags = append(tags, allergen.Tag{Code: normalized})
	}
	if len(tags) == 0 {
		return nil
	}
	return s.repo.AddAllergens(ctx, ingredientID, tags)
}

// ResolveID is the link-by-name form of Resolve used when only the
// taxonomy row id matters.
func (s *Service) ResolveID(ctx context.Context, name string) (int, error) {
	result, err := s.Resolve(ctx, name)
	if err != nil {
		return 0, err
	}
	return result.Ingredient.ID, nil
}

// SearchMatches filters the taxonomy by an expanded query: an
// ingredient matches when any expanded term is contained in its name.
func (s *Service) SearchMatches(ctx context.Context, query string) ([]Ingredient, error) {
	expansion := search.Expand(query)
	if expansion.Phrase == "" {
		return []Ingredient{}, nil
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := []Ingredient{}
	for _, ing := range all {
		if search.MatchesAny(ing.Name, expansion.Terms) {
			matches = append(matches, ing)
		}
	}
	return matches, nil
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "-")
}
