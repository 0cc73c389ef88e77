package allergen

import (
	"sort"
	"strings"
)

// FamilyGroup is a display grouping of canonical allergens sharing a
// family. Allergens without a family land in a single trailing group
// with empty FamilyCode/FamilyName.
type FamilyGroup struct {
	FamilyCode string
	FamilyName string
	Members    []Canonical
}

// GroupByFamily groups canonical allergens by family code. Groups are
// sorted by family display name (code when the name is missing),
// case-insensitively; members keep input order. The no-family bucket,
// if any, always comes last.
func GroupByFamily(allergens []Canonical) []FamilyGroup {
	if len(allergens) == 0 {
		return []FamilyGroup{}
	}

	byCode := make(map[string]int)
	groups := []FamilyGroup{}
	var ungrouped []Canonical

	for _, a := range allergens {
		if a.FamilyCode == "" {
			ungrouped = append(ungrouped, a)
			continue
		}
		idx, ok := byCode[a.FamilyCode]
		if !ok {
			idx = len(groups)
			byCode[a.FamilyCode] = idx
			groups = append(groups, FamilyGroup{
				FamilyCode: a.FamilyCode,
				FamilyName: a.FamilyName,
			})
		}
		groups[idx].Members = append(groups[idx].Members, a)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return strings.ToLower(groupSortKey(groups[i])) < strings.ToLower(groupSortKey(groups[j]))
	})

	if len(ungrouped) > 0 {
		groups = append(groups, FamilyGroup{Members: ungrouped})
	}

	return groups
}

func groupSortKey(g FamilyGroup) string {
	if g.FamilyName != "" {
		return g.FamilyName
	}
	return g.FamilyCode
}

// FormatList renders a human-readable allergen summary, e.g.
// "Wheat, Spelt (cereals containing gluten); Walnuts (tree nuts)".
// Empty input yields an empty string.
func FormatList(allergens []Canonical) string {
	groups := GroupByFamily(allergens)
	parts := make([]string, 0, len(groups))

	for _, g := range groups {
		seen := make(map[string]bool)
		names := make([]string, 0, len(g.Members))
		for _, m := range g.Members {
			if m.Name == "" || seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			names = append(names, m.Name)
		}
		if len(names) == 0 {
			continue
		}
		text := strings.Join(names, ", ")
		if g.FamilyName != "" {
			text += " (" + strings.ToLower(g.FamilyName) + ")"
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, "; ")
}
