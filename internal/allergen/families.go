package allergen

// Family is a fixed allergen family grouping related species,
// e.g. cereals_gluten covers wheat, rye, barley, oats, spelt, triticale.
type Family struct {
	Code    string
	Name    string
	Members []string
}

// Families is the static family table. Member codes are bare
// (un-namespaced) lower-case allergen codes.
var Families = []Family{
	{
		Code: "cereals_gluten",
		Name: "Cereals containing gluten",
		Members: []string{
			"wheat", "rye", "barley", "oats", "spelt", "triticale", "kamut", "gluten",
		},
	},
	{
		Code: "tree_nuts",
		Name: "Tree nuts",
		Members: []string{
			"almonds", "hazelnuts", "walnuts", "cashews", "pecans",
			"brazil-nuts", "pistachios", "macadamia-nuts", "nuts",
		},
	},
	{
		Code: "fish",
		Name: "Fish",
		Members: []string{
			"fish", "salmon", "cod", "tuna", "trout", "haddock", "anchovies",
		},
	},
	{
		Code: "crustaceans",
		Name: "Crustaceans",
		Members: []string{
			"crustaceans", "shrimp", "prawns", "crab", "lobster", "crayfish",
		},
	},
	{
		Code: "molluscs",
		Name: "Molluscs",
		Members: []string{
			"molluscs", "mussels", "oysters", "clams", "squid", "octopus", "scallops", "snails",
		},
	},
}

var familyByMember = buildFamilyIndex()
var familyByCode = buildFamilyCodeIndex()

func buildFamilyIndex() map[string]Family {
	idx := make(map[string]Family)
	for _, fam := range Families {
		for _, member := range fam.Members {
			idx[member] = fam
		}
	}
	return idx
}

func buildFamilyCodeIndex() map[string]Family {
	idx := make(map[string]Family, len(Families))
	for _, fam := range Families {
		idx[fam.Code] = fam
	}
	return idx
}

// LookupFamily returns the family a bare allergen code belongs to, if any.
func LookupFamily(code string) (Family, bool) {
	fam, ok := familyByMember[code]
	return fam, ok
}
