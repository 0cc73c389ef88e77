package search

// synonymGroups lists ingredient spellings that should match each
// other during menu search. Every term in a group expands to every
// other term in the same group.
var synonymGroups = [][]string{
	{"eggplant", "aubergine", "brinjal"},
	{"zucchini", "courgette"},
	{"cilantro", "coriander"},
	{"arugula", "rocket"},
	{"chickpea", "garbanzo"},
	{"scallion", "green onion", "spring onion"},
	{"beet", "beetroot"},
	{"shrimp", "prawn"},
	{"bell pepper", "capsicum", "sweet pepper"},
	{"mushroom", "shiitake", "portobello", "cremini", "porcini", "chanterelle"},
	{"corn", "maize", "sweetcorn"},
	{"snow pea", "mangetout"},
	{"endive", "chicory"},
	{"garbanzo bean", "chickpea"},
	{"fava bean", "broad bean"},
}

var synonymIndex = buildSynonymIndex()

func buildSynonymIndex() map[string][]string {
	idx := make(map[string][]string)
	for _, group := range synonymGroups {
		for _, term := range group {
			key := stem(term)
			for _, other := range group {
				if other == term {
					continue
				}
				if !contains(idx[key], other) {
					idx[key] = append(idx[key], other)
				}
			}
		}
	}
	return idx
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
