package mealplan

import "strings"

// CategoryOther is the fallback category for ingredients matching no keyword.
const CategoryOther = "Sonstiges"

// categoryTable maps shopping-list categories to their keyword lists. Order is
// significant: the first category with a matching keyword wins.
var categoryTable = []struct {
	category string
	keywords []string
}{
	{"Gemüse", []string{"karotte", "tomate", "gurke", "salat", "zwiebel"}},
	{"Obst", []string{"apfel", "banane", "orange", "zitrone"}},
	{"Proteine", []string{"fleisch", "fisch", "tofu", "hähnchen", "ei"}},
	{"Milchprodukte", []string{"milch", "käse", "joghurt", "sahne"}},
	{"Getreide", []string{"reis", "nudel", "brot", "mehl"}},
	{"Gewürze", []string{"salz", "pfeffer", "gewürz"}},
}

// Categorize returns the shopping-list category for an ingredient name.
// Matching is case-insensitive substring matching against the keyword table;
// unmatched names fall back to CategoryOther.
func Categorize(ingredientName string) string {
	lower := strings.ToLower(ingredientName)
	for _, entry := range categoryTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}
	return CategoryOther
}
