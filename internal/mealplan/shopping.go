package mealplan

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// BuildShoppingList aggregates all dinner ingredients of a plan into a
// category-grouped shopping list. Within a category, ingredients with the same
// name and unit are merged by summing their amounts. Items are sorted by name;
// categories appear in the order they were first encountered. The input plan
// is not modified. An empty or dinner-less plan yields an empty list.
func BuildShoppingList(plan MealPlan) []CategoryItems {
	byCategory := make(map[string][]Ingredient)
	var order []string

	for _, day := range plan {
		if day.Dinner == nil {
			continue
		}
		for _, ing := range day.Dinner.Ingredients {
			category := Categorize(ing.Name)
			items, seen := byCategory[category]
			if !seen {
				order = append(order, category)
			}

			merged := false
			for i := range items {
				if items[i].Name == ing.Name && items[i].Unit == ing.Unit {
					items[i].Amount += ing.Amount
					merged = true
					break
				}
			}
			if !merged {
				items = append(items, ing)
			}
			byCategory[category] = items
		}
	}

	collator := collate.New(language.German)
	list := make([]CategoryItems, 0, len(order))
	for _, category := range order {
		items := byCategory[category]
		sort.SliceStable(items, func(i, j int) bool {
			return collator.CompareString(items[i].Name, items[j].Name) < 0
		})
		list = append(list, CategoryItems{Category: category, Items: items})
	}
	return list
}
