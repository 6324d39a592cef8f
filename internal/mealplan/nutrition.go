package mealplan

import "math"

// Average macro values assumed for a dinner that does not declare its own.
const (
	defaultCalories = 600
	defaultProtein  = 20
	defaultCarbs    = 60
	defaultFat      = 25
)

// SummarizeNutrition averages the macro values of all dinners in the plan into
// a per-day summary, rounded to the nearest integer. Dinners without macro
// data count with the documented defaults. A plan without any dinner yields an
// all-zero summary.
func SummarizeNutrition(plan MealPlan) NutritionSummary {
	var calories, protein, carbs, fat float64
	days := 0

	for _, day := range plan {
		if day.Dinner == nil {
			continue
		}
		calories += orDefault(day.Dinner.Calories, defaultCalories)
		protein += orDefault(day.Dinner.Protein, defaultProtein)
		carbs += orDefault(day.Dinner.Carbs, defaultCarbs)
		fat += orDefault(day.Dinner.Fat, defaultFat)
		days++
	}

	if days == 0 {
		return NutritionSummary{}
	}

	n := float64(days)
	return NutritionSummary{
		TotalCalories: int(math.Round(calories / n)),
		TotalProtein:  int(math.Round(protein / n)),
		TotalCarbs:    int(math.Round(carbs / n)),
		TotalFat:      int(math.Round(fat / n)),
	}
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
