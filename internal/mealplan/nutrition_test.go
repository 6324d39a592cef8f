package mealplan

import "testing"

func TestSummarizeNutritionAverages(t *testing.T) {
	plan := MealPlan{
		{Date: "2026-08-20", Dinner: &Meal{Calories: 500, Protein: 30, Carbs: 50, Fat: 20}},
		{Date: "2026-08-21", Dinner: &Meal{Calories: 700, Protein: 40, Carbs: 70, Fat: 30}},
	}

	got := SummarizeNutrition(plan)
	want := NutritionSummary{TotalCalories: 600, TotalProtein: 35, TotalCarbs: 60, TotalFat: 25}
	if got != want {
		t.Errorf("SummarizeNutrition = %+v, want %+v", got, want)
	}
}

func TestSummarizeNutritionUsesDefaultsForMissingMacros(t *testing.T) {
	plan := MealPlan{
		{Date: "2026-08-20", Dinner: &Meal{}},
	}

	got := SummarizeNutrition(plan)
	want := NutritionSummary{TotalCalories: 600, TotalProtein: 20, TotalCarbs: 60, TotalFat: 25}
	if got != want {
		t.Errorf("SummarizeNutrition = %+v, want %+v", got, want)
	}
}

func TestSummarizeNutritionRounds(t *testing.T) {
	plan := MealPlan{
		{Date: "2026-08-20", Dinner: &Meal{Calories: 500, Protein: 10, Carbs: 10, Fat: 10}},
		{Date: "2026-08-21", Dinner: &Meal{Calories: 501, Protein: 10, Carbs: 10, Fat: 10}},
	}

	if got := SummarizeNutrition(plan).TotalCalories; got != 501 {
		t.Errorf("TotalCalories = %d, want 501 (round half up)", got)
	}
}

func TestSummarizeNutritionEmptyPlan(t *testing.T) {
	plans := []MealPlan{
		nil,
		{{Date: "2026-08-20", Dinner: nil}},
	}
	for _, plan := range plans {
		if got := SummarizeNutrition(plan); got != (NutritionSummary{}) {
			t.Errorf("SummarizeNutrition(%+v) = %+v, want zero summary", plan, got)
		}
	}
}
