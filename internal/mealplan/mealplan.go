package mealplan

// Ingredient is a single recipe ingredient. Two ingredients are merged in the
// shopping list iff both name and unit match exactly.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Meal is a generated recipe. Meals are immutable once generated; only the
// generation flow creates them. The macro fields are optional in the model
// output, zero means "not provided".
type Meal struct {
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Ingredients     []Ingredient `json:"ingredients"`
	Instructions    []string     `json:"instructions"`
	PreparationTime string       `json:"preparationTime"`
	Cuisine         string       `json:"cuisine"`
	DietaryInfo     []string     `json:"dietaryInfo"`

	Calories float64 `json:"calories,omitempty"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
}

// Day holds the dinner for a single date. The planner only fills the dinner
// slot; a nil dinner is skipped by all derived views.
type Day struct {
	Date   string `json:"date"`
	Dinner *Meal  `json:"dinner"`
}

// MealPlan is a sequence of days in generation order, not necessarily sorted
// by date.
type MealPlan []Day

// NutritionSummary is the daily average of the plan's macro values.
type NutritionSummary struct {
	TotalCalories int `json:"totalCalories"`
	TotalProtein  int `json:"totalProtein"`
	TotalCarbs    int `json:"totalCarbs"`
	TotalFat      int `json:"totalFat"`
}

// CategoryItems is one category group of the derived shopping list.
type CategoryItems struct {
	Category string       `json:"category"`
	Items    []Ingredient `json:"items"`
}
