// Package prefs holds the per-user planning preferences and the single
// validating decoder used at every load site. The persisted document is
// schema-less, so every field is coerced defensively instead of trusted.
package prefs

// Allowed servings range.
const (
	MinServings = 1
	MaxServings = 12
)

// Preferences is the per-user planning preference document. One document per
// user; created with defaults on first load and mutated in place afterwards.
type Preferences struct {
	DietaryPreferences  []string `json:"dietaryPreferences"`
	Cuisine             []string `json:"cuisine"`
	PreparationTime     string   `json:"preparationTime"`
	Difficulty          string   `json:"difficulty"`
	IsKidFriendly       bool     `json:"isKidFriendly"`
	Servings            int      `json:"servings"`
	ExcludedIngredients []string `json:"excludedIngredients"`
}

// Default returns the preferences a new user starts with.
func Default() Preferences {
	return Preferences{
		DietaryPreferences:  []string{},
		Cuisine:             []string{},
		PreparationTime:     "30",
		Difficulty:          "medium",
		IsKidFriendly:       false,
		Servings:            4,
		ExcludedIngredients: []string{},
	}
}

// Decode builds Preferences from a raw document, coercing each field to its
// expected type and falling back to the defaults for anything missing or
// malformed. Stored values always pass through here, never straight into the
// struct.
func Decode(raw map[string]any) Preferences {
	p := Default()
	if raw == nil {
		return p
	}

	p.DietaryPreferences = stringSlice(raw["dietaryPreferences"])
	p.Cuisine = stringSlice(raw["cuisine"])
	if s := stringValue(raw["preparationTime"]); s != "" {
		p.PreparationTime = s
	}
	if d, ok := raw["difficulty"].(string); ok {
		switch d {
		case "easy", "medium", "hard":
			p.Difficulty = d
		}
	}
	p.IsKidFriendly = boolValue(raw["isKidFriendly"])
	if n, ok := intValue(raw["servings"]); ok {
		p.Servings = clampServings(n)
	}
	p.ExcludedIngredients = stringSlice(raw["excludedIngredients"])

	return p
}

// Normalize clamps a preferences object coming from the API into its valid
// ranges. Returns the normalized copy.
func Normalize(p Preferences) Preferences {
	if p.DietaryPreferences == nil {
		p.DietaryPreferences = []string{}
	}
	if p.Cuisine == nil {
		p.Cuisine = []string{}
	}
	if p.ExcludedIngredients == nil {
		p.ExcludedIngredients = []string{}
	}
	if p.PreparationTime == "" {
		p.PreparationTime = "30"
	}
	switch p.Difficulty {
	case "easy", "medium", "hard":
	default:
		p.Difficulty = "medium"
	}
	p.Servings = clampServings(p.Servings)
	return p
}

func clampServings(n int) int {
	if n < MinServings {
		return 4
	}
	if n > MaxServings {
		return MaxServings
	}
	return n
}

func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	default:
		return ""
	}
}

func boolValue(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	default:
		return false
	}
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
