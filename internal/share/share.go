// Package share encodes a simplified meal plan into a stateless share token.
// The whole plan round-trips through the URL; nothing is stored server-side.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"weekly-dinner-planner/internal/mealplan"
)

// ErrInvalidToken marks a share token that is not valid base64url JSON.
var ErrInvalidToken = errors.New("invalid share token")

// Meal is the reduced dinner shape embedded in a share link.
type Meal struct {
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	Ingredients     []mealplan.Ingredient `json:"ingredients"`
	Instructions    []string              `json:"instructions"`
	PreparationTime string                `json:"preparationTime"`
	Cuisine         string                `json:"cuisine"`
}

// Day is one shared day: date plus its dinner.
type Day struct {
	Date   string `json:"date"`
	Dinner Meal   `json:"dinner"`
}

// Encode reduces a plan to its shareable fields and encodes it as
// base64url-encoded JSON. Days without a dinner are skipped.
func Encode(plan mealplan.MealPlan) (string, error) {
	shared := make([]Day, 0, len(plan))
	for _, day := range plan {
		if day.Dinner == nil {
			continue
		}
		shared = append(shared, Day{
			Date: day.Date,
			Dinner: Meal{
				Name:            day.Dinner.Name,
				Description:     day.Dinner.Description,
				Ingredients:     day.Dinner.Ingredients,
				Instructions:    day.Dinner.Instructions,
				PreparationTime: day.Dinner.PreparationTime,
				Cuisine:         day.Dinner.Cuisine,
			},
		})
	}

	data, err := json.Marshal(shared)
	if err != nil {
		return "", fmt.Errorf("failed to marshal shared plan: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reverses Encode. Corrupt tokens yield ErrInvalidToken.
func Decode(token string) ([]Day, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var shared []Day
	if err := json.Unmarshal(data, &shared); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return shared, nil
}
