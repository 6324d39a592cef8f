// Package pantry manages the per-user pantry document and the recipe
// suggestions derived from it.
package pantry

import (
	"fmt"
	"strings"
	"time"
)

// Item is a single pantry ingredient. ExpiryDate is optional.
type Item struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Unit       string  `json:"unit"`
	ExpiryDate string  `json:"expiryDate,omitempty"`
}

// Pantry is the single pantry document of a user.
type Pantry struct {
	Items     []Item    `json:"ingredients"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidItems filters out malformed entries before persisting. An item needs a
// non-empty name; amount and unit pass through as given.
func ValidItems(items []Item) []Item {
	valid := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		valid = append(valid, item)
	}
	return valid
}

// Suggestion is one recipe suggestion built from pantry ingredients.
type Suggestion struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	UsedIngredients       []string `json:"usedIngredients"`
	AdditionalIngredients []string `json:"additionalIngredients"`
	Instructions          []string `json:"instructions"`
}

// SuggestionPrompt renders the prompt asking for three recipe suggestions
// based on the pantry contents.
func SuggestionPrompt(items []Item) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	return fmt.Sprintf(`Erstelle 3 Rezeptvorschläge mit diesen Zutaten: %s

Antworte im folgenden JSON-Format:
{
  "suggestions": [
    {
      "name": "Name des Gerichts",
      "description": "Kurze Beschreibung",
      "usedIngredients": ["verwendete Zutat"],
      "additionalIngredients": ["zusätzlich benötigte Zutat"],
      "instructions": ["Schritt 1", "Schritt 2"]
    }
  ]
}`, strings.Join(names, ", "))
}
