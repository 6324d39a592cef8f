package planner

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"weekly-dinner-planner/internal/mealplan"
	"weekly-dinner-planner/internal/prefs"
)

// SystemInstruction is the fixed instruction sent with every generation
// request, describing the desired level of recipe detail.
const SystemInstruction = `Du bist ein erfahrener Chefkoch. Erstelle einen detaillierten Essensplan mit präzisen Rezepten.
Für jedes Rezept:
- Gib genaue Mengenangaben
- Beschreibe jeden Zubereitungsschritt ausführlich
- Füge Kochtipps und wichtige Hinweise hinzu
- Erkläre spezielle Techniken
- Nenne konkrete Garzeiten und Temperaturen
- Beschreibe die gewünschte Konsistenz/das gewünschte Ergebnis

Strukturiere die Antwort als JSON-Objekt mit dem vorgegebenen Format. Sei präzise und detailliert in den Anweisungen.`

// ErrMalformedResponse marks a generation response that is not valid JSON or
// does not carry a days array. Callers must not substitute an empty plan.
var ErrMalformedResponse = errors.New("malformed generation response")

//go:embed plan_prompt.md
var planPrompt string

var planPromptTmpl = template.Must(template.New("plan").Parse(planPrompt))

// BuildPrompt renders the generation prompt for the given preferences and
// planning period (7 or 14 days). Empty preference lists are rendered as
// explicit "no restriction" phrases rather than empty list artifacts.
func BuildPrompt(p prefs.Preferences, periodDays int) (string, error) {
	dietary := "Keine speziellen Ernährungseinschränkungen"
	if len(p.DietaryPreferences) > 0 {
		dietary = fmt.Sprintf("Ernährungsform: %s", strings.Join(p.DietaryPreferences, ", "))
	}

	excluded := "Keine ausgeschlossenen Zutaten"
	if len(p.ExcludedIngredients) > 0 {
		excluded = fmt.Sprintf("Ausgeschlossene Zutaten: %s", strings.Join(p.ExcludedIngredients, ", "))
	}

	cuisine := strings.Join(p.Cuisine, ", ")
	if cuisine == "" {
		cuisine = "Keine Präferenz"
	}

	kidFriendly := "Keine Anforderung an Kinderfreundlichkeit"
	if p.IsKidFriendly {
		kidFriendly = "Kinderfreundlich"
	}

	data := struct {
		Days            int
		Dietary         string
		Cuisine         string
		PreparationTime string
		Difficulty      string
		KidFriendly     string
		Servings        int
		Excluded        string
	}{
		Days:            periodDays,
		Dietary:         dietary,
		Cuisine:         cuisine,
		PreparationTime: p.PreparationTime,
		Difficulty:      p.Difficulty,
		KidFriendly:     kidFriendly,
		Servings:        p.Servings,
		Excluded:        excluded,
	}

	var buf bytes.Buffer
	if err := planPromptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render plan prompt: %w", err)
	}
	return buf.String(), nil
}

// ParseResponse validates and parses a generation response into a MealPlan.
// It fails if the payload is not valid JSON or lacks a days array; a missing
// field is never silently turned into an empty plan.
func ParseResponse(raw string) (mealplan.MealPlan, error) {
	cleaned := stripCodeFence(raw)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	daysRaw, ok := probe["days"]
	if !ok {
		return nil, fmt.Errorf("%w: missing days field", ErrMalformedResponse)
	}

	var days mealplan.MealPlan
	if err := json.Unmarshal(daysRaw, &days); err != nil {
		return nil, fmt.Errorf("%w: days is not a valid sequence: %v", ErrMalformedResponse, err)
	}
	return days, nil
}

// stripCodeFence removes a markdown code fence some models wrap their JSON in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
