package mealplan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"weekly-dinner-planner/internal/prefs"
)

// SavedPlan is a named meal-plan snapshot together with the preferences it was
// generated with.
type SavedPlan struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	CreatedAt   time.Time         `json:"createdAt"`
	Plan        MealPlan          `json:"mealPlan"`
	Preferences prefs.Preferences `json:"preferences"`
}

// Repository persists explicitly saved meal-plan snapshots per user.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new saved-plan repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores a new snapshot and returns its id. The display name is derived
// from the current date; existing snapshots are never overwritten.
func (r *Repository) Save(ctx context.Context, userID string, plan MealPlan, p prefs.Preferences) (string, error) {
	planData, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("failed to marshal meal plan: %w", err)
	}
	prefsData, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal preferences: %w", err)
	}

	now := time.Now()
	id := uuid.NewString()
	name := fmt.Sprintf("Essensplan vom %s", now.Format("02.01.2006"))

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO meal_plans (id, user_id, name, plan_data, preferences_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, userID, name, string(planData), string(prefsData), now.UTC())
	if err != nil {
		return "", fmt.Errorf("failed to save meal plan: %w", err)
	}
	return id, nil
}

// List returns all snapshots of a user, most recent first. Records without a
// creation timestamp sort as if created now.
func (r *Repository) List(ctx context.Context, userID string) ([]SavedPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, plan_data, preferences_data, created_at
		FROM meal_plans
		WHERE user_id = ?
		ORDER BY COALESCE(created_at, CURRENT_TIMESTAMP) DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []SavedPlan
	for rows.Next() {
		plan, err := scanSavedPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read meal plan rows: %w", err)
	}
	return plans, nil
}

// Get returns a single snapshot. The stored plan is returned verbatim; the
// stored preferences are merged over the defaults so missing fields never
// surface as zero values. Returns nil when the id does not exist.
func (r *Repository) Get(ctx context.Context, userID, id string) (*SavedPlan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, plan_data, preferences_data, created_at
		FROM meal_plans
		WHERE user_id = ? AND id = ?
	`, userID, id)

	plan, err := scanSavedPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Delete removes a snapshot. Deleting an unknown id is a no-op success.
func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM meal_plans WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSavedPlan(row rowScanner) (SavedPlan, error) {
	var (
		plan      SavedPlan
		planData  string
		prefsData string
		createdAt sql.NullTime
	)
	if err := row.Scan(&plan.ID, &plan.Name, &planData, &prefsData, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return SavedPlan{}, err
		}
		return SavedPlan{}, fmt.Errorf("failed to scan meal plan row: %w", err)
	}

	if err := json.Unmarshal([]byte(planData), &plan.Plan); err != nil {
		return SavedPlan{}, fmt.Errorf("failed to unmarshal stored meal plan: %w", err)
	}

	var rawPrefs map[string]any
	if err := json.Unmarshal([]byte(prefsData), &rawPrefs); err != nil {
		rawPrefs = nil
	}
	plan.Preferences = prefs.Decode(rawPrefs)

	if createdAt.Valid {
		plan.CreatedAt = createdAt.Time
	} else {
		plan.CreatedAt = time.Now()
	}
	return plan, nil
}
