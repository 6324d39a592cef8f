package mealplan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"weekly-dinner-planner/internal/prefs"
)

// HistoryEntry is one automatically recorded generation result.
type HistoryEntry struct {
	ID          int64             `json:"id"`
	CreatedAt   time.Time         `json:"createdAt"`
	Plan        MealPlan          `json:"mealPlan"`
	Preferences prefs.Preferences `json:"preferences"`
}

// HistoryRepository records every generated plan, independent of the
// explicitly saved snapshots. Write-mostly; reads are limited to the most
// recent entries.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save appends a generation result to the user's history.
func (r *HistoryRepository) Save(ctx context.Context, userID string, plan MealPlan, p prefs.Preferences) error {
	planData, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}
	prefsData, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO meal_plan_history (user_id, plan_data, preferences_data, created_at)
		VALUES (?, ?, ?, ?)
	`, userID, string(planData), string(prefsData), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}
	return nil
}

// ListRecent returns the N most recent history entries for a user.
func (r *HistoryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, plan_data, preferences_data, created_at
		FROM meal_plan_history
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history for user %s: %w", userID, err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			entry     HistoryEntry
			planData  string
			prefsData string
		)
		if err := rows.Scan(&entry.ID, &planData, &prefsData, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal([]byte(planData), &entry.Plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history plan: %w", err)
		}
		var rawPrefs map[string]any
		if err := json.Unmarshal([]byte(prefsData), &rawPrefs); err != nil {
			rawPrefs = nil
		}
		entry.Preferences = prefs.Decode(rawPrefs)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return entries, nil
}
