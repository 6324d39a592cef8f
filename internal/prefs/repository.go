package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository persists the per-user preference document.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new preferences repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Load returns the stored preferences for a user. If no document exists yet,
// one is created with the defaults and returned. Stored documents are decoded
// through Decode, so missing or malformed fields fall back to defaults.
func (r *Repository) Load(ctx context.Context, userID string) (Preferences, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM preferences WHERE user_id = ?`, userID,
	).Scan(&data)

	if err == sql.ErrNoRows {
		defaults := Default()
		if err := r.insert(ctx, userID, defaults); err != nil {
			return Preferences{}, err
		}
		return defaults, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		// A corrupt document is replaced by the defaults on the next Update;
		// loading never fails because of it.
		return Default(), nil
	}
	return Decode(raw), nil
}

// Update overwrites the stored document with the given preferences. A single
// upsert statement, so a failed update leaves the previous document intact.
func (r *Repository) Update(ctx context.Context, userID string, p Preferences) error {
	p = Normalize(p)
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, userID, string(data), now, now)
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}
	return nil
}

func (r *Repository) insert(ctx context.Context, userID string, p Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`, userID, string(data), now, now)
	if err != nil {
		return fmt.Errorf("failed to create preferences: %w", err)
	}
	return nil
}
