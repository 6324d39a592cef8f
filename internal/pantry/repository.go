package pantry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository persists the per-user pantry document.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new pantry repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Load returns the user's pantry. A user without a pantry gets an empty one.
func (r *Repository) Load(ctx context.Context, userID string) (Pantry, error) {
	var (
		items     string
		createdAt time.Time
		updatedAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT items, created_at, updated_at FROM pantry WHERE user_id = ?`, userID,
	).Scan(&items, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return Pantry{Items: []Item{}}, nil
	}
	if err != nil {
		return Pantry{}, fmt.Errorf("failed to load pantry: %w", err)
	}

	var parsed []Item
	if err := json.Unmarshal([]byte(items), &parsed); err != nil {
		return Pantry{}, fmt.Errorf("failed to unmarshal pantry items: %w", err)
	}
	return Pantry{Items: parsed, CreatedAt: createdAt, UpdatedAt: updatedAt}, nil
}

// Update overwrites the pantry with the given items, filtering out malformed
// entries first. Creates the document on first write.
func (r *Repository) Update(ctx context.Context, userID string, items []Item) error {
	valid := ValidItems(items)
	data, err := json.Marshal(valid)
	if err != nil {
		return fmt.Errorf("failed to marshal pantry items: %w", err)
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pantry (user_id, items, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET items = excluded.items, updated_at = excluded.updated_at
	`, userID, string(data), now, now)
	if err != nil {
		return fmt.Errorf("failed to update pantry: %w", err)
	}
	return nil
}
