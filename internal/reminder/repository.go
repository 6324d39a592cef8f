package reminder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository persists reminders and ratings.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new reminder repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add creates a reminder and returns its id.
func (r *Repository) Add(ctx context.Context, userID, mealID string, reminderTime time.Time, notificationType string) (string, error) {
	if !ValidType(notificationType) {
		return "", fmt.Errorf("unknown notification type %q", notificationType)
	}

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (id, user_id, meal_id, reminder_time, notification_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, userID, mealID, reminderTime.UTC(), notificationType, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to add reminder: %w", err)
	}
	return id, nil
}

// List returns all reminders of a user, soonest first.
func (r *Repository) List(ctx context.Context, userID string) ([]Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, meal_id, reminder_time, notification_type, created_at
		FROM reminders
		WHERE user_id = ?
		ORDER BY reminder_time ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var rem Reminder
		if err := rows.Scan(&rem.ID, &rem.MealID, &rem.ReminderTime, &rem.NotificationType, &rem.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder row: %w", err)
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

// Delete removes a reminder. Deleting an unknown id is a no-op success.
func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reminders WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

// AddRating records a rating for a meal.
func (r *Repository) AddRating(ctx context.Context, userID, mealID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ratings (meal_id, user_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, mealID, userID, rating, comment, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add rating: %w", err)
	}
	return nil
}

// ListRatings returns all ratings for a meal, newest first.
func (r *Repository) ListRatings(ctx context.Context, mealID string) ([]Rating, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT meal_id, rating, COALESCE(comment, ''), created_at
		FROM ratings
		WHERE meal_id = ?
		ORDER BY created_at DESC
	`, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []Rating
	for rows.Next() {
		var rating Rating
		if err := rows.Scan(&rating.MealID, &rating.Rating, &rating.Comment, &rating.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}
