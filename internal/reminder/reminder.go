// Package reminder persists meal reminders and recipe ratings.
package reminder

import "time"

// Notification types for a reminder.
const (
	TypePrep = "prep"
	TypeCook = "cook"
	TypeShop = "shop"
)

// Reminder is a scheduled notification for a meal.
type Reminder struct {
	ID               string    `json:"id"`
	MealID           string    `json:"mealId"`
	ReminderTime     time.Time `json:"reminderTime"`
	NotificationType string    `json:"notificationType"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ValidType reports whether t is a known notification type.
func ValidType(t string) bool {
	switch t {
	case TypePrep, TypeCook, TypeShop:
		return true
	}
	return false
}

// Rating is a user rating for a generated meal.
type Rating struct {
	MealID    string    `json:"mealId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
