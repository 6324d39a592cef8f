package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-dinner-planner/internal/api/middleware"
	"weekly-dinner-planner/internal/reminder"
)

// ReminderHandler serves meal reminders and recipe ratings.
type ReminderHandler struct {
	repo *reminder.Repository
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(repo *reminder.Repository) *ReminderHandler {
	return &ReminderHandler{repo: repo}
}

type reminderRequest struct {
	MealID           string    `json:"mealId" binding:"required"`
	ReminderTime     time.Time `json:"reminderTime" binding:"required"`
	NotificationType string    `json:"notificationType" binding:"required"`
}

// Add handles POST /reminders.
func (h *ReminderHandler) Add(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil || !reminder.ValidType(req.NotificationType) {
		message(c, http.StatusBadRequest, "Ungültige Erinnerung")
		return
	}

	userID := middleware.UserID(c)
	id, err := h.repo.Add(c.Request.Context(), userID, req.MealID, req.ReminderTime, req.NotificationType)
	if err != nil {
		zap.L().Error("failed to add reminder", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Die Erinnerung konnte nicht gespeichert werden")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// List handles GET /reminders, soonest first.
func (h *ReminderHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	reminders, err := h.repo.List(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to list reminders", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Laden der Erinnerungen")
		return
	}
	if reminders == nil {
		reminders = []reminder.Reminder{}
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// Delete handles DELETE /reminders/:id. Unknown ids succeed.
func (h *ReminderHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.repo.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		zap.L().Error("failed to delete reminder", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Die Erinnerung konnte nicht gelöscht werden")
		return
	}
	c.Status(http.StatusNoContent)
}

type ratingRequest struct {
	MealID  string `json:"mealId" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// AddRating handles POST /ratings.
func (h *ReminderHandler) AddRating(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Rating < 1 || req.Rating > 5 {
		message(c, http.StatusBadRequest, "Die Bewertung muss zwischen 1 und 5 liegen")
		return
	}

	userID := middleware.UserID(c)
	if err := h.repo.AddRating(c.Request.Context(), userID, req.MealID, req.Rating, req.Comment); err != nil {
		zap.L().Error("failed to add rating", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Die Bewertung konnte nicht gespeichert werden")
		return
	}
	c.Status(http.StatusCreated)
}

// ListRatings handles GET /ratings/:mealId, newest first.
func (h *ReminderHandler) ListRatings(c *gin.Context) {
	ratings, err := h.repo.ListRatings(c.Request.Context(), c.Param("mealId"))
	if err != nil {
		zap.L().Error("failed to list ratings", zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Laden der Bewertungen")
		return
	}
	if ratings == nil {
		ratings = []reminder.Rating{}
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}
