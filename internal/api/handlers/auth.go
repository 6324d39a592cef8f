package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-dinner-planner/internal/api/middleware"
	"weekly-dinner-planner/internal/auth"
)

// AuthHandler exchanges a verified federated identity for a session token.
type AuthHandler struct {
	tokens *auth.TokenManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

type sessionRequest struct {
	UID         string `json:"uid" binding:"required"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// CreateSession handles POST /auth/session. The federated popup flow runs on
// the client against the external provider; the resulting identity is
// exchanged here for the API's own session token.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Anmeldung fehlgeschlagen")
		return
	}

	identity := auth.Identity{UID: req.UID, Email: req.Email, DisplayName: req.DisplayName}
	token, err := h.tokens.Issue(identity)
	if err != nil {
		zap.L().Error("failed to issue session token", zap.Error(err))
		message(c, http.StatusInternalServerError, "Anmeldung fehlgeschlagen")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  identity,
	})
}

// SignOut handles POST /auth/signout. Session tokens are stateless, so the
// server side only acknowledges; the client discards the token.
func (h *AuthHandler) SignOut(c *gin.Context) {
	zap.L().Info("user signed out", zap.String("user_id", middleware.UserID(c)))
	message(c, http.StatusOK, "Abgemeldet")
}
