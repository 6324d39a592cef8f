package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"weekly-dinner-planner/internal/auth"
)

// Context keys set by the auth middleware.
const (
	ContextUserID   = "user_id"
	ContextIdentity = "identity"
)

// Auth verifies the Bearer session token and stores the caller's identity in
// the request context.
func Auth(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Bitte melde dich an",
			})
			return
		}

		identity, err := tm.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Deine Sitzung ist abgelaufen. Bitte melde dich erneut an.",
			})
			return
		}

		c.Set(ContextUserID, identity.UID)
		c.Set(ContextIdentity, identity)
		c.Next()
	}
}

// UserID returns the authenticated user id from the context.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
