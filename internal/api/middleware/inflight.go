package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// InFlightGuard enforces at most one in-flight operation per (user, action)
// pair. A second request while the first is still running gets a 409; the
// slot is released in a deferred block regardless of the handler's outcome.
type InFlightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewInFlightGuard creates an empty guard.
func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{active: make(map[string]struct{})}
}

func (g *InFlightGuard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

func (g *InFlightGuard) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}

// Guard wraps a route with the per-user guard for the given action. Must run
// after the auth middleware so the user id is available.
func (g *InFlightGuard) Guard(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(ContextUserID) + ":" + action
		if !g.acquire(key) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"message": "Diese Aktion läuft bereits. Bitte warte einen Moment.",
			})
			return
		}
		defer g.release(key)
		c.Next()
	}
}
