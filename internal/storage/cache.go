// Package storage provides a best-effort file cache for transient UI state:
// the active meal plan and the first-visit flag. It is never a source of
// truth; missing or corrupt entries fall back to empty state.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"weekly-dinner-planner/internal/mealplan"
)

// PlanCache is a file-based side cache keyed by user id.
type PlanCache struct {
	basePath string
}

// NewPlanCache creates a new PlanCache and ensures the base directory exists.
func NewPlanCache(basePath string) (*PlanCache, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", basePath, err)
	}
	return &PlanCache{basePath: basePath}, nil
}

// sanitize makes a user id safe for filenames.
func sanitize(id string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "..", "-")
	return replacer.Replace(id)
}

func (c *PlanCache) planPath(userID string) string {
	return filepath.Join(c.basePath, fmt.Sprintf("%s_activeplan.json", sanitize(userID)))
}

func (c *PlanCache) visitedPath(userID string) string {
	return filepath.Join(c.basePath, fmt.Sprintf("%s_visited", sanitize(userID)))
}

// SaveActivePlan caches the user's currently active plan. Failures are
// returned but callers may treat them as non-fatal.
func (c *PlanCache) SaveActivePlan(userID string, plan mealplan.MealPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal active plan: %w", err)
	}
	if err := os.WriteFile(c.planPath(userID), data, 0644); err != nil {
		return fmt.Errorf("failed to write active plan: %w", err)
	}
	return nil
}

// LoadActivePlan returns the cached active plan. A missing entry yields
// ok=false; a corrupt entry is removed and also yields ok=false.
func (c *PlanCache) LoadActivePlan(userID string) (mealplan.MealPlan, bool) {
	data, err := os.ReadFile(c.planPath(userID))
	if err != nil {
		return nil, false
	}

	var plan mealplan.MealPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		_ = os.Remove(c.planPath(userID))
		return nil, false
	}
	return plan, true
}

// ClearActivePlan removes the cached plan. Removing a missing entry is fine.
func (c *PlanCache) ClearActivePlan(userID string) {
	_ = os.Remove(c.planPath(userID))
}

// MarkVisited records that the user has opened the app before.
func (c *PlanCache) MarkVisited(userID string) error {
	if err := os.WriteFile(c.visitedPath(userID), []byte("1"), 0644); err != nil {
		return fmt.Errorf("failed to write visited flag: %w", err)
	}
	return nil
}

// HasVisited reports whether the user has opened the app before.
func (c *PlanCache) HasVisited(userID string) bool {
	_, err := os.Stat(c.visitedPath(userID))
	return err == nil
}
