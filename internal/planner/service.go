// Package planner turns user preferences into a generation prompt, calls the
// text-generation provider and validates the returned plan.
package planner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"weekly-dinner-planner/internal/llm"
	"weekly-dinner-planner/internal/mealplan"
	"weekly-dinner-planner/internal/metrics"
	"weekly-dinner-planner/internal/prefs"
)

// HistorySaver records generated plans. Failures are logged, never fatal for
// the generation itself.
type HistorySaver interface {
	Save(ctx context.Context, userID string, plan mealplan.MealPlan, p prefs.Preferences) error
}

// MetricsRecorder persists per-generation execution metrics.
type MetricsRecorder interface {
	Record(ctx context.Context, m metrics.ExecutionMetric) error
}

// Service orchestrates plan generation.
type Service struct {
	textGen llm.TextGenerator
	history HistorySaver
	metrics MetricsRecorder
}

// NewService creates a new generation service. history and metrics may be nil.
func NewService(textGen llm.TextGenerator, history HistorySaver, metrics MetricsRecorder) *Service {
	return &Service{textGen: textGen, history: history, metrics: metrics}
}

// Generate builds the prompt for the given preferences, calls the provider and
// parses the result. On success the plan is appended to the user's history.
// The existing plan state of the caller is never touched on failure.
func (s *Service) Generate(ctx context.Context, userID string, p prefs.Preferences, periodDays int) (mealplan.MealPlan, error) {
	prompt, err := BuildPrompt(p, periodDays)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate meal plan: %w", err)
	}
	s.recordMetrics(ctx, resp.Usage, time.Since(start))

	plan, err := ParseResponse(resp.Content)
	if err != nil {
		return nil, err
	}

	if s.history != nil {
		if err := s.history.Save(ctx, userID, plan, p); err != nil {
			zap.L().Warn("failed to save meal plan to history",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}

	return plan, nil
}

func (s *Service) recordMetrics(ctx context.Context, usage llm.TokenUsage, latency time.Duration) {
	if s.metrics == nil {
		return
	}
	err := s.metrics.Record(ctx, metrics.ExecutionMetric{
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		LatencyMS:        latency.Milliseconds(),
	})
	if err != nil {
		zap.L().Warn("failed to record generation metrics", zap.Error(err))
	}
}
