package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"weekly-dinner-planner/internal/api"
	"weekly-dinner-planner/internal/auth"
	"weekly-dinner-planner/internal/config"
	"weekly-dinner-planner/internal/database"
	"weekly-dinner-planner/internal/llm"
	"weekly-dinner-planner/internal/mealplan"
	"weekly-dinner-planner/internal/metrics"
	"weekly-dinner-planner/internal/pantry"
	"weekly-dinner-planner/internal/pkg/logging"
	"weekly-dinner-planner/internal/planner"
	"weekly-dinner-planner/internal/prefs"
	"weekly-dinner-planner/internal/reminder"
	"weekly-dinner-planner/internal/storage"
)

// Execution metrics older than this are pruned at startup.
const metricsRetentionDays = 90

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.Init(cfg.App.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to init database: %w", err)
	}
	defer db.Close()

	cache, err := storage.NewPlanCache(cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to init plan cache: %w", err)
	}

	ctx := context.Background()
	textGen, err := newTextGenerator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to init generation client: %w", err)
	}
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	prefsRepo := prefs.NewRepository(db.SQL)
	plansRepo := mealplan.NewRepository(db.SQL)
	historyRepo := mealplan.NewHistoryRepository(db.SQL)
	pantryRepo := pantry.NewRepository(db.SQL)
	reminderRepo := reminder.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	// Old metric rows only skew the usage view; prune them once per start.
	go func() {
		deleted, err := metricsStore.Cleanup(context.Background(), metricsRetentionDays)
		if err != nil {
			zap.L().Warn("failed to clean up execution metrics", zap.Error(err))
			return
		}
		if deleted > 0 {
			zap.L().Info("cleaned up execution metrics", zap.Int64("deleted", deleted))
		}
	}()

	plannerSvc := planner.NewService(textGen, historyRepo, metricsStore)

	router := api.NewRouter(api.Deps{
		Config:    cfg,
		DB:        db.SQL,
		Tokens:    tokens,
		TextGen:   textGen,
		Planner:   plannerSvc,
		Prefs:     prefsRepo,
		Plans:     plansRepo,
		History:   historyRepo,
		Pantry:    pantryRepo,
		Reminders: reminderRepo,
		Cache:     cache,
		Metrics:   metricsStore,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server starting", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	zap.L().Info("server stopped")
	return nil
}

// newTextGenerator prefers Gemini when its key is configured and falls back to
// Groq otherwise. Config validation guarantees at least one key.
func newTextGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, error) {
	if cfg.Gemini.APIKey != "" {
		return llm.NewGeminiClient(ctx, cfg, planner.SystemInstruction)
	}
	return llm.NewGroqClient(cfg, planner.SystemInstruction), nil
}
