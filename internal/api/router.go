// Package api assembles the HTTP surface of the planner.
package api

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"weekly-dinner-planner/internal/api/handlers"
	"weekly-dinner-planner/internal/api/middleware"
	"weekly-dinner-planner/internal/auth"
	"weekly-dinner-planner/internal/config"
	"weekly-dinner-planner/internal/llm"
	"weekly-dinner-planner/internal/mealplan"
	"weekly-dinner-planner/internal/metrics"
	"weekly-dinner-planner/internal/pantry"
	"weekly-dinner-planner/internal/planner"
	"weekly-dinner-planner/internal/prefs"
	"weekly-dinner-planner/internal/reminder"
	"weekly-dinner-planner/internal/storage"
)

// Deps carries everything the router needs to wire the handlers.
type Deps struct {
	Config    *config.Config
	DB        *sql.DB
	Tokens    *auth.TokenManager
	TextGen   llm.TextGenerator
	Planner   *planner.Service
	Prefs     *prefs.Repository
	Plans     *mealplan.Repository
	History   *mealplan.HistoryRepository
	Pantry    *pantry.Repository
	Reminders *reminder.Repository
	Cache     *storage.PlanCache
	Metrics   *metrics.Store
}

// NewRouter builds the gin engine with all middleware and routes.
func NewRouter(deps Deps) *gin.Engine {
	if !deps.Config.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(requestid.New())
	r.Use(middleware.Logger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if deps.Config.RateLimit.Enabled {
		r.Use(middleware.RateLimit(deps.Config.RateLimit.Requests, deps.Config.RateLimit.Window))
	}

	authHandler := handlers.NewAuthHandler(deps.Tokens)
	prefsHandler := handlers.NewPrefsHandler(deps.Prefs)
	planHandler := handlers.NewPlanHandler(deps.Planner, deps.Prefs, deps.Plans, deps.History, deps.Cache)
	deriveHandler := handlers.NewDeriveHandler()
	pantryHandler := handlers.NewPantryHandler(deps.Pantry, deps.TextGen)
	reminderHandler := handlers.NewReminderHandler(deps.Reminders)
	metricsHandler := handlers.NewMetricsHandler(deps.Metrics)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	guard := middleware.NewInFlightGuard()

	r.GET("/health", healthHandler.Check)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/session", authHandler.CreateSession)

		// Shared plans are public: the token carries the plan.
		v1.GET("/shared/:token", deriveHandler.Shared)

		authed := v1.Group("")
		authed.Use(middleware.Auth(deps.Tokens))
		{
			authed.POST("/auth/signout", authHandler.SignOut)

			authed.GET("/preferences", prefsHandler.Get)
			authed.PUT("/preferences", prefsHandler.Update)

			authed.POST("/plans/generate", guard.Guard("generate"), planHandler.Generate)
			authed.POST("/plans", guard.Guard("save"), planHandler.Save)
			authed.GET("/plans", planHandler.List)
			authed.GET("/plans/history", planHandler.History)
			authed.GET("/plans/:id", planHandler.Get)
			authed.DELETE("/plans/:id", planHandler.Delete)

			authed.GET("/active-plan", planHandler.GetActive)
			authed.PUT("/active-plan", planHandler.PutActive)
			authed.DELETE("/active-plan", planHandler.DeleteActive)

			authed.GET("/first-visit", planHandler.FirstVisit)
			authed.POST("/first-visit", planHandler.MarkVisited)

			authed.POST("/shopping-list", deriveHandler.ShoppingList)
			authed.POST("/shopping-list/pdf", deriveHandler.ShoppingListPDF)
			authed.POST("/nutrition", deriveHandler.Nutrition)
			authed.POST("/share", deriveHandler.Share)

			authed.GET("/pantry", pantryHandler.Get)
			authed.PUT("/pantry", pantryHandler.Update)
			authed.POST("/pantry/suggestions", guard.Guard("suggest"), pantryHandler.Suggest)

			authed.POST("/reminders", reminderHandler.Add)
			authed.GET("/reminders", reminderHandler.List)
			authed.DELETE("/reminders/:id", reminderHandler.Delete)

			authed.POST("/ratings", reminderHandler.AddRating)
			authed.GET("/ratings/:mealId", reminderHandler.ListRatings)

			authed.GET("/usage", metricsHandler.DailyUsage)
		}
	}

	return r
}
