package routes

import (
	"net/http"

	"github.com/kevxviikw/noted/internal/app"
	"github.com/kevxviikw/noted/internal/handler"
	"github.com/kevxviikw/noted/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler()
	auth := handler.NewAuthHandler(app.AuthService)
	goal := handler.NewGoalHandler(app.GoalService)
	mark := handler.NewMarkHandler(app.MarkService)
	stats := handler.NewStatsHandler(app.StatsService)
	static := handler.NewStaticHandler(app.Cfg.StaticDir)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/health", health.Health)

	// Token exchange (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/auth/token", rateLimiter(auth.Token))

	// Static files (registered last in precedence: /api/* patterns win)
	mux.HandleFunc("GET /{$}", static.Index)
	mux.Handle("GET /static/", static.Files())

	// ============================================================================
	// PROTECTED ROUTES (open when no API token is configured)
	// ============================================================================

	requireAuth := middleware.RequireAuth(app.AuthService)

	// Goals
	mux.HandleFunc("GET /api/goals", requireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", requireAuth(goal.Create))
	mux.HandleFunc("PATCH /api/goals/{id}", requireAuth(goal.Rename))
	mux.HandleFunc("DELETE /api/goals/{id}", requireAuth(goal.Delete))

	// Marks
	mux.HandleFunc("GET /api/goals/{id}/marks", requireAuth(mark.List))
	mux.HandleFunc("PUT /api/goals/{id}/marks/{day}", requireAuth(mark.Set))

	// Stats
	mux.HandleFunc("GET /api/goals/{id}/stats", requireAuth(stats.Get))

	return middleware.Chain(mux,
		middleware.RequestLogging,
	)
}
