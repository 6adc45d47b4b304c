package routes

import (
	"net/http"

	"github.com/meditactive/meditactive/internal/app"
	"github.com/meditactive/meditactive/internal/handler"
	"github.com/meditactive/meditactive/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.Cfg)
	auth := handler.NewAuthHandler(app.AuthService)
	user := handler.NewUserHandler(app.UserService)
	goal := handler.NewGoalHandler(app.GoalService)
	interval := handler.NewIntervalHandler(app.IntervalService, app.CompletionService)
	diary := handler.NewDiaryHandler(app.DiaryService)
	meditation := handler.NewMeditationHandler(app.MeditationService)
	donation := handler.NewDonationHandler(app.DonationService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /", home.Index)
	mux.HandleFunc("GET /health", home.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow)

	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(auth.Me))

	// Users
	mux.HandleFunc("GET /api/users", user.List)
	mux.HandleFunc("GET /api/users/{id}", user.Get)
	mux.HandleFunc("PATCH /api/users/{id}", user.Update)
	mux.HandleFunc("DELETE /api/users/{id}", user.Delete)
	mux.HandleFunc("POST /api/users/{id}/coins", middleware.RequireAuth(user.AdjustCoins))

	// Goals
	mux.HandleFunc("GET /api/goals", goal.List)
	mux.HandleFunc("GET /api/goals/by-category", goal.ByCategory)
	mux.HandleFunc("GET /api/goals/{id}", goal.Get)
	mux.HandleFunc("POST /api/goals", goal.Create)
	mux.HandleFunc("PATCH /api/goals/{id}", goal.Update)
	mux.HandleFunc("DELETE /api/goals/{id}", goal.Delete)

	// Intervals
	mux.HandleFunc("GET /api/intervals", interval.List)
	mux.HandleFunc("GET /api/intervals/{id}", interval.Get)
	mux.HandleFunc("POST /api/intervals", interval.Create)
	mux.HandleFunc("PATCH /api/intervals/{id}", interval.Update)
	mux.HandleFunc("DELETE /api/intervals/{id}", interval.Delete)
	mux.HandleFunc("POST /api/intervals/{id}/goals/{goalId}", interval.AttachGoal)
	mux.HandleFunc("DELETE /api/intervals/{id}/goals/{goalId}", interval.DetachGoal)
	mux.HandleFunc("POST /api/intervals/{id}/goals/{goalId}/complete", middleware.RequireAuth(interval.Complete))

	// ============================================================================
	// AUTHENTICATED ROUTES
	// ============================================================================

	// Diary
	mux.HandleFunc("GET /api/diary", middleware.RequireAuth(diary.List))
	mux.HandleFunc("GET /api/diary/{id}", middleware.RequireAuth(diary.Get))
	mux.HandleFunc("POST /api/diary", middleware.RequireAuth(diary.Create))
	mux.HandleFunc("PATCH /api/diary/{id}", middleware.RequireAuth(diary.Update))
	mux.HandleFunc("DELETE /api/diary/{id}", middleware.RequireAuth(diary.Delete))

	// Meditation
	mux.HandleFunc("POST /api/meditation/sessions", middleware.RequireAuth(meditation.SaveSession))
	mux.HandleFunc("GET /api/meditation/sessions", middleware.RequireAuth(meditation.List))
	mux.HandleFunc("GET /api/meditation/stats", middleware.RequireAuth(meditation.Stats))

	// Donations
	mux.HandleFunc("POST /api/donations", middleware.RequireAuth(donation.Donate))
	mux.HandleFunc("GET /api/donations", middleware.RequireAuth(donation.List))
	mux.HandleFunc("GET /api/donations/stats", middleware.RequireAuth(donation.Stats))

	// Global middleware
	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService),
	)
}
