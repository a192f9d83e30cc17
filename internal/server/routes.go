package server

import (
	"context"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"qnalinks/internal/db"
	"qnalinks/internal/handlers"
	"qnalinks/internal/handlers/api"
	"qnalinks/internal/metrics"
	"qnalinks/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB) error {
	metrics.Init(database)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(database)

	// Initialize page handlers
	authHandler := handlers.NewAuthHandler(database, s.Cfg)
	dashboardHandler := handlers.NewDashboardHandler(database, s.Cfg)
	submitHandler := handlers.NewSubmitHandler(database, s.Cfg)

	// Landing page with signup/login form
	s.App.Get("/", authMiddleware.OptionalUser, authHandler.ShowLogin)
	s.App.Post("/login", authHandler.Login)
	s.App.Post("/logout", authHandler.Logout)

	// Owner dashboard
	s.App.Get("/dashboard", authMiddleware.RequireUser, dashboardHandler.Show)
	s.App.Post("/dashboard/links", authMiddleware.RequireUser, dashboardHandler.CreateLink)
	s.App.Get("/dashboard/links/:slug", authMiddleware.RequireUser, dashboardHandler.ShowLink)
	s.App.Post("/dashboard/links/:slug/delete", authMiddleware.RequireUser, dashboardHandler.DeleteLink)
	s.App.Post("/dashboard/questions/:id/answered", authMiddleware.RequireUser, dashboardHandler.SetAnswered)
	s.App.Post("/dashboard/questions/:id/favorite", authMiddleware.RequireUser, dashboardHandler.ToggleFavorite)
	s.App.Post("/dashboard/questions/:id/delete", authMiddleware.RequireUser, dashboardHandler.DeleteQuestion)

	// Public submission page, reached via a shared slug
	s.App.Get("/q/:slug", submitHandler.Show)
	s.App.Post("/q/:slug", submitHandler.Create)

	// JSON API
	userHandler := api.NewUserHandler(database)
	linkHandler := api.NewLinkHandler(database)
	questionHandler := api.NewQuestionHandler(database)
	healthHandler := api.NewHealthHandler(database)

	apiGroup := s.App.Group("/api")
	apiGroup.Post("/users", userHandler.CreateOrLogin)
	apiGroup.Get("/users", userHandler.Get)

	apiGroup.Get("/links", linkHandler.List)
	apiGroup.Post("/links", linkHandler.Create)
	apiGroup.Get("/links/:slug", linkHandler.Get)
	apiGroup.Delete("/links/:slug", linkHandler.Delete)

	apiGroup.Get("/questions", questionHandler.List)
	apiGroup.Post("/questions", questionHandler.Create)
	apiGroup.Patch("/questions/:id", questionHandler.UpdateAnswered)
	apiGroup.Post("/questions/:id/favorite", questionHandler.ToggleFavorite)
	apiGroup.Delete("/questions/:id", questionHandler.Delete)

	apiGroup.Get("/health", healthHandler.Check)

	// Prometheus metrics
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
