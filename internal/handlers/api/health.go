package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"qnalinks/internal/db"
)

// HealthHandler reports service liveness via JSON API.
type HealthHandler struct {
	db *db.DB
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Check pings the database and reports status.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	return jsonSuccess(c, fiber.Map{"healthy": true})
}
