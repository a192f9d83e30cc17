package api

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"qnalinks/internal/db"
	"qnalinks/internal/validation"
)

// User actions accepted by CreateOrLogin.
const (
	ActionCreate = "create"
	ActionLogin  = "login"
)

// UserHandler handles user identity operations via JSON API.
type UserHandler struct {
	db *db.DB
}

// NewUserHandler creates a new API user handler.
func NewUserHandler(database *db.DB) *UserHandler {
	return &UserHandler{db: database}
}

// CreateOrLogin resolves a user by name. With action=create (the default)
// it is an idempotent create-or-fetch; with action=login it only looks up
// and fails with 404 when no case-insensitive match exists. That lookup is
// the sole difference between the two actions — there is no credential.
func (h *UserHandler) CreateOrLogin(c fiber.Ctx) error {
	var body struct {
		Name   string `json:"name"`
		Action string `json:"action"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, "name is required")
	}
	if valid, msg := validation.ValidateUserName(body.Name); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	if body.Action == ActionLogin {
		user, err := h.db.GetUserByName(c.Context(), body.Name)
		if err != nil {
			if errors.Is(err, db.ErrUserNotFound) {
				return jsonError(c, fiber.StatusNotFound, "user not found")
			}
			slog.Error("user login failed", "error", err)
			return jsonError(c, fiber.StatusInternalServerError, "failed to process user request")
		}
		return jsonSuccess(c, user)
	}

	user, err := h.db.GetOrCreateUserByName(c.Context(), body.Name)
	if err != nil {
		slog.Error("user create failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to process user request")
	}
	return jsonSuccess(c, user)
}

// Get returns a single user by ID.
func (h *UserHandler) Get(c fiber.Ctx) error {
	raw := c.Query("id", "")
	if raw == "" {
		return jsonError(c, fiber.StatusBadRequest, "user id is required")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.db.GetUserByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		slog.Error("user fetch failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	return jsonSuccess(c, user)
}
