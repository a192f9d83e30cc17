package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"qnalinks/internal/db"
	"qnalinks/internal/metrics"
	"qnalinks/internal/models"
	"qnalinks/internal/validation"
)

// LinkHandler handles question link operations via JSON API.
type LinkHandler struct {
	db *db.DB
}

// NewLinkHandler creates a new API link handler.
func NewLinkHandler(database *db.DB) *LinkHandler {
	return &LinkHandler{db: database}
}

// List returns all links owned by a user, newest first.
func (h *LinkHandler) List(c fiber.Ctx) error {
	raw := c.Query("userId", "")
	if raw == "" {
		return jsonError(c, fiber.StatusBadRequest, "userId is required")
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid userId")
	}

	links, err := h.db.ListQuestionLinksByUser(c.Context(), userID)
	if err != nil {
		slog.Error("link list failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch links")
	}

	if links == nil {
		links = []models.QuestionLink{}
	}
	return jsonSuccess(c, links)
}

// Create creates a new link with a generated slug.
func (h *LinkHandler) Create(c fiber.Ctx) error {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ExpiresAt   string `json:"expiresAt"`
		UserID      string `json:"userId"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Title == "" || body.UserID == "" {
		return jsonError(c, fiber.StatusBadRequest, "title and userId are required")
	}

	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid userId")
	}

	if valid, msg := validation.ValidateTitle(body.Title); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, msg := validation.ValidateDescription(body.Description); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	expiresAt, err := parseExpiresAt(body.ExpiresAt)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid expiresAt date")
	}

	link := &models.QuestionLink{
		Title:       body.Title,
		Description: body.Description,
		ExpiresAt:   expiresAt,
		UserID:      userID,
	}

	if err := h.db.CreateQuestionLink(c.Context(), link); err != nil {
		switch {
		case errors.Is(err, db.ErrUserNotFound):
			return jsonError(c, fiber.StatusNotFound, "owner not found")
		case errors.Is(err, db.ErrSlugConflict):
			return jsonError(c, fiber.StatusConflict, "could not allocate a unique slug, please retry")
		default:
			slog.Error("link create failed", "error", err)
			return jsonError(c, fiber.StatusInternalServerError, "failed to create link")
		}
	}

	return jsonSuccess(c, link)
}

// Get returns a single link by slug. Expired links are returned with the
// derived expired flag set rather than hidden, so owners can still see them.
func (h *LinkHandler) Get(c fiber.Ctx) error {
	slug := c.Params("slug")

	link, err := h.db.GetQuestionLinkBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			metrics.RecordSlugLookup(slug, "miss")
			return jsonError(c, fiber.StatusNotFound, "link not found")
		}
		slog.Error("link fetch failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch link")
	}

	if link.Expired {
		metrics.RecordSlugLookup(slug, "expired")
	} else {
		metrics.RecordSlugLookup(slug, "hit")
	}
	return jsonSuccess(c, link)
}

// Delete removes a link and returns the deleted record. Its questions
// cascade-delete.
func (h *LinkHandler) Delete(c fiber.Ctx) error {
	slug := c.Params("slug")

	link, err := h.db.DeleteQuestionLinkBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			return jsonError(c, fiber.StatusNotFound, "link not found")
		}
		slog.Error("link delete failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete link")
	}

	return jsonSuccess(c, link)
}

// parseExpiresAt accepts RFC 3339 timestamps or bare dates; empty input
// means no expiry.
func parseExpiresAt(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
