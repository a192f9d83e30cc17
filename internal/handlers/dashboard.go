package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"qnalinks/internal/config"
	"qnalinks/internal/db"
	"qnalinks/internal/models"
	"qnalinks/internal/validation"
)

// DashboardHandler renders the owner dashboard: the user's links and,
// per link, its questions with triage controls.
type DashboardHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(database *db.DB, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{db: database, cfg: cfg}
}

// Show renders the dashboard with the user's links, newest first.
func (h *DashboardHandler) Show(c fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	links, err := h.db.ListQuestionLinksByUser(c.Context(), user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load links")
	}

	return c.Render("dashboard", withBranding(fiber.Map{
		"User":  user,
		"Links": links,
		"Error": c.Query("error", ""),
	}, h.cfg))
}

// CreateLink handles the new-link form.
func (h *DashboardHandler) CreateLink(c fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	title := c.FormValue("title")
	description := c.FormValue("description")

	if valid, msg := validation.ValidateTitle(title); !valid {
		return c.Redirect().To("/dashboard?error=" + url.QueryEscape(msg))
	}
	if valid, msg := validation.ValidateDescription(description); !valid {
		return c.Redirect().To("/dashboard?error=" + url.QueryEscape(msg))
	}

	link := &models.QuestionLink{
		Title:       title,
		Description: description,
		UserID:      user.ID,
	}
	if raw := c.FormValue("expires_at"); raw != "" {
		expiresAt, err := parseFormDate(raw)
		if err != nil {
			return c.Redirect().To("/dashboard?error=" + url.QueryEscape("invalid expiry date"))
		}
		link.ExpiresAt = expiresAt
	}

	if err := h.db.CreateQuestionLink(c.Context(), link); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create link")
	}

	return c.Redirect().To("/dashboard/links/" + link.Slug)
}

// ShowLink renders one link's questions with filter, search and triage
// controls. Only the owner can view it.
func (h *DashboardHandler) ShowLink(c fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	link, err := h.getOwnedLink(c, user)
	if err != nil {
		return err
	}

	filter := db.QuestionFilter{Search: c.Query("q", "")}
	status := c.Query("status", "all")
	switch status {
	case "answered":
		v := true
		filter.Answered = &v
	case "unanswered":
		v := false
		filter.Answered = &v
	}
	filter.FavoritesOnly = c.Query("favorites", "") != ""

	questions, err := h.db.ListQuestions(c.Context(), link.ID, filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load questions")
	}

	return c.Render("link", withBranding(fiber.Map{
		"User":          user,
		"Link":          link,
		"Questions":     questions,
		"Status":        status,
		"FavoritesOnly": filter.FavoritesOnly,
		"Search":        filter.Search,
	}, h.cfg))
}

// DeleteLink removes a link (and, by cascade, its questions).
func (h *DashboardHandler) DeleteLink(c fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	link, err := h.getOwnedLink(c, user)
	if err != nil {
		return err
	}

	if _, err := h.db.DeleteQuestionLinkBySlug(c.Context(), link.Slug); err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "link not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete link")
	}

	return c.Redirect().To("/dashboard")
}

// SetAnswered handles the answered/unanswered button.
func (h *DashboardHandler) SetAnswered(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid question id")
	}

	isAnswered := c.FormValue("value") == "true"
	if _, err := h.db.SetQuestionAnswered(c.Context(), id, isAnswered); err != nil {
		if errors.Is(err, db.ErrQuestionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "question not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update question")
	}

	return c.Redirect().Back("/dashboard")
}

// ToggleFavorite handles the favorite star button.
func (h *DashboardHandler) ToggleFavorite(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid question id")
	}

	if _, err := h.db.ToggleQuestionFavorite(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrQuestionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "question not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to toggle favorite")
	}

	return c.Redirect().Back("/dashboard")
}

// DeleteQuestion removes a single question.
func (h *DashboardHandler) DeleteQuestion(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid question id")
	}

	if _, err := h.db.DeleteQuestion(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrQuestionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "question not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete question")
	}

	return c.Redirect().Back("/dashboard")
}

// getOwnedLink fetches the :slug link and verifies the current user owns
// it. Foreign links 404 rather than 403 so slugs are not probeable.
func (h *DashboardHandler) getOwnedLink(c fiber.Ctx, user *models.User) (*models.QuestionLink, error) {
	link, err := h.db.GetQuestionLinkBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "link not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load link")
	}
	if link.UserID != user.ID {
		return nil, fiber.NewError(fiber.StatusNotFound, "link not found")
	}
	return link, nil
}
