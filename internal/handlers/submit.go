package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"qnalinks/internal/config"
	"qnalinks/internal/db"
	"qnalinks/internal/metrics"
	"qnalinks/internal/models"
	"qnalinks/internal/validation"
)

// SubmitHandler renders the public question submission page reached via
// a link's slug. No authentication: submitters only provide a display name.
type SubmitHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(database *db.DB, cfg *config.Config) *SubmitHandler {
	return &SubmitHandler{db: database, cfg: cfg}
}

// Show renders the submission form, or the expired notice for links past
// their expiry date.
func (h *SubmitHandler) Show(c fiber.Ctx) error {
	link, err := h.lookup(c)
	if err != nil {
		return err
	}
	if link.Expired {
		return c.Status(fiber.StatusGone).Render("expired", withBranding(fiber.Map{
			"Link": link,
		}, h.cfg))
	}

	return c.Render("submit", withBranding(fiber.Map{
		"Link":          link,
		"Success":       c.Query("submitted", "") != "",
		"Error":         "",
		"Content":       "",
		"SubmitterName": "",
	}, h.cfg))
}

// Create handles the submission form post. Expiry is enforced here: the
// store only guarantees the link still exists.
func (h *SubmitHandler) Create(c fiber.Ctx) error {
	link, err := h.lookup(c)
	if err != nil {
		return err
	}
	if link.Expired {
		return c.Status(fiber.StatusGone).Render("expired", withBranding(fiber.Map{
			"Link": link,
		}, h.cfg))
	}

	content := c.FormValue("content")
	submitterName := c.FormValue("submitter_name")

	if valid, msg := validation.ValidateContent(content); !valid {
		return h.renderFormError(c, link, msg)
	}
	if valid, msg := validation.ValidateUserName(submitterName); !valid {
		return h.renderFormError(c, link, msg)
	}

	question := &models.Question{
		Content:        content,
		SubmitterName:  submitterName,
		QuestionLinkID: link.ID,
	}
	if err := h.db.CreateQuestion(c.Context(), question); err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "this link no longer exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to submit question")
	}

	return c.Redirect().To("/q/" + link.Slug + "?submitted=1")
}

func (h *SubmitHandler) lookup(c fiber.Ctx) (*models.QuestionLink, error) {
	slug := c.Params("slug")

	link, err := h.db.GetQuestionLinkBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			metrics.RecordSlugLookup(slug, "miss")
			return nil, fiber.NewError(fiber.StatusNotFound, "this link does not exist")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load link")
	}

	if link.Expired {
		metrics.RecordSlugLookup(slug, "expired")
	} else {
		metrics.RecordSlugLookup(slug, "hit")
	}
	return link, nil
}

func (h *SubmitHandler) renderFormError(c fiber.Ctx, link *models.QuestionLink, msg string) error {
	return c.Status(fiber.StatusBadRequest).Render("submit", withBranding(fiber.Map{
		"Link":          link,
		"Error":         msg,
		"Content":       c.FormValue("content"),
		"SubmitterName": c.FormValue("submitter_name"),
	}, h.cfg))
}
