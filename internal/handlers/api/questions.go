package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"qnalinks/internal/db"
	"qnalinks/internal/models"
	"qnalinks/internal/validation"
)

// QuestionHandler handles question operations via JSON API.
type QuestionHandler struct {
	db *db.DB
}

// NewQuestionHandler creates a new API question handler.
func NewQuestionHandler(database *db.DB) *QuestionHandler {
	return &QuestionHandler{db: database}
}

// List returns a link's questions: favorites first, newest first within
// each group. Optional query filters combine with AND: answered=true|false,
// favorites=true, q=<substring>.
func (h *QuestionHandler) List(c fiber.Ctx) error {
	raw := c.Query("linkId", "")
	if raw == "" {
		return jsonError(c, fiber.StatusBadRequest, "linkId is required")
	}

	linkID, err := uuid.Parse(raw)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid linkId")
	}

	filter, err := parseQuestionFilter(c.Query("answered", ""), c.Query("favorites", ""), c.Query("q", ""))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	questions, err := h.db.ListQuestions(c.Context(), linkID, filter)
	if err != nil {
		slog.Error("question list failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch questions")
	}

	if questions == nil {
		questions = []models.Question{}
	}
	return jsonSuccess(c, questions)
}

// Create submits a new question against a link. The link must exist and
// must not be expired; expiry is checked here, not in the store.
func (h *QuestionHandler) Create(c fiber.Ctx) error {
	var body struct {
		Content        string `json:"content"`
		SubmitterName  string `json:"submitterName"`
		QuestionLinkID string `json:"questionLinkId"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Content == "" || body.SubmitterName == "" || body.QuestionLinkID == "" {
		return jsonError(c, fiber.StatusBadRequest, "content, submitterName and questionLinkId are required")
	}

	linkID, err := uuid.Parse(body.QuestionLinkID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid questionLinkId")
	}

	if valid, msg := validation.ValidateContent(body.Content); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, msg := validation.ValidateUserName(body.SubmitterName); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	link, err := h.db.GetQuestionLinkByID(c.Context(), linkID)
	if err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			return jsonError(c, fiber.StatusNotFound, "question link not found")
		}
		slog.Error("question link fetch failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to submit question")
	}
	if link.Expired {
		return jsonError(c, fiber.StatusGone, "this link has expired and no longer accepts questions")
	}

	question := &models.Question{
		Content:        body.Content,
		SubmitterName:  body.SubmitterName,
		QuestionLinkID: linkID,
	}
	if err := h.db.CreateQuestion(c.Context(), question); err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			// Link deleted between the expiry check and the insert.
			return jsonError(c, fiber.StatusNotFound, "question link not found")
		}
		slog.Error("question create failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to submit question")
	}

	return jsonSuccess(c, question)
}

// UpdateAnswered overwrites the answered flag; the write is idempotent.
func (h *QuestionHandler) UpdateAnswered(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid question id")
	}

	var body struct {
		IsAnswered *bool `json:"isAnswered"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.IsAnswered == nil {
		return jsonError(c, fiber.StatusBadRequest, "isAnswered is required")
	}

	question, err := h.db.SetQuestionAnswered(c.Context(), id, *body.IsAnswered)
	if err != nil {
		if errors.Is(err, db.ErrQuestionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "question not found")
		}
		slog.Error("question update failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to update question")
	}

	return jsonSuccess(c, question)
}

// ToggleFavorite atomically flips the favorite flag.
func (h *QuestionHandler) ToggleFavorite(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid question id")
	}

	question, err := h.db.ToggleQuestionFavorite(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrQuestionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "question not found")
		}
		slog.Error("favorite toggle failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to toggle favorite")
	}

	return jsonSuccess(c, question)
}

// Delete removes a question and returns the deleted record.
func (h *QuestionHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid question id")
	}

	question, err := h.db.DeleteQuestion(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrQuestionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "question not found")
		}
		slog.Error("question delete failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete question")
	}

	return jsonSuccess(c, question)
}

// parseQuestionFilter builds a store filter from raw query values.
func parseQuestionFilter(answered, favorites, search string) (db.QuestionFilter, error) {
	var filter db.QuestionFilter

	if answered != "" {
		v, err := strconv.ParseBool(answered)
		if err != nil {
			return filter, errors.New("answered must be true or false")
		}
		filter.Answered = &v
	}
	if favorites != "" {
		v, err := strconv.ParseBool(favorites)
		if err != nil {
			return filter, errors.New("favorites must be true or false")
		}
		filter.FavoritesOnly = v
	}
	filter.Search = search

	return filter, nil
}
