package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"qnalinks/internal/config"
	"qnalinks/internal/db"
	"qnalinks/internal/models"
	"qnalinks/internal/validation"
)

// AuthHandler handles the name-based login/signup pages. This is not a
// security boundary: anyone who knows a name can act as that user.
type AuthHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(database *db.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: database, cfg: cfg}
}

// ShowLogin renders the landing page with the signup/login form. Users
// with a live session go straight to the dashboard.
func (h *AuthHandler) ShowLogin(c fiber.Ctx) error {
	if _, ok := c.Locals("user").(*models.User); ok {
		return c.Redirect().To("/dashboard")
	}
	return c.Render("index", withBranding(fiber.Map{
		"Name":  "",
		"Error": "",
	}, h.cfg))
}

// Login processes the signup/login form. action=login only looks up the
// name; anything else is a create-or-fetch.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	name := c.FormValue("name")
	action := c.FormValue("action")

	if valid, msg := validation.ValidateUserName(name); !valid {
		return h.renderLoginError(c, msg)
	}

	var user *models.User
	var err error
	if action == "login" {
		user, err = h.db.GetUserByName(c.Context(), name)
		if errors.Is(err, db.ErrUserNotFound) {
			return h.renderLoginError(c, "No user found with that name.")
		}
	} else {
		user, err = h.db.GetOrCreateUserByName(c.Context(), name)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to process login")
	}

	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}
	sess.Set("user_id", user.ID.String())

	return c.Redirect().To("/dashboard")
}

// Logout clears the session and returns to the landing page.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if sess := session.FromContext(c); sess != nil {
		sess.Destroy()
	}
	return c.Redirect().To("/")
}

func (h *AuthHandler) renderLoginError(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).Render("index", withBranding(fiber.Map{
		"Error": msg,
		"Name":  c.FormValue("name"),
	}, h.cfg))
}
