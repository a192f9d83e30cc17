package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"qnalinks/internal/db"
	"qnalinks/internal/models"
)

// AuthMiddleware resolves the session's current user. There is no
// credential behind it — identity is a plain name lookup — so this is
// navigation state, not a security boundary.
type AuthMiddleware struct {
	db *db.DB
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database *db.DB) *AuthMiddleware {
	return &AuthMiddleware{db: database}
}

// RequireUser ensures a current user is set, redirecting to the login
// page if not.
func (m *AuthMiddleware) RequireUser(c fiber.Ctx) error {
	user := m.currentUser(c)
	if user == nil {
		return c.Redirect().To("/")
	}
	c.Locals("user", user)
	return c.Next()
}

// OptionalUser loads the current user if one is set, but never blocks.
func (m *AuthMiddleware) OptionalUser(c fiber.Ctx) error {
	if user := m.currentUser(c); user != nil {
		c.Locals("user", user)
	}
	return c.Next()
}

func (m *AuthMiddleware) currentUser(c fiber.Ctx) *models.User {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}

	raw, _ := sess.Get("user_id").(string)
	if raw == "" {
		return nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		sess.Delete("user_id")
		return nil
	}

	user, err := m.db.GetUserByID(c.Context(), id)
	if err != nil {
		sess.Delete("user_id")
		return nil
	}
	return user
}
