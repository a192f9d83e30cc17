package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestionLink is a shareable collection point for questions, identified
// publicly by its slug and owned by a single user.
type QuestionLink struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	UserID      uuid.UUID  `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Expired is derived at read time and never stored. An expired link
	// stays readable; only new submissions are rejected.
	Expired bool `json:"expired"`
}

// IsExpired reports whether the link's expiry date is set and strictly in
// the past relative to now.
func (l *QuestionLink) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
