package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a named identity. Names are matched case-insensitively, so
// "Ann" and "ann" resolve to the same record; the casing used at signup
// is what gets stored.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
