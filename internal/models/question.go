package models

import (
	"time"

	"github.com/google/uuid"
)

// Question is a single submission against a link. The answered and
// favorite flags are independent; all four combinations are valid.
type Question struct {
	ID             uuid.UUID `json:"id"`
	Content        string    `json:"content"`
	SubmitterName  string    `json:"submitterName"`
	IsAnswered     bool      `json:"isAnswered"`
	IsFavorite     bool      `json:"isFavorite"`
	QuestionLinkID uuid.UUID `json:"questionLinkId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
