package db

import "errors"

// Domain-level database error sentinels.
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Question link errors
	ErrLinkNotFound = errors.New("question link not found")
	ErrSlugConflict = errors.New("could not generate a unique slug")

	// Question errors
	ErrQuestionNotFound = errors.New("question not found")
)
