package validation

import (
	"fmt"
	"unicode/utf8"
)

// Field length bounds. Lengths are counted in runes so multibyte input is
// not penalized.
const (
	NameMinLen        = 2
	NameMaxLen        = 50
	TitleMinLen       = 3
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
	ContentMinLen     = 5
	ContentMaxLen     = 1000
)

// ValidateUserName checks a user or submitter display name.
func ValidateUserName(name string) (bool, string) {
	return boundedField("name", name, NameMinLen, NameMaxLen)
}

// ValidateTitle checks a question link title.
func ValidateTitle(title string) (bool, string) {
	return boundedField("title", title, TitleMinLen, TitleMaxLen)
}

// ValidateDescription checks an optional question link description.
func ValidateDescription(description string) (bool, string) {
	if description == "" {
		return true, ""
	}
	return boundedField("description", description, 0, DescriptionMaxLen)
}

// ValidateContent checks submitted question content.
func ValidateContent(content string) (bool, string) {
	return boundedField("question", content, ContentMinLen, ContentMaxLen)
}

func boundedField(field, value string, min, max int) (bool, string) {
	n := utf8.RuneCountInString(value)
	if n < min {
		return false, fmt.Sprintf("%s must be at least %d characters", field, min)
	}
	if n > max {
		return false, fmt.Sprintf("%s cannot exceed %d characters", field, max)
	}
	return true, ""
}
