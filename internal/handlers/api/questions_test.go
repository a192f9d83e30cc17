package api

import (
	"testing"
)

func TestParseQuestionFilter(t *testing.T) {
	t.Run("empty values give zero filter", func(t *testing.T) {
		f, err := parseQuestionFilter("", "", "")
		if err != nil {
			t.Fatalf("parseQuestionFilter() error = %v", err)
		}
		if f.Answered != nil || f.FavoritesOnly || f.Search != "" {
			t.Errorf("zero inputs produced non-zero filter: %+v", f)
		}
	})

	t.Run("answered true", func(t *testing.T) {
		f, err := parseQuestionFilter("true", "", "")
		if err != nil {
			t.Fatalf("parseQuestionFilter() error = %v", err)
		}
		if f.Answered == nil || !*f.Answered {
			t.Errorf("answered = %v, want true", f.Answered)
		}
	})

	t.Run("answered false is distinct from unset", func(t *testing.T) {
		f, err := parseQuestionFilter("false", "", "")
		if err != nil {
			t.Fatalf("parseQuestionFilter() error = %v", err)
		}
		if f.Answered == nil || *f.Answered {
			t.Errorf("answered = %v, want false", f.Answered)
		}
	})

	t.Run("favorites and search", func(t *testing.T) {
		f, err := parseQuestionFilter("", "true", "color")
		if err != nil {
			t.Fatalf("parseQuestionFilter() error = %v", err)
		}
		if !f.FavoritesOnly {
			t.Error("favorites not set")
		}
		if f.Search != "color" {
			t.Errorf("search = %q, want %q", f.Search, "color")
		}
	})

	t.Run("garbage answered value", func(t *testing.T) {
		if _, err := parseQuestionFilter("maybe", "", ""); err == nil {
			t.Error("parseQuestionFilter() accepted invalid answered value")
		}
	})

	t.Run("garbage favorites value", func(t *testing.T) {
		if _, err := parseQuestionFilter("", "sometimes", ""); err == nil {
			t.Error("parseQuestionFilter() accepted invalid favorites value")
		}
	})
}
