package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"qnalinks/internal/config"
)

// withBranding adds shared site fields to template data.
func withBranding(data fiber.Map, cfg *config.Config) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	data["SiteTitle"] = cfg.SiteTitle
	data["BaseURL"] = cfg.BaseURL
	return data
}

// parseFormDate parses the expiry date from the HTML date input.
func parseFormDate(raw string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
