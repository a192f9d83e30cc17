package api

import (
	"testing"
	"time"
)

func TestParseExpiresAt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *time.Time
		wantErr bool
	}{
		{"empty means no expiry", "", nil, false},
		{"RFC 3339 timestamp", "2025-12-31T23:59:59Z", timePtr(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)), false},
		{"bare date", "2025-12-31", timePtr(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)), false},
		{"garbage", "next tuesday", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExpiresAt(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseExpiresAt(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("parseExpiresAt(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("parseExpiresAt(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
