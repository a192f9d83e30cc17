package db

import (
	"context"

	"qnalinks/internal/models"
)

// Stats holds entity row counts for the metrics collector.
type Stats struct {
	Users     int64
	Links     int64
	Questions int64
}

// GetStats returns current row counts for each entity kind.
func (d *DB) GetStats(ctx context.Context) (Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM question_links),
			(SELECT COUNT(*) FROM questions)
	`
	var s Stats
	err := d.Pool.QueryRow(ctx, query).Scan(&s.Users, &s.Links, &s.Questions)
	return s, err
}

// IncrementSlugLookup records one public slug lookup with its outcome.
func (d *DB) IncrementSlugLookup(ctx context.Context, slug, outcome string) error {
	query := `
		INSERT INTO slug_lookups (slug, outcome, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (slug, outcome) DO UPDATE SET count = slug_lookups.count + 1
	`
	_, err := d.Pool.Exec(ctx, query, slug, outcome)
	return err
}

// GetAllSlugLookups returns all aggregated slug lookup counts.
func (d *DB) GetAllSlugLookups(ctx context.Context) ([]models.SlugLookup, error) {
	rows, err := d.Pool.Query(ctx, `SELECT slug, outcome, count FROM slug_lookups`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []models.SlugLookup
	for rows.Next() {
		var l models.SlugLookup
		if err := rows.Scan(&l.Slug, &l.Outcome, &l.Count); err != nil {
			return nil, err
		}
		lookups = append(lookups, l)
	}

	return lookups, rows.Err()
}
