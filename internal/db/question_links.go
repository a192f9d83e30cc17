package db

import (
	"context"
	"errors"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"qnalinks/internal/models"
)

// Slugs are 10 characters from a 64-symbol URL-safe alphabet, giving a
// 60-bit space. Collisions are vanishingly rare but still handled: the
// insert retries with a fresh slug a bounded number of times.
const (
	slugAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz-"
	slugLength      = 10
	slugMaxAttempts = 5
)

const linkColumns = `id, slug, title, description, expires_at, user_id, created_at, updated_at`

// NewSlug generates a random URL-safe slug.
func NewSlug() (string, error) {
	return gonanoid.Generate(slugAlphabet, slugLength)
}

// scanQuestionLink scans a row into a QuestionLink and derives its
// expired flag against the current time.
func scanQuestionLink(row pgx.Row) (*models.QuestionLink, error) {
	var link models.QuestionLink
	err := row.Scan(
		&link.ID,
		&link.Slug,
		&link.Title,
		&link.Description,
		&link.ExpiresAt,
		&link.UserID,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	link.Expired = link.IsExpired(time.Now())
	return &link, nil
}

func scanQuestionLinks(rows pgx.Rows) ([]models.QuestionLink, error) {
	defer rows.Close()

	now := time.Now()
	var links []models.QuestionLink
	for rows.Next() {
		var link models.QuestionLink
		if err := rows.Scan(
			&link.ID,
			&link.Slug,
			&link.Title,
			&link.Description,
			&link.ExpiresAt,
			&link.UserID,
			&link.CreatedAt,
			&link.UpdatedAt,
		); err != nil {
			return nil, err
		}
		link.Expired = link.IsExpired(now)
		links = append(links, link)
	}

	return links, rows.Err()
}

// CreateQuestionLink creates a new link with a generated slug, retrying
// with a fresh slug on collision. Returns ErrUserNotFound if the owner
// does not exist and ErrSlugConflict once retries are exhausted.
func (d *DB) CreateQuestionLink(ctx context.Context, link *models.QuestionLink) error {
	query := `
		INSERT INTO question_links (slug, title, description, expires_at, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		slug, err := NewSlug()
		if err != nil {
			return err
		}

		err = d.Pool.QueryRow(ctx, query,
			slug,
			link.Title,
			link.Description,
			link.ExpiresAt,
			link.UserID,
		).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case "23505": // unique_violation on slug
					continue
				case "23503": // foreign_key_violation on user_id
					return ErrUserNotFound
				}
			}
			return err
		}

		link.Slug = slug
		link.Expired = link.IsExpired(time.Now())
		return nil
	}

	return ErrSlugConflict
}

// GetQuestionLinkBySlug retrieves a link by its exact, case-sensitive slug.
// Expired links are returned as-is with the derived flag set; it is the
// caller's job to reject writes against them.
func (d *DB) GetQuestionLinkBySlug(ctx context.Context, slug string) (*models.QuestionLink, error) {
	query := `SELECT ` + linkColumns + ` FROM question_links WHERE slug = $1`
	return scanQuestionLink(d.Pool.QueryRow(ctx, query, slug))
}

// GetQuestionLinkByID retrieves a link by its internal ID.
func (d *DB) GetQuestionLinkByID(ctx context.Context, id uuid.UUID) (*models.QuestionLink, error) {
	query := `SELECT ` + linkColumns + ` FROM question_links WHERE id = $1`
	return scanQuestionLink(d.Pool.QueryRow(ctx, query, id))
}

// ListQuestionLinksByUser retrieves all links owned by a user, newest first.
func (d *DB) ListQuestionLinksByUser(ctx context.Context, userID uuid.UUID) ([]models.QuestionLink, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM question_links
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanQuestionLinks(rows)
}

// DeleteQuestionLinkBySlug deletes a link and returns the deleted record.
// Its questions cascade-delete at the schema level.
func (d *DB) DeleteQuestionLinkBySlug(ctx context.Context, slug string) (*models.QuestionLink, error) {
	query := `DELETE FROM question_links WHERE slug = $1 RETURNING ` + linkColumns
	return scanQuestionLink(d.Pool.QueryRow(ctx, query, slug))
}
