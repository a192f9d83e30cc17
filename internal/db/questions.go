package db

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"qnalinks/internal/models"
)

// likeEscaper neutralizes LIKE pattern metacharacters so search text
// matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const questionColumns = `id, content, submitter_name, is_answered, is_favorite, question_link_id, created_at, updated_at`

// QuestionFilter narrows ListQuestions results. Predicates combine with
// logical AND; the zero value matches everything.
type QuestionFilter struct {
	Answered      *bool  // nil = both answered and unanswered
	FavoritesOnly bool
	Search        string // case-insensitive substring match on content
}

func scanQuestion(row pgx.Row) (*models.Question, error) {
	var q models.Question
	err := row.Scan(
		&q.ID,
		&q.Content,
		&q.SubmitterName,
		&q.IsAnswered,
		&q.IsFavorite,
		&q.QuestionLinkID,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func scanQuestions(rows pgx.Rows) ([]models.Question, error) {
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(
			&q.ID,
			&q.Content,
			&q.SubmitterName,
			&q.IsAnswered,
			&q.IsFavorite,
			&q.QuestionLinkID,
			&q.CreatedAt,
			&q.UpdatedAt,
		); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// CreateQuestion inserts a new question. Returns ErrLinkNotFound if the
// parent link does not exist; the store checks referential integrity only,
// expiry enforcement lives in the submission handlers.
func (d *DB) CreateQuestion(ctx context.Context, q *models.Question) error {
	query := `
		INSERT INTO questions (content, submitter_name, question_link_id)
		VALUES ($1, $2, $3)
		RETURNING id, is_answered, is_favorite, created_at, updated_at
	`

	err := d.Pool.QueryRow(ctx, query,
		q.Content,
		q.SubmitterName,
		q.QuestionLinkID,
	).Scan(&q.ID, &q.IsAnswered, &q.IsFavorite, &q.CreatedAt, &q.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrLinkNotFound
		}
		return err
	}

	return nil
}

// SetQuestionAnswered overwrites the answered flag. The write is
// idempotent: setting the same value twice succeeds both times.
func (d *DB) SetQuestionAnswered(ctx context.Context, id uuid.UUID, isAnswered bool) (*models.Question, error) {
	query := `
		UPDATE questions
		SET is_answered = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + questionColumns
	return scanQuestion(d.Pool.QueryRow(ctx, query, isAnswered, id))
}

// ToggleQuestionFavorite flips the favorite flag in a single atomic
// update, so concurrent toggles serialize at the row instead of racing
// a read-modify-write pair.
func (d *DB) ToggleQuestionFavorite(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	query := `
		UPDATE questions
		SET is_favorite = NOT is_favorite, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + questionColumns
	return scanQuestion(d.Pool.QueryRow(ctx, query, id))
}

// ListQuestions retrieves questions for a link: favorites first, newest
// first within each group. Filter predicates are pushed down to SQL.
func (d *DB) ListQuestions(ctx context.Context, linkID uuid.UUID, filter QuestionFilter) ([]models.Question, error) {
	sql := `SELECT ` + questionColumns + ` FROM questions WHERE question_link_id = $1`
	args := []any{linkID}

	if filter.Answered != nil {
		sql += ` AND is_answered = $` + strconv.Itoa(len(args)+1)
		args = append(args, *filter.Answered)
	}
	if filter.FavoritesOnly {
		sql += ` AND is_favorite`
	}
	if filter.Search != "" {
		sql += ` AND content ILIKE '%' || $` + strconv.Itoa(len(args)+1) + ` || '%'`
		args = append(args, likeEscaper.Replace(filter.Search))
	}

	sql += ` ORDER BY is_favorite DESC, created_at DESC`

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return scanQuestions(rows)
}

// DeleteQuestion deletes a question and returns the deleted record.
func (d *DB) DeleteQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	query := `DELETE FROM questions WHERE id = $1 RETURNING ` + questionColumns
	return scanQuestion(d.Pool.QueryRow(ctx, query, id))
}
