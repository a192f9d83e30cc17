package db

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"qnalinks/internal/models"
)

func TestCreateQuestion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "Ann")
	link := createTestLink(t, db, user, "AMA")

	q := &models.Question{
		Content:        "What's your favorite color?",
		SubmitterName:  "Bob",
		QuestionLinkID: link.ID,
	}
	if err := db.CreateQuestion(ctx, q); err != nil {
		t.Fatalf("CreateQuestion() error = %v", err)
	}

	if q.ID == uuid.Nil {
		t.Error("CreateQuestion() did not set ID")
	}
	if q.IsAnswered || q.IsFavorite {
		t.Errorf("new question flags = answered %v, favorite %v, want both false", q.IsAnswered, q.IsFavorite)
	}
}

func TestCreateQuestion_UnknownLink(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	q := &models.Question{
		Content:        "Hello there, anyone home?",
		SubmitterName:  "Bob",
		QuestionLinkID: uuid.New(),
	}
	if err := db.CreateQuestion(ctx, q); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("CreateQuestion() error = %v, want ErrLinkNotFound", err)
	}

	// Rejected submission must not leave a record behind.
	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.Questions != 0 {
		t.Errorf("rejected submission created %d records", stats.Questions)
	}
}

func TestSetQuestionAnswered_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "Ann")
	link := createTestLink(t, db, user, "AMA")
	q := createTestQuestion(t, db, link, "What's your favorite color?")

	updated, err := db.SetQuestionAnswered(ctx, q.ID, true)
	if err != nil {
		t.Fatalf("SetQuestionAnswered() error = %v", err)
	}
	if !updated.IsAnswered {
		t.Error("SetQuestionAnswered(true) left flag false")
	}

	// Same write again: no error, same final state.
	again, err := db.SetQuestionAnswered(ctx, q.ID, true)
	if err != nil {
		t.Fatalf("SetQuestionAnswered() repeat error = %v", err)
	}
	if !again.IsAnswered {
		t.Error("repeated SetQuestionAnswered(true) flipped flag")
	}

	if _, err := db.SetQuestionAnswered(ctx, uuid.New(), true); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("SetQuestionAnswered() unknown id error = %v, want ErrQuestionNotFound", err)
	}
}

func TestToggleQuestionFavorite_IsOwnInverse(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "Ann")
	link := createTestLink(t, db, user, "AMA")
	q := createTestQuestion(t, db, link, "What's your favorite color?")

	once, err := db.ToggleQuestionFavorite(ctx, q.ID)
	if err != nil {
		t.Fatalf("ToggleQuestionFavorite() error = %v", err)
	}
	if !once.IsFavorite {
		t.Error("first toggle did not set favorite")
	}

	twice, err := db.ToggleQuestionFavorite(ctx, q.ID)
	if err != nil {
		t.Fatalf("ToggleQuestionFavorite() second call error = %v", err)
	}
	if twice.IsFavorite {
		t.Error("double toggle did not restore original state")
	}

	if _, err := db.ToggleQuestionFavorite(ctx, uuid.New()); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("ToggleQuestionFavorite() unknown id error = %v, want ErrQuestionNotFound", err)
	}
}

func TestToggleQuestionFavorite_Concurrent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "Ann")
	link := createTestLink(t, db, user, "AMA")
	q := createTestQuestion(t, db, link, "What's your favorite color?")

	// An even number of concurrent atomic flips must land back on false.
	const toggles = 8
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := db.ToggleQuestionFavorite(ctx, q.ID); err != nil {
				t.Errorf("concurrent ToggleQuestionFavorite() error = %v", err)
			}
		}()
	}
	wg.Wait()

	questions, err := db.ListQuestions(ctx, link.ID, QuestionFilter{})
	if err != nil {
		t.Fatalf("ListQuestions() error = %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("ListQuestions() returned %d, want 1", len(questions))
	}
	if questions[0].IsFavorite {
		t.Errorf("after %d toggles favorite = true, want false", toggles)
	}
}

func TestListQuestions_Ordering(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "Ann")
	link := createTestLink(t, db, user, "AMA")

	// Increasing creation times with favorite flags [false,true,false,true].
	var created []*models.Question
	for i, favorite := range []bool{false, true, false, true} {
		q := createTestQuestion(t, db, link, []string{
			"first question here",
			"second question here",
			"third question here",
			"fourth question here",
		}[i])
		if favorite {
			if _, err := db.ToggleQuestionFavorite(ctx, q.ID); err != nil {
				t.Fatalf("ToggleQuestionFavorite() error = %v", err)
			}
		}
		created = append(created, q)
		time.Sleep(5 * time.Millisecond)
	}

	questions, err := db.ListQuestions(ctx, link.ID, QuestionFilter{})
	if err != nil {
		t.Fatalf("ListQuestions() error = %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("ListQuestions() returned %d, want 4", len(questions))
	}

	// Favorites first, newest first within each group.
	wantOrder := []uuid.UUID{created[3].ID, created[1].ID, created[2].ID, created[0].ID}
	for i, want := range wantOrder {
		if questions[i].ID != want {
			t.Errorf("position %d = %q, wrong order", i, questions[i].Content)
		}
	}
}

func TestListQuestions_Filters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "Ann")
	link := createTestLink(t, db, user, "AMA")

	answered := createTestQuestion(t, db, link, "Answered and favorited item")
	if _, err := db.SetQuestionAnswered(ctx, answered.ID, true); err != nil {
		t.Fatalf("SetQuestionAnswered() error = %v", err)
	}
	if _, err := db.ToggleQuestionFavorite(ctx, answered.ID); err != nil {
		t.Fatalf("ToggleQuestionFavorite() error = %v", err)
	}
	plain := createTestQuestion(t, db, link, "Unanswered plain item")
	time.Sleep(5 * time.Millisecond)
	percent := createTestQuestion(t, db, link, "Did revenue grow 100% this year?")

	isTrue, isFalse := true, false

	tests := []struct {
		name   string
		filter QuestionFilter
		want   []uuid.UUID
	}{
		{"no filter", QuestionFilter{}, []uuid.UUID{answered.ID, percent.ID, plain.ID}},
		{"answered only", QuestionFilter{Answered: &isTrue}, []uuid.UUID{answered.ID}},
		{"unanswered only", QuestionFilter{Answered: &isFalse}, []uuid.UUID{percent.ID, plain.ID}},
		{"favorites only", QuestionFilter{FavoritesOnly: true}, []uuid.UUID{answered.ID}},
		{"search is case-insensitive", QuestionFilter{Search: "PLAIN"}, []uuid.UUID{plain.ID}},
		{"percent sign matches literally", QuestionFilter{Search: "100%"}, []uuid.UUID{percent.ID}},
		{"percent is not a wildcard", QuestionFilter{Search: "100%this"}, nil},
		{"underscore is not a wildcard", QuestionFilter{Search: "_"}, nil},
		{"filters combine with AND", QuestionFilter{Answered: &isTrue, FavoritesOnly: true, Search: "favorited"}, []uuid.UUID{answered.ID}},
		{"conflicting filters match nothing", QuestionFilter{Answered: &isFalse, FavoritesOnly: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ListQuestions(ctx, link.ID, tt.filter)
			if err != nil {
				t.Fatalf("ListQuestions() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ListQuestions() returned %d, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].ID != want {
					t.Errorf("position %d = %v, want %v", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestDeleteQuestion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "Ann")
	link := createTestLink(t, db, user, "AMA")
	q := createTestQuestion(t, db, link, "What's your favorite color?")

	deleted, err := db.DeleteQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("DeleteQuestion() error = %v", err)
	}
	if deleted.ID != q.ID {
		t.Errorf("DeleteQuestion() returned id %v, want %v", deleted.ID, q.ID)
	}

	if _, err := db.DeleteQuestion(ctx, q.ID); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("DeleteQuestion() repeat error = %v, want ErrQuestionNotFound", err)
	}
}
