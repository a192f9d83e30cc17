package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGetOrCreateUserByName(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user, err := db.GetOrCreateUserByName(ctx, "Ann")
	if err != nil {
		t.Fatalf("GetOrCreateUserByName() error = %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("GetOrCreateUserByName() did not set ID")
	}
	if user.Name != "Ann" {
		t.Errorf("GetOrCreateUserByName() name = %q, want %q", user.Name, "Ann")
	}

	// Second call with the same name is a fetch, not a create.
	again, err := db.GetOrCreateUserByName(ctx, "Ann")
	if err != nil {
		t.Fatalf("GetOrCreateUserByName() second call error = %v", err)
	}
	if again.ID != user.ID {
		t.Errorf("GetOrCreateUserByName() returned new id %v, want %v", again.ID, user.ID)
	}
}

func TestGetOrCreateUserByName_CaseInsensitive(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user, err := db.GetOrCreateUserByName(ctx, "Ann")
	if err != nil {
		t.Fatalf("GetOrCreateUserByName() error = %v", err)
	}

	lower, err := db.GetOrCreateUserByName(ctx, "ann")
	if err != nil {
		t.Fatalf("GetOrCreateUserByName() lowercase error = %v", err)
	}
	if lower.ID != user.ID {
		t.Errorf("case variants resolved to different users: %v vs %v", lower.ID, user.ID)
	}
	if lower.Name != "Ann" {
		t.Errorf("stored casing = %q, want original %q", lower.Name, "Ann")
	}
}

func TestGetUserByName(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	created := createTestUser(t, db, "Ann")

	// Login matches case-insensitively.
	user, err := db.GetUserByName(ctx, "ANN")
	if err != nil {
		t.Fatalf("GetUserByName() error = %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("GetUserByName() id = %v, want %v", user.ID, created.ID)
	}

	// Login never creates.
	if _, err := db.GetUserByName(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByName() error = %v, want ErrUserNotFound", err)
	}
}

func TestGetUserByID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	created := createTestUser(t, db, "Ann")

	user, err := db.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user.Name != "Ann" {
		t.Errorf("GetUserByID() name = %q, want %q", user.Name, "Ann")
	}

	if _, err := db.GetUserByID(ctx, uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByID() error = %v, want ErrUserNotFound", err)
	}
}
