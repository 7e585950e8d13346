package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/bloglist/bloglist/internal/testutil"
)

func TestRepository_CreateAndGetUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	user := testutil.NewTestUser(t, testutil.UniqueUsername("mluukkai"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	byID, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user by ID: %v", err)
	}
	if byID.Username != user.Username {
		t.Errorf("Username mismatch: got %q, want %q", byID.Username, user.Username)
	}

	byName, err := repo.GetUserByUsername(ctx, user.Username)
	if err != nil {
		t.Fatalf("get user by username: %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", byName.ID, user.ID)
	}
	if byName.PasswordHash != user.PasswordHash {
		t.Errorf("stored hash should round-trip")
	}

	exists, err := repo.UsernameExists(ctx, user.Username)
	if err != nil {
		t.Fatalf("username exists: %v", err)
	}
	if !exists {
		t.Error("expected username to exist")
	}
}

func TestRepository_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	username := testutil.UniqueUsername("dup")
	first := testutil.NewTestUser(t, username)
	if err := repo.CreateUser(ctx, first); err != nil {
		t.Fatalf("create user: %v", err)
	}

	second := testutil.NewTestUser(t, username)
	if err := repo.CreateUser(ctx, second); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestRepository_GetUser_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	if _, err := repo.GetUserByID(ctx, "nonexistent-id"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if _, err := repo.GetUserByUsername(ctx, "nonexistent-user"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
