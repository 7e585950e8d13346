// Package testutil provides helpers for integration and repository tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/bloglist/bloglist/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 330330

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// applyMigrationPair applies a down then an up migration by file name.
func applyMigrationPair(ctx context.Context, pool *pgxpool.Pool, down, up string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downSQL, err := os.ReadFile(filepath.Join(root, "migrations", down))
	if err != nil {
		return fmt.Errorf("read down migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply down migration: %w", err)
	}

	upSQL, err := os.ReadFile(filepath.Join(root, "migrations", up))
	if err != nil {
		return fmt.Errorf("read up migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply up migration: %w", err)
	}

	return nil
}

// ResetUsersSchema drops and recreates the users schema for tests.
func ResetUsersSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return applyMigrationPair(ctx, pool, "000001_users.down.sql", "000001_users.up.sql")
}

// ResetBlogsSchema drops and recreates the blogs schema for tests.
// Blogs reference users, so the users schema must exist first.
func ResetBlogsSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return applyMigrationPair(ctx, pool, "000002_blogs.down.sql", "000002_blogs.up.sql")
}

// ResetLikeEventsSchema drops and recreates the like event tables for tests.
func ResetLikeEventsSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return applyMigrationPair(ctx, pool, "000003_like_events.down.sql", "000003_like_events.up.sql")
}

// ResetSchemas recreates the full schema.
// Blogs are dropped before users and created after them (FK dependency).
func ResetSchemas(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for _, name := range []string{
		"000003_like_events.down.sql",
		"000002_blogs.down.sql",
		"000001_users.down.sql",
		"000001_users.up.sql",
		"000002_blogs.up.sql",
		"000003_like_events.up.sql",
	} {
		sql, err := os.ReadFile(filepath.Join(root, "migrations", name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// NewTestUser creates a test user with sensible defaults.
// The password hash is a placeholder, not a real argon2 digest.
func NewTestUser(t testing.TB, username string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:           ulid.Make().String(),
		Name:         "Test User",
		Username:     username,
		PasswordHash: fmt.Sprintf("hash-%d", now.UnixNano()),
		CreatedAt:    now,
	}
}

// NewTestBlog creates a test blog owned by the given creator.
func NewTestBlog(t testing.TB, creatorID string) *model.Blog {
	t.Helper()
	now := time.Now().UTC()
	return &model.Blog{
		ID:        ulid.Make().String(),
		Title:     "My newest blog about roadbikes",
		Author:    "Shimano Taki",
		URL:       "http://shimano.bikes.com",
		Likes:     0,
		CreatorID: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UniqueUsername generates a unique username for tests.
func UniqueUsername(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}
