package repository

import (
	"context"
	"fmt"
)

// ResetAll removes every user, blog, and recorded like event.
// Test-support only; the handler mounting this is gated out of production.
func (r *Repository) ResetAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `TRUNCATE blogs, users, like_events, daily_blog_stats`); err != nil {
		return fmt.Errorf("failed to reset state: %w", err)
	}
	return nil
}
