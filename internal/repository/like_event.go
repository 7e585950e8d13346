package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bloglist/bloglist/internal/model"
)

// LikeEventRepository provides database access for like events and their
// daily aggregates.
type LikeEventRepository struct {
	repo *Repository
}

// NewLikeEventRepository creates a new LikeEventRepository.
func NewLikeEventRepository(repo *Repository) *LikeEventRepository {
	return &LikeEventRepository{repo: repo}
}

// BulkInsert inserts multiple like events with idempotency via ON CONFLICT DO NOTHING.
func (r *LikeEventRepository) BulkInsert(ctx context.Context, events []*model.LikeEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	query := `
		INSERT INTO like_events (id, event_id, blog_id, liker_hash, liked_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (event_id) DO NOTHING
	`

	for _, event := range events {
		batch.Queue(query,
			event.ID,
			event.EventID,
			event.BlogID,
			event.LikerHash,
			event.LikedAt,
		)
	}

	results := r.repo.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(events); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert event %d: %w", i, err)
		}
	}

	return nil
}

// UpdateDailyStats refreshes daily_blog_stats for every blog/day touched by
// the batch. Stats are recalculated from like_events so replayed batches
// converge instead of double counting.
func (r *LikeEventRepository) UpdateDailyStats(ctx context.Context, events []*model.LikeEvent) error {
	if len(events) == 0 {
		return nil
	}

	for _, key := range uniqueDailyKeys(events) {
		if err := r.upsertDailyStat(ctx, key.blogID, key.date); err != nil {
			return fmt.Errorf("upsert daily stat %s:%s: %w", key.blogID, key.date.Format("2006-01-02"), err)
		}
	}

	return nil
}

type dailyStatsKey struct {
	blogID string
	date   time.Time
}

func uniqueDailyKeys(events []*model.LikeEvent) []dailyStatsKey {
	seen := make(map[string]dailyStatsKey)
	for _, event := range events {
		day := event.LikedAt.UTC().Truncate(24 * time.Hour)
		key := fmt.Sprintf("%s:%s", event.BlogID, day.Format("2006-01-02"))
		seen[key] = dailyStatsKey{blogID: event.BlogID, date: day}
	}

	keys := make([]dailyStatsKey, 0, len(seen))
	for _, key := range seen {
		keys = append(keys, key)
	}
	return keys
}

// upsertDailyStat recalculates one blog/day aggregate from like_events and
// writes it in a single statement.
func (r *LikeEventRepository) upsertDailyStat(ctx context.Context, blogID string, date time.Time) error {
	start := date.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)
	id := fmt.Sprintf("%s:%s", blogID, start.Format("2006-01-02"))

	query := `
		INSERT INTO daily_blog_stats (id, blog_id, date, total_likes, unique_likers, created_at, updated_at)
		SELECT $1, $2, $3, COUNT(*), COUNT(DISTINCT liker_hash), NOW(), NOW()
		FROM like_events
		WHERE blog_id = $2 AND liked_at >= $4 AND liked_at < $5
		ON CONFLICT (blog_id, date) DO UPDATE SET
			total_likes = EXCLUDED.total_likes,
			unique_likers = EXCLUDED.unique_likers,
			updated_at = NOW()
	`

	_, err := r.repo.pool.Exec(ctx, query, id, blogID, start, start, end)
	return err
}

// GetDailyStats retrieves daily like stats for a blog within a date range.
func (r *LikeEventRepository) GetDailyStats(ctx context.Context, blogID string, from, to time.Time) ([]*model.DailyBlogStats, error) {
	query := `
		SELECT id, blog_id, date, total_likes, unique_likers, created_at, updated_at
		FROM daily_blog_stats
		WHERE blog_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC
	`

	rows, err := r.repo.pool.Query(ctx, query, blogID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []*model.DailyBlogStats
	for rows.Next() {
		var stat model.DailyBlogStats
		if err := rows.Scan(
			&stat.ID,
			&stat.BlogID,
			&stat.Date,
			&stat.TotalLikes,
			&stat.UniqueLikers,
			&stat.CreatedAt,
			&stat.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan daily stat: %w", err)
		}
		stats = append(stats, &stat)
	}

	return stats, rows.Err()
}

// GetStatsSummary retrieves aggregated like stats for a blog.
func (r *LikeEventRepository) GetStatsSummary(ctx context.Context, blogID string, from, to time.Time) (*model.BlogStatsSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(total_likes), 0) AS total_likes,
			COALESCE(SUM(unique_likers), 0) AS unique_likers,
			COUNT(*) AS days
		FROM daily_blog_stats
		WHERE blog_id = $1 AND date >= $2 AND date <= $3
	`

	var totalLikes, uniqueLikers int64
	var days int

	err := r.repo.pool.QueryRow(ctx, query, blogID, from, to).Scan(&totalLikes, &uniqueLikers, &days)
	if err != nil {
		return nil, fmt.Errorf("query stats summary: %w", err)
	}

	var avgLikesPerDay float64
	if days > 0 {
		avgLikesPerDay = float64(totalLikes) / float64(days)
	}

	return &model.BlogStatsSummary{
		TotalLikes:     totalLikes,
		UniqueLikers:   uniqueLikers,
		AvgLikesPerDay: avgLikesPerDay,
	}, nil
}
