package model

import "time"

// LikeEvent records a single like against a blog. Events flow through the
// Redis stream before landing in Postgres, so EventID (the stream message
// ID) doubles as the idempotency key.
type LikeEvent struct {
	ID        string
	EventID   string
	BlogID    string
	LikerHash string
	LikedAt   time.Time
	CreatedAt time.Time
}

// DailyBlogStats is the per-day aggregate of like activity for one blog.
type DailyBlogStats struct {
	ID           string
	BlogID       string
	Date         time.Time
	TotalLikes   int64
	UniqueLikers int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BlogStatsSummary aggregates like activity over a date range.
type BlogStatsSummary struct {
	TotalLikes     int64
	UniqueLikers   int64
	AvgLikesPerDay float64
}
