// Package analytics provides like event capture and processing.
package analytics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloglist/bloglist/internal/metrics"
)

const (
	// StreamKey is the Redis stream for like events.
	StreamKey = "stream:like_events"

	// DeadLetterStreamKey is the Redis stream for poison messages.
	DeadLetterStreamKey = "stream:like_events:dlq"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// LikeEventPayload is the compressed event format for the Redis stream.
type LikeEventPayload struct {
	BlogID    string `json:"bid"` // blog_id
	LikerHash string `json:"lh"`  // liker_hash
	LikedAt   int64  `json:"t"`   // Unix milliseconds
}

// Publisher enqueues like events to the Redis stream.
type Publisher struct {
	redis   *redis.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates a new like event publisher.
func NewPublisher(client *redis.Client, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "analytics.publisher"),
		metrics: recorder,
	}
}

// Publish adds a like event to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, event LikeEventPayload) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()

	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller.
// Errors are logged but not returned (fire-and-forget): liking a blog must
// not fail because the analytics stream is down.
func (p *Publisher) PublishAsync(event LikeEventPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		streamID, err := p.Publish(ctx, event)
		if err != nil {
			p.logger.Warn("failed to publish like event",
				"blog_id", event.BlogID,
				"error", err,
			)
			p.metrics.IncLikeEventPublished("dropped")
			return
		}

		p.logger.Debug("like event published",
			"blog_id", event.BlogID,
			"stream_id", streamID,
		)
		p.metrics.IncLikeEventPublished("success")
	}()
}

// GenerateLikerHash creates a privacy-safe liker identifier.
// Uses SHA256(user_id + daily_salt) truncated to 16 hex chars, so raw user
// IDs never reach the analytics tables and likers cannot be tracked across
// days.
func GenerateLikerHash(userID string, likedAt time.Time) string {
	// Salt rotates at midnight UTC.
	dailySalt := fmt.Sprintf("bloglist:%s", likedAt.UTC().Format("2006-01-02"))

	data := userID + dailySalt
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])[:16]
}
