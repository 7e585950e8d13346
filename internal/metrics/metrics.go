// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Auth metrics
	IncUserRegistered()
	IncLoginSuccess()
	IncLoginFailure()
	IncTokenRevoked()

	// Blog metrics
	IncBlogCreated()
	IncBlogLiked()
	IncBlogDeleted()

	// Blog list read path
	IncBlogListCacheHit()
	IncBlogListCacheMiss()

	// Like event pipeline metrics
	IncLikeEventPublished(status string) // status: "success" or "dropped"
	IncLikeEventProcessed(status string) // status: "success", "failed", "dead_lettered"
	ObserveLikeEventBatchSize(size int)
	ObserveLikeEventBatchDuration(duration time.Duration)
	SetLikeEventQueueDepth(depth int64)
	ObserveLikeEventIngestLag(lag time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
