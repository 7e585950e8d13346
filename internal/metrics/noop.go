package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}

// IncTokenRevoked is a no-op.
func (n *NoopRecorder) IncTokenRevoked() {}

// IncBlogCreated is a no-op.
func (n *NoopRecorder) IncBlogCreated() {}

// IncBlogLiked is a no-op.
func (n *NoopRecorder) IncBlogLiked() {}

// IncBlogDeleted is a no-op.
func (n *NoopRecorder) IncBlogDeleted() {}

// IncBlogListCacheHit is a no-op.
func (n *NoopRecorder) IncBlogListCacheHit() {}

// IncBlogListCacheMiss is a no-op.
func (n *NoopRecorder) IncBlogListCacheMiss() {}

// IncLikeEventPublished is a no-op.
func (n *NoopRecorder) IncLikeEventPublished(string) {}

// IncLikeEventProcessed is a no-op.
func (n *NoopRecorder) IncLikeEventProcessed(string) {}

// ObserveLikeEventBatchSize is a no-op.
func (n *NoopRecorder) ObserveLikeEventBatchSize(int) {}

// ObserveLikeEventBatchDuration is a no-op.
func (n *NoopRecorder) ObserveLikeEventBatchDuration(time.Duration) {}

// SetLikeEventQueueDepth is a no-op.
func (n *NoopRecorder) SetLikeEventQueueDepth(int64) {}

// ObserveLikeEventIngestLag is a no-op.
func (n *NoopRecorder) ObserveLikeEventIngestLag(time.Duration) {}
