package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered     uint64
	LoginSuccesses      uint64
	LoginFailures       uint64
	TokensRevoked       uint64
	BlogsCreated        uint64
	BlogsLiked          uint64
	BlogsDeleted        uint64
	BlogListCacheHits   uint64
	BlogListCacheMisses uint64

	LikeEventsPublished    uint64
	LikeEventsDropped      uint64
	LikeEventsProcessed    uint64
	LikeEventsFailed       uint64
	LikeEventsDeadLettered uint64
	LikeEventQueueDepth    int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered     uint64
	loginSuccesses      uint64
	loginFailures       uint64
	tokensRevoked       uint64
	blogsCreated        uint64
	blogsLiked          uint64
	blogsDeleted        uint64
	blogListCacheHits   uint64
	blogListCacheMisses uint64

	likeEventsPublished    uint64
	likeEventsDropped      uint64
	likeEventsProcessed    uint64
	likeEventsFailed       uint64
	likeEventsDeadLettered uint64
	likeEventQueueDepth    int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:     atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:      atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:       atomic.LoadUint64(&m.loginFailures),
		TokensRevoked:       atomic.LoadUint64(&m.tokensRevoked),
		BlogsCreated:        atomic.LoadUint64(&m.blogsCreated),
		BlogsLiked:          atomic.LoadUint64(&m.blogsLiked),
		BlogsDeleted:        atomic.LoadUint64(&m.blogsDeleted),
		BlogListCacheHits:   atomic.LoadUint64(&m.blogListCacheHits),
		BlogListCacheMisses: atomic.LoadUint64(&m.blogListCacheMisses),

		LikeEventsPublished:    atomic.LoadUint64(&m.likeEventsPublished),
		LikeEventsDropped:      atomic.LoadUint64(&m.likeEventsDropped),
		LikeEventsProcessed:    atomic.LoadUint64(&m.likeEventsProcessed),
		LikeEventsFailed:       atomic.LoadUint64(&m.likeEventsFailed),
		LikeEventsDeadLettered: atomic.LoadUint64(&m.likeEventsDeadLettered),
		LikeEventQueueDepth:    atomic.LoadInt64(&m.likeEventQueueDepth),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncTokenRevoked increments the logout counter.
func (m *InMemoryRecorder) IncTokenRevoked() {
	atomic.AddUint64(&m.tokensRevoked, 1)
}

// IncBlogCreated increments the blog created counter.
func (m *InMemoryRecorder) IncBlogCreated() {
	atomic.AddUint64(&m.blogsCreated, 1)
}

// IncBlogLiked increments the blog liked counter.
func (m *InMemoryRecorder) IncBlogLiked() {
	atomic.AddUint64(&m.blogsLiked, 1)
}

// IncBlogDeleted increments the blog deleted counter.
func (m *InMemoryRecorder) IncBlogDeleted() {
	atomic.AddUint64(&m.blogsDeleted, 1)
}

// IncBlogListCacheHit increments the list cache hit counter.
func (m *InMemoryRecorder) IncBlogListCacheHit() {
	atomic.AddUint64(&m.blogListCacheHits, 1)
}

// IncBlogListCacheMiss increments the list cache miss counter.
func (m *InMemoryRecorder) IncBlogListCacheMiss() {
	atomic.AddUint64(&m.blogListCacheMisses, 1)
}

// IncLikeEventPublished increments publish counters by outcome.
func (m *InMemoryRecorder) IncLikeEventPublished(status string) {
	if status == "success" {
		atomic.AddUint64(&m.likeEventsPublished, 1)
		return
	}
	atomic.AddUint64(&m.likeEventsDropped, 1)
}

// IncLikeEventProcessed increments processing counters by outcome.
func (m *InMemoryRecorder) IncLikeEventProcessed(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.likeEventsProcessed, 1)
	case "dead_lettered":
		atomic.AddUint64(&m.likeEventsDeadLettered, 1)
	default:
		atomic.AddUint64(&m.likeEventsFailed, 1)
	}
}

// ObserveLikeEventBatchSize is recorded only by exporting implementations.
func (m *InMemoryRecorder) ObserveLikeEventBatchSize(int) {}

// ObserveLikeEventBatchDuration is recorded only by exporting implementations.
func (m *InMemoryRecorder) ObserveLikeEventBatchDuration(time.Duration) {}

// SetLikeEventQueueDepth stores the latest queue depth.
func (m *InMemoryRecorder) SetLikeEventQueueDepth(depth int64) {
	atomic.StoreInt64(&m.likeEventQueueDepth, depth)
}

// ObserveLikeEventIngestLag is recorded only by exporting implementations.
func (m *InMemoryRecorder) ObserveLikeEventIngestLag(time.Duration) {}
