package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder exposes application metrics to a Prometheus registry.
type PrometheusRecorder struct {
	usersRegistered prometheus.Counter
	logins          *prometheus.CounterVec
	tokensRevoked   prometheus.Counter
	blogOps         *prometheus.CounterVec
	blogListCache   *prometheus.CounterVec

	likeEventsPublished *prometheus.CounterVec
	likeEventsProcessed *prometheus.CounterVec
	likeEventBatchSize  prometheus.Histogram
	likeEventBatchTime  prometheus.Histogram
	likeEventQueueDepth prometheus.Gauge
	likeEventIngestLag  prometheus.Histogram
}

// NewPrometheus returns a Recorder registered with the given registerer.
// Pass prometheus.DefaultRegisterer for the standard /metrics endpoint.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		usersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "bloglist_users_registered_total",
			Help: "Total number of registered users.",
		}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloglist_logins_total",
			Help: "Total number of login attempts by outcome.",
		}, []string{"outcome"}),
		tokensRevoked: factory.NewCounter(prometheus.CounterOpts{
			Name: "bloglist_tokens_revoked_total",
			Help: "Total number of session tokens revoked at logout.",
		}),
		blogOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloglist_blog_operations_total",
			Help: "Total number of blog mutations by operation.",
		}, []string{"operation"}),
		blogListCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloglist_blog_list_cache_total",
			Help: "Blog list cache lookups by result.",
		}, []string{"result"}),
		likeEventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloglist_like_events_published_total",
			Help: "Like events published to the stream by outcome.",
		}, []string{"status"}),
		likeEventsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloglist_like_events_processed_total",
			Help: "Like events consumed from the stream by outcome.",
		}, []string{"status"}),
		likeEventBatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bloglist_like_event_batch_size",
			Help:    "Number of like events per processed batch.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		likeEventBatchTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bloglist_like_event_batch_duration_seconds",
			Help:    "Time spent persisting a batch of like events.",
			Buckets: prometheus.DefBuckets,
		}),
		likeEventQueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bloglist_like_event_queue_depth",
			Help: "Pending plus unread like events in the stream.",
		}),
		likeEventIngestLag: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bloglist_like_event_ingest_lag_seconds",
			Help:    "Delay between a like happening and it being persisted.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}),
	}
}

// IncUserRegistered increments the registration counter.
func (p *PrometheusRecorder) IncUserRegistered() {
	p.usersRegistered.Inc()
}

// IncLoginSuccess increments the successful login counter.
func (p *PrometheusRecorder) IncLoginSuccess() {
	p.logins.WithLabelValues("success").Inc()
}

// IncLoginFailure increments the failed login counter.
func (p *PrometheusRecorder) IncLoginFailure() {
	p.logins.WithLabelValues("failure").Inc()
}

// IncTokenRevoked increments the logout counter.
func (p *PrometheusRecorder) IncTokenRevoked() {
	p.tokensRevoked.Inc()
}

// IncBlogCreated increments the blog created counter.
func (p *PrometheusRecorder) IncBlogCreated() {
	p.blogOps.WithLabelValues("create").Inc()
}

// IncBlogLiked increments the blog liked counter.
func (p *PrometheusRecorder) IncBlogLiked() {
	p.blogOps.WithLabelValues("like").Inc()
}

// IncBlogDeleted increments the blog deleted counter.
func (p *PrometheusRecorder) IncBlogDeleted() {
	p.blogOps.WithLabelValues("delete").Inc()
}

// IncBlogListCacheHit increments the list cache hit counter.
func (p *PrometheusRecorder) IncBlogListCacheHit() {
	p.blogListCache.WithLabelValues("hit").Inc()
}

// IncBlogListCacheMiss increments the list cache miss counter.
func (p *PrometheusRecorder) IncBlogListCacheMiss() {
	p.blogListCache.WithLabelValues("miss").Inc()
}

// IncLikeEventPublished increments the publish counter by outcome.
func (p *PrometheusRecorder) IncLikeEventPublished(status string) {
	p.likeEventsPublished.WithLabelValues(status).Inc()
}

// IncLikeEventProcessed increments the processing counter by outcome.
func (p *PrometheusRecorder) IncLikeEventProcessed(status string) {
	p.likeEventsProcessed.WithLabelValues(status).Inc()
}

// ObserveLikeEventBatchSize records the size of a processed batch.
func (p *PrometheusRecorder) ObserveLikeEventBatchSize(size int) {
	p.likeEventBatchSize.Observe(float64(size))
}

// ObserveLikeEventBatchDuration records how long a batch took to persist.
func (p *PrometheusRecorder) ObserveLikeEventBatchDuration(duration time.Duration) {
	p.likeEventBatchTime.Observe(duration.Seconds())
}

// SetLikeEventQueueDepth records the current stream backlog.
func (p *PrometheusRecorder) SetLikeEventQueueDepth(depth int64) {
	p.likeEventQueueDepth.Set(float64(depth))
}

// ObserveLikeEventIngestLag records end-to-end event latency.
func (p *PrometheusRecorder) ObserveLikeEventIngestLag(lag time.Duration) {
	p.likeEventIngestLag.Observe(lag.Seconds())
}
