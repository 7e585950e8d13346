package handler

import (
	"log/slog"
	"net/http"

	"github.com/bloglist/bloglist/internal/cache"
	"github.com/bloglist/bloglist/internal/repository"
)

// TestingHandler exposes state-reset endpoints for end-to-end test runs.
// It must only be mounted when testing endpoints are enabled; the config
// layer refuses to enable them in production.
type TestingHandler struct {
	repo   *repository.Repository
	cache  *cache.Cache
	logger *slog.Logger
}

// NewTestingHandler creates a new TestingHandler.
func NewTestingHandler(repo *repository.Repository, c *cache.Cache, logger *slog.Logger) *TestingHandler {
	return &TestingHandler{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

// Reset handles POST /api/testing/reset.
// It removes every blog and user and drops the cached blog list.
func (h *TestingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.ResetAll(r.Context()); err != nil {
		h.logger.Error("state_reset_failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "reset failed",
		})
		return
	}

	if err := h.cache.InvalidateBlogList(r.Context()); err != nil {
		// The cache entry expires on its own shortly; reset still succeeded
		h.logger.Warn("blog_list_cache_invalidation_failed", "error", err)
	}

	h.logger.Info("state_reset")

	w.WriteHeader(http.StatusNoContent)
}
