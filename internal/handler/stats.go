package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bloglist/bloglist/internal/handler/dto"
	"github.com/bloglist/bloglist/internal/repository"
	"github.com/bloglist/bloglist/internal/service"
)

// StatsHandler serves aggregated like statistics.
type StatsHandler struct {
	likeEvents *repository.LikeEventRepository
	blogs      *service.BlogService
	logger     *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(likeEvents *repository.LikeEventRepository, blogs *service.BlogService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		likeEvents: likeEvents,
		blogs:      blogs,
		logger:     logger.With("component", "handler.stats"),
	}
}

// GetBlogStats handles GET /api/blogs/{id}/stats.
// Aggregates come from the asynchronous like event pipeline, so very recent
// likes may not be reflected yet.
func (h *StatsHandler) GetBlogStats(w http.ResponseWriter, r *http.Request) {
	blogID := chi.URLParam(r, "id")
	if blogID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Blog ID is required")
		return
	}

	if _, err := h.blogs.GetBlog(r.Context(), blogID); err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			h.writeError(w, http.StatusNotFound, "BLOG_NOT_FOUND", "Blog not found")
			return
		}
		h.logger.Error("failed to load blog", "blog_id", blogID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}

	from, to := parseStatsRange(r)

	summary, err := h.likeEvents.GetStatsSummary(r.Context(), blogID, from, to)
	if err != nil {
		h.logger.Error("failed to get stats summary", "blog_id", blogID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}

	daily, err := h.likeEvents.GetDailyStats(r.Context(), blogID, from, to)
	if err != nil {
		h.logger.Error("failed to get daily stats", "blog_id", blogID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBlogStatsResponse(blogID, from, to, summary, daily))
}

// parseStatsRange extracts from/to dates from query params.
// Defaults to the last 7 days, capped at 90.
func parseStatsRange(r *http.Request) (time.Time, time.Time) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	to := now

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		if parsed, err := time.Parse("2006-01-02", fromStr); err == nil {
			from = parsed
		}
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		if parsed, err := time.Parse("2006-01-02", toStr); err == nil {
			to = parsed
		}
	}

	if to.Sub(from) > 90*24*time.Hour {
		from = to.AddDate(0, 0, -90)
	}
	if to.After(now) {
		to = now
	}

	return from, to
}

// writeError writes an error response.
func (h *StatsHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
