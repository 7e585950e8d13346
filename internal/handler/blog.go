package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/handler/dto"
	"github.com/bloglist/bloglist/internal/service"
)

// BlogHandler handles HTTP requests for blog operations.
type BlogHandler struct {
	svc    *service.BlogService
	logger *slog.Logger
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(svc *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/blogs.
// Listing requires no authentication and returns blogs newest first.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.svc.ListBlogs(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBlogListResponse(blogs))
}

// Get handles GET /api/blogs/{id}.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Blog ID is required")
		return
	}

	blog, err := h.svc.GetBlog(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBlogResponse(blog))
}

// Create handles POST /api/blogs.
// The authenticated user becomes the blog's creator.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	var req dto.CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := dto.ValidateStruct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	blog, err := h.svc.CreateBlog(r.Context(), service.CreateBlogInput{
		Title:     req.Title,
		Author:    req.Author,
		URL:       req.URL,
		CreatorID: authCtx.UserID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("blog_created",
		"blog_id", blog.ID,
		"creator_id", blog.CreatorID,
	)

	writeJSON(w, http.StatusCreated, dto.ToBlogResponse(blog))
}

// Like handles POST /api/blogs/{id}/like.
// Any authenticated user may like any blog, their own included.
func (h *BlogHandler) Like(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Blog ID is required")
		return
	}

	blog, err := h.svc.LikeBlog(r.Context(), id, authCtx.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBlogResponse(blog))
}

// Delete handles DELETE /api/blogs/{id}.
// Only the blog's creator may delete it.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Blog ID is required")
		return
	}

	if err := h.svc.DeleteBlog(r.Context(), id, authCtx.UserID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("blog_deleted", "blog_id", id, "user_id", authCtx.UserID)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps blog service errors to HTTP responses.
func (h *BlogHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBlogNotFound):
		h.writeError(w, http.StatusNotFound, "BLOG_NOT_FOUND", "Blog not found")
	case errors.Is(err, service.ErrNotCreator):
		h.writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the creator can delete a blog")
	case errors.Is(err, service.ErrTitleMissing),
		errors.Is(err, service.ErrURLMissing),
		errors.Is(err, service.ErrTitleTooLong),
		errors.Is(err, service.ErrAuthorTooLong),
		errors.Is(err, service.ErrURLTooLong):
		h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *BlogHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
