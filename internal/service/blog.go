package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bloglist/bloglist/internal/analytics"
	"github.com/bloglist/bloglist/internal/cache"
	"github.com/bloglist/bloglist/internal/metrics"
	"github.com/bloglist/bloglist/internal/model"
	"github.com/bloglist/bloglist/internal/repository"
)

// Blog service errors.
var (
	ErrBlogNotFound  = errors.New("blog not found")
	ErrNotCreator    = errors.New("only the creator can delete a blog")
	ErrTitleMissing  = errors.New("title is required")
	ErrURLMissing    = errors.New("url is required")
	ErrTitleTooLong  = errors.New("title exceeds maximum length")
	ErrAuthorTooLong = errors.New("author exceeds maximum length")
	ErrURLTooLong    = errors.New("url exceeds maximum length")
)

const (
	maxTitleLength  = 200
	maxAuthorLength = 100
	maxURLLength    = 2048
)

// LikeEventPublisher enqueues like events for asynchronous processing.
type LikeEventPublisher interface {
	PublishAsync(event analytics.LikeEventPayload)
}

// BlogService handles blog business logic.
type BlogService struct {
	repo       *repository.Repository
	cache      *cache.Cache
	metrics    metrics.Recorder
	logger     *slog.Logger
	likeEvents LikeEventPublisher
}

// NewBlogService creates a new BlogService.
func NewBlogService(repo *repository.Repository, cache *cache.Cache, recorder metrics.Recorder, logger *slog.Logger) *BlogService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BlogService{
		repo:    repo,
		cache:   cache,
		metrics: recorder,
		logger:  logger,
	}
}

// SetLikeEventPublisher enables asynchronous like event capture.
// Without a publisher, likes are still counted but not recorded as events.
func (s *BlogService) SetLikeEventPublisher(pub LikeEventPublisher) {
	s.likeEvents = pub
}

// CreateBlogInput defines input for creating a blog.
type CreateBlogInput struct {
	Title     string
	Author    string
	URL       string
	CreatorID string
}

// validateBlogInput checks required fields before any mutation happens.
func (s *BlogService) validateBlogInput(input CreateBlogInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrTitleMissing
	}
	if len(input.Title) > maxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(input.URL) == "" {
		return ErrURLMissing
	}
	if len(input.URL) > maxURLLength {
		return ErrURLTooLong
	}
	// Author is free text and optional; only cap its length.
	if len(input.Author) > maxAuthorLength {
		return ErrAuthorTooLong
	}
	return nil
}

// CreateBlog creates a new blog with zero likes, owned by the creator.
func (s *BlogService) CreateBlog(ctx context.Context, input CreateBlogInput) (*model.Blog, error) {
	if err := s.validateBlogInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	blog := &model.Blog{
		ID:        ulid.Make().String(),
		Title:     input.Title,
		Author:    input.Author,
		URL:       input.URL,
		Likes:     0,
		CreatorID: input.CreatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateBlog(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}

	s.invalidateListCache(ctx)
	s.metrics.IncBlogCreated()

	return blog, nil
}

// GetBlog retrieves a blog by ID.
func (s *BlogService) GetBlog(ctx context.Context, id string) (*model.Blog, error) {
	blog, err := s.repo.GetBlogByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	return blog, nil
}

// ListBlogs retrieves all blogs, most recently created first.
// Serves from the short-TTL cache when possible.
func (s *BlogService) ListBlogs(ctx context.Context) ([]*model.Blog, error) {
	if blogs, err := s.cache.GetBlogList(ctx); err == nil {
		s.metrics.IncBlogListCacheHit()
		return blogs, nil
	}
	s.metrics.IncBlogListCacheMiss()

	blogs, err := s.repo.ListBlogs(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetBlogList(ctx, blogs); err != nil {
		// Cache failures never fail the read.
		s.logger.Warn("failed to cache blog list", "error", err)
	}

	return blogs, nil
}

// LikeBlog increments a blog's like counter by exactly one.
// Any authenticated user may like any blog, including their own.
func (s *BlogService) LikeBlog(ctx context.Context, id, likerID string) (*model.Blog, error) {
	blog, err := s.repo.IncrementLikes(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	s.invalidateListCache(ctx)
	s.metrics.IncBlogLiked()

	if s.likeEvents != nil {
		now := time.Now().UTC()
		s.likeEvents.PublishAsync(analytics.LikeEventPayload{
			BlogID:    blog.ID,
			LikerHash: analytics.GenerateLikerHash(likerID, now),
			LikedAt:   now.UnixMilli(),
		})
	}

	return blog, nil
}

// DeleteBlog removes a blog permanently.
// Only the creator may delete; everyone else gets ErrNotCreator.
func (s *BlogService) DeleteBlog(ctx context.Context, id, requesterID string) error {
	blog, err := s.repo.GetBlogByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return ErrBlogNotFound
		}
		return err
	}

	if blog.CreatorID != requesterID {
		return ErrNotCreator
	}

	if err := s.repo.DeleteBlog(ctx, id); err != nil {
		// Lost a race with another delete.
		if errors.Is(err, repository.ErrBlogNotFound) {
			return ErrBlogNotFound
		}
		return err
	}

	s.invalidateListCache(ctx)
	s.metrics.IncBlogDeleted()

	return nil
}

// invalidateListCache drops the cached list after a mutation.
func (s *BlogService) invalidateListCache(ctx context.Context) {
	if err := s.cache.InvalidateBlogList(ctx); err != nil {
		s.logger.Warn("failed to invalidate blog list cache", "error", err)
	}
}
