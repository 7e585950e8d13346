package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bloglist/bloglist/internal/model"
)

// Common errors for blog repository operations.
var (
	ErrBlogNotFound = errors.New("blog not found")
)

// CreateBlog inserts a new blog into the database.
func (r *Repository) CreateBlog(ctx context.Context, blog *model.Blog) error {
	query := `
		INSERT INTO blogs (id, title, author, url, likes, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.CreatorID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

// GetBlogByID retrieves a blog by its ID.
func (r *Repository) GetBlogByID(ctx context.Context, id string) (*model.Blog, error) {
	query := `
		SELECT id, title, author, url, likes, creator_id, created_at, updated_at
		FROM blogs
		WHERE id = $1
	`

	blog, err := r.scanBlog(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to get blog by ID: %w", err)
	}

	return blog, nil
}

// ListBlogs retrieves all blogs, most recently created first.
func (r *Repository) ListBlogs(ctx context.Context) ([]*model.Blog, error) {
	query := `
		SELECT id, title, author, url, likes, creator_id, created_at, updated_at
		FROM blogs
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]*model.Blog, 0)
	for rows.Next() {
		blog, err := r.scanBlogFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blogs: %w", err)
	}

	return blogs, nil
}

// IncrementLikes increments a blog's like counter by exactly one and returns
// the updated row. The single UPDATE is atomic, so concurrent likes are never
// lost and a like racing a delete resolves to either the update or not-found.
func (r *Repository) IncrementLikes(ctx context.Context, id string) (*model.Blog, error) {
	query := `
		UPDATE blogs
		SET likes = likes + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, author, url, likes, creator_id, created_at, updated_at
	`

	blog, err := r.scanBlog(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to increment likes: %w", err)
	}

	return blog, nil
}

// DeleteBlog removes a blog permanently.
// A second delete of the same id reports ErrBlogNotFound.
func (r *Repository) DeleteBlog(ctx context.Context, id string) error {
	query := `DELETE FROM blogs WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBlogNotFound
	}

	return nil
}

// scanBlog scans a single row into a Blog model.
func (r *Repository) scanBlog(row pgx.Row) (*model.Blog, error) {
	var blog model.Blog
	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&blog.CreatorID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	return &blog, err
}

// scanBlogFromRows scans a row from pgx.Rows into a Blog model.
func (r *Repository) scanBlogFromRows(rows pgx.Rows) (*model.Blog, error) {
	var blog model.Blog
	err := rows.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&blog.CreatorID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	return &blog, err
}
