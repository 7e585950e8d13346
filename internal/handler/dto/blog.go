package dto

import (
	"time"

	"github.com/bloglist/bloglist/internal/model"
)

// CreateBlogRequest represents the request body for creating a blog.
type CreateBlogRequest struct {
	Title  string `json:"title" validate:"required,max=200"`
	Author string `json:"author" validate:"max=100"`
	URL    string `json:"url" validate:"required,max=2048"`
}

// BlogResponse represents a blog in API responses.
type BlogResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int64     `json:"likes"`
	CreatorID string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBlogResponse converts a Blog model to BlogResponse DTO.
func ToBlogResponse(blog *model.Blog) *BlogResponse {
	return &BlogResponse{
		ID:        blog.ID,
		Title:     blog.Title,
		Author:    blog.Author,
		URL:       blog.URL,
		Likes:     blog.Likes,
		CreatorID: blog.CreatorID,
		CreatedAt: blog.CreatedAt,
		UpdatedAt: blog.UpdatedAt,
	}
}

// ToBlogListResponse converts a slice of Blog models to response DTOs.
// The list endpoint returns a bare JSON array, newest first.
func ToBlogListResponse(blogs []*model.Blog) []BlogResponse {
	responses := make([]BlogResponse, len(blogs))
	for i, blog := range blogs {
		responses[i] = *ToBlogResponse(blog)
	}
	return responses
}
