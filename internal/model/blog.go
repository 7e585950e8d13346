// Package model defines domain entities for the application.
package model

import "time"

// Blog represents a blog entry in the list.
// Author is free text describing who wrote the blog; CreatorID references
// the User who added the entry and is fixed at creation.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int64     `json:"likes"`
	CreatorID string    `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
