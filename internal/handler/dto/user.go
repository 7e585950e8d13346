package dto

import (
	"time"

	"github.com/bloglist/bloglist/internal/model"
)

// RegisterUserRequest represents the request body for creating a user.
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=3,max=128"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse represents a user in API responses.
// The password hash is never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the session token and the identity of the
// logged-in user.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
	ID       string `json:"id"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// ToLoginResponse converts a login result to LoginResponse DTO.
func ToLoginResponse(token string, user *model.User) *LoginResponse {
	return &LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
		ID:       user.ID,
	}
}
