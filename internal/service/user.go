// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/cache"
	"github.com/bloglist/bloglist/internal/metrics"
	"github.com/bloglist/bloglist/internal/model"
	"github.com/bloglist/bloglist/internal/repository"
)

// User service errors.
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("wrong username or password")
)

// dummyHash is verified against when the username is unknown so that a
// failed login takes the same time whether or not the user exists.
// argon2id of an unguessable random string.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=4$AAAAAAAAAAAAAAAAAAAAAA$yZ8InIcmTDKi2sGmS9OdKr9ZTZ5MJVYYrOtTOTOpOmE"

// UserService handles registration, login and logout.
type UserService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	issuer  *auth.TokenIssuer
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, cache *cache.Cache, issuer *auth.TokenIssuer, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		cache:   cache,
		issuer:  issuer,
		metrics: recorder,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Name     string
	Username string
	Password string
}

// Register creates a new user with a hashed credential.
// The plaintext password is never stored or returned.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := auth.ValidateCredentials(input.Name, input.Username, input.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Name:         input.Name,
		Username:     input.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// LoginOutput carries the issued session token and the logged-in user.
type LoginOutput struct {
	Token string
	User  *model.User
}

// Login verifies credentials and issues a session token.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn the same hashing cost as a real verification.
			_, _ = auth.VerifyPassword(password, dummyHash)
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLoginSuccess()

	return &LoginOutput{Token: token, User: user}, nil
}

// Logout revokes the session token carried by the auth context.
// The revocation entry lives as long as the token could still be valid.
func (s *UserService) Logout(ctx context.Context, authCtx *model.AuthContext) error {
	if err := s.cache.RevokeToken(ctx, authCtx.TokenID, s.issuer.TTL()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.metrics.IncTokenRevoked()

	return nil
}
