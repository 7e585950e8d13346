package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"github.com/bloglist/bloglist/internal/model"
)

// Token errors.
var (
	// ErrInvalidToken indicates the token is malformed, expired, or has a bad signature.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenIssuer issues and parses HS256 session tokens.
// Tokens are stateless; logout is handled by a revocation list keyed on jti.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret and token lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed session token for the user.
// Returns the token string and its jti for revocation bookkeeping.
func (ti *TokenIssuer) Issue(user *model.User) (string, string, error) {
	jti := ulid.Make().String()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": user.ID,
		"usr": user.Username,
		"jti": jti,
		"iat": now.Unix(),
		"exp": now.Add(ti.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}

	return signed, jti, nil
}

// Parse validates a session token and returns the auth context it carries.
func (ti *TokenIssuer) Parse(tokenString string) (*model.AuthContext, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	username, _ := claims["usr"].(string)
	jti, _ := claims["jti"].(string)
	if sub == "" || username == "" || jti == "" {
		return nil, ErrInvalidToken
	}

	return &model.AuthContext{
		UserID:   sub,
		Username: username,
		TokenID:  jti,
	}, nil
}

// TTL returns the configured token lifetime.
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}
