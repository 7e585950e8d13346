package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/model"
)

// TokenParser validates a bearer token and returns its auth context.
type TokenParser interface {
	Parse(tokenString string) (*model.AuthContext, error)
}

// RevocationChecker reports whether a token's jti has been revoked.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger      *slog.Logger
	Parser      TokenParser
	Revocations RevocationChecker
}

// Auth returns a middleware that authenticates requests.
// It extracts the bearer token from the Authorization header, verifies the
// signature, checks the revocation list, and injects the auth context into
// the request.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			authCtx, err := cfg.Parser.Parse(token)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			revoked, err := cfg.Revocations.IsTokenRevoked(r.Context(), authCtx.TokenID)
			if err != nil {
				// Fail open: the signature already checked out and a Redis
				// outage must not take authenticated traffic down with it.
				cfg.Logger.Warn("revocation check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
			} else if revoked {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "revoked_token"),
					slog.String("user_id", authCtx.UserID),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the session token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"invalid or missing token","code":"UNAUTHENTICATED"}`))
}
