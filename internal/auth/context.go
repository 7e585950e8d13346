package auth

import (
	"context"

	"github.com/bloglist/bloglist/internal/model"
)

type ctxKey struct{}

// ContextWithAuth attaches the authenticated session to the context.
// The auth middleware calls this after token verification.
func ContextWithAuth(ctx context.Context, authCtx *model.AuthContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, authCtx)
}

// AuthFromContext returns the authenticated session, or nil on an
// unauthenticated request.
func AuthFromContext(ctx context.Context) *model.AuthContext {
	authCtx, _ := ctx.Value(ctxKey{}).(*model.AuthContext)
	return authCtx
}

// MustAuthFromContext returns the authenticated session and panics when the
// request did not pass the auth middleware. Handlers mounted behind the
// middleware use this; the panic marks a routing bug, not a runtime state.
func MustAuthFromContext(ctx context.Context) *model.AuthContext {
	authCtx := AuthFromContext(ctx)
	if authCtx == nil {
		panic("auth: handler reached without authentication middleware")
	}
	return authCtx
}
