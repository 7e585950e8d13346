// Package model defines domain entities for the application.
package model

// AuthContext represents the authenticated session attached to a request.
// TokenID is the token's jti claim, used for revocation on logout.
type AuthContext struct {
	UserID   string
	Username string
	TokenID  string
}
