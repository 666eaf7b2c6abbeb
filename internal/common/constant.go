// Package common contains shared constants and sentinel errors used across
// the warehouse console packages.
package common

// Metadata keys under which the credential store keeps the session.
const (
	TokenKey = "Auth"
	UserKey  = "User"
)

// Header and cookie names used when talking to the backend.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	AuthCookieName          = "Auth"
	BearerPrefix            = "Bearer "
)

// LoginView is the name of the view the console falls back to when the
// session is gone.
const LoginView = "/login"
