package service

import "time"

// Token scope claims. A scope restricts which verification path accepts a
// token, so an access token can never be replayed where a refresh token is
// expected and vice versa. Email tokens carry no scope at all.
const (
	ScopeAccessToken  = "access_token"
	ScopeRefreshToken = "refresh_token"
)

// Default validity windows applied when a caller passes a zero TTL.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
	EmailTokenTTL          = 7 * 24 * time.Hour
)

// TokenService issues and verifies the signed bearer credentials of the
// system. Tokens are self-contained: validity is determined purely by
// signature and timestamps, there is no server-side revocation state.
type TokenService interface {
	// GenerateAccessToken creates a short-lived token with the access scope.
	// A zero ttl applies DefaultAccessTokenTTL.
	GenerateAccessToken(subjectEmail string, ttl time.Duration) (string, error)

	// GenerateRefreshToken creates a long-lived token with the refresh scope.
	// A zero ttl applies DefaultRefreshTokenTTL.
	GenerateRefreshToken(subjectEmail string, ttl time.Duration) (string, error)

	// GenerateEmailToken creates a scope-less token for email confirmation and
	// password reset links, valid for EmailTokenTTL.
	GenerateEmailToken(subjectEmail string) (string, error)

	// ValidateAccessToken returns the subject email of a valid access token.
	// Any failure (signature, expiry, malformed token, wrong scope, missing
	// subject) yields domainerrors.ErrInvalidCredentials.
	ValidateAccessToken(token string) (string, error)

	// ValidateRefreshToken returns the subject email of a valid refresh token.
	// A well-formed token of the wrong scope yields domainerrors.ErrInvalidScope;
	// every other failure yields domainerrors.ErrInvalidCredentials.
	ValidateRefreshToken(token string) (string, error)

	// ValidateEmailToken returns the subject email of a valid email token.
	// Failures yield domainerrors.ErrUnprocessableToken, which is surfaced to
	// the end user following the link rather than gating API access.
	ValidateEmailToken(token string) (string, error)
}
