// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"contacts/config"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// All three token kinds are signed with the same HS256 secret; the scope claim
// is what keeps the verification paths apart.
type jwtService struct {
	signingSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	accessTTL := cfg.SecretKey.AccessTTL
	if accessTTL <= 0 {
		accessTTL = service.DefaultAccessTokenTTL
	}
	refreshTTL := cfg.SecretKey.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = service.DefaultRefreshTokenTTL
	}

	return &jwtService{
		signingSecret: []byte(cfg.SecretKey.Signing),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// GenerateAccessToken creates a token carrying the access scope.
func (s *jwtService) GenerateAccessToken(subjectEmail string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.accessTTL
	}

	return s.generateToken(subjectEmail, ttl, service.ScopeAccessToken)
}

// GenerateRefreshToken creates a token carrying the refresh scope.
func (s *jwtService) GenerateRefreshToken(subjectEmail string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.refreshTTL
	}

	return s.generateToken(subjectEmail, ttl, service.ScopeRefreshToken)
}

// GenerateEmailToken creates a scope-less token for confirmation and reset links.
func (s *jwtService) GenerateEmailToken(subjectEmail string) (string, error) {
	return s.generateToken(subjectEmail, service.EmailTokenTTL, "")
}

// ValidateAccessToken returns the subject of a valid access-scoped token.
func (s *jwtService) ValidateAccessToken(tokenString string) (string, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return "", domainerrors.ErrInvalidCredentials.WrapMessage("invalid access token")
	}

	if scope, _ := claims["scope"].(string); scope != service.ScopeAccessToken {
		return "", domainerrors.ErrInvalidCredentials.WrapMessage("token is not an access token")
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", domainerrors.ErrInvalidCredentials.WrapMessage("token subject missing")
	}

	return subject, nil
}

// ValidateRefreshToken returns the subject of a valid refresh-scoped token.
func (s *jwtService) ValidateRefreshToken(tokenString string) (string, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return "", domainerrors.ErrInvalidCredentials.WrapMessage("invalid refresh token")
	}

	if scope, _ := claims["scope"].(string); scope != service.ScopeRefreshToken {
		return "", domainerrors.ErrInvalidScope.WrapMessage("token is not a refresh token")
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", domainerrors.ErrInvalidCredentials.WrapMessage("token subject missing")
	}

	return subject, nil
}

// ValidateEmailToken returns the subject of a valid email token. The error
// class differs from the API-gating paths because the failure is shown to a
// person following a stale link, not to an API client.
func (s *jwtService) ValidateEmailToken(tokenString string) (string, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return "", domainerrors.ErrUnprocessableToken.WrapMessage("invalid email token")
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", domainerrors.ErrUnprocessableToken.WrapMessage("token subject missing")
	}

	return subject, nil
}

// parseClaims verifies signature and registered time claims, returning the
// claim set. jwt.Parse rejects expired tokens by default.
func (s *jwtService) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.signingSecret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	return claims, nil
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(subjectEmail string, ttl time.Duration, scope string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subjectEmail,         // Subject (who the token is for)
		"iat": now.Unix(),           // Issued At
		"exp": now.Add(ttl).Unix(),  // Expiration Time
	}
	// Email tokens carry no scope claim at all.
	if scope != "" {
		claims["scope"] = scope
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.signingSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}
