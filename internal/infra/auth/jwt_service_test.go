package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/config"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/errors"
)

func newTestTokenService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Signing = "test_signing_secret_key_very_long_for_testing"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.GenerateAccessToken("alice@example.com", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)

	// The same token must be rejected on the refresh path with a scope error.
	_, err = svc.ValidateRefreshToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidScope))
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.GenerateRefreshToken("bob@example.com", time.Hour)
	require.NoError(t, err)

	subject, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", subject)

	// A refresh token must not pass access verification.
	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestJWTService_EmailTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.GenerateEmailToken("carol@example.com")
	require.NoError(t, err)

	subject, err := svc.ValidateEmailToken(token)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", subject)

	// Email tokens carry no scope, so the API-gating paths reject them.
	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
	_, err = svc.ValidateRefreshToken(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidScope))
}

func TestJWTService_ExpiredTokenFails(t *testing.T) {
	svc := newTestTokenService(t)

	// Issue a token that expired a minute ago; the signature is still valid.
	token, err := svc.GenerateAccessToken("alice@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := newTestTokenService(t)

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = svc.ValidateRefreshToken("not-a-token")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = svc.ValidateEmailToken("not-a-token")
	assert.True(t, errors.Is(err, domainerrors.ErrUnprocessableToken))
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	svc := newTestTokenService(t)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Signing = "a_completely_different_secret_key"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.GenerateAccessToken("alice@example.com", 0)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestJWTService_MissingSecret(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "signing secret must be provided")
}
