package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSessions resolves a fixed token to a fixed user.
type stubSessions struct {
	token string
	user  *entity.User
}

func (s *stubSessions) ResolveCurrentUser(_ context.Context, accessToken string) (*entity.User, error) {
	if s.user != nil && accessToken == s.token {
		return s.user, nil
	}

	return nil, domainerrors.ErrInvalidCredentials
}

func runAuthenticated(t *testing.T, sessions *stubSessions, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		user := deliverycontext.GetCurrentUser(c)
		require.NotNil(t, user)

		return c.NoContent(http.StatusOK)
	}

	err := NewAuthMiddleware(sessions).Authenticate(next)(c)

	return rec, err
}

func TestAuthenticate_SetsCurrentUser(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}
	sessions := &stubSessions{token: "valid-token", user: user}

	rec, err := runAuthenticated(t, sessions, "Bearer valid-token")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	rec, err := runAuthenticated(t, &stubSessions{}, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAuthenticate_NonBearerScheme(t *testing.T) {
	_, err := runAuthenticated(t, &stubSessions{}, "Basic dXNlcjpwYXNz")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthenticate_RejectedToken(t *testing.T) {
	sessions := &stubSessions{token: "valid-token", user: &entity.User{ID: uuid.New()}}

	rec, err := runAuthenticated(t, sessions, "Bearer expired-token")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}
