package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/domain/service"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionServiceMocks struct {
	tokenService *mockTokenService
	userCache    *mockUserCache
	userRepo     *mockUserRepository
}

func newTestSessionService(t *testing.T) (usecase.SessionUsecase, *sessionServiceMocks) {
	t.Helper()

	mocks := &sessionServiceMocks{
		tokenService: &mockTokenService{},
		userCache:    &mockUserCache{},
		userRepo:     &mockUserRepository{},
	}

	srv := NewSessionService(SessionServiceParams{
		TokenService: mocks.tokenService,
		UserCache:    mocks.userCache,
		UserRepo:     mocks.userRepo,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return srv, mocks
}

func (m *sessionServiceMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.tokenService.AssertExpectations(t)
	m.userCache.AssertExpectations(t)
	m.userRepo.AssertExpectations(t)
}

func TestResolveCurrentUser_ColdCacheLoadsStoreOnce(t *testing.T) {
	srv, mocks := newTestSessionService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "alice@example.com", Confirmed: true}

	mocks.tokenService.On("ValidateAccessToken", "token").Return("alice@example.com", nil).Once()
	mocks.userCache.On("Get", ctx, "alice@example.com").Return(nil, nil).Once()
	mocks.userRepo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil).Once()
	mocks.userCache.On("Set", ctx, "alice@example.com", user, service.UserCacheTTL).Return(nil).Once()

	resolved, err := srv.ResolveCurrentUser(ctx, "token")

	require.NoError(t, err)
	assert.Equal(t, user, resolved)
	mocks.assertExpectations(t)
}

func TestResolveCurrentUser_WarmCacheSkipsStore(t *testing.T) {
	srv, mocks := newTestSessionService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}

	mocks.tokenService.On("ValidateAccessToken", "token").Return("alice@example.com", nil).Once()
	mocks.userCache.On("Get", ctx, "alice@example.com").Return(user, nil).Once()

	resolved, err := srv.ResolveCurrentUser(ctx, "token")

	require.NoError(t, err)
	assert.Equal(t, user, resolved)
	mocks.userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	mocks.userCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mocks.assertExpectations(t)
}

func TestResolveCurrentUser_RejectsInvalidToken(t *testing.T) {
	srv, mocks := newTestSessionService(t)

	mocks.tokenService.On("ValidateAccessToken", "garbage").
		Return("", domainerrors.ErrInvalidCredentials).Once()

	resolved, err := srv.ResolveCurrentUser(context.Background(), "garbage")

	require.Error(t, err)
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	mocks.userCache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	mocks.assertExpectations(t)
}

func TestResolveCurrentUser_GhostSubjectIsNotCached(t *testing.T) {
	srv, mocks := newTestSessionService(t)
	ctx := context.Background()

	mocks.tokenService.On("ValidateAccessToken", "token").Return("ghost@example.com", nil).Once()
	mocks.userCache.On("Get", ctx, "ghost@example.com").Return(nil, nil).Once()
	mocks.userRepo.On("FindByEmail", ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound).Once()

	resolved, err := srv.ResolveCurrentUser(ctx, "token")

	require.Error(t, err)
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	mocks.userCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mocks.assertExpectations(t)
}

func TestResolveCurrentUser_CacheReadFailureFallsThroughToStore(t *testing.T) {
	srv, mocks := newTestSessionService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}

	mocks.tokenService.On("ValidateAccessToken", "token").Return("alice@example.com", nil).Once()
	mocks.userCache.On("Get", ctx, "alice@example.com").
		Return(nil, errors.New("redis connection refused")).Once()
	mocks.userRepo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil).Once()
	mocks.userCache.On("Set", ctx, "alice@example.com", user, service.UserCacheTTL).Return(nil).Once()

	resolved, err := srv.ResolveCurrentUser(ctx, "token")

	require.NoError(t, err)
	assert.Equal(t, user, resolved)
	mocks.assertExpectations(t)
}

func TestResolveCurrentUser_CacheWriteFailureDoesNotFailResolve(t *testing.T) {
	srv, mocks := newTestSessionService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}

	mocks.tokenService.On("ValidateAccessToken", "token").Return("alice@example.com", nil).Once()
	mocks.userCache.On("Get", ctx, "alice@example.com").Return(nil, nil).Once()
	mocks.userRepo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil).Once()
	mocks.userCache.On("Set", ctx, "alice@example.com", user, service.UserCacheTTL).
		Return(errors.New("redis connection refused")).Once()

	resolved, err := srv.ResolveCurrentUser(ctx, "token")

	require.NoError(t, err)
	assert.Equal(t, user, resolved)
	mocks.assertExpectations(t)
}
