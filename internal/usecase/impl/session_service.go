// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/domain/service"
	"contacts/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	tokenService service.TokenService
	userCache    service.UserCache
	userRepo     repository.UserRepository
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TokenService service.TokenService
	UserCache    service.UserCache
	UserRepo     repository.UserRepository
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		tokenService: params.TokenService,
		userCache:    params.UserCache,
		userRepo:     params.UserRepo,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ResolveCurrentUser turns a bearer access token into the account it belongs
// to. The cache is read-through: a warm entry short-circuits the store, a
// miss loads from the store and back-fills the cache for the TTL window. A
// token whose subject no longer exists resolves to invalid credentials and
// never back-fills, so deleted accounts cannot linger in the cache.
func (srv *sessionService) ResolveCurrentUser(ctx context.Context, accessToken string) (*entity.User, error) {
	email, err := srv.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		srv.log(ctx).Warn("Access token rejected", slog.Any("error", err))

		return nil, err
	}

	// Cache errors degrade to a miss: the store stays authoritative.
	cached, err := srv.userCache.Get(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("User cache read failed", slog.String("email", email), slog.Any("error", err))
	}
	if cached != nil {
		return cached, nil
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Token subject has no account", slog.String("email", email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "token subject not found")
		}

		return nil, errors.Wrap(err, "failed to load user for session")
	}

	if err := srv.userCache.Set(ctx, email, user, service.UserCacheTTL); err != nil {
		srv.log(ctx).Warn("User cache write failed", slog.String("email", email), slog.Any("error", err))
	}

	return user, nil
}
