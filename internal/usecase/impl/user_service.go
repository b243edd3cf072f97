package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/constants"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/domain/service"
	"contacts/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	userCache    service.UserCache
	mailer       service.Mailer
	avatars      service.AvatarStorage
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	UserCache    service.UserCache
	Mailer       service.Mailer
	Avatars      service.AvatarStorage
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		userCache:    params.UserCache,
		mailer:       params.Mailer,
		avatars:      params.Avatars,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unconfirmed account, mails the confirmation link and
// publishes the registration event. Mail and event failures are logged, not
// surfaced; the account exists either way and the mail can be re-requested.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newUser := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}
	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.sendConfirmationMail(ctx, newUser)
	srv.publishAccountEvent(ctx, constants.EventUserRegistered, newUser)

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login verifies the credentials and issues a token pair. Unknown email and
// wrong password produce the same error, so accounts cannot be enumerated.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !user.Confirmed {
		srv.log(ctx).Warn("Login rejected for unconfirmed account", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrEmailNotConfirmed, "login failed")
	}

	// bcrypt comparison is CPU-bound, keep it after the cheap checks.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	return srv.issueTokenPair(ctx, user)
}

// Refresh exchanges a refresh token for a new pair. Presenting a token other
// than the stored one clears the stored token so the whole session dies, the
// standard response to refresh token replay.
func (srv *userService) Refresh(ctx context.Context, refreshToken string) (*usecase.TokenPairOutput, error) {
	email, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh token rejected", slog.Any("error", err))

		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "refresh failed")
		}

		return nil, errors.Wrap(err, "failed to load user for refresh")
	}

	if user.RefreshToken != refreshToken {
		srv.log(ctx).Warn("Stale refresh token presented, revoking session", slog.String("email", email))

		if err := srv.userRepo.UpdateRefreshToken(ctx, user.ID, ""); err != nil {
			srv.log(ctx).Error("Failed to clear refresh token", slog.String("email", email), slog.Any("error", err))
		}

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "refresh token mismatch")
	}

	return srv.issueTokenPair(ctx, user)
}

// issueTokenPair generates and persists a fresh access/refresh pair.
func (srv *userService) issueTokenPair(ctx context.Context, user *entity.User) (*usecase.TokenPairOutput, error) {
	accessToken, err := srv.tokenService.GenerateAccessToken(user.Email, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err := srv.tokenService.GenerateRefreshToken(user.Email, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	if err := srv.userRepo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to persist refresh token")
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ConfirmEmail marks the account behind the token as confirmed. A token whose
// subject does not exist is treated as unprocessable rather than not-found.
func (srv *userService) ConfirmEmail(ctx context.Context, token string) (*usecase.ConfirmEmailOutput, error) {
	email, err := srv.tokenService.ValidateEmailToken(token)
	if err != nil {
		srv.log(ctx).Warn("Email confirmation token rejected", slog.Any("error", err))

		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUnprocessableToken, "confirmation subject not found")
		}

		return nil, errors.Wrap(err, "failed to load user for confirmation")
	}

	if user.Confirmed {
		return &usecase.ConfirmEmailOutput{AlreadyConfirmed: true}, nil
	}

	if err := srv.userRepo.ConfirmEmail(ctx, email); err != nil {
		return nil, errors.Wrap(err, "failed to confirm email")
	}

	srv.invalidateCachedUser(ctx, email)
	srv.log(ctx).Info("Email confirmed", slog.String("email", email))

	return &usecase.ConfirmEmailOutput{}, nil
}

// RequestEmailConfirmation re-sends the confirmation mail for unconfirmed
// accounts. The outcome is identical for unknown and confirmed addresses.
func (srv *userService) RequestEmailConfirmation(ctx context.Context, email string) error {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Confirmation requested for unknown address", slog.String("email", email))

			return nil
		}

		return errors.Wrap(err, "failed to load user for confirmation request")
	}

	if user.Confirmed {
		return nil
	}

	srv.sendConfirmationMail(ctx, user)

	return nil
}

// RequestPasswordReset mails a reset link if the account exists.
func (srv *userService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Password reset requested for unknown address", slog.String("email", email))

			return nil
		}

		return errors.Wrap(err, "failed to load user for reset request")
	}

	token, err := srv.tokenService.GenerateEmailToken(user.Email)
	if err != nil {
		return errors.Wrap(err, "failed to generate password reset token")
	}

	if err := srv.mailer.SendPasswordReset(ctx, user.Email, user.Username, token); err != nil {
		srv.log(ctx).Error("Failed to send password reset mail", slog.String("email", user.Email), slog.Any("error", err))

		return errors.Wrap(err, "failed to send password reset mail")
	}

	return nil
}

// ResetPassword stores the new password hash and drops the cached principal
// so stale credentials cannot be served from the cache.
func (srv *userService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	email, err := srv.tokenService.ValidateEmailToken(input.Token)
	if err != nil {
		srv.log(ctx).Warn("Password reset token rejected", slog.Any("error", err))

		return err
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUnprocessableToken, "reset subject not found")
		}

		return errors.Wrap(err, "failed to load user for reset")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	if err := srv.userRepo.UpdatePassword(ctx, email, hashedPassword); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	srv.invalidateCachedUser(ctx, email)
	srv.publishAccountEvent(ctx, constants.EventUserPasswordReset, user)
	srv.log(ctx).Info("Password reset completed", slog.String("email", email))

	return nil
}

// UpdateAvatar uploads the image, saves the public URL and re-populates the
// cache with the refreshed row.
func (srv *userService) UpdateAvatar(ctx context.Context, input usecase.UpdateAvatarInput) (*entity.User, error) {
	avatarURL, err := srv.avatars.Upload(ctx, input.Username, input.ContentType, input.Body)
	if err != nil {
		srv.log(ctx).Error("Avatar upload failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	user, err := srv.userRepo.UpdateAvatar(ctx, input.Email, avatarURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save avatar URL")
	}

	if err := srv.userCache.Set(ctx, user.Email, user, service.UserCacheTTL); err != nil {
		srv.log(ctx).Warn("User cache write failed after avatar update", slog.String("email", user.Email), slog.Any("error", err))
	}

	return user, nil
}

// sendConfirmationMail issues an email token and mails the confirmation link.
// Failures are logged only; the caller decided the account state already.
func (srv *userService) sendConfirmationMail(ctx context.Context, user *entity.User) {
	token, err := srv.tokenService.GenerateEmailToken(user.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to generate confirmation token", slog.String("email", user.Email), slog.Any("error", err))

		return
	}

	if err := srv.mailer.SendConfirmation(ctx, user.Email, user.Username, token); err != nil {
		srv.log(ctx).Error("Failed to send confirmation mail", slog.String("email", user.Email), slog.Any("error", err))
	}
}

// publishAccountEvent emits an account event, logging instead of failing the
// request when the broker is unavailable.
func (srv *userService) publishAccountEvent(ctx context.Context, eventType string, user *entity.User) {
	event := &service.AccountEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		UserID:     user.ID.String(),
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	}

	if err := srv.publisher.PublishAccountEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish account event", slog.String("type", eventType), slog.Any("error", err))
	}
}

// invalidateCachedUser drops the cached principal after a mutation.
func (srv *userService) invalidateCachedUser(ctx context.Context, email string) {
	if err := srv.userCache.Invalidate(ctx, email); err != nil {
		srv.log(ctx).Warn("User cache invalidation failed", slog.String("email", email), slog.Any("error", err))
	}
}
