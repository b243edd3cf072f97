// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"contacts/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ResetPasswordInput carries the emailed token together with the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// UpdateAvatarInput carries the uploaded image for the authenticated user.
type UpdateAvatarInput struct {
	Email       string
	Username    string
	ContentType string
	Body        io.Reader
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// TokenPairOutput returns the generated tokens after a successful login or
// refresh.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
}

// ConfirmEmailOutput reports whether the confirmation changed anything.
// Confirming twice is not an error, only a different message.
type ConfirmEmailOutput struct {
	AlreadyConfirmed bool
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates an unconfirmed account and mails a confirmation link.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Login verifies the credentials of a confirmed account and issues an
	// access/refresh token pair, persisting the refresh token.
	Login(ctx context.Context, input LoginInput) (*TokenPairOutput, error)

	// Refresh exchanges a valid refresh token for a new pair. A token that
	// does not match the stored one invalidates the session entirely.
	Refresh(ctx context.Context, refreshToken string) (*TokenPairOutput, error)

	// ConfirmEmail marks the account behind the emailed token as confirmed.
	ConfirmEmail(ctx context.Context, token string) (*ConfirmEmailOutput, error)

	// RequestEmailConfirmation re-sends the confirmation mail. It answers
	// neutrally whether or not the account exists.
	RequestEmailConfirmation(ctx context.Context, email string) error

	// RequestPasswordReset mails a reset link. It answers neutrally whether
	// or not the account exists.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword stores a new password for the account behind the token.
	ResetPassword(ctx context.Context, input ResetPasswordInput) error

	// UpdateAvatar stores the uploaded image and saves its public URL.
	UpdateAvatar(ctx context.Context, input UpdateAvatarInput) (*entity.User, error)
}
