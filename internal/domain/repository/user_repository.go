// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// UpdateRefreshToken stores the currently valid refresh token for the user.
	// An empty token clears the stored session.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	// ConfirmEmail marks the user's email address as confirmed.
	ConfirmEmail(ctx context.Context, email string) error

	// UpdateAvatar stores a new avatar URL for the user identified by email.
	UpdateAvatar(ctx context.Context, email, avatarURL string) (*entity.User, error)

	// UpdatePassword replaces the stored password hash for the user.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
