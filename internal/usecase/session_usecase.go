package usecase

import (
	"context"

	"contacts/internal/domain/entity"
)

// SessionUsecase resolves the authenticated principal behind a bearer token.
type SessionUsecase interface {
	// ResolveCurrentUser verifies the access token and returns the account it
	// belongs to, served from the user cache when the entry is warm.
	ResolveCurrentUser(ctx context.Context, accessToken string) (*entity.User, error)
}
