// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the authenticated principal of the system. The email address is the
// identity key used as the token subject and the cache key; the username only
// has to be unique for display purposes.
//
// The JSON tags define the cache wire format, not an API response. Handlers
// must map to a response DTO so the hash and refresh token never leave the
// process.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	// Confirmed is set once the user followed the emailed confirmation link.
	// Unconfirmed accounts cannot log in.
	Confirmed bool   `json:"confirmed"`
	AvatarURL string `json:"avatar"`
	// RefreshToken is the currently valid refresh token for this account.
	// A refresh attempt with any other token invalidates the session.
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
