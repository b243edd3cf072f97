package service

import (
	"context"
	"time"

	"contacts/internal/domain/entity"
)

// UserCacheTTL is the validity window of a cached principal. A cached user
// may lag the persistent store by up to this long.
const UserCacheTTL = 900 * time.Second

// UserCache is a short-lived cache of resolved principals keyed by email.
// It sits in front of the user store so that authenticated requests within
// the TTL window skip the database entirely.
type UserCache interface {
	// Get returns the cached user for the email, or a nil user when the entry
	// is absent or expired. A corrupt entry is reported as a miss, never as an
	// error; only infrastructure failures (cache unreachable) return an error.
	Get(ctx context.Context, email string) (*entity.User, error)

	// Set stores the user under the email key with the given TTL, overwriting
	// any existing entry. A zero ttl applies UserCacheTTL.
	Set(ctx context.Context, email string, user *entity.User, ttl time.Duration) error

	// Invalidate removes the entry immediately. Called whenever the principal
	// mutates server-side so readers do not observe a stale user for the rest
	// of the TTL window.
	Invalidate(ctx context.Context, email string) error
}
