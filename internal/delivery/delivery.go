// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a serving surface (HTTP today). Serve blocks until the
// surface stops or the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
