// Package constants defines shared domain-level constants.
package constants

// Pub/Sub provider identifiers used in configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Account event types published on the event bus.
const (
	EventUserRegistered    = "user.registered"
	EventUserPasswordReset = "user.password_reset"
)
