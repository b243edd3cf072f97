package usecase

import (
	"context"
	"time"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// ContactInput defines the data for creating or fully updating a contact.
type ContactInput struct {
	Name        string
	Surname     string
	Email       string
	Phone       string
	Birthday    time.Time
	Description string
}

// ContactUsecase defines the owner-scoped address book operations. The owner
// ID always comes from the resolved session, never from the request payload.
type ContactUsecase interface {
	// CreateContact adds a contact to the owner's address book.
	CreateContact(ctx context.Context, ownerID uuid.UUID, input ContactInput) (*entity.Contact, error)

	// GetContact returns one contact of the owner.
	GetContact(ctx context.Context, ownerID, contactID uuid.UUID) (*entity.Contact, error)

	// ListContacts returns the owner's contacts with limit/offset pagination.
	ListContacts(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Contact, error)

	// UpdateContact replaces the mutable fields of a contact.
	UpdateContact(ctx context.Context, ownerID, contactID uuid.UUID, input ContactInput) (*entity.Contact, error)

	// DeleteContact removes a contact from the owner's address book.
	DeleteContact(ctx context.Context, ownerID, contactID uuid.UUID) error

	// SearchContacts returns contacts matching the query substring in name,
	// surname or email.
	SearchContacts(ctx context.Context, ownerID uuid.UUID, query string) ([]*entity.Contact, error)

	// UpcomingBirthdays returns contacts whose birthday falls within the next
	// N days, ignoring the birth year.
	UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID, days int) ([]*entity.Contact, error)
}
