package repository

import (
	"context"
	"errors"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrContactNotFound is returned when a contact does not exist or does not
// belong to the requesting owner. The two cases are deliberately not
// distinguished.
var ErrContactNotFound = errors.New("contact not found")

// ContactRepository defines owner-scoped persistence operations for contacts.
type ContactRepository interface {
	// Create persists a new contact for the given owner.
	Create(ctx context.Context, contact *entity.Contact) error

	// FindByID retrieves a contact by ID, scoped to the owner.
	FindByID(ctx context.Context, ownerID, contactID uuid.UUID) (*entity.Contact, error)

	// List returns the owner's contacts with limit/offset pagination.
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Contact, error)

	// Update modifies an existing contact, scoped to the owner.
	Update(ctx context.Context, contact *entity.Contact) error

	// Delete removes a contact, scoped to the owner.
	Delete(ctx context.Context, ownerID, contactID uuid.UUID) error

	// Search returns contacts whose name, surname or email contains the query
	// substring, scoped to the owner.
	Search(ctx context.Context, ownerID uuid.UUID, query string) ([]*entity.Contact, error)

	// FindAll returns every contact of the owner, used for calendar scans.
	FindAll(ctx context.Context, ownerID uuid.UUID) ([]*entity.Contact, error)
}
