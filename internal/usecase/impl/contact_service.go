package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	"contacts/internal/domain/repository"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// contactService implements the ContactUsecase interface.
type contactService struct {
	contactRepo repository.ContactRepository
	logger      *slog.Logger
}

// ContactServiceParams holds dependencies for contactService, injected by Fx.
type ContactServiceParams struct {
	fx.In

	ContactRepo repository.ContactRepository
	Logger      *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(params ContactServiceParams) usecase.ContactUsecase {
	return &contactService{
		contactRepo: params.ContactRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *contactService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateContact adds a contact to the owner's address book.
func (srv *contactService) CreateContact(ctx context.Context, ownerID uuid.UUID, input usecase.ContactInput) (*entity.Contact, error) {
	contact := &entity.Contact{
		UserID:      ownerID,
		Name:        input.Name,
		Surname:     input.Surname,
		Email:       input.Email,
		Phone:       input.Phone,
		Birthday:    input.Birthday,
		Description: input.Description,
	}

	if err := srv.contactRepo.Create(ctx, contact); err != nil {
		srv.log(ctx).Error("Failed to create contact", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create contact")
	}

	srv.log(ctx).Debug("Contact created", slog.Any("ownerID", ownerID), slog.Any("contactID", contact.ID))

	return contact, nil
}

// GetContact returns one contact of the owner.
func (srv *contactService) GetContact(ctx context.Context, ownerID, contactID uuid.UUID) (*entity.Contact, error) {
	contact, err := srv.contactRepo.FindByID(ctx, ownerID, contactID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load contact")
	}

	return contact, nil
}

// ListContacts returns the owner's contacts with limit/offset pagination.
// The limit is clamped so a single request cannot drain the table.
func (srv *contactService) ListContacts(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Contact, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	contacts, err := srv.contactRepo.List(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return contacts, nil
}

// UpdateContact replaces the mutable fields of a contact.
func (srv *contactService) UpdateContact(ctx context.Context, ownerID, contactID uuid.UUID, input usecase.ContactInput) (*entity.Contact, error) {
	contact := &entity.Contact{
		ID:          contactID,
		UserID:      ownerID,
		Name:        input.Name,
		Surname:     input.Surname,
		Email:       input.Email,
		Phone:       input.Phone,
		Birthday:    input.Birthday,
		Description: input.Description,
	}

	if err := srv.contactRepo.Update(ctx, contact); err != nil {
		return nil, errors.Wrap(err, "failed to update contact")
	}

	return srv.contactRepo.FindByID(ctx, ownerID, contactID)
}

// DeleteContact removes a contact from the owner's address book.
func (srv *contactService) DeleteContact(ctx context.Context, ownerID, contactID uuid.UUID) error {
	if err := srv.contactRepo.Delete(ctx, ownerID, contactID); err != nil {
		return errors.Wrap(err, "failed to delete contact")
	}

	srv.log(ctx).Debug("Contact deleted", slog.Any("ownerID", ownerID), slog.Any("contactID", contactID))

	return nil
}

// SearchContacts returns contacts matching the query substring.
func (srv *contactService) SearchContacts(ctx context.Context, ownerID uuid.UUID, query string) ([]*entity.Contact, error) {
	contacts, err := srv.contactRepo.Search(ctx, ownerID, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search contacts")
	}

	return contacts, nil
}

// UpcomingBirthdays returns contacts whose birthday falls within the next N
// days. The scan is year-agnostic and in-memory: the candidate set is one
// user's address book, and the December/January wrap is much simpler outside
// SQL.
func (srv *contactService) UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID, days int) ([]*entity.Contact, error) {
	if days <= 0 {
		days = 7
	}

	contacts, err := srv.contactRepo.FindAll(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load contacts for birthday scan")
	}

	today := time.Now()
	upcoming := make([]*entity.Contact, 0)
	for _, contact := range contacts {
		if contact.Birthday.IsZero() {
			continue
		}
		if daysUntilBirthday(today, contact.Birthday) < days {
			upcoming = append(upcoming, contact)
		}
	}

	return upcoming, nil
}

// daysUntilBirthday computes how many days remain until the next occurrence
// of the birthday's month and day, 0 meaning today. The next occurrence is
// built in the current year and rolled over to the following year when it has
// already passed, which also handles the December to January wrap.
func daysUntilBirthday(today time.Time, birthday time.Time) int {
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	next := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(todayDate) {
		next = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	}

	return int(next.Sub(todayDate).Hours() / 24)
}
