package postgres

import (
	"context"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// contactRepository implements the repository.ContactRepository interface using GORM.
// Every query is scoped by the owning user ID so one user can never reach
// another user's records.
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

// Create persists a new contact for the given owner.
func (repo *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	contactM := model.FromContactDomain(contact)

	if err := repo.db.WithContext(ctx).Create(contactM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required contact information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact")
	}

	contact.ID = contactM.ID
	contact.CreatedAt = contactM.CreatedAt
	contact.UpdatedAt = contactM.UpdatedAt

	return nil
}

// FindByID retrieves a contact by ID, scoped to the owner.
func (repo *contactRepository) FindByID(ctx context.Context, ownerID, contactID uuid.UUID) (*entity.Contact, error) {
	var contactM model.ContactModel
	err := repo.db.WithContext(ctx).
		First(&contactM, "id = ? AND user_id = ?", contactID, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact by id")
	}

	return model.ToContactDomain(&contactM), nil
}

// List returns the owner's contacts with limit/offset pagination, newest first.
func (repo *contactRepository) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Contact, error) {
	var contactMs []model.ContactModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&contactMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return toContactDomains(contactMs), nil
}

// Update modifies an existing contact. The owner scope in the WHERE clause
// turns a cross-owner update into a not-found.
func (repo *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	contactM := model.FromContactDomain(contact)

	result := repo.db.WithContext(ctx).
		Model(&model.ContactModel{}).
		Where("id = ? AND user_id = ?", contact.ID, contact.UserID).
		Updates(map[string]any{
			"name":        contactM.Name,
			"surname":     contactM.Surname,
			"email":       contactM.Email,
			"phone":       contactM.Phone,
			"birthday":    contactM.Birthday,
			"description": contactM.Description,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update contact")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// Delete removes a contact, scoped to the owner.
func (repo *contactRepository) Delete(ctx context.Context, ownerID, contactID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Delete(&model.ContactModel{}, "id = ? AND user_id = ?", contactID, ownerID)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete contact")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// Search returns contacts whose name, surname or email contains the query
// substring, case-insensitively, scoped to the owner.
func (repo *contactRepository) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]*entity.Contact, error) {
	pattern := "%" + query + "%"

	var contactMs []model.ContactModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Where("name ILIKE ? OR surname ILIKE ? OR email ILIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&contactMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search contacts")
	}

	return toContactDomains(contactMs), nil
}

// FindAll returns every contact of the owner. Birthday calendar scans filter
// in memory, so no date arithmetic leaks into SQL.
func (repo *contactRepository) FindAll(ctx context.Context, ownerID uuid.UUID) ([]*entity.Contact, error) {
	var contactMs []model.ContactModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Find(&contactMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load contacts")
	}

	return toContactDomains(contactMs), nil
}

func toContactDomains(contactMs []model.ContactModel) []*entity.Contact {
	contacts := make([]*entity.Contact, 0, len(contactMs))
	for i := range contactMs {
		contacts = append(contacts, model.ToContactDomain(&contactMs[i]))
	}

	return contacts
}
