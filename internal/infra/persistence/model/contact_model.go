package model

import (
	"time"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// ContactModel mirrors the 'contacts' table. Every row belongs to exactly one
// user; the composite index backs the per-owner listing queries.
type ContactModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_contacts_user_id"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Surname     string    `gorm:"type:varchar(100);not null"`
	Email       string    `gorm:"type:varchar(255)"`
	Phone       string    `gorm:"type:varchar(50)"`
	Birthday    time.Time `gorm:"type:date"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ContactModel) TableName() string {
	return "contacts"
}

// ToContactDomain maps a persistence model to a pure domain entity.
func ToContactDomain(m *ContactModel) *entity.Contact {
	if m == nil {
		return nil
	}

	return &entity.Contact{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Surname:     m.Surname,
		Email:       m.Email,
		Phone:       m.Phone,
		Birthday:    m.Birthday,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromContactDomain maps a domain entity to its persistence model.
func FromContactDomain(contact *entity.Contact) *ContactModel {
	if contact == nil {
		return nil
	}

	return &ContactModel{
		ID:          contact.ID,
		UserID:      contact.UserID,
		Name:        contact.Name,
		Surname:     contact.Surname,
		Email:       contact.Email,
		Phone:       contact.Phone,
		Birthday:    contact.Birthday,
		Description: contact.Description,
		CreatedAt:   contact.CreatedAt,
		UpdatedAt:   contact.UpdatedAt,
	}
}
