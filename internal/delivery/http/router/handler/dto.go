// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// UserResponse is the public view of an account. The password hash and the
// stored refresh token never appear here.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar"`
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Avatar:   user.AvatarURL,
	}
}

// TokenPairResponse is the login/refresh payload.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// ContactResponse is the public view of an address book entry.
type ContactResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Birthday    string    `json:"birthday"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toContactResponse(contact *entity.Contact) *ContactResponse {
	birthday := ""
	if !contact.Birthday.IsZero() {
		birthday = contact.Birthday.Format("2006-01-02")
	}

	return &ContactResponse{
		ID:          contact.ID,
		Name:        contact.Name,
		Surname:     contact.Surname,
		Email:       contact.Email,
		Phone:       contact.Phone,
		Birthday:    birthday,
		Description: contact.Description,
		CreatedAt:   contact.CreatedAt,
		UpdatedAt:   contact.UpdatedAt,
	}
}

func toContactResponses(contacts []*entity.Contact) []*ContactResponse {
	out := make([]*ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		out = append(out, toContactResponse(contact))
	}

	return out
}
