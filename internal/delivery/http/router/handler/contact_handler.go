package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/delivery/http/response"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContactHandler holds dependencies for the address book endpoints.
type ContactHandler struct {
	uc     usecase.ContactUsecase
	logger *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler, injected by Fx.
func NewContactHandler(uc usecase.ContactUsecase, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{uc: uc, logger: logger}
}

// ContactRequest is the create/update payload. The birthday is a plain date.
type ContactRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Surname     string `json:"surname" validate:"required,max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	Birthday    string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Description string `json:"description" validate:"max=500"`
}

func (r *ContactRequest) toInput() (usecase.ContactInput, error) {
	input := usecase.ContactInput{
		Name:        r.Name,
		Surname:     r.Surname,
		Email:       r.Email,
		Phone:       r.Phone,
		Description: r.Description,
	}

	if r.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", r.Birthday)
		if err != nil {
			return input, domainerrors.ErrValidationFailed.WrapMessage("birthday must be formatted as YYYY-MM-DD")
		}
		input.Birthday = birthday
	}

	return input, nil
}

// Create adds a contact to the caller's address book.
func (h *ContactHandler) Create(c echo.Context) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}

	input, err := h.bindContactInput(c)
	if err != nil {
		return err
	}

	contact, err := h.uc.CreateContact(c.Request().Context(), owner.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toContactResponse(contact), "Contact created")
}

// Get returns a single contact.
func (h *ContactHandler) Get(c echo.Context) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}

	contactID, err := parseContactID(c)
	if err != nil {
		return err
	}

	contact, err := h.uc.GetContact(c.Request().Context(), owner.ID, contactID)
	if err != nil {
		return contactError(err)
	}

	return response.Success(c, http.StatusOK, toContactResponse(contact), "")
}

// List returns the caller's contacts with limit/offset pagination.
func (h *ContactHandler) List(c echo.Context) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	contacts, err := h.uc.ListContacts(c.Request().Context(), owner.ID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toContactResponses(contacts), "")
}

// Update replaces the mutable fields of a contact.
func (h *ContactHandler) Update(c echo.Context) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}

	contactID, err := parseContactID(c)
	if err != nil {
		return err
	}

	input, err := h.bindContactInput(c)
	if err != nil {
		return err
	}

	contact, err := h.uc.UpdateContact(c.Request().Context(), owner.ID, contactID, input)
	if err != nil {
		return contactError(err)
	}

	return response.Success(c, http.StatusOK, toContactResponse(contact), "Contact updated")
}

// Delete removes a contact.
func (h *ContactHandler) Delete(c echo.Context) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}

	contactID, err := parseContactID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteContact(c.Request().Context(), owner.ID, contactID); err != nil {
		return contactError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Search returns contacts matching the q query substring.
func (h *ContactHandler) Search(c echo.Context) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}

	query := c.QueryParam("q")
	if query == "" {
		return response.BindingError(c, "INVALID_INPUT", "Query parameter 'q' is required")
	}

	contacts, err := h.uc.SearchContacts(c.Request().Context(), owner.ID, query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toContactResponses(contacts), "")
}

// UpcomingBirthdays returns contacts with a birthday in the next N days
// (default 7).
func (h *ContactHandler) UpcomingBirthdays(c echo.Context) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}

	days := 7
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return response.BindingError(c, "INVALID_INPUT", "Query parameter 'days' must be a positive integer")
		}
		days = parsed
	}

	contacts, err := h.uc.UpcomingBirthdays(c.Request().Context(), owner.ID, days)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toContactResponses(contacts), "")
}

func (h *ContactHandler) bindContactInput(c echo.Context) (usecase.ContactInput, error) {
	var request ContactRequest
	if err := c.Bind(&request); err != nil {
		return usecase.ContactInput{}, domainerrors.ErrValidationFailed.WrapMessage("invalid contact input")
	}
	if err := c.Validate(&request); err != nil {
		return usecase.ContactInput{}, errors.WithStack(err)
	}

	return request.toInput()
}

// currentOwner returns the authenticated principal set by the auth
// middleware.
func currentOwner(c echo.Context) (*entity.User, error) {
	owner := deliverycontext.GetCurrentUser(c)
	if owner == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return owner, nil
}

func parseContactID(c echo.Context) (uuid.UUID, error) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrContactNotFound
	}

	return contactID, nil
}

// contactError maps the repository's not-found sentinel to the API taxonomy.
func contactError(err error) error {
	if errors.Is(err, repository.ErrContactNotFound) {
		return domainerrors.ErrContactNotFound
	}

	return errors.WithStack(err)
}
