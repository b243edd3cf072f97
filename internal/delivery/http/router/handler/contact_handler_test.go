package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/delivery/http/validator"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockContactUsecase struct {
	mock.Mock
}

func (m *mockContactUsecase) CreateContact(ctx context.Context, ownerID uuid.UUID, input usecase.ContactInput) (*entity.Contact, error) {
	args := m.Called(ctx, ownerID, input)
	contact, _ := args.Get(0).(*entity.Contact)

	return contact, args.Error(1)
}

func (m *mockContactUsecase) GetContact(ctx context.Context, ownerID, contactID uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, ownerID, contactID)
	contact, _ := args.Get(0).(*entity.Contact)

	return contact, args.Error(1)
}

func (m *mockContactUsecase) ListContacts(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Contact, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	contacts, _ := args.Get(0).([]*entity.Contact)

	return contacts, args.Error(1)
}

func (m *mockContactUsecase) UpdateContact(ctx context.Context, ownerID, contactID uuid.UUID, input usecase.ContactInput) (*entity.Contact, error) {
	args := m.Called(ctx, ownerID, contactID, input)
	contact, _ := args.Get(0).(*entity.Contact)

	return contact, args.Error(1)
}

func (m *mockContactUsecase) DeleteContact(ctx context.Context, ownerID, contactID uuid.UUID) error {
	args := m.Called(ctx, ownerID, contactID)

	return args.Error(0)
}

func (m *mockContactUsecase) SearchContacts(ctx context.Context, ownerID uuid.UUID, query string) ([]*entity.Contact, error) {
	args := m.Called(ctx, ownerID, query)
	contacts, _ := args.Get(0).([]*entity.Contact)

	return contacts, args.Error(1)
}

func (m *mockContactUsecase) UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID, days int) ([]*entity.Contact, error) {
	args := m.Called(ctx, ownerID, days)
	contacts, _ := args.Get(0).([]*entity.Contact)

	return contacts, args.Error(1)
}

func newContactContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	deliverycontext.SetCurrentUser(c, &entity.User{ID: uuid.New(), Email: "owner@example.com"})

	return c, rec
}

func TestCreate_MalformedBodyNeverReachesUsecase(t *testing.T) {
	uc := new(mockContactUsecase)
	h := NewContactHandler(uc, slog.Default())

	c, _ := newContactContext(t, http.MethodPost, "/api/contacts", `{"name":`)

	err := h.Create(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	uc.AssertNotCalled(t, "CreateContact", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_MalformedBodyNeverReachesUsecase(t *testing.T) {
	uc := new(mockContactUsecase)
	h := NewContactHandler(uc, slog.Default())

	contactID := uuid.New()
	c, _ := newContactContext(t, http.MethodPut, "/api/contacts/"+contactID.String(), `{"name":`)
	c.SetParamNames("id")
	c.SetParamValues(contactID.String())

	err := h.Update(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	uc.AssertNotCalled(t, "UpdateContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_ValidBodyReachesUsecase(t *testing.T) {
	uc := new(mockContactUsecase)
	h := NewContactHandler(uc, slog.Default())

	c, rec := newContactContext(t, http.MethodPost, "/api/contacts",
		`{"name":"Alice","surname":"Smith","email":"alice@example.com"}`)
	owner := deliverycontext.GetCurrentUser(c)

	created := &entity.Contact{ID: uuid.New(), UserID: owner.ID, Name: "Alice", Surname: "Smith"}
	uc.On("CreateContact", mock.Anything, owner.ID, mock.MatchedBy(func(input usecase.ContactInput) bool {
		return input.Name == "Alice" && input.Surname == "Smith" && input.Email == "alice@example.com"
	})).Return(created, nil).Once()

	err := h.Create(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestCreate_MissingRequiredFieldsFailsValidation(t *testing.T) {
	uc := new(mockContactUsecase)
	h := NewContactHandler(uc, slog.Default())

	c, _ := newContactContext(t, http.MethodPost, "/api/contacts", `{"email":"alice@example.com"}`)

	err := h.Create(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	uc.AssertNotCalled(t, "CreateContact", mock.Anything, mock.Anything, mock.Anything)
}
