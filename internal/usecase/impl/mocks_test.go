package impl

import (
	"context"
	"io"
	"time"

	"contacts/internal/domain/entity"
	"contacts/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Hand-written testify mocks for the domain interfaces the services depend on.

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *mockUserRepository) ConfirmEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, email, avatarURL string) (*entity.User, error) {
	args := m.Called(ctx, email, avatarURL)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return m.Called(ctx, email, passwordHash).Error(0)
}

type mockContactRepository struct {
	mock.Mock
}

func (m *mockContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *mockContactRepository) FindByID(ctx context.Context, ownerID, contactID uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, ownerID, contactID)
	contact, _ := args.Get(0).(*entity.Contact)

	return contact, args.Error(1)
}

func (m *mockContactRepository) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Contact, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	contacts, _ := args.Get(0).([]*entity.Contact)

	return contacts, args.Error(1)
}

func (m *mockContactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *mockContactRepository) Delete(ctx context.Context, ownerID, contactID uuid.UUID) error {
	return m.Called(ctx, ownerID, contactID).Error(0)
}

func (m *mockContactRepository) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]*entity.Contact, error) {
	args := m.Called(ctx, ownerID, query)
	contacts, _ := args.Get(0).([]*entity.Contact)

	return contacts, args.Error(1)
}

func (m *mockContactRepository) FindAll(ctx context.Context, ownerID uuid.UUID) ([]*entity.Contact, error) {
	args := m.Called(ctx, ownerID)
	contacts, _ := args.Get(0).([]*entity.Contact)

	return contacts, args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(subjectEmail string, ttl time.Duration) (string, error) {
	args := m.Called(subjectEmail, ttl)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) GenerateRefreshToken(subjectEmail string, ttl time.Duration) (string, error) {
	args := m.Called(subjectEmail, ttl)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) GenerateEmailToken(subjectEmail string) (string, error) {
	args := m.Called(subjectEmail)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateAccessToken(token string) (string, error) {
	args := m.Called(token)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateRefreshToken(token string) (string, error) {
	args := m.Called(token)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateEmailToken(token string) (string, error) {
	args := m.Called(token)

	return args.String(0), args.Error(1)
}

type mockUserCache struct {
	mock.Mock
}

func (m *mockUserCache) Get(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserCache) Set(ctx context.Context, email string, user *entity.User, ttl time.Duration) error {
	return m.Called(ctx, email, user, ttl).Error(0)
}

func (m *mockUserCache) Invalidate(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendConfirmation(ctx context.Context, toEmail, username, token string) error {
	return m.Called(ctx, toEmail, username, token).Error(0)
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, toEmail, username, token string) error {
	return m.Called(ctx, toEmail, username, token).Error(0)
}

type mockAvatarStorage struct {
	mock.Mock
}

func (m *mockAvatarStorage) Upload(ctx context.Context, username, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, username, contentType, body)

	return args.String(0), args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishAccountEvent(ctx context.Context, event *service.AccountEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}
