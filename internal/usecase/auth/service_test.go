package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cryptofolio/cryptofolio-backend/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Watch(ctx context.Context, id uuid.UUID) (<-chan domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.Account), args.Error(1)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	mockAccounts := new(MockAccountRepository)
	service := NewService(mockUsers, mockAccounts)

	var createdUser *domain.User
	mockUsers.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		createdUser = args.Get(1).(*domain.User)
	}).Return(nil)
	mockAccounts.On("Create", ctx, mock.MatchedBy(func(a *domain.Account) bool {
		return a.Balance.IsZero() && len(a.Holdings) == 0 && len(a.Transactions) == 0
	})).Return(nil)

	user, err := service.Register(ctx, RegisterInput{
		Email:    "satoshi@example.com",
		Name:     "Satoshi",
		Password: "hunter22",
	})

	require.NoError(t, err)
	assert.Equal(t, "satoshi@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))

	// The account shares the user's ID
	require.NotNil(t, createdUser)
	mockAccounts.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(a *domain.Account) bool {
		return a.ID == createdUser.ID
	}))
}

func TestRegister_ShortPassword(t *testing.T) {
	ctx := context.Background()
	service := NewService(new(MockUserRepository), new(MockAccountRepository))

	user, err := service.Register(ctx, RegisterInput{
		Email:    "satoshi@example.com",
		Name:     "Satoshi",
		Password: "abc",
	})

	assert.Nil(t, user)
	assert.Error(t, err)
}

func TestRegister_InvalidEmail(t *testing.T) {
	ctx := context.Background()
	service := NewService(new(MockUserRepository), new(MockAccountRepository))

	user, err := service.Register(ctx, RegisterInput{
		Email:    "not-an-email",
		Name:     "Satoshi",
		Password: "hunter22",
	})

	assert.Nil(t, user)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockAccountRepository))

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "satoshi@example.com",
		Name:         "Satoshi",
		PasswordHash: hashPassword(t, "hunter22"),
		CreatedAt:    time.Now(),
	}
	mockUsers.On("GetByEmail", ctx, "satoshi@example.com").Return(user, nil)

	got, err := service.Login(ctx, "satoshi@example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockAccountRepository))

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "satoshi@example.com",
		PasswordHash: hashPassword(t, "hunter22"),
	}
	mockUsers.On("GetByEmail", ctx, "satoshi@example.com").Return(user, nil)

	got, err := service.Login(ctx, "satoshi@example.com", "wrong")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockAccountRepository))

	mockUsers.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrUserNotFound)

	got, err := service.Login(ctx, "nobody@example.com", "hunter22")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockAccountRepository))

	userID := uuid.New()
	user := &domain.User{
		ID:           userID,
		Email:        "satoshi@example.com",
		PasswordHash: hashPassword(t, "hunter22"),
	}
	mockUsers.On("GetByID", ctx, userID).Return(user, nil)
	mockUsers.On("UpdatePassword", ctx, userID, mock.AnythingOfType("string")).Return(nil)

	err := service.ChangePassword(ctx, userID, "hunter22", "correcthorse")

	require.NoError(t, err)
	mockUsers.AssertExpectations(t)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockAccountRepository))

	userID := uuid.New()
	user := &domain.User{
		ID:           userID,
		PasswordHash: hashPassword(t, "hunter22"),
	}
	mockUsers.On("GetByID", ctx, userID).Return(user, nil)

	err := service.ChangePassword(ctx, userID, "wrong", "correcthorse")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	mockUsers.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_RequiresPassword(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockAccountRepository))

	userID := uuid.New()
	user := &domain.User{
		ID:           userID,
		PasswordHash: hashPassword(t, "hunter22"),
	}
	mockUsers.On("GetByID", ctx, userID).Return(user, nil)
	mockUsers.On("Delete", ctx, userID).Return(nil)

	assert.ErrorIs(t, service.Delete(ctx, userID, "wrong"), domain.ErrInvalidCredentials)
	assert.NoError(t, service.Delete(ctx, userID, "hunter22"))
}
