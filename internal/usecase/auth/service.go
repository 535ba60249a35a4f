package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cryptofolio/cryptofolio-backend/internal/domain"
)

// RegisterInput represents the input for registering a new user
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Service handles user registration, login, and account settings
type Service struct {
	UserRepo    domain.UserRepository
	AccountRepo domain.AccountRepository
}

// NewService creates a new auth Service instance
func NewService(userRepo domain.UserRepository, accountRepo domain.AccountRepository) *Service {
	return &Service{UserRepo: userRepo, AccountRepo: accountRepo}
}

// Register creates a new user together with an empty account.
// The account shares the user's ID and starts with zero balance,
// no holdings, and no transactions.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if len(input.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.AccountRepo.Create(ctx, domain.NewAccount(user.ID)); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and returns the user.
// Fails with domain.ErrInvalidCredentials on unknown email or wrong
// password, without revealing which one was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword replaces the user's password after verifying the old one
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.UserRepo.UpdatePassword(ctx, userID, string(hash))
}

// Rename updates the user's display name
func (s *Service) Rename(ctx context.Context, userID uuid.UUID, name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	return s.UserRepo.UpdateName(ctx, userID, name)
}

// Delete removes the user and the associated account.
// The ledger itself never deletes accounts; this is the administrative
// path behind the settings screen.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.ErrInvalidCredentials
	}

	return s.UserRepo.Delete(ctx, userID)
}
