package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/cryptofolio-backend/internal/domain"
)

// Service performs the read-compute-persist flow around the pure ledger
// operations. Each call reads the current account snapshot, applies the
// operation, validates the result, and persists the new snapshot as a
// single atomic write. Nothing is persisted when the operation fails.
type Service struct {
	AccountRepo domain.AccountRepository
}

// NewService creates a new ledger Service instance
func NewService(accountRepo domain.AccountRepository) *Service {
	return &Service{AccountRepo: accountRepo}
}

// Deposit credits amount to the account
func (s *Service) Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*Result, error) {
	return s.apply(ctx, accountID, func(account *domain.Account) (*Result, error) {
		return Deposit(account, amount)
	})
}

// Withdraw debits amount from the account
func (s *Service) Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*Result, error) {
	return s.apply(ctx, accountID, func(account *domain.Account) (*Result, error) {
		return Withdraw(account, amount)
	})
}

// Buy purchases quantity units of symbol at unitPrice
func (s *Service) Buy(ctx context.Context, accountID uuid.UUID, symbol string, quantity, unitPrice decimal.Decimal) (*Result, error) {
	return s.apply(ctx, accountID, func(account *domain.Account) (*Result, error) {
		return Buy(account, symbol, quantity, unitPrice)
	})
}

// Sell disposes of quantity units of symbol at unitPrice
func (s *Service) Sell(ctx context.Context, accountID uuid.UUID, symbol string, quantity, unitPrice decimal.Decimal) (*Result, error) {
	return s.apply(ctx, accountID, func(account *domain.Account) (*Result, error) {
		return Sell(account, symbol, quantity, unitPrice)
	})
}

// GetAccount returns the current account snapshot
func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	return s.AccountRepo.GetByID(ctx, accountID)
}

// apply runs one ledger operation against a fresh snapshot.
// A retry after a failed or timed-out persist must go through apply again
// so it operates on re-read state, never on a stale snapshot.
func (s *Service) apply(ctx context.Context, accountID uuid.UUID, op func(*domain.Account) (*Result, error)) (*Result, error) {
	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	result, err := op(account)
	if err != nil {
		return nil, err
	}

	if err := result.Account.Validate(); err != nil {
		return nil, err
	}

	if err := s.AccountRepo.Save(ctx, result.Account); err != nil {
		return nil, err
	}

	return result, nil
}
