package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// GetByID retrieves the full account snapshot (balance, holdings, transactions)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// Save overwrites the account's balance, holdings, and transaction log
	// as a single atomic write keyed by account ID
	Save(ctx context.Context, account *Account) error

	// Watch returns a channel of account snapshots for the given account,
	// starting with the current state and followed by one snapshot per
	// change. The channel is closed when ctx is done. Resubscribing
	// restarts the sequence from the then-current state.
	Watch(ctx context.Context, id uuid.UUID) (<-chan Account, error)
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateName updates the user's display name
	UpdateName(ctx context.Context, id uuid.UUID, name string) error

	// UpdatePassword replaces the user's password hash
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Delete removes the user and its account
	Delete(ctx context.Context, id uuid.UUID) error
}

// PriceSource defines the interface for fetching current asset prices
// in the reference currency (USD)
type PriceSource interface {
	// GetPrices returns the current unit price for each requested symbol
	// Symbols unknown to the source are absent from the result
	GetPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)

	// GetHistory returns prices for the symbol over the last `days` days,
	// oldest first
	GetHistory(ctx context.Context, symbol string, days int) ([]decimal.Decimal, error)
}
