package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the type of ledger transaction
type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "DEPOSIT"
	TransactionKindWithdrawal TransactionKind = "WITHDRAWAL"
	TransactionKindBuy        TransactionKind = "BUY"
	TransactionKindSell       TransactionKind = "SELL"
)

// Holding represents the quantity of one asset owned by an account
// Holdings are unique by symbol and never hold a zero or negative amount
type Holding struct {
	Symbol    string
	Amount    decimal.Decimal
	LastPrice decimal.Decimal // Unit price of the last trade touching this holding (informational)
}

// Transaction represents a single ledger entry in the domain layer
// Transactions are append-only and immutable once created
type Transaction struct {
	ID        uuid.UUID
	Kind      TransactionKind
	Symbol    string          // Empty for DEPOSIT/WITHDRAWAL
	Amount    decimal.Decimal // Currency amount for DEPOSIT/WITHDRAWAL, asset quantity for BUY/SELL
	UnitPrice decimal.Decimal // Zero for DEPOSIT/WITHDRAWAL
	CreatedAt time.Time
}

// Account represents a user's account in the domain layer:
// cash balance, asset holdings, and the full transaction history
type Account struct {
	ID           uuid.UUID
	Balance      decimal.Decimal // Reference currency (USD)
	Holdings     []Holding
	Transactions []Transaction
}

// NewAccount creates an empty account with zero balance
func NewAccount(id uuid.UUID) *Account {
	return &Account{
		ID:      id,
		Balance: decimal.Zero,
	}
}

// HoldingFor returns the holding for the given symbol, if present
func (a *Account) HoldingFor(symbol string) (Holding, bool) {
	for _, h := range a.Holdings {
		if h.Symbol == symbol {
			return h, true
		}
	}
	return Holding{}, false
}

// Clone returns a deep copy of the account
// Ledger operations work on a clone so the caller's snapshot is never mutated
func (a *Account) Clone() *Account {
	next := &Account{
		ID:      a.ID,
		Balance: a.Balance,
	}
	if len(a.Holdings) > 0 {
		next.Holdings = make([]Holding, len(a.Holdings))
		copy(next.Holdings, a.Holdings)
	}
	if len(a.Transactions) > 0 {
		next.Transactions = make([]Transaction, len(a.Transactions))
		copy(next.Transactions, a.Transactions)
	}
	return next
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
// CRITICAL: an account must never be persisted with a negative balance
// or a zero-or-negative holding
func (a *Account) Validate() error {
	if a.Balance.IsNegative() {
		return errors.New("account balance cannot be negative")
	}

	seen := make(map[string]bool, len(a.Holdings))
	for _, h := range a.Holdings {
		if h.Symbol == "" {
			return errors.New("holding symbol cannot be empty")
		}
		if h.Amount.LessThanOrEqual(decimal.Zero) {
			return errors.New("holding amount must be positive")
		}
		if seen[h.Symbol] {
			return errors.New("holdings must be unique by symbol")
		}
		seen[h.Symbol] = true
	}

	for _, tx := range a.Transactions {
		if err := tx.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Validate ensures the transaction adheres to domain rules
func (t *Transaction) Validate() error {
	switch t.Kind {
	case TransactionKindDeposit, TransactionKindWithdrawal:
		if t.Symbol != "" {
			return errors.New("deposit/withdrawal transaction cannot carry a symbol")
		}
	case TransactionKindBuy, TransactionKindSell:
		if t.Symbol == "" {
			return errors.New("trade transaction must carry a symbol")
		}
		if t.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return errors.New("trade transaction unit price must be positive")
		}
	default:
		return errors.New("transaction kind must be DEPOSIT, WITHDRAWAL, BUY, or SELL")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}

	return nil
}
