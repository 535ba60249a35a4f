package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr bool
		errMsg  string
	}{
		{
			name: "empty account should pass",
			account: Account{
				ID:      uuid.New(),
				Balance: decimal.Zero,
			},
			wantErr: false,
		},
		{
			name: "account with positive balance and holdings should pass",
			account: Account{
				ID:      uuid.New(),
				Balance: decimal.NewFromInt(500),
				Holdings: []Holding{
					{Symbol: "bitcoin", Amount: decimal.NewFromFloat(0.01), LastPrice: decimal.NewFromInt(50000)},
					{Symbol: "ethereum", Amount: decimal.NewFromFloat(1.5), LastPrice: decimal.NewFromInt(3000)},
				},
			},
			wantErr: false,
		},
		{
			name: "negative balance should fail",
			account: Account{
				ID:      uuid.New(),
				Balance: decimal.NewFromInt(-1),
			},
			wantErr: true,
			errMsg:  "account balance cannot be negative",
		},
		{
			name: "zero-amount holding should fail",
			account: Account{
				ID:      uuid.New(),
				Balance: decimal.Zero,
				Holdings: []Holding{
					{Symbol: "bitcoin", Amount: decimal.Zero},
				},
			},
			wantErr: true,
			errMsg:  "holding amount must be positive",
		},
		{
			name: "duplicate holding symbols should fail",
			account: Account{
				ID:      uuid.New(),
				Balance: decimal.Zero,
				Holdings: []Holding{
					{Symbol: "bitcoin", Amount: decimal.NewFromFloat(0.01)},
					{Symbol: "bitcoin", Amount: decimal.NewFromFloat(0.02)},
				},
			},
			wantErr: true,
			errMsg:  "holdings must be unique by symbol",
		},
		{
			name: "holding with empty symbol should fail",
			account: Account{
				ID:      uuid.New(),
				Balance: decimal.Zero,
				Holdings: []Holding{
					{Symbol: "", Amount: decimal.NewFromFloat(0.01)},
				},
			},
			wantErr: true,
			errMsg:  "holding symbol cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid deposit",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKindDeposit,
				Amount:    decimal.NewFromInt(100),
				CreatedAt: now,
			},
			wantErr: false,
		},
		{
			name: "valid buy",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKindBuy,
				Symbol:    "bitcoin",
				Amount:    decimal.NewFromFloat(0.01),
				UnitPrice: decimal.NewFromInt(50000),
				CreatedAt: now,
			},
			wantErr: false,
		},
		{
			name: "deposit with symbol should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKindDeposit,
				Symbol:    "bitcoin",
				Amount:    decimal.NewFromInt(100),
				CreatedAt: now,
			},
			wantErr: true,
			errMsg:  "deposit/withdrawal transaction cannot carry a symbol",
		},
		{
			name: "sell without symbol should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKindSell,
				Amount:    decimal.NewFromFloat(0.01),
				UnitPrice: decimal.NewFromInt(50000),
				CreatedAt: now,
			},
			wantErr: true,
			errMsg:  "trade transaction must carry a symbol",
		},
		{
			name: "buy with zero unit price should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKindBuy,
				Symbol:    "bitcoin",
				Amount:    decimal.NewFromFloat(0.01),
				UnitPrice: decimal.Zero,
				CreatedAt: now,
			},
			wantErr: true,
			errMsg:  "trade transaction unit price must be positive",
		},
		{
			name: "non-positive amount should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKindWithdrawal,
				Amount:    decimal.Zero,
				CreatedAt: now,
			},
			wantErr: true,
			errMsg:  "transaction amount must be positive",
		},
		{
			name: "unknown kind should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKind("TRANSFER"),
				Amount:    decimal.NewFromInt(100),
				CreatedAt: now,
			},
			wantErr: true,
			errMsg:  "transaction kind must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccount_Clone(t *testing.T) {
	account := &Account{
		ID:      uuid.New(),
		Balance: decimal.NewFromInt(1000),
		Holdings: []Holding{
			{Symbol: "bitcoin", Amount: decimal.NewFromFloat(0.01)},
		},
		Transactions: []Transaction{
			{ID: uuid.New(), Kind: TransactionKindDeposit, Amount: decimal.NewFromInt(1000), CreatedAt: time.Now()},
		},
	}

	clone := account.Clone()

	assert.Equal(t, account.ID, clone.ID)
	assert.True(t, account.Balance.Equal(clone.Balance))
	assert.Equal(t, account.Holdings, clone.Holdings)
	assert.Equal(t, account.Transactions, clone.Transactions)

	// Mutating the clone must not touch the original
	clone.Balance = decimal.Zero
	clone.Holdings[0].Amount = decimal.NewFromInt(99)
	clone.Transactions = append(clone.Transactions, Transaction{})

	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, account.Holdings[0].Amount.Equal(decimal.NewFromFloat(0.01)))
	assert.Len(t, account.Transactions, 1)
}
