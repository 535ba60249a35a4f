package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/cryptofolio-backend/internal/domain"
)

// accountChannel is the NOTIFY channel fired by the accounts trigger
const accountChannel = "account_changes"

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// GetByID retrieves the full account snapshot: balance, holdings, and
// the complete transaction log in chronological order
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account := &domain.Account{ID: id}

	var balanceStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT balance FROM accounts WHERE id = $1`, id,
	).Scan(&balanceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	account.Balance, err = decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}

	if account.Holdings, err = r.loadHoldings(ctx, id); err != nil {
		return nil, err
	}
	if account.Transactions, err = r.loadTransactions(ctx, id); err != nil {
		return nil, err
	}

	return account, nil
}

func (r *accountRepository) loadHoldings(ctx context.Context, id uuid.UUID) ([]domain.Holding, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT symbol, amount, last_price
		FROM holdings
		WHERE account_id = $1
		ORDER BY symbol
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []domain.Holding
	for rows.Next() {
		var h domain.Holding
		var amountStr, lastPriceStr string
		if err := rows.Scan(&h.Symbol, &amountStr, &lastPriceStr); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		if h.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, fmt.Errorf("failed to parse holding amount: %w", err)
		}
		if h.LastPrice, err = decimal.NewFromString(lastPriceStr); err != nil {
			return nil, fmt.Errorf("failed to parse holding last price: %w", err)
		}
		holdings = append(holdings, h)
	}

	return holdings, rows.Err()
}

func (r *accountRepository) loadTransactions(ctx context.Context, id uuid.UUID) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, symbol, amount, unit_price, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at, id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var kind, amountStr, unitPriceStr string
		if err := rows.Scan(&tx.ID, &kind, &tx.Symbol, &amountStr, &unitPriceStr, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Kind = domain.TransactionKind(kind)
		if tx.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, fmt.Errorf("failed to parse transaction amount: %w", err)
		}
		if tx.UnitPrice, err = decimal.NewFromString(unitPriceStr); err != nil {
			return nil, fmt.Errorf("failed to parse transaction unit price: %w", err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, balance, updated_at)
		VALUES ($1, $2, $3)
	`, account.ID, account.Balance.String(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// Save overwrites the account's balance, holdings, and transaction log
// in a single database transaction, so a concurrent reader never sees a
// balance that disagrees with the holdings or the log.
// Transaction inserts are idempotent by ID, which makes retrying a
// failed Save with the same snapshot safe.
func (r *accountRepository) Save(ctx context.Context, account *domain.Account) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1
	`, account.ID, account.Balance.String(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return domain.ErrAccountNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM holdings WHERE account_id = $1`, account.ID,
	); err != nil {
		return fmt.Errorf("failed to clear holdings: %w", err)
	}

	for _, h := range account.Holdings {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO holdings (account_id, symbol, amount, last_price)
			VALUES ($1, $2, $3, $4)
		`, account.ID, h.Symbol, h.Amount.String(), h.LastPrice.String()); err != nil {
			return fmt.Errorf("failed to insert holding %s: %w", h.Symbol, err)
		}
	}

	for _, t := range account.Transactions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (id, account_id, kind, symbol, amount, unit_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`, t.ID, account.ID, string(t.Kind), t.Symbol, t.Amount.String(), t.UnitPrice.String(), t.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account save: %w", err)
	}

	return nil
}

// Watch streams account snapshots: the current state first, then one
// snapshot per change, driven by the accounts NOTIFY trigger.
// The channel is closed when ctx is done.
func (r *accountRepository) Watch(ctx context.Context, id uuid.UUID) (<-chan domain.Account, error) {
	listener := pq.NewListener(r.db.connStr, 10*time.Second, time.Minute, nil)
	if err := listener.Listen(accountChannel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", accountChannel, err)
	}

	out := make(chan domain.Account)
	go func() {
		defer close(out)
		defer listener.Close()

		send := func() bool {
			account, err := r.GetByID(ctx, id)
			if err != nil {
				// Transient read failures (or a deleted account) produce no snapshot
				return true
			}
			select {
			case out <- *account:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case n := <-listener.Notify:
				// A nil notification means the connection was re-established;
				// re-read so no change is missed
				if n == nil || n.Extra == id.String() {
					if !send() {
						return
					}
				}
			}
		}
	}()

	return out, nil
}
