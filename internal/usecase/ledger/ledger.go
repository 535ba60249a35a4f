package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/cryptofolio-backend/internal/domain"
)

// dustThreshold is the residual quantity below which a holding is
// considered fully sold and removed (absorbs decimal rounding)
var dustThreshold = decimal.New(1, -8) // 1e-8

// Result pairs the new account snapshot with the transaction that was
// appended to it. The caller is responsible for persisting the snapshot.
type Result struct {
	Account     *domain.Account
	Transaction domain.Transaction
}

// Deposit adds amount to the account balance and appends a DEPOSIT
// transaction. The input snapshot is never mutated.
// Fails with domain.ErrInvalidAmount if amount is not positive.
func Deposit(account *domain.Account, amount decimal.Decimal) (*Result, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	next := account.Clone()
	next.Balance = next.Balance.Add(amount)

	tx := newTransaction(domain.TransactionKindDeposit, "", amount, decimal.Zero)
	next.Transactions = append(next.Transactions, tx)

	return &Result{Account: next, Transaction: tx}, nil
}

// Withdraw subtracts amount from the account balance and appends a
// WITHDRAWAL transaction.
// Fails with domain.ErrInvalidAmount if amount is not positive,
// domain.ErrInsufficientFunds if amount exceeds the balance.
func Withdraw(account *domain.Account, amount decimal.Decimal) (*Result, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if amount.GreaterThan(account.Balance) {
		return nil, domain.ErrInsufficientFunds
	}

	next := account.Clone()
	next.Balance = next.Balance.Sub(amount)

	tx := newTransaction(domain.TransactionKindWithdrawal, "", amount, decimal.Zero)
	next.Transactions = append(next.Transactions, tx)

	return &Result{Account: next, Transaction: tx}, nil
}

// Buy purchases quantity units of symbol at unitPrice. The cost
// (quantity * unitPrice) is deducted from the balance and the holding for
// symbol is created or incremented. Appends a BUY transaction.
// Fails with domain.ErrInvalidAmount if quantity or unitPrice is not
// positive, domain.ErrInsufficientFunds if the cost exceeds the balance.
func Buy(account *domain.Account, symbol string, quantity, unitPrice decimal.Decimal) (*Result, error) {
	if symbol == "" || quantity.LessThanOrEqual(decimal.Zero) || unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	cost := quantity.Mul(unitPrice)
	if cost.GreaterThan(account.Balance) {
		return nil, domain.ErrInsufficientFunds
	}

	next := account.Clone()
	next.Balance = next.Balance.Sub(cost)

	found := false
	for i := range next.Holdings {
		if next.Holdings[i].Symbol == symbol {
			next.Holdings[i].Amount = next.Holdings[i].Amount.Add(quantity)
			next.Holdings[i].LastPrice = unitPrice
			found = true
			break
		}
	}
	if !found {
		next.Holdings = append(next.Holdings, domain.Holding{
			Symbol:    symbol,
			Amount:    quantity,
			LastPrice: unitPrice,
		})
	}

	tx := newTransaction(domain.TransactionKindBuy, symbol, quantity, unitPrice)
	next.Transactions = append(next.Transactions, tx)

	return &Result{Account: next, Transaction: tx}, nil
}

// Sell disposes of quantity units of symbol at unitPrice. The proceeds
// (quantity * unitPrice) are credited to the balance and the holding is
// decremented, or removed entirely when the remainder falls below the
// dust threshold. Appends a SELL transaction.
// Fails with domain.ErrInvalidAmount if quantity or unitPrice is not
// positive, domain.ErrUnknownAsset if no holding for symbol exists,
// domain.ErrInsufficientHoldings if quantity exceeds the owned amount.
func Sell(account *domain.Account, symbol string, quantity, unitPrice decimal.Decimal) (*Result, error) {
	if symbol == "" || quantity.LessThanOrEqual(decimal.Zero) || unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	holding, ok := account.HoldingFor(symbol)
	if !ok {
		return nil, domain.ErrUnknownAsset
	}
	if quantity.GreaterThan(holding.Amount) {
		return nil, domain.ErrInsufficientHoldings
	}

	next := account.Clone()
	next.Balance = next.Balance.Add(quantity.Mul(unitPrice))

	for i := range next.Holdings {
		if next.Holdings[i].Symbol != symbol {
			continue
		}
		remaining := next.Holdings[i].Amount.Sub(quantity)
		if remaining.LessThanOrEqual(dustThreshold) {
			next.Holdings = append(next.Holdings[:i], next.Holdings[i+1:]...)
		} else {
			next.Holdings[i].Amount = remaining
			next.Holdings[i].LastPrice = unitPrice
		}
		break
	}

	tx := newTransaction(domain.TransactionKindSell, symbol, quantity, unitPrice)
	next.Transactions = append(next.Transactions, tx)

	return &Result{Account: next, Transaction: tx}, nil
}

// newTransaction creates an immutable transaction record
func newTransaction(kind domain.TransactionKind, symbol string, amount, unitPrice decimal.Decimal) domain.Transaction {
	return domain.Transaction{
		ID:        uuid.New(),
		Kind:      kind,
		Symbol:    symbol,
		Amount:    amount,
		UnitPrice: unitPrice,
		CreatedAt: time.Now(),
	}
}
