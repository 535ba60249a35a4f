package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/cryptofolio-backend/internal/domain"
	"github.com/cryptofolio/cryptofolio-backend/internal/usecase/portfolio"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HoldingResponse represents one holding in API responses
type HoldingResponse struct {
	Symbol    string          `json:"symbol"`
	Amount    decimal.Decimal `json:"amount"`
	LastPrice decimal.Decimal `json:"last_price"`
}

// TransactionResponse represents one ledger transaction in API responses
type TransactionResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Symbol    string          `json:"symbol,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountResponse represents the account snapshot in API responses
type AccountResponse struct {
	ID       string            `json:"id"`
	Balance  decimal.Decimal   `json:"balance"`
	Holdings []HoldingResponse `json:"holdings"`
}

// PositionResponse represents one aggregated portfolio position
type PositionResponse struct {
	Symbol     string          `json:"symbol"`
	Amount     decimal.Decimal `json:"amount"`
	Value      decimal.Decimal `json:"value"`
	Allocation decimal.Decimal `json:"allocation"`
}

// ValuationResponse represents the portfolio valuation
type ValuationResponse struct {
	Positions   []PositionResponse `json:"positions"`
	Total       decimal.Decimal    `json:"total"`
	CashBalance decimal.Decimal    `json:"cash_balance"`
	NetWorth    decimal.Decimal    `json:"net_worth"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	}
}

func newAccountResponse(account *domain.Account) AccountResponse {
	holdings := make([]HoldingResponse, 0, len(account.Holdings))
	for _, h := range account.Holdings {
		holdings = append(holdings, HoldingResponse{
			Symbol:    h.Symbol,
			Amount:    h.Amount,
			LastPrice: h.LastPrice,
		})
	}
	return AccountResponse{
		ID:       account.ID.String(),
		Balance:  account.Balance,
		Holdings: holdings,
	}
}

func newTransactionResponse(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID.String(),
		Kind:      string(tx.Kind),
		Symbol:    tx.Symbol,
		Amount:    tx.Amount,
		UnitPrice: tx.UnitPrice,
		CreatedAt: tx.CreatedAt,
	}
}

func newValuationResponse(v *portfolio.Valuation) ValuationResponse {
	positions := make([]PositionResponse, 0, len(v.Positions))
	for _, p := range v.Positions {
		positions = append(positions, PositionResponse{
			Symbol:     p.Symbol,
			Amount:     p.Amount,
			Value:      p.Value,
			Allocation: p.Allocation,
		})
	}
	return ValuationResponse{
		Positions:   positions,
		Total:       v.Total,
		CashBalance: v.CashBalance,
		NetWorth:    v.NetWorth,
	}
}
