package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/cryptofolio-backend/internal/domain"
)

// Valuation represents the full account valuation:
// aggregated positions plus cash
type Valuation struct {
	Positions   []Position
	Total       decimal.Decimal // Market value of all holdings
	CashBalance decimal.Decimal
	NetWorth    decimal.Decimal // Total + CashBalance
}

// Service derives display-ready portfolio valuations from the account
// store and the price source
type Service struct {
	AccountRepo domain.AccountRepository
	Prices      domain.PriceSource
}

// NewService creates a new portfolio Service instance
func NewService(accountRepo domain.AccountRepository, prices domain.PriceSource) *Service {
	return &Service{AccountRepo: accountRepo, Prices: prices}
}

// GetValuation values the account's holdings at current prices
// Logic:
//  1. Read the account snapshot
//  2. Fetch current prices for the held symbols
//  3. Aggregate holdings into sorted positions with a portfolio total
func (s *Service) GetValuation(ctx context.Context, accountID uuid.UUID) (*Valuation, error) {
	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	prices := map[string]decimal.Decimal{}
	if len(account.Holdings) > 0 {
		symbols := make([]string, 0, len(account.Holdings))
		for _, h := range account.Holdings {
			symbols = append(symbols, h.Symbol)
		}

		prices, err = s.Prices.GetPrices(ctx, symbols)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch prices: %w", err)
		}
	}

	summary := Aggregate(account.Holdings, prices)

	return &Valuation{
		Positions:   summary.Positions,
		Total:       summary.Total,
		CashBalance: account.Balance,
		NetWorth:    summary.Total.Add(account.Balance),
	}, nil
}
