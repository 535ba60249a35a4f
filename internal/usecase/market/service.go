package market

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/cryptofolio-backend/internal/domain"
)

// DefaultSymbols is the set of assets shown on the market screen
var DefaultSymbols = []string{"bitcoin", "ethereum", "solana"}

// Quotes is a snapshot of the tracked symbols' prices
type Quotes struct {
	Prices    map[string]decimal.Decimal
	UpdatedAt time.Time
}

// Service serves current quotes for the tracked symbols from an
// in-memory cache that a scheduler refreshes periodically, falling back
// to a direct fetch when the cache is still empty
type Service struct {
	source  domain.PriceSource
	symbols []string

	mu        sync.RWMutex
	prices    map[string]decimal.Decimal
	updatedAt time.Time
}

// NewService creates a new market Service instance
// If symbols is empty, DefaultSymbols is tracked
func NewService(source domain.PriceSource, symbols []string) *Service {
	if len(symbols) == 0 {
		symbols = DefaultSymbols
	}
	return &Service{source: source, symbols: symbols}
}

// Symbols returns the tracked symbol list
func (s *Service) Symbols() []string {
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// Refresh fetches current prices for the tracked symbols and replaces
// the cache. Meant to be called from a scheduler; a failed refresh keeps
// the previous cache intact.
func (s *Service) Refresh(ctx context.Context) error {
	prices, err := s.source.GetPrices(ctx, s.symbols)
	if err != nil {
		return fmt.Errorf("failed to refresh quotes: %w", err)
	}

	s.mu.Lock()
	s.prices = prices
	s.updatedAt = time.Now()
	s.mu.Unlock()

	return nil
}

// GetQuotes returns the cached quotes, refreshing first if the cache has
// never been filled
func (s *Service) GetQuotes(ctx context.Context) (*Quotes, error) {
	s.mu.RLock()
	cached := s.prices
	updatedAt := s.updatedAt
	s.mu.RUnlock()

	if cached == nil {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
		s.mu.RLock()
		cached = s.prices
		updatedAt = s.updatedAt
		s.mu.RUnlock()
	}

	out := make(map[string]decimal.Decimal, len(cached))
	for symbol, price := range cached {
		out[symbol] = price
	}

	return &Quotes{Prices: out, UpdatedAt: updatedAt}, nil
}

// GetHistory returns the price history for a symbol over the last `days`
// days, oldest first. Days defaults to 30 and is capped at 365.
func (s *Service) GetHistory(ctx context.Context, symbol string, days int) ([]decimal.Decimal, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol cannot be empty")
	}
	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}
	return s.source.GetHistory(ctx, symbol, days)
}
