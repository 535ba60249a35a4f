package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/cryptofolio-backend/internal/domain"
)

// Position represents one asset line in the aggregated portfolio view
type Position struct {
	Symbol     string
	Amount     decimal.Decimal
	Value      decimal.Decimal // Amount * current unit price
	Allocation decimal.Decimal // Percentage share of the portfolio total (0-100)
}

// Summary is the aggregated, display-ready portfolio
type Summary struct {
	Positions []Position
	Total     decimal.Decimal
}

// Aggregate merges holdings that share the same symbol, values each
// position at the supplied price (a missing price counts as zero, not an
// error), and returns the positions sorted by descending value with ties
// broken by symbol. Pure function: inputs are never mutated and the
// result does not depend on the input holding order.
func Aggregate(holdings []domain.Holding, prices map[string]decimal.Decimal) Summary {
	merged := make(map[string]decimal.Decimal)
	for _, h := range holdings {
		merged[h.Symbol] = merged[h.Symbol].Add(h.Amount)
	}

	positions := make([]Position, 0, len(merged))
	total := decimal.Zero

	for symbol, amount := range merged {
		value := amount.Mul(prices[symbol])
		positions = append(positions, Position{
			Symbol: symbol,
			Amount: amount,
			Value:  value,
		})
		total = total.Add(value)
	}

	sort.Slice(positions, func(i, j int) bool {
		if !positions[i].Value.Equal(positions[j].Value) {
			return positions[i].Value.GreaterThan(positions[j].Value)
		}
		return positions[i].Symbol < positions[j].Symbol
	})

	if total.IsPositive() {
		hundred := decimal.NewFromInt(100)
		for i := range positions {
			positions[i].Allocation = positions[i].Value.Mul(hundred).Div(total)
		}
	}

	return Summary{Positions: positions, Total: total}
}
