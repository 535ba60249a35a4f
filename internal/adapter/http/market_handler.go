package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/cryptofolio-backend/internal/usecase/market"
)

// MarketHandler serves quotes and price history for the tracked symbols
type MarketHandler struct {
	Market *market.Service
}

// NewMarketHandler creates a new MarketHandler instance
func NewMarketHandler(marketService *market.Service) *MarketHandler {
	return &MarketHandler{Market: marketService}
}

// QuotesResponse represents current quotes in API responses
type QuotesResponse struct {
	Prices    map[string]decimal.Decimal `json:"prices"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// HistoryResponse represents a symbol's price history
type HistoryResponse struct {
	Symbol string            `json:"symbol"`
	Days   int               `json:"days"`
	Prices []decimal.Decimal `json:"prices"`
}

// Quotes handles GET /market/quotes
func (h *MarketHandler) Quotes(c echo.Context) error {
	quotes, err := h.Market.GetQuotes(c.Request().Context())
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, QuotesResponse{
		Prices:    quotes.Prices,
		UpdatedAt: quotes.UpdatedAt,
	})
}

// History handles GET /market/history/:symbol?days=30
func (h *MarketHandler) History(c echo.Context) error {
	symbol := c.Param("symbol")

	days := 30
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a positive integer")
		}
		days = parsed
	}

	prices, err := h.Market.GetHistory(c.Request().Context(), symbol, days)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, HistoryResponse{
		Symbol: symbol,
		Days:   days,
		Prices: prices,
	})
}
