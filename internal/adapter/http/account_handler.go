package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/cryptofolio-backend/internal/domain"
	"github.com/cryptofolio/cryptofolio-backend/internal/usecase/ledger"
	"github.com/cryptofolio/cryptofolio-backend/internal/usecase/market"
)

// AccountHandler handles the ledger operations on the caller's account
type AccountHandler struct {
	Ledger      *ledger.Service
	Market      *market.Service
	AccountRepo domain.AccountRepository
}

// NewAccountHandler creates a new AccountHandler instance
func NewAccountHandler(ledgerService *ledger.Service, marketService *market.Service, accountRepo domain.AccountRepository) *AccountHandler {
	return &AccountHandler{
		Ledger:      ledgerService,
		Market:      marketService,
		AccountRepo: accountRepo,
	}
}

// AmountRequest represents a deposit or withdrawal payload
// The amount is a decimal string to preserve precision
type AmountRequest struct {
	Amount string `json:"amount"`
}

// TradeRequest represents a buy or sell payload
// The unit price is resolved server-side from current quotes
type TradeRequest struct {
	Symbol   string `json:"symbol"`
	Quantity string `json:"quantity"`
}

// LedgerResponse pairs the appended transaction with the new snapshot
type LedgerResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Account     AccountResponse     `json:"account"`
}

// Get handles GET /account
func (h *AccountHandler) Get(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	account, err := h.Ledger.GetAccount(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, newAccountResponse(account))
}

// Transactions handles GET /account/transactions
func (h *AccountHandler) Transactions(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	account, err := h.Ledger.GetAccount(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}

	transactions := make([]TransactionResponse, 0, len(account.Transactions))
	for _, tx := range account.Transactions {
		transactions = append(transactions, newTransactionResponse(tx))
	}

	return c.JSON(http.StatusOK, transactions)
}

// Deposit handles POST /account/deposit
func (h *AccountHandler) Deposit(c echo.Context) error {
	return h.transfer(c, h.Ledger.Deposit)
}

// Withdraw handles POST /account/withdraw
func (h *AccountHandler) Withdraw(c echo.Context) error {
	return h.transfer(c, h.Ledger.Withdraw)
}

// Buy handles POST /account/buy
func (h *AccountHandler) Buy(c echo.Context) error {
	return h.trade(c, h.Ledger.Buy)
}

// Sell handles POST /account/sell
func (h *AccountHandler) Sell(c echo.Context) error {
	return h.trade(c, h.Ledger.Sell)
}

// Stream handles GET /account/stream
// Sends the account snapshot as a server-sent event on every change
// until the client disconnects
func (h *AccountHandler) Stream(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	ctx := c.Request().Context()
	updates, err := h.AccountRepo.Watch(ctx, userID)
	if err != nil {
		return mapError(err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	for account := range updates {
		payload, err := json.Marshal(newAccountResponse(&account))
		if err != nil {
			continue
		}
		if _, err := fmt.Fprintf(c.Response(), "data: %s\n\n", payload); err != nil {
			return nil
		}
		c.Response().Flush()
	}

	return nil
}

// transfer runs a deposit or withdrawal from an AmountRequest
func (h *AccountHandler) transfer(c echo.Context, op func(context.Context, uuid.UUID, decimal.Decimal) (*ledger.Result, error)) error {
	userID, err := UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	var req AmountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amount format")
	}

	result, err := op(c.Request().Context(), userID, amount)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, LedgerResponse{
		Transaction: newTransactionResponse(result.Transaction),
		Account:     newAccountResponse(result.Account),
	})
}

// trade runs a buy or sell from a TradeRequest, pricing the trade at the
// current market quote for the symbol
func (h *AccountHandler) trade(c echo.Context, op func(context.Context, uuid.UUID, string, decimal.Decimal, decimal.Decimal) (*ledger.Result, error)) error {
	userID, err := UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	var req TradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid quantity format")
	}

	quotes, err := h.Market.GetQuotes(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	unitPrice, ok := quotes.Prices[req.Symbol]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no quote for symbol "+req.Symbol)
	}

	result, err := op(c.Request().Context(), userID, req.Symbol, quantity, unitPrice)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, LedgerResponse{
		Transaction: newTransactionResponse(result.Transaction),
		Account:     newAccountResponse(result.Account),
	})
}
