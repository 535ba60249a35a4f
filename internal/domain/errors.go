package domain

import "errors"

// Validation errors produced by the ledger before any state is computed.
var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrUnknownAsset         = errors.New("asset not held")
)

// Boundary errors surfaced by repositories and external clients.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPriceUnavailable   = errors.New("price source unavailable")
)
