package http

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// NewRouter wires all handlers into an echo instance
func NewRouter(
	authHandler *AuthHandler,
	accountHandler *AccountHandler,
	portfolioHandler *PortfolioHandler,
	marketHandler *MarketHandler,
	tokenSecret []byte,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	api := e.Group("/api/v1")

	// Public
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/market/quotes", marketHandler.Quotes)
	api.GET("/market/history/:symbol", marketHandler.History)

	// Protected
	protected := api.Group("", AuthMiddleware(tokenSecret))
	protected.GET("/account", accountHandler.Get)
	protected.GET("/account/transactions", accountHandler.Transactions)
	protected.GET("/account/stream", accountHandler.Stream)
	protected.POST("/account/deposit", accountHandler.Deposit)
	protected.POST("/account/withdraw", accountHandler.Withdraw)
	protected.POST("/account/buy", accountHandler.Buy)
	protected.POST("/account/sell", accountHandler.Sell)
	protected.GET("/portfolio", portfolioHandler.Get)
	protected.PUT("/settings/name", authHandler.Rename)
	protected.PUT("/settings/password", authHandler.ChangePassword)
	protected.DELETE("/settings/account", authHandler.Delete)

	return e
}
