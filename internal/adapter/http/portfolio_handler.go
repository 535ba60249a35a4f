package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cryptofolio/cryptofolio-backend/internal/usecase/portfolio"
)

// PortfolioHandler handles portfolio valuation requests
type PortfolioHandler struct {
	Portfolio *portfolio.Service
}

// NewPortfolioHandler creates a new PortfolioHandler instance
func NewPortfolioHandler(portfolioService *portfolio.Service) *PortfolioHandler {
	return &PortfolioHandler{Portfolio: portfolioService}
}

// Get handles GET /portfolio
func (h *PortfolioHandler) Get(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	valuation, err := h.Portfolio.GetValuation(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, newValuationResponse(valuation))
}
