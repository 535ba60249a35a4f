package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cryptofolio/cryptofolio-backend/internal/usecase/auth"
)

// AuthHandler handles registration, login, and account settings
type AuthHandler struct {
	Auth        *auth.Service
	TokenSecret []byte
	TokenTTL    time.Duration
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService *auth.Service, tokenSecret []byte, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		Auth:        authService,
		TokenSecret: tokenSecret,
		TokenTTL:    tokenTTL,
	}
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse pairs a signed token with the user it belongs to
type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	user, err := h.Auth.Register(c.Request().Context(), auth.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return mapError(err)
	}

	token, err := GenerateToken(h.TokenSecret, user.ID, h.TokenTTL)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, TokenResponse{Token: token, User: newUserResponse(user)})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	user, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapError(err)
	}

	token, err := GenerateToken(h.TokenSecret, user.ID, h.TokenTTL)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token, User: newUserResponse(user)})
}

// RenameRequest represents the display-name change payload
type RenameRequest struct {
	Name string `json:"name"`
}

// Rename handles PUT /settings/name
func (h *AuthHandler) Rename(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	var req RenameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	if err := h.Auth.Rename(c.Request().Context(), userID, req.Name); err != nil {
		return mapError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ChangePasswordRequest represents the password change payload
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword handles PUT /settings/password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	if err := h.Auth.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return mapError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteRequest represents the account deletion payload
type DeleteRequest struct {
	Password string `json:"password"`
}

// Delete handles DELETE /settings/account
func (h *AuthHandler) Delete(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	var req DeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	if err := h.Auth.Delete(c.Request().Context(), userID, req.Password); err != nil {
		return mapError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
