package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	secret := []byte("test-secret-123")
	userID := uuid.New()

	validToken, err := GenerateToken(secret, userID, time.Hour)
	require.NoError(t, err)

	expiredToken, err := GenerateToken(secret, userID, -time.Hour)
	require.NoError(t, err)

	wrongKeyToken, err := GenerateToken([]byte("other-secret"), userID, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		handlerCalled  bool
		expectedStatus int
		expectedErrMsg string
	}{
		{
			name:           "Valid Token",
			authHeader:     "Bearer " + validToken,
			handlerCalled:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing Header",
			authHeader:     "",
			handlerCalled:  false,
			expectedStatus: http.StatusUnauthorized,
			expectedErrMsg: "missing authorization header",
		},
		{
			name:           "Malformed Header",
			authHeader:     "Token " + validToken,
			handlerCalled:  false,
			expectedStatus: http.StatusUnauthorized,
			expectedErrMsg: "invalid authorization header format",
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + expiredToken,
			handlerCalled:  false,
			expectedStatus: http.StatusUnauthorized,
			expectedErrMsg: "invalid or expired token",
		},
		{
			name:           "Wrong Signing Key",
			authHeader:     "Bearer " + wrongKeyToken,
			handlerCalled:  false,
			expectedStatus: http.StatusUnauthorized,
			expectedErrMsg: "invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handlerCalled := false
			handler := AuthMiddleware(secret)(func(c echo.Context) error {
				handlerCalled = true
				got, err := UserID(c)
				require.NoError(t, err)
				assert.Equal(t, userID, got)
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)

			assert.Equal(t, tt.handlerCalled, handlerCalled, "handler called status mismatch")

			if tt.expectedStatus == http.StatusOK {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				httpErr, ok := err.(*echo.HTTPError)
				require.True(t, ok, "error should be an echo.HTTPError")
				assert.Equal(t, tt.expectedStatus, httpErr.Code)
				assert.Contains(t, httpErr.Message, tt.expectedErrMsg)
			}
		})
	}
}

func TestUserID_MissingFromContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := UserID(c)

	assert.Error(t, err)
}
