package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekplay/platform/internal/models"
)

func newMiddlewareTestSetup(t *testing.T) (*TokenManager, http.Handler) {
	t.Helper()
	tm := NewTokenManager("test-secret-with-enough-length-123", 15*time.Minute, 24*time.Hour)

	handler := AuthMiddleware(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetUserFromContext(r)
		require.NotNil(t, claims)
		w.WriteHeader(http.StatusOK)
	}))

	return tm, handler
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tm, handler := newMiddlewareTestSetup(t)

	pair, err := tm.GeneratePair(&models.User{ID: 1, Email: "u@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	tm, handler := newMiddlewareTestSetup(t)

	pair, err := tm.GeneratePair(&models.User{ID: 1, Email: "u@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MissingAndMalformedHeaders(t *testing.T) {
	_, handler := newMiddlewareTestSetup(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no bearer prefix", header: "token-without-scheme"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tm := NewTokenManager("test-secret-with-enough-length-123", 15*time.Minute, 24*time.Hour)

	handler := AuthMiddleware(tm)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	adminPair, err := tm.GeneratePair(&models.User{ID: 1, Email: "admin@example.com", IsAdmin: true})
	require.NoError(t, err)

	userPair, err := tm.GeneratePair(&models.User{ID: 2, Email: "user@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminPair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userPair.AccessToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
