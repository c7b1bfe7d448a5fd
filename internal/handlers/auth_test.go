package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geekplay/platform/internal/models"
	"github.com/geekplay/platform/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func authRouter(svc *MockAuthService) *chi.Mux {
	h := NewAuthHandler(svc)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestLogin_Success(t *testing.T) {
	svc := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return &services.AuthResponse{
				AccessToken:  "access",
				RefreshToken: "refresh",
				User:         &services.UserResponse{ID: 1, Email: email},
			}, nil
		},
	}
	router := authRouter(svc)

	body := `{"email":"ana@example.com","password":"SecurePassword123!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"access"`)
}

func TestLogin_BannedUserForbidden(t *testing.T) {
	svc := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return nil, models.ErrUserBanned
		},
	}
	router := authRouter(svc)

	body := `{"email":"ana@example.com","password":"SecurePassword123!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := authRouter(&MockAuthService{})

	body := `{"email":"ana@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	svc := &MockAuthService{
		RegisterFunc: func(ctx context.Context, name, email, phone, password string) (*services.AuthResponse, error) {
			return nil, models.ErrEmailAlreadyTaken
		},
	}
	router := authRouter(svc)

	body := `{"name":"Ana","email":"ana@example.com","password":"SecurePassword123!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_InvalidEmailRejected(t *testing.T) {
	router := authRouter(&MockAuthService{})

	body := `{"name":"Ana","email":"not-an-email","password":"SecurePassword123!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
