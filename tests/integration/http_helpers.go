package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/geekplay/platform/internal/auth"
	"github.com/geekplay/platform/internal/clients"
	"github.com/geekplay/platform/internal/database"
	"github.com/geekplay/platform/internal/handlers"
	middlewareCustom "github.com/geekplay/platform/internal/middleware"
	"github.com/geekplay/platform/internal/repositories"
	"github.com/geekplay/platform/internal/routes"
	"github.com/geekplay/platform/internal/services"
	pkglogger "github.com/geekplay/platform/pkg/logger"
)

const testInternalSecret = "integration-test-internal-secret"

// memoryImageStore satisfies the image store interfaces without a MinIO
// instance. Uploads are recorded, not stored.
type memoryImageStore struct {
	mu    sync.Mutex
	Saved []string
}

func (s *memoryImageStore) SaveProfileImage(ctx context.Context, userID int64, filename string, size int64, content io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := fmt.Sprintf("profiles/%d/%s", userID, filename)
	s.Saved = append(s.Saved, path)
	return path, nil
}

func (s *memoryImageStore) SavePostImage(ctx context.Context, postID int64, filename string, size int64, content io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := fmt.Sprintf("posts/%d/%s", postID, filename)
	s.Saved = append(s.Saved, path)
	return path, nil
}

// TestServer wraps an httptest.Server running one service's API against the
// real database. Auth endpoints are rate limited per IP, so tests create a
// fresh server rather than sharing one.
type TestServer struct {
	Server       *httptest.Server
	DB           *database.DB
	TokenManager *auth.TokenManager
	ImageStore   *memoryImageStore
}

// NewUserTestServer wires the user-service exactly as its main does, minus
// MinIO and the ban sweeper.
func NewUserTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	tokenManager := auth.NewTokenManager(
		"test-secret-32-characters-long-for-testing",
		15*time.Minute,
		7*24*time.Hour,
	)
	auditLogger := pkglogger.NewAuditLogger(logger)

	userRepo := repositories.NewUserRepository(db)
	imageStore := &memoryImageStore{}

	authService := services.NewAuthService(userRepo, tokenManager, logger, auditLogger)
	userService := services.NewUserService(userRepo, imageStore, logger, auditLogger)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)

	r := newTestRouter()
	r.Route("/api", func(api chi.Router) {
		routes.RegisterUserRoutes(api, authHandler, userHandler, tokenManager, testInternalSecret)
	})

	return &TestServer{
		Server:       httptest.NewServer(r),
		DB:           db,
		TokenManager: tokenManager,
		ImageStore:   imageStore,
	}
}

// NewInteractionTestServer wires the interaction-service with its author
// lookups pointed at the given user-service base URL.
func NewInteractionTestServer(db *database.DB, userServiceURL string) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	tokenManager := auth.NewTokenManager(
		"test-secret-32-characters-long-for-testing",
		15*time.Minute,
		7*24*time.Hour,
	)

	commentRepo := repositories.NewCommentRepository(db)
	likeRepo := repositories.NewLikeRepository(db)

	peerHTTP := clients.NewHTTPClient(testInternalSecret, 3*time.Second)
	userClient := clients.NewUserClient(userServiceURL, peerHTTP, logger)

	interactionService := services.NewInteractionService(commentRepo, likeRepo, userClient, logger)
	interactionHandler := handlers.NewInteractionHandler(interactionService)

	r := newTestRouter()
	r.Route("/api", func(api chi.Router) {
		routes.RegisterInteractionRoutes(api, interactionHandler, tokenManager, testInternalSecret)
	})

	return &TestServer{
		Server:       httptest.NewServer(r),
		DB:           db,
		TokenManager: tokenManager,
	}
}

func newTestRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: "test"}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	return r
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	url := ts.Server.URL + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return http.DefaultClient.Do(req)
}

// RequestWithAuth makes an authenticated HTTP request with a bearer token
func (ts *TestServer) RequestWithAuth(method, path, accessToken string, body interface{}) (*http.Response, error) {
	return ts.Request(method, path, body, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
}

// RequestWithSecret makes a peer-to-peer request carrying the shared secret
func (ts *TestServer) RequestWithSecret(method, path string, body interface{}) (*http.Response, error) {
	return ts.Request(method, path, body, map[string]string{
		clients.SecretHeader: testInternalSecret,
	})
}

// ParseJSONResponse parses a JSON response body into the target struct
func ParseJSONResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// ExtractTokensFromResponse extracts the token pair from an auth response
func ExtractTokensFromResponse(resp *http.Response) (accessToken, refreshToken string, err error) {
	defer resp.Body.Close()

	var authResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return "", "", fmt.Errorf("failed to parse response: %w", err)
	}

	if access, ok := authResp["access_token"].(string); ok {
		accessToken = access
	}
	if refresh, ok := authResp["refresh_token"].(string); ok {
		refreshToken = refresh
	}

	return accessToken, refreshToken, nil
}
