package clients

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserClient_FetchByID_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/42", r.URL.Path)
		assert.Equal(t, "shared-secret", r.Header.Get(SecretHeader))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":               42,
			"name":             "Carla",
			"email":            "carla@example.com",
			"profileImagePath": "avatars/carla.png",
		})
	}))
	defer server.Close()

	client := NewUserClient(server.URL, NewHTTPClient("shared-secret", 2*time.Second), testLogger())

	details, found := client.FetchByID(context.Background(), 42)

	assert.True(t, found)
	assert.Equal(t, int64(42), details.ID)
	assert.Equal(t, "Carla", details.Name)
	assert.NotNil(t, details.ProfileImagePath)
	assert.Equal(t, "avatars/carla.png", *details.ProfileImagePath)
}

func TestUserClient_FetchByEmail_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email/carla@example.com", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":   42,
			"name": "Carla",
		})
	}))
	defer server.Close()

	client := NewUserClient(server.URL, NewHTTPClient("shared-secret", 2*time.Second), testLogger())

	details, found := client.FetchByEmail(context.Background(), "carla@example.com")

	assert.True(t, found)
	assert.Equal(t, "Carla", details.Name)
	assert.Nil(t, details.ProfileImagePath)
}

func TestUserClient_FetchByID_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewUserClient(server.URL, NewHTTPClient("shared-secret", 2*time.Second), testLogger())

	_, found := client.FetchByID(context.Background(), 99)

	assert.False(t, found)
}

func TestUserClient_FetchByID_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewUserClient(server.URL, NewHTTPClient("shared-secret", 2*time.Second), testLogger())

	_, found := client.FetchByID(context.Background(), 42)

	assert.False(t, found)
}

func TestUserClient_FetchByID_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "not-a-number"`))
	}))
	defer server.Close()

	client := NewUserClient(server.URL, NewHTTPClient("shared-secret", 2*time.Second), testLogger())

	_, found := client.FetchByID(context.Background(), 42)

	assert.False(t, found)
}

func TestUserClient_FetchByID_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewUserClient(server.URL, NewHTTPClient("shared-secret", 2*time.Second), testLogger())

	_, found := client.FetchByID(context.Background(), 42)

	assert.False(t, found)
}

func TestUserClient_UpdateBanStatus_Success(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/42/ban", r.URL.Path)
		assert.Equal(t, "shared-secret", r.Header.Get(SecretHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewUserClient(server.URL, NewHTTPClient("shared-secret", 2*time.Second), testLogger())

	err := client.UpdateBanStatus(context.Background(), 42, 1700000000000)

	assert.NoError(t, err)
	assert.Equal(t, "1700000000000", gotBody)
}

func TestUserClient_UpdateBanStatus_ZeroSentinel(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewUserClient(server.URL, NewHTTPClient("shared-secret", 2*time.Second), testLogger())

	err := client.UpdateBanStatus(context.Background(), 42, 0)

	assert.NoError(t, err)
	assert.Equal(t, "0", gotBody)
}

func TestUserClient_UpdateBanStatus_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewUserClient(server.URL, NewHTTPClient("shared-secret", 2*time.Second), testLogger())

	err := client.UpdateBanStatus(context.Background(), 42, 0)

	assert.Error(t, err)
}
