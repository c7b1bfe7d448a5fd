package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow_RegisterLoginRefresh(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	require.NoError(t, testDB.CleanupTables(ctx))

	ts := NewUserTestServer(testDB.DB)
	defer ts.Close()

	email, password := TestUser("flow")

	resp, err := ts.Request(http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Flow Tester",
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.Request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	accessToken, refreshToken, err := ExtractTokensFromResponse(resp)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	resp, err = ts.RequestWithAuth(http.MethodGet, "/api/users/me", accessToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &profile))
	assert.Equal(t, email, profile["email"])
	assert.Equal(t, "Flow Tester", profile["name"])
	assert.Equal(t, false, profile["isAdmin"])

	resp, err = ts.Request(http.MethodPost, "/api/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	newAccess, _, err := ExtractTokensFromResponse(resp)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
}

func TestAuthFlow_BannedUserCannotLogin(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	require.NoError(t, testDB.CleanupTables(ctx))

	ts := NewUserTestServer(testDB.DB)
	defer ts.Close()

	email, password := TestUser("banned")
	user, err := SeedUser(ctx, testDB.Pool, email, password, false)
	require.NoError(t, err)

	bannedUntil := time.Now().Add(1 * time.Hour).UnixMilli()
	resp, err := ts.RequestWithSecret(http.MethodPut, fmt.Sprintf("/api/users/%d/ban", user.ID), bannedUntil)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.Request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Clearing the ban with the zero sentinel restores access
	resp, err = ts.RequestWithSecret(http.MethodPut, fmt.Sprintf("/api/users/%d/ban", user.ID), 0)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.Request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestInternalLookup_RequiresSecret(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	require.NoError(t, testDB.CleanupTables(ctx))

	ts := NewUserTestServer(testDB.DB)
	defer ts.Close()

	email, password := TestUser("lookup")
	user, err := SeedUser(ctx, testDB.Pool, email, password, false)
	require.NoError(t, err)

	resp, err := ts.Request(http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.RequestWithSecret(http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var details map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &details))
	assert.Equal(t, email, details["email"])

	// Password material never leaves the service
	_, leaked := details["passwordHash"]
	assert.False(t, leaked)
}
