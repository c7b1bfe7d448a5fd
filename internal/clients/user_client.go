package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

// AuthorDetails is the public projection of a user served by the
// user-service lookup endpoints.
type AuthorDetails struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	ProfileImagePath *string `json:"profileImagePath"`
}

// UserClient calls the user-service. The fetch methods implement the
// enrichment contract: they never return an error. Any failure mode
// (transport error, timeout, 404, 5xx, malformed body) collapses to
// found=false and the caller supplies its own fallback display value.
// Each call is a single best-effort attempt; enrichment is advisory display
// data, so there is no retry and no caching.
type UserClient struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewUserClient creates a client for the user-service rooted at baseURL
// (e.g. "http://localhost:8083/api/users").
func NewUserClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *UserClient {
	return &UserClient{
		baseURL: baseURL,
		http:    httpClient,
		logger:  logger,
	}
}

// FetchByID looks up a user's display details by numeric id.
func (c *UserClient) FetchByID(ctx context.Context, id int64) (AuthorDetails, bool) {
	return c.fetch(ctx, c.baseURL+"/"+strconv.FormatInt(id, 10))
}

// FetchByEmail looks up a user's display details by email.
func (c *UserClient) FetchByEmail(ctx context.Context, email string) (AuthorDetails, bool) {
	return c.fetch(ctx, c.baseURL+"/email/"+url.PathEscape(email))
}

func (c *UserClient) fetch(ctx context.Context, target string) (AuthorDetails, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		c.logger.Debug("user lookup request build failed", slog.String("url", target), slog.Any("error", err))
		return AuthorDetails{}, false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("user lookup failed", slog.String("url", target), slog.Any("error", err))
		return AuthorDetails{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("user lookup non-OK status", slog.String("url", target), slog.Int("status", resp.StatusCode))
		return AuthorDetails{}, false
	}

	var details AuthorDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		c.logger.Debug("user lookup decode failed", slog.String("url", target), slog.Any("error", err))
		return AuthorDetails{}, false
	}

	return details, true
}

// UpdateBanStatus sets the user's ban expiry via the internal ban endpoint.
// bannedUntil is epoch millis; 0 is the "not banned" sentinel the endpoint's
// required-field contract expects in place of null. Unlike the fetch methods
// this returns the error: swallowing it is the orchestrator's decision.
func (c *UserClient) UpdateBanStatus(ctx context.Context, userID int64, bannedUntil int64) error {
	target := fmt.Sprintf("%s/%d/ban", c.baseURL, userID)

	body, err := json.Marshal(bannedUntil)
	if err != nil {
		return fmt.Errorf("failed to encode ban body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build ban request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ban call to user-service failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("ban call to user-service returned status %d", resp.StatusCode)
	}

	return nil
}
