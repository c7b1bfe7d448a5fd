package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ContentClient calls the content-service.
type ContentClient struct {
	baseURL string
	http    *http.Client
}

// NewContentClient creates a client for the content-service rooted at the
// internal deletion prefix (e.g. "http://localhost:8081/api/internal/posts").
func NewContentClient(baseURL string, httpClient *http.Client) *ContentClient {
	return &ContentClient{
		baseURL: baseURL,
		http:    httpClient,
	}
}

// DeletePost removes a post by id. Returns an error on any transport failure
// or non-2xx status; the caller decides whether that is fatal.
func (c *ContentClient) DeletePost(ctx context.Context, postID string) error {
	return doDelete(ctx, c.http, c.baseURL+"/"+url.PathEscape(postID))
}

func doDelete(ctx context.Context, client *http.Client, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("delete call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("delete call returned status %d", resp.StatusCode)
	}

	return nil
}
