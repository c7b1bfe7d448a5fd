package clients

import (
	"context"
	"net/http"
	"net/url"
)

// InteractionClient calls the interaction-service.
type InteractionClient struct {
	baseURL string
	http    *http.Client
}

// NewInteractionClient creates a client for the interaction-service rooted
// at its API prefix (e.g. "http://localhost:8082/api").
func NewInteractionClient(baseURL string, httpClient *http.Client) *InteractionClient {
	return &InteractionClient{
		baseURL: baseURL,
		http:    httpClient,
	}
}

// DeleteComment removes a comment by id. Returns an error on any transport
// failure or non-2xx status; the caller decides whether that is fatal.
func (c *InteractionClient) DeleteComment(ctx context.Context, commentID string) error {
	return doDelete(ctx, c.http, c.baseURL+"/comments/"+url.PathEscape(commentID))
}
