package clients

import (
	"net/http"
	"time"
)

// SecretHeader authenticates service-to-service calls against a statically
// configured value. Not user-level auth.
const SecretHeader = "X-API-Secret"

// secretTransport injects the shared secret and content type into every
// outbound request, the single place internal-call auth is applied.
type secretTransport struct {
	secret string
	base   http.RoundTripper
}

func (t *secretTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Per RoundTripper contract the request must not be mutated
	clone := req.Clone(req.Context())
	clone.Header.Set(SecretHeader, t.secret)
	clone.Header.Set("Content-Type", "application/json")

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

// NewHTTPClient builds the http.Client shared by all outbound service
// clients. The timeout is the only bound on a call; there is no retry.
func NewHTTPClient(secret string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &secretTransport{secret: secret},
	}
}
