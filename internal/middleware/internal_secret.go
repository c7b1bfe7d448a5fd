package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/geekplay/platform/internal/clients"
)

// RequireInternalSecret guards internal endpoints called by peer services.
// The X-API-Secret header must match the shared secret exactly; there is no
// per-call token or expiry in this trust model.
func RequireInternalSecret(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(clients.SecretHeader)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
