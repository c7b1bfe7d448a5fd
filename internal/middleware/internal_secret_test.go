package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geekplay/platform/internal/clients"
)

func TestRequireInternalSecret(t *testing.T) {
	handler := RequireInternalSecret("s3cret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		secret     string
		wantStatus int
	}{
		{name: "correct secret", secret: "s3cret", wantStatus: http.StatusOK},
		{name: "wrong secret", secret: "nope", wantStatus: http.StatusForbidden},
		{name: "missing header", secret: "", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/internal", nil)
			if tt.secret != "" {
				req.Header.Set(clients.SecretHeader, tt.secret)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
