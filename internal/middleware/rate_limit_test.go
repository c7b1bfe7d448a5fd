package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = ip + ":54321"
	return req
}

func TestDefaultAuthRateLimit(t *testing.T) {
	config := DefaultAuthRateLimit()
	if config.RequestsPerMinute != 5 {
		t.Errorf("RequestsPerMinute: got %d, want 5", config.RequestsPerMinute)
	}
}

// TestRateLimitByIP_EnforcesLimitBoundary verifies the limit itself: exactly
// RequestsPerMinute requests pass, the next one is rejected.
func TestRateLimitByIP_EnforcesLimitBoundary(t *testing.T) {
	handler := RateLimitByIP(RateLimitConfig{RequestsPerMinute: 5})(okHandler())

	for i := 0; i < 5; i++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, requestFrom("10.0.0.1"))
		if recorder.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want 200", i+1, recorder.Code)
		}
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, requestFrom("10.0.0.1"))
	if recorder.Code != http.StatusTooManyRequests {
		t.Errorf("request 6: got status %d, want %d", recorder.Code, http.StatusTooManyRequests)
	}
}

// TestRateLimitByIP_RejectionBody verifies the 429 response shape
func TestRateLimitByIP_RejectionBody(t *testing.T) {
	handler := RateLimitByIP(RateLimitConfig{RequestsPerMinute: 1})(okHandler())

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, requestFrom("10.0.0.2"))
	if recorder.Code != http.StatusOK {
		t.Fatalf("first request: got status %d, want 200", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, requestFrom("10.0.0.2"))

	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got status %d, want %d", recorder.Code, http.StatusTooManyRequests)
	}
	if contentType := recorder.Header().Get("Content-Type"); contentType != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", contentType)
	}
	if body := recorder.Body.String(); body != `{"error":"Rate limit exceeded"}` {
		t.Errorf("unexpected response body: %s", body)
	}
}

// TestRateLimitByIP_IsolatesClientBuckets verifies each client IP gets its
// own bucket: one client exhausting its limit does not affect another.
func TestRateLimitByIP_IsolatesClientBuckets(t *testing.T) {
	handler := RateLimitByIP(RateLimitConfig{RequestsPerMinute: 3})(okHandler())

	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, requestFrom("192.168.1.10"))
		if recorder.Code != http.StatusOK {
			t.Fatalf("client A request %d: got status %d, want 200", i+1, recorder.Code)
		}
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, requestFrom("192.168.1.10"))
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("client A over limit: got status %d, want 429", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, requestFrom("192.168.1.20"))
	if recorder.Code != http.StatusOK {
		t.Errorf("client B should have an independent bucket, got status %d", recorder.Code)
	}
}

// TestRateLimitByIP_ManyClientsUnderLimit verifies a burst of distinct
// clients each staying under the limit is never throttled.
func TestRateLimitByIP_ManyClientsUnderLimit(t *testing.T) {
	handler := RateLimitByIP(RateLimitConfig{RequestsPerMinute: 2})(okHandler())

	for i := 0; i < 20; i++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, requestFrom(fmt.Sprintf("172.16.0.%d", i+1)))
		if recorder.Code != http.StatusOK {
			t.Errorf("client %d: got status %d, want 200", i+1, recorder.Code)
		}
	}
}
