package logger

import (
	"testing"
)

func TestSanitizedEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "standard email", email: "usuario@geekplay.cl", expected: "u******@********.cl"},
		{name: "single char user", email: "u@example.com", expected: "u@*******.com"},
		{name: "no at sign", email: "not-an-email", expected: "[invalid-email]"},
		{name: "multiple at signs", email: "a@b@c.com", expected: "[invalid-email]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizedEmail(tt.email); got != tt.expected {
				t.Errorf("SanitizedEmail(%q) = %q, want %q", tt.email, got, tt.expected)
			}
		})
	}
}

func TestRedactedAttr(t *testing.T) {
	attr := RedactedAttr("token", "super-secret", "production")
	if attr.Value.String() != "[REDACTED]" {
		t.Errorf("production value: got %q, want [REDACTED]", attr.Value.String())
	}

	attr = RedactedAttr("token", "super-secret", "development")
	if attr.Value.String() != "super-secret" {
		t.Errorf("development value: got %q, want super-secret", attr.Value.String())
	}
}

func TestSanitizeQueryString(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		redacted bool
	}{
		{name: "contains password", query: "password=hunter2", redacted: true},
		{name: "contains token", query: "refresh_token=abc", redacted: true},
		{name: "contains email", query: "email=a%40b.com", redacted: true},
		{name: "harmless search", query: "q=playstation&page=2", redacted: false},
		{name: "empty", query: "", redacted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeQueryString(tt.query); got != tt.redacted {
				t.Errorf("SanitizeQueryString(%q) = %v, want %v", tt.query, got, tt.redacted)
			}
		})
	}
}
