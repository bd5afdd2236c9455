package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLogMessage(t *testing.T) {
	msg := SanitizeLogMessage("login failed token=eyJhbGciOiJIUzI1NiJ9.e30.sig password: hunter2")

	assert.NotContains(t, msg, "eyJhbGciOiJIUzI1NiJ9")
	assert.NotContains(t, msg, "hunter2")
	assert.Contains(t, msg, redactedPlaceholder)
}

func TestSanitizeLogMessageRedactsBareJWT(t *testing.T) {
	msg := SanitizeLogMessage("token is malformed: eyJhbGciOiJIUzI1NiJ9.eyJpZCI6MX0.c2ln could not be parsed")

	assert.NotContains(t, msg, "eyJpZCI6MX0")
	assert.Contains(t, msg, "could not be parsed")
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"reader@library.org", "r***@library.org"},
		{"a@b.io", "a***@b.io"},
		{"not-an-email", redactedPlaceholder},
		{"", redactedPlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskEmail(tt.in))
		})
	}
}

func TestSanitizeMap(t *testing.T) {
	out := SanitizeMap(map[string]interface{}{
		"email":        "reader@library.org",
		"passwordHash": "$2a$12$...",
		"auth-token":   "abc",
		"Set-Cookie":   "auth-token=abc",
	})

	assert.Equal(t, "reader@library.org", out["email"])
	assert.Equal(t, redactedPlaceholder, out["passwordHash"])
	assert.Equal(t, redactedPlaceholder, out["auth-token"])
	assert.Equal(t, redactedPlaceholder, out["Set-Cookie"])
}
