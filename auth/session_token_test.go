package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueSessionToken("sess-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sessionID, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-123", sessionID)
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseSessionToken("not-a-jwt")
	assert.Error(t, err)
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := IssueSessionToken("sess-123")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	_, err = ParseSessionToken(token)
	assert.Error(t, err)
}

func TestIsAdminEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"admin@example.com", true},
		{"ADMIN@EXAMPLE.COM", true},
		{"administrator@foo.com", true},
		{"jane.admin@shop.io", true},
		{"bob@example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsAdminEmail(tc.email), "email %q", tc.email)
	}
}
