package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolkitService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Service{
		WebAPIKey:  "test-key",
		HTTPClient: srv.Client(),
		Endpoint:   srv.URL,
	}
}

func TestPasswordSignInReturnsUID(t *testing.T) {
	svc := toolkitService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, true, body["returnSecureToken"])

		json.NewEncoder(w).Encode(map[string]string{"localId": "uid-1"})
	})

	uid, err := svc.passwordSignIn(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
}

func TestPasswordSignInSurfacesProviderMessage(t *testing.T) {
	svc := toolkitService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "INVALID_PASSWORD"},
		})
	})

	_, err := svc.passwordSignIn(context.Background(), "ana@example.com", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_PASSWORD")
}

func TestPasswordSignInRejectsEmptyUID(t *testing.T) {
	svc := toolkitService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	})

	_, err := svc.passwordSignIn(context.Background(), "ana@example.com", "secret")
	assert.Error(t, err)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Ana Ruiz")
	assert.Equal(t, "Ana", first)
	assert.Equal(t, "Ruiz", last)

	first, last = splitName("Ana de la Cruz")
	assert.Equal(t, "Ana", first)
	assert.Equal(t, "de la Cruz", last)

	first, last = splitName("")
	assert.Empty(t, first)
	assert.Empty(t, last)
}
