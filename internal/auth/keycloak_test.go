package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)

	return server
}

func TestKeycloakTokenManager_PasswordGrant(t *testing.T) {
	t.Parallel()

	server := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))
		assert.Equal(t, DefaultClientID, r.PostForm.Get("client_id"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","expires_in":300}`))
	})

	manager := NewKeycloakTokenManager(&KeycloakConfig{
		TokenURL: server.URL,
		Username: "alice",
		Password: "secret",
	})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-1", token)

	stored := manager.store.Get()
	require.NotNil(t, stored)
	assert.Equal(t, "rt-1", stored.RefreshToken)
	assert.False(t, stored.ExpiresAt.IsZero())
}

func TestKeycloakTokenManager_CachesValidToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := newTokenServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"access_token":"at-1","expires_in":300}`))
	})

	manager := NewKeycloakTokenManager(&KeycloakConfig{
		TokenURL: server.URL,
		Username: "alice",
		Password: "secret",
	})

	for i := 0; i < 3; i++ {
		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "at-1", token)
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestKeycloakTokenManager_RefreshGrant(t *testing.T) {
	t.Parallel()

	server := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "rt-0", r.PostForm.Get("refresh_token"))

		_, _ = w.Write([]byte(`{"access_token":"at-2","refresh_token":"rt-2","expires_in":300}`))
	})

	manager := NewKeycloakTokenManager(&KeycloakConfig{
		TokenURL:     server.URL,
		RefreshToken: "rt-0",
	})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-2", token)
}

func TestKeycloakTokenManager_RefreshFallsBackToPassword(t *testing.T) {
	t.Parallel()

	server := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		if r.PostForm.Get("grant_type") == "refresh_token" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))

			return
		}

		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		_, _ = w.Write([]byte(`{"access_token":"at-3","expires_in":300}`))
	})

	manager := NewKeycloakTokenManager(&KeycloakConfig{
		TokenURL:     server.URL,
		Username:     "alice",
		Password:     "secret",
		RefreshToken: "rt-stale",
	})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-3", token)
}

func TestKeycloakTokenManager_ClientCredentials(t *testing.T) {
	t.Parallel()

	server := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "svc-client", user)
		assert.Equal(t, "svc-secret", pass)

		_, _ = w.Write([]byte(`{"access_token":"at-4","expires_in":300}`))
	})

	manager := NewKeycloakTokenManager(&KeycloakConfig{
		TokenURL:     server.URL,
		ClientID:     "svc-client",
		ClientSecret: "svc-secret",
	})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-4", token)
}

func TestKeycloakTokenManager_NoCredentials(t *testing.T) {
	t.Parallel()

	manager := NewKeycloakTokenManager(&KeycloakConfig{TokenURL: "http://keycloak.invalid"})

	_, err := manager.GetToken(context.Background())
	require.ErrorIs(t, err, ErrNoCredentials)
}

func TestKeycloakTokenManager_MissingTokenURL(t *testing.T) {
	t.Parallel()

	manager := NewKeycloakTokenManager(&KeycloakConfig{Username: "alice", Password: "secret"})

	_, err := manager.GetToken(context.Background())
	require.ErrorIs(t, err, ErrTokenURLRequired)
}

func TestKeycloakTokenManager_ServerError(t *testing.T) {
	t.Parallel()

	server := newTokenServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	})

	manager := NewKeycloakTokenManager(&KeycloakConfig{
		TokenURL: server.URL,
		Username: "alice",
		Password: "wrong",
	})

	_, err := manager.GetToken(context.Background())
	require.ErrorIs(t, err, ErrTokenRequestFailed)
	assert.Contains(t, err.Error(), "invalid_client")
}

func TestKeycloakTokenManager_SetToken(t *testing.T) {
	t.Parallel()

	manager := NewKeycloakTokenManager(&KeycloakConfig{})
	manager.SetToken("external-token", time.Time{})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "external-token", token)
}

func TestKeycloakTokenManager_SeededAccessToken(t *testing.T) {
	t.Parallel()

	manager := NewKeycloakTokenManager(&KeycloakConfig{AccessToken: "seeded"})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "seeded", token)
}
