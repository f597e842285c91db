// Package auth manages Keycloak bearer tokens for the WIPP client.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/polusai/wipp-client/internal/constants"
)

// TokenManager provides bearer tokens to the HTTP layer.
type TokenManager interface {
	// GetToken returns a valid access token, acquiring or refreshing one if
	// necessary.
	GetToken(ctx context.Context) (string, error)

	// RefreshToken forces the acquisition of a fresh token.
	RefreshToken(ctx context.Context) error

	// SetToken replaces the current token. A zero expiresAt means the token
	// never expires as far as the client is concerned.
	SetToken(token string, expiresAt time.Time)
}

// Token is an OAuth2 token response from Keycloak. ExpiresAt is derived from
// ExpiresIn at acquisition time.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresIn    int64     `json:"expires_in,omitempty"`
	ExpiresAt    time.Time `json:"-"`
}

// Valid reports whether the token can still be used. Tokens within the expiry
// buffer of their deadline count as invalid so they are refreshed early.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpiryBuffer).Before(t.ExpiresAt)
}

// TokenStore holds the process-wide token behind a read-mostly lock.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token. Calls already carrying the previous token
// are unaffected.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
