package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/polusai/wipp-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrNoCredentials      = errors.New("no credentials configured")
	ErrTokenURLRequired   = errors.New("token URL is required")
	ErrTokenRequestFailed = errors.New("token request failed")
)

// DefaultClientID is the public Keycloak client the WIPP frontend uses for
// the password grant.
const DefaultClientID = "wipp-public-client"

// KeycloakConfig configures token acquisition against a Keycloak
// openid-connect token endpoint.
type KeycloakConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	RefreshToken string
	AccessToken  string
}

// KeycloakTokenManager acquires and refreshes tokens from Keycloak.
type KeycloakTokenManager struct {
	config     *KeycloakConfig
	store      *TokenStore
	httpClient *http.Client
	mu         sync.Mutex
}

// NewKeycloakTokenManager creates a token manager. A configured AccessToken
// or RefreshToken seeds the store so the first call may skip the grant.
func NewKeycloakTokenManager(config *KeycloakConfig) *KeycloakTokenManager {
	manager := &KeycloakTokenManager{
		config:     config,
		store:      NewTokenStore(),
		httpClient: &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}

	if config.AccessToken != "" || config.RefreshToken != "" {
		manager.store.Set(&Token{
			AccessToken:  config.AccessToken,
			RefreshToken: config.RefreshToken,
		})
	}

	return manager
}

// GetToken implements TokenManager.
func (m *KeycloakTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check under the lock; another caller may have refreshed already.
	token = m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.acquire(ctx, token)
	if err != nil {
		return "", err
	}

	m.store.Set(token)

	return token.AccessToken, nil
}

// RefreshToken implements TokenManager.
func (m *KeycloakTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.acquire(ctx, m.store.Get())
	if err != nil {
		return err
	}

	m.store.Set(token)

	return nil
}

// SetToken implements TokenManager.
func (m *KeycloakTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt})
}

// acquire picks the grant to run: refresh_token when one is held, then
// password, then client_credentials.
func (m *KeycloakTokenManager) acquire(ctx context.Context, current *Token) (*Token, error) {
	if current != nil && current.RefreshToken != "" {
		token, err := m.requestToken(ctx, url.Values{
			"grant_type":    []string{"refresh_token"},
			"refresh_token": []string{current.RefreshToken},
		})
		if err == nil {
			return token, nil
		}
		// Fall through to a full grant; the refresh token may have expired.
	}

	if m.config.Username != "" && m.config.Password != "" {
		return m.requestToken(ctx, url.Values{
			"grant_type": []string{"password"},
			"username":   []string{m.config.Username},
			"password":   []string{m.config.Password},
		})
	}

	if m.config.ClientID != "" && m.config.ClientSecret != "" {
		return m.requestToken(ctx, url.Values{
			"grant_type": []string{"client_credentials"},
		})
	}

	return nil, ErrNoCredentials
}

func (m *KeycloakTokenManager) requestToken(ctx context.Context, form url.Values) (*Token, error) {
	if m.config.TokenURL == "" {
		return nil, ErrTokenURLRequired
	}

	clientID := m.config.ClientID
	if clientID == "" {
		clientID = DefaultClientID
	}

	form.Set("client_id", clientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if m.config.ClientSecret != "" {
		req.SetBasicAuth(clientID, m.config.ClientSecret)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrTokenRequestFailed, resp.StatusCode, string(body))
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return &token, nil
}
