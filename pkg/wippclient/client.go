package wippclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/polusai/wipp-client/internal/client"
	"github.com/polusai/wipp-client/pkg/wipp"
)

// EnvAPIURL is the environment variable the original WIPP tooling uses to
// locate the API root.
const EnvAPIURL = "WIPP_API_INTERNAL_URL"

// EnvAccessToken optionally carries a precomputed Keycloak bearer token.
const EnvAccessToken = "WIPP_API_TOKEN"

// New creates a new WIPP API client from the given configuration.
func New(ctx context.Context, config *wipp.Config) (wipp.Client, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is required", wipp.ErrInvalidConfiguration)
	}

	// Normalize the endpoint: no trailing slash, https by default.
	endpoint := strings.TrimSuffix(config.APIEndpoint, "/")
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.APIEndpoint = endpoint

	if needsTokenURL(config) {
		return nil, fmt.Errorf("%w: token URL is required for the configured grant (see KeycloakTokenURL)",
			wipp.ErrInvalidConfiguration)
	}

	wippClient, err := client.New(ctx, config)
	if err != nil {
		return nil, err
	}

	return wippClient, nil
}

// needsTokenURL reports whether the config selects a grant that requires a
// Keycloak token endpoint but does not name one.
func needsTokenURL(config *wipp.Config) bool {
	if config.TokenURL != "" || config.AccessToken != "" {
		return false
	}

	return config.Username != "" || config.ClientID != ""
}

// NewWithEndpoint creates a client with just an API endpoint (no auth).
func NewWithEndpoint(ctx context.Context, endpoint string) (wipp.Client, error) {
	return New(ctx, &wipp.Config{
		APIEndpoint: endpoint,
	})
}

// NewWithToken creates a client with an endpoint and a precomputed Keycloak
// bearer token.
func NewWithToken(ctx context.Context, endpoint, token string) (wipp.Client, error) {
	return New(ctx, &wipp.Config{
		APIEndpoint: endpoint,
		AccessToken: token,
	})
}

// NewWithPassword creates a client that obtains tokens itself from the given
// Keycloak token endpoint using the password grant.
func NewWithPassword(ctx context.Context, endpoint, tokenURL, username, password string) (wipp.Client, error) {
	return New(ctx, &wipp.Config{
		APIEndpoint: endpoint,
		TokenURL:    tokenURL,
		Username:    username,
		Password:    password,
	})
}

// NewFromEnv creates a client from the process environment: the endpoint from
// WIPP_API_INTERNAL_URL (required) and an optional token from WIPP_API_TOKEN.
func NewFromEnv(ctx context.Context) (wipp.Client, error) {
	endpoint := os.Getenv(EnvAPIURL)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: %s environment variable is not set", wipp.ErrInvalidConfiguration, EnvAPIURL)
	}

	return New(ctx, &wipp.Config{
		APIEndpoint: endpoint,
		AccessToken: os.Getenv(EnvAccessToken),
	})
}

// KeycloakTokenURL builds the openid-connect token endpoint for a Keycloak
// base URL and realm, the layout WIPP deployments use (realm "WIPP" by
// convention).
func KeycloakTokenURL(keycloakURL, realm string) string {
	return fmt.Sprintf("%s/auth/realms/%s/protocol/openid-connect/token",
		strings.TrimSuffix(keycloakURL, "/"), realm)
}
