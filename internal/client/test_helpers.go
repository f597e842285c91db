package client

import (
	internalhttp "github.com/polusai/wipp-client/internal/http"
)

// NewTestClient creates a client for the given base URL that sends no
// Authorization header, for use against httptest servers.
func NewTestClient(baseURL string) *Client {
	tokenManager := &staticTokenManager{}

	client := &Client{
		httpClient:   internalhttp.NewClient(baseURL, tokenManager),
		tokenManager: tokenManager,
		baseURL:      baseURL,
	}

	client.initializeResourceClients()

	return client
}
