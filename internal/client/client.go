// Package client implements the wipp.Client interface: the pagination engine,
// the entity mutator, and the typed per-resource facades.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/polusai/wipp-client/internal/auth"
	"github.com/polusai/wipp-client/internal/constants"
	"github.com/polusai/wipp-client/internal/http"
	"github.com/polusai/wipp-client/pkg/wipp"
)

// Static errors for err113 compliance.
var (
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// Client implements the wipp.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       wipp.Logger

	imageCollections       *ImageCollectionsClient
	csvCollections         *CsvCollectionsClient
	genericDataCollections *GenericDataCollectionsClient
	plugins                *PluginsClient
	entities               *EntitiesClient
}

// New creates a new WIPP API client. The endpoint must be an absolute URL;
// credentials and transport options come from the config (see wipp.Config).
func New(ctx context.Context, config *wipp.Config) (*Client, error) {
	err := validateEndpoint(config.APIEndpoint)
	if err != nil {
		return nil, err
	}

	tokenManager := createTokenManager(config)
	httpClient := http.NewClient(config.APIEndpoint, tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("%w: API endpoint is required", wipp.ErrInvalidConfiguration)
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: parsing API endpoint %q: %v", wipp.ErrInvalidConfiguration, endpoint, err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: API endpoint %q is not an absolute URL", wipp.ErrInvalidConfiguration, endpoint)
	}

	return nil
}

// createTokenManager creates the appropriate token manager based on config.
func createTokenManager(config *wipp.Config) auth.TokenManager {
	if config.AccessToken != "" {
		return &staticTokenManager{token: config.AccessToken}
	}

	if (config.Username != "" && config.Password != "") ||
		(config.ClientID != "" && config.ClientSecret != "") {
		return auth.NewKeycloakTokenManager(&auth.KeycloakConfig{
			TokenURL:     config.TokenURL,
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Username:     config.Username,
			Password:     config.Password,
		})
	}

	// No credentials: requests carry no Authorization header until a token is
	// installed with SetAccessToken.
	return &staticTokenManager{}
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *wipp.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

func (c *Client) initializeResourceClients() {
	c.imageCollections = NewImageCollectionsClient(c.httpClient)
	c.csvCollections = NewCsvCollectionsClient(c.httpClient)
	c.genericDataCollections = NewGenericDataCollectionsClient(c.httpClient)
	c.plugins = NewPluginsClient(c.httpClient)
	c.entities = NewEntitiesClient(c.httpClient)
}

// ImageCollections implements wipp.Client.ImageCollections.
func (c *Client) ImageCollections() wipp.ImageCollectionsClient {
	return c.imageCollections
}

// CsvCollections implements wipp.Client.CsvCollections.
func (c *Client) CsvCollections() wipp.CsvCollectionsClient {
	return c.csvCollections
}

// GenericDataCollections implements wipp.Client.GenericDataCollections.
func (c *Client) GenericDataCollections() wipp.GenericDataCollectionsClient {
	return c.genericDataCollections
}

// Plugins implements wipp.Client.Plugins.
func (c *Client) Plugins() wipp.PluginsClient {
	return c.plugins
}

// Entities implements wipp.Client.Entities.
func (c *Client) Entities() wipp.EntitiesClient {
	return c.entities
}

// Ping implements wipp.Client.Ping. The API root of a live WIPP deployment is
// a HAL document carrying a "_links" object.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.httpClient.Get(ctx, "", nil)
	if err != nil {
		return fmt.Errorf("pinging WIPP API: %w", err)
	}

	var root map[string]json.RawMessage

	err = json.Unmarshal(resp.Body, &root)
	if err != nil {
		return fmt.Errorf("%w: API root is not JSON: %v", wipp.ErrRequestFailed, err)
	}

	if _, ok := root["_links"]; !ok {
		return fmt.Errorf("%w: API root carries no _links, not a WIPP API", wipp.ErrRequestFailed)
	}

	return nil
}

// SetAccessToken implements wipp.Client.SetAccessToken.
func (c *Client) SetAccessToken(token string) {
	c.tokenManager.SetToken(token, time.Time{})
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// staticTokenManager provides a fixed, externally acquired token.
type staticTokenManager struct {
	mu    sync.RWMutex
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

func (m *staticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

// loggerAdapter adapts wipp.Logger to http.Logger.
type loggerAdapter struct {
	logger wipp.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
