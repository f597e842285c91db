package wipp

import (
	"context"
	"time"
)

// Client is the typed facade over the WIPP API.
type Client interface {
	ImageCollections() ImageCollectionsClient
	CsvCollections() CsvCollectionsClient
	GenericDataCollections() GenericDataCollectionsClient
	Plugins() PluginsClient
	Entities() EntitiesClient

	// Ping checks that the configured endpoint answers with a HAL API root.
	Ping(ctx context.Context) error

	// SetAccessToken replaces the bearer token used by subsequent calls.
	// In-flight calls keep the token they were issued with.
	SetAccessToken(token string)
}

// ImageCollectionsClient operates on image collections and their images.
type ImageCollectionsClient interface {
	List(ctx context.Context) ([]ImageCollection, error)
	Search(ctx context.Context, name string) ([]ImageCollection, error)
	Create(ctx context.Context, collection *ImageCollection) (*ImageCollection, error)
	Delete(ctx context.Context, collectionID string) error
	Images(ctx context.Context, collectionID string) ([]Image, error)
}

// CsvCollectionsClient operates on CSV collections and their files.
type CsvCollectionsClient interface {
	List(ctx context.Context) ([]CsvCollection, error)
	Search(ctx context.Context, name string) ([]CsvCollection, error)
	Create(ctx context.Context, collection *CsvCollection) (*CsvCollection, error)
	Delete(ctx context.Context, collectionID string) error
	CsvFiles(ctx context.Context, collectionID string) ([]Csv, error)
}

// GenericDataCollectionsClient operates on generic data collections and their files.
type GenericDataCollectionsClient interface {
	List(ctx context.Context) ([]GenericDataCollection, error)
	Search(ctx context.Context, name string) ([]GenericDataCollection, error)
	Create(ctx context.Context, collection *GenericDataCollection) (*GenericDataCollection, error)
	Delete(ctx context.Context, collectionID string) error
	Files(ctx context.Context, collectionID string) ([]GenericDataFile, error)
}

// PluginsClient operates on plugin manifests.
type PluginsClient interface {
	List(ctx context.Context) ([]Plugin, error)
	Search(ctx context.Context, name string) ([]Plugin, error)
	Create(ctx context.Context, plugin *Plugin) (*Plugin, error)
	Delete(ctx context.Context, pluginID string) error
}

// EntitiesClient lists records of any resource kind the service exposes
// (jobs, notebooks, pyramids, workflows, ...), parsed through the registry.
type EntitiesClient interface {
	List(ctx context.Context, kind string) ([]Entity, error)
	Search(ctx context.Context, kind, name string) ([]Entity, error)
	Page(ctx context.Context, kind string, page int) ([]Entity, error)
	Summary(ctx context.Context, kind string) (PageMetadata, error)
}

// Logger is the structured logging interface consumed by the client. Any
// structured logger can be adapted to it.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a wipp.Client.
//
// Authentication precedence:
//  1. AccessToken: used directly as a static Bearer token. The original
//     deployment model, where the Keycloak token is obtained externally.
//  2. Username/Password: the client obtains tokens itself from TokenURL using
//     the OAuth2 password grant (Keycloak openid-connect endpoint).
//  3. ClientID/ClientSecret: the client_credentials grant against TokenURL.
//  4. No credentials: requests carry no Authorization header.
type Config struct {
	// APIEndpoint is the base URL of the WIPP API root
	// (e.g. "https://wipp.example.com/api"). Required.
	APIEndpoint string

	// AccessToken is a precomputed Keycloak bearer token.
	AccessToken string
	// Username and Password select the OAuth2 password grant.
	Username string
	Password string
	// ClientID and ClientSecret select the client_credentials grant. ClientID
	// is also sent with the password grant; it defaults to "wipp-public-client".
	ClientID     string
	ClientSecret string
	// TokenURL is the full Keycloak token endpoint. Required whenever a grant
	// is configured; see wippclient.KeycloakTokenURL for the usual layout.
	TokenURL string

	// RetryMax enables transport-level retries for transient failures
	// (>=500, 429, connection errors). 0 disables retries.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when Logger is set.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
