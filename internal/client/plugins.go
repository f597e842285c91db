package client

import (
	"context"

	"github.com/polusai/wipp-client/internal/http"
	"github.com/polusai/wipp-client/pkg/wipp"
)

// PluginsClient implements wipp.PluginsClient.
type PluginsClient struct {
	httpClient *http.Client
}

// NewPluginsClient creates a new plugins client.
func NewPluginsClient(httpClient *http.Client) *PluginsClient {
	return &PluginsClient{httpClient: httpClient}
}

// List implements wipp.PluginsClient.List.
func (c *PluginsClient) List(ctx context.Context) ([]wipp.Plugin, error) {
	return fetchAll[wipp.Plugin](ctx, c.httpClient, wipp.KindPlugins, listOptions{})
}

// Search implements wipp.PluginsClient.Search.
func (c *PluginsClient) Search(ctx context.Context, name string) ([]wipp.Plugin, error) {
	return fetchAll[wipp.Plugin](ctx, c.httpClient, wipp.KindPlugins, searchByName(name))
}

// Create implements wipp.PluginsClient.Create.
func (c *PluginsClient) Create(ctx context.Context, plugin *wipp.Plugin) (*wipp.Plugin, error) {
	return createEntity(ctx, c.httpClient, wipp.KindPlugins, plugin)
}

// Delete implements wipp.PluginsClient.Delete.
func (c *PluginsClient) Delete(ctx context.Context, pluginID string) error {
	return deleteEntity(ctx, c.httpClient, wipp.KindPlugins, pluginID)
}
