package client

import (
	"context"

	"github.com/polusai/wipp-client/internal/http"
	"github.com/polusai/wipp-client/pkg/wipp"
)

// EntitiesClient implements wipp.EntitiesClient. It serves the resource kinds
// the service exposes beyond the specialized facades (jobs, notebooks,
// pyramids, pyramidAnnotations, stitchingVectors, tensorboardLogs,
// tensorflowModels, visualizations, workflows, ...) as registry-parsed
// entities.
type EntitiesClient struct {
	httpClient *http.Client
}

// NewEntitiesClient creates a new generic entities client.
func NewEntitiesClient(httpClient *http.Client) *EntitiesClient {
	return &EntitiesClient{httpClient: httpClient}
}

// List implements wipp.EntitiesClient.List.
func (c *EntitiesClient) List(ctx context.Context, kind string) ([]wipp.Entity, error) {
	return fetchAllEntities(ctx, c.httpClient, kind, listOptions{})
}

// Search implements wipp.EntitiesClient.Search.
func (c *EntitiesClient) Search(ctx context.Context, kind, name string) ([]wipp.Entity, error) {
	return fetchAllEntities(ctx, c.httpClient, kind, searchByName(name))
}

// Page implements wipp.EntitiesClient.Page.
func (c *EntitiesClient) Page(ctx context.Context, kind string, page int) ([]wipp.Entity, error) {
	return fetchEntityPage(ctx, c.httpClient, kind, page, listOptions{})
}

// Summary implements wipp.EntitiesClient.Summary.
func (c *EntitiesClient) Summary(ctx context.Context, kind string) (wipp.PageMetadata, error) {
	return fetchSummary(ctx, c.httpClient, kind, listOptions{})
}
