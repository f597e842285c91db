package client

import (
	"context"

	"github.com/polusai/wipp-client/internal/http"
	"github.com/polusai/wipp-client/pkg/wipp"
)

// GenericDataCollectionsClient implements wipp.GenericDataCollectionsClient.
type GenericDataCollectionsClient struct {
	httpClient *http.Client
}

// NewGenericDataCollectionsClient creates a new generic data collections client.
func NewGenericDataCollectionsClient(httpClient *http.Client) *GenericDataCollectionsClient {
	return &GenericDataCollectionsClient{httpClient: httpClient}
}

// List implements wipp.GenericDataCollectionsClient.List.
func (c *GenericDataCollectionsClient) List(ctx context.Context) ([]wipp.GenericDataCollection, error) {
	return fetchAll[wipp.GenericDataCollection](ctx, c.httpClient, wipp.KindGenericDataCollections, listOptions{})
}

// Search implements wipp.GenericDataCollectionsClient.Search.
func (c *GenericDataCollectionsClient) Search(ctx context.Context, name string) ([]wipp.GenericDataCollection, error) {
	return fetchAll[wipp.GenericDataCollection](ctx, c.httpClient, wipp.KindGenericDataCollections, searchByName(name))
}

// Create implements wipp.GenericDataCollectionsClient.Create.
func (c *GenericDataCollectionsClient) Create(ctx context.Context, collection *wipp.GenericDataCollection) (*wipp.GenericDataCollection, error) {
	return createEntity(ctx, c.httpClient, wipp.KindGenericDataCollections, collection)
}

// Delete implements wipp.GenericDataCollectionsClient.Delete.
func (c *GenericDataCollectionsClient) Delete(ctx context.Context, collectionID string) error {
	return deleteEntity(ctx, c.httpClient, wipp.KindGenericDataCollections, collectionID)
}

// Files implements wipp.GenericDataCollectionsClient.Files.
func (c *GenericDataCollectionsClient) Files(ctx context.Context, collectionID string) ([]wipp.GenericDataFile, error) {
	return fetchAll[wipp.GenericDataFile](ctx, c.httpClient, wipp.KindGenericFiles,
		subListing(wipp.KindGenericDataCollections, collectionID))
}
