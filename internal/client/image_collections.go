package client

import (
	"context"

	"github.com/polusai/wipp-client/internal/http"
	"github.com/polusai/wipp-client/pkg/wipp"
)

// ImageCollectionsClient implements wipp.ImageCollectionsClient.
type ImageCollectionsClient struct {
	httpClient *http.Client
}

// NewImageCollectionsClient creates a new image collections client.
func NewImageCollectionsClient(httpClient *http.Client) *ImageCollectionsClient {
	return &ImageCollectionsClient{httpClient: httpClient}
}

// List implements wipp.ImageCollectionsClient.List.
func (c *ImageCollectionsClient) List(ctx context.Context) ([]wipp.ImageCollection, error) {
	return fetchAll[wipp.ImageCollection](ctx, c.httpClient, wipp.KindImageCollections, listOptions{})
}

// Search implements wipp.ImageCollectionsClient.Search.
func (c *ImageCollectionsClient) Search(ctx context.Context, name string) ([]wipp.ImageCollection, error) {
	return fetchAll[wipp.ImageCollection](ctx, c.httpClient, wipp.KindImageCollections, searchByName(name))
}

// Create implements wipp.ImageCollectionsClient.Create.
func (c *ImageCollectionsClient) Create(ctx context.Context, collection *wipp.ImageCollection) (*wipp.ImageCollection, error) {
	return createEntity(ctx, c.httpClient, wipp.KindImageCollections, collection)
}

// Delete implements wipp.ImageCollectionsClient.Delete.
func (c *ImageCollectionsClient) Delete(ctx context.Context, collectionID string) error {
	return deleteEntity(ctx, c.httpClient, wipp.KindImageCollections, collectionID)
}

// Images implements wipp.ImageCollectionsClient.Images.
func (c *ImageCollectionsClient) Images(ctx context.Context, collectionID string) ([]wipp.Image, error) {
	return fetchAll[wipp.Image](ctx, c.httpClient, wipp.KindImages,
		subListing(wipp.KindImageCollections, collectionID))
}
