package client

import (
	"context"

	"github.com/polusai/wipp-client/internal/http"
	"github.com/polusai/wipp-client/pkg/wipp"
)

// CsvCollectionsClient implements wipp.CsvCollectionsClient.
type CsvCollectionsClient struct {
	httpClient *http.Client
}

// NewCsvCollectionsClient creates a new CSV collections client.
func NewCsvCollectionsClient(httpClient *http.Client) *CsvCollectionsClient {
	return &CsvCollectionsClient{httpClient: httpClient}
}

// List implements wipp.CsvCollectionsClient.List.
func (c *CsvCollectionsClient) List(ctx context.Context) ([]wipp.CsvCollection, error) {
	return fetchAll[wipp.CsvCollection](ctx, c.httpClient, wipp.KindCsvCollections, listOptions{})
}

// Search implements wipp.CsvCollectionsClient.Search.
func (c *CsvCollectionsClient) Search(ctx context.Context, name string) ([]wipp.CsvCollection, error) {
	return fetchAll[wipp.CsvCollection](ctx, c.httpClient, wipp.KindCsvCollections, searchByName(name))
}

// Create implements wipp.CsvCollectionsClient.Create.
func (c *CsvCollectionsClient) Create(ctx context.Context, collection *wipp.CsvCollection) (*wipp.CsvCollection, error) {
	return createEntity(ctx, c.httpClient, wipp.KindCsvCollections, collection)
}

// Delete implements wipp.CsvCollectionsClient.Delete.
func (c *CsvCollectionsClient) Delete(ctx context.Context, collectionID string) error {
	return deleteEntity(ctx, c.httpClient, wipp.KindCsvCollections, collectionID)
}

// CsvFiles implements wipp.CsvCollectionsClient.CsvFiles.
func (c *CsvCollectionsClient) CsvFiles(ctx context.Context, collectionID string) ([]wipp.Csv, error) {
	return fetchAll[wipp.Csv](ctx, c.httpClient, wipp.KindCsv,
		subListing(wipp.KindCsvCollections, collectionID))
}
