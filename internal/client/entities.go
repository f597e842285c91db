package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/polusai/wipp-client/internal/http"
	"github.com/polusai/wipp-client/pkg/wipp"
)

// searchSuffix is the Spring Data REST search endpoint every collection kind
// exposes for case-insensitive name substring queries.
const searchSuffix = "search/findByNameContainingIgnoreCase"

// listOptions parameterize a list traversal: an optional path prefix (parent
// resource), an optional path suffix (search endpoint), and extra query
// parameters merged over the base URL's own.
type listOptions struct {
	prefix string
	suffix string
	query  url.Values
}

func searchByName(name string) listOptions {
	return listOptions{
		suffix: searchSuffix,
		query:  url.Values{"name": []string{name}},
	}
}

func subListing(parentKind, parentID string) listOptions {
	return listOptions{prefix: parentKind + "/" + parentID}
}

// fetchEnvelope performs one GET against a resource-kind endpoint and decodes
// the paginated envelope.
func fetchEnvelope(ctx context.Context, httpClient *http.Client, kind string, opts listOptions, query url.Values) (*wipp.ListEnvelope, error) {
	resp, err := httpClient.Get(ctx, resourcePath(opts.prefix, kind, opts.suffix), query)
	if err != nil {
		return nil, err
	}

	var envelope wipp.ListEnvelope

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s envelope: %v", wipp.ErrMalformedRecord, kind, err)
	}

	return &envelope, nil
}

// fetchSummary reads the envelope's pagination metadata without requesting a
// specific page.
func fetchSummary(ctx context.Context, httpClient *http.Client, kind string, opts listOptions) (wipp.PageMetadata, error) {
	envelope, err := fetchEnvelope(ctx, httpClient, kind, opts, opts.query)
	if err != nil {
		return wipp.PageMetadata{}, fmt.Errorf("fetching %s summary: %w", kind, err)
	}

	return envelope.Page, nil
}

// fetchEntityPage fetches one page of records and parses each element through
// the registry, preserving the service's element order.
func fetchEntityPage(ctx context.Context, httpClient *http.Client, kind string, page int, opts listOptions) ([]wipp.Entity, error) {
	query := url.Values{"page": []string{strconv.Itoa(page)}}
	for key, values := range opts.query {
		if key != "page" {
			query[key] = values
		}
	}

	envelope, err := fetchEnvelope(ctx, httpClient, kind, opts, query)
	if err != nil {
		return nil, fmt.Errorf("fetching %s page %d: %w", kind, page, err)
	}

	records := envelope.Records(kind)
	entities := make([]wipp.Entity, 0, len(records))

	for i, record := range records {
		entity, err := wipp.ParseEntity(kind, record)
		if err != nil {
			return nil, fmt.Errorf("parsing %s page %d record %d: %w", kind, page, i, err)
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

// fetchAllEntities walks every page of a resource-kind endpoint in index
// order and concatenates the results. A failure on any page aborts the walk;
// no partial sequence is returned.
func fetchAllEntities(ctx context.Context, httpClient *http.Client, kind string, opts listOptions) ([]wipp.Entity, error) {
	summary, err := fetchSummary(ctx, httpClient, kind, opts)
	if err != nil {
		return nil, err
	}

	entities := make([]wipp.Entity, 0, summary.TotalElements)

	for page := 0; page < summary.TotalPages; page++ {
		pageEntities, err := fetchEntityPage(ctx, httpClient, kind, page, opts)
		if err != nil {
			return nil, err
		}

		entities = append(entities, pageEntities...)
	}

	return entities, nil
}

// fetchAll is the typed form of fetchAllEntities for kinds with a registered
// concrete shape.
func fetchAll[T wipp.Entity](ctx context.Context, httpClient *http.Client, kind string, opts listOptions) ([]T, error) {
	entities, err := fetchAllEntities(ctx, httpClient, kind, opts)
	if err != nil {
		return nil, err
	}

	typed := make([]T, 0, len(entities))

	for _, entity := range entities {
		record, ok := entity.(T)
		if !ok {
			return nil, fmt.Errorf("%w: kind %s produced unexpected record type %T", wipp.ErrMalformedRecord, kind, entity)
		}

		typed = append(typed, record)
	}

	return typed, nil
}

// createEntity POSTs an entity to its resource-kind endpoint and parses the
// service's response, which carries the assigned id and creation date. Any
// status other than 201 is a typed error, never a silent nil.
func createEntity[T wipp.Entity](ctx context.Context, httpClient *http.Client, kind string, entity *T) (*T, error) {
	resp, err := httpClient.Post(ctx, resourcePath("", kind, ""), entity)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", kind, err)
	}

	if resp.StatusCode != nethttp.StatusCreated {
		return nil, fmt.Errorf("creating %s: %w", kind,
			&wipp.APIError{StatusCode: resp.StatusCode, Body: string(resp.Body)})
	}

	parsed, err := wipp.ParseEntity(kind, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing created %s: %w", kind, err)
	}

	created, ok := parsed.(T)
	if !ok {
		return nil, fmt.Errorf("%w: kind %s produced unexpected record type %T", wipp.ErrMalformedRecord, kind, parsed)
	}

	return &created, nil
}

// deleteEntity removes the entity with the given id. 200 and 204 both count
// as success.
func deleteEntity(ctx context.Context, httpClient *http.Client, kind, entityID string) error {
	resp, err := httpClient.Delete(ctx, resourcePath("", kind, entityID))
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", kind, entityID, err)
	}

	if resp.StatusCode != nethttp.StatusOK && resp.StatusCode != nethttp.StatusNoContent {
		return fmt.Errorf("deleting %s %s: %w", kind, entityID,
			&wipp.APIError{StatusCode: resp.StatusCode, Body: string(resp.Body)})
	}

	return nil
}
