//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polusai/wipp-client/pkg/wipp"
	"github.com/polusai/wipp-client/pkg/wippclient"
)

// These tests run against a live WIPP deployment. Set WIPP_API_INTERNAL_URL
// (and WIPP_API_TOKEN for secured deployments) and run with -tags integration.

func newLiveClient(t *testing.T) wipp.Client {
	t.Helper()

	if os.Getenv(wippclient.EnvAPIURL) == "" {
		t.Skipf("%s not set, skipping integration test", wippclient.EnvAPIURL)
	}

	client, err := wippclient.NewFromEnv(context.Background())
	require.NoError(t, err)

	return client
}

func TestLiveAPI_Ping(t *testing.T) {
	client := newLiveClient(t)

	require.NoError(t, client.Ping(context.Background()))
}

func TestLiveAPI_ListCollections(t *testing.T) {
	client := newLiveClient(t)
	ctx := context.Background()

	collections, err := client.ImageCollections().List(ctx)
	require.NoError(t, err)

	for _, collection := range collections {
		assert.NotEmpty(t, collection.ID)
		assert.NotEmpty(t, collection.Name)
	}

	csvCollections, err := client.CsvCollections().List(ctx)
	require.NoError(t, err)

	for _, collection := range csvCollections {
		assert.NotEmpty(t, collection.Name)
	}
}

func TestLiveAPI_ListPlugins(t *testing.T) {
	client := newLiveClient(t)

	plugins, err := client.Plugins().List(context.Background())
	require.NoError(t, err)

	for _, plugin := range plugins {
		assert.NotEmpty(t, plugin.Name)
		assert.NotEmpty(t, plugin.Version)
		assert.NotEmpty(t, plugin.ContainerID)
	}
}

func TestLiveAPI_CollectionLifecycle(t *testing.T) {
	client := newLiveClient(t)
	ctx := context.Background()

	created, err := client.CsvCollections().Create(ctx, &wipp.CsvCollection{
		Collection: wipp.Collection{Name: "wipp-client-integration-test"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	t.Cleanup(func() {
		_ = client.CsvCollections().Delete(ctx, created.ID)
	})

	files, err := client.CsvCollections().CsvFiles(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, files)

	require.NoError(t, client.CsvCollections().Delete(ctx, created.ID))

	err = client.CsvCollections().Delete(ctx, created.ID)
	assert.True(t, wipp.IsNotFound(err))
}

func TestLiveAPI_PaginationSummary(t *testing.T) {
	client := newLiveClient(t)

	summary, err := client.Entities().Summary(context.Background(), wipp.KindImageCollections)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, summary.TotalElements, 0)
	assert.GreaterOrEqual(t, summary.TotalPages, 0)
}
