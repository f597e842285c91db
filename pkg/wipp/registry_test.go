package wipp_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/polusai/wipp-client/pkg/wipp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     string
		expected string
	}{
		{wipp.KindImageCollections, "imagesCollections"},
		{wipp.KindImages, "images"},
		{wipp.KindCsvCollections, "csvCollections"},
		{wipp.KindGenericDataCollections, "genericDatas"},
		{wipp.KindPlugins, "plugins"},
		// The two known plural inconsistencies of the backend.
		{wipp.KindCsv, "csvs"},
		{wipp.KindGenericFiles, "genericFiles"},
		// Unregistered kinds nest under themselves.
		{"jobs", "jobs"},
		{"stitchingVectors", "stitchingVectors"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.kind, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, wipp.RecordKey(testCase.kind))
		})
	}
}

func TestParseEntity_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		kind   string
		record string
		check  func(t *testing.T, entity wipp.Entity)
	}{
		{
			name:   "image collection",
			kind:   wipp.KindImageCollections,
			record: `{"id":"ic-1","name":"cells","numberOfImages":12,"locked":true}`,
			check: func(t *testing.T, entity wipp.Entity) {
				t.Helper()

				collection, ok := entity.(wipp.ImageCollection)
				require.True(t, ok)
				assert.Equal(t, "ic-1", collection.ID)
				assert.Equal(t, "cells", collection.Name)
				require.NotNil(t, collection.NumberOfImages)
				assert.Equal(t, 12, *collection.NumberOfImages)
				require.NotNil(t, collection.Locked)
				assert.True(t, *collection.Locked)
			},
		},
		{
			name:   "image",
			kind:   wipp.KindImages,
			record: `{"fileName":"a.ome.tif","fileSize":1024,"importing":false}`,
			check: func(t *testing.T, entity wipp.Entity) {
				t.Helper()

				image, ok := entity.(wipp.Image)
				require.True(t, ok)
				assert.Equal(t, "a.ome.tif", image.FileName)
				assert.Equal(t, int64(1024), image.FileSize)
			},
		},
		{
			name:   "csv collection",
			kind:   wipp.KindCsvCollections,
			record: `{"name":"measurements","numberOfCsvFiles":3}`,
			check: func(t *testing.T, entity wipp.Entity) {
				t.Helper()

				collection, ok := entity.(wipp.CsvCollection)
				require.True(t, ok)
				assert.Equal(t, "measurements", collection.Name)
			},
		},
		{
			name:   "csv file",
			kind:   wipp.KindCsv,
			record: `{"fileName":"data.csv","fileSize":99}`,
			check: func(t *testing.T, entity wipp.Entity) {
				t.Helper()

				_, ok := entity.(wipp.Csv)
				require.True(t, ok)
			},
		},
		{
			name:   "generic data collection",
			kind:   wipp.KindGenericDataCollections,
			record: `{"name":"model-output","type":"tensorflow"}`,
			check: func(t *testing.T, entity wipp.Entity) {
				t.Helper()

				collection, ok := entity.(wipp.GenericDataCollection)
				require.True(t, ok)
				require.NotNil(t, collection.Type)
				assert.Equal(t, "tensorflow", *collection.Type)
			},
		},
		{
			name:   "generic data file",
			kind:   wipp.KindGenericFiles,
			record: `{"fileName":"weights.h5","fileSize":2048}`,
			check: func(t *testing.T, entity wipp.Entity) {
				t.Helper()

				_, ok := entity.(wipp.GenericDataFile)
				require.True(t, ok)
			},
		},
		{
			name: "plugin",
			kind: wipp.KindPlugins,
			record: `{"name":"threshold","version":"1.0.0","containerId":"wipp/threshold:1.0.0",
				"title":"Thresholding","description":"Applies a threshold",
				"inputs":[{"name":"input","type":"collection","required":true}],
				"outputs":[{"name":"output","type":"collection"}],
				"ui":[{"key":"inputs.input","title":"Input collection"}]}`,
			check: func(t *testing.T, entity wipp.Entity) {
				t.Helper()

				plugin, ok := entity.(wipp.Plugin)
				require.True(t, ok)
				assert.Equal(t, "threshold", plugin.Name)
				require.Len(t, plugin.Inputs, 1)
				assert.Equal(t, "collection", plugin.Inputs[0].Type)
				require.NotNil(t, plugin.Inputs[0].Required)
				assert.True(t, *plugin.Inputs[0].Required)
				require.Len(t, plugin.UI, 1)
				assert.Equal(t, "inputs.input", plugin.UI[0].Key)
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			entity, err := wipp.ParseEntity(testCase.kind, []byte(testCase.record))
			require.NoError(t, err)
			assert.Equal(t, testCase.kind, entity.Kind())
			testCase.check(t, entity)
		})
	}
}

func TestParseEntity_MalformedRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		kind   string
		record string
	}{
		{"collection missing name", wipp.KindImageCollections, `{"id":"ic-1"}`},
		{"collection null name", wipp.KindCsvCollections, `{"name":null}`},
		{"image missing fileName", wipp.KindImages, `{"fileSize":10}`},
		{"csv missing fileName", wipp.KindCsv, `{"fileSize":10}`},
		{"generic file missing fileName", wipp.KindGenericFiles, `{"fileSize":10}`},
		{"plugin missing containerId", wipp.KindPlugins, `{"name":"p","version":"1","title":"t","description":"d"}`},
		{"not an object", wipp.KindImageCollections, `[1,2,3]`},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := wipp.ParseEntity(testCase.kind, []byte(testCase.record))
			require.ErrorIs(t, err, wipp.ErrMalformedRecord)
		})
	}
}

func TestParseEntity_UnknownKindTolerance(t *testing.T) {
	t.Parallel()

	entity, err := wipp.ParseEntity("notebooks", []byte(`{"id":"nb-1","name":"analysis","cells":4}`))
	require.NoError(t, err)

	generic, ok := entity.(wipp.GenericEntity)
	require.True(t, ok)
	assert.Equal(t, "notebooks", generic.Kind())
	assert.Equal(t, "nb-1", generic.ID())
	assert.Equal(t, "analysis", generic.Name())
	assert.InEpsilon(t, 4.0, generic.Fields["cells"], 1e-9)

	_, err = wipp.ParseEntity("notebooks", []byte(`"not an object"`))
	require.ErrorIs(t, err, wipp.ErrMalformedRecord)
}

// Not parallel: mutates the package registry.
func TestRegisterKind(t *testing.T) {
	wipp.RegisterKind("pyramids", "", func(data []byte) (wipp.Entity, error) {
		var entity wipp.GenericEntity

		err := json.Unmarshal(data, &entity)
		if err != nil {
			return nil, err
		}

		entity.EntityKind = "pyramids"

		return entity, nil
	})

	assert.Equal(t, "pyramids", wipp.RecordKey("pyramids"))

	entity, err := wipp.ParseEntity("pyramids", []byte(`{"name":"zoom"}`))
	require.NoError(t, err)
	assert.Equal(t, "pyramids", entity.Kind())
}

func TestEntityRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2023, 5, 17, 10, 30, 0, 0, time.UTC)
	locked := true
	notes := "imported from microscope"
	numberOfImages := 42

	original := wipp.ImageCollection{
		Collection: wipp.Collection{
			ID:           "ic-9",
			Name:         "plate-1",
			CreationDate: &now,
			Locked:       &locked,
		},
		Notes:          &notes,
		NumberOfImages: &numberOfImages,
	}

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	// Wire casing is lowerCamelCase.
	assert.Contains(t, string(payload), `"creationDate"`)
	assert.Contains(t, string(payload), `"numberOfImages"`)

	parsed, err := wipp.ParseEntity(wipp.KindImageCollections, payload)
	require.NoError(t, err)

	restored, ok := parsed.(wipp.ImageCollection)
	require.True(t, ok)
	assert.Equal(t, original, restored)
}

func TestEntityRoundTrip_OmitsUnsetOptionals(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(wipp.CsvCollection{
		Collection: wipp.Collection{Name: "fresh"},
	})
	require.NoError(t, err)

	// A locally constructed collection has no id until the service assigns one.
	assert.JSONEq(t, `{"name":"fresh"}`, string(payload))
}

func TestPluginRoundTrip(t *testing.T) {
	t.Parallel()

	author := "plugin-team"

	original := wipp.Plugin{
		ID:          "pl-3",
		Name:        "stitching",
		Version:     "2.1.0",
		ContainerID: "wipp/stitching:2.1.0",
		Title:       "Image Stitching",
		Description: "Stitches image tiles",
		Author:      &author,
		Inputs: []wipp.PluginParameter{
			{Name: "images", Type: "collection"},
			{Name: "pattern", Type: "string"},
		},
		Outputs: []wipp.PluginParameter{
			{Name: "vector", Type: "stitchingVector"},
		},
		UI: []wipp.PluginUIField{
			{Key: "inputs.images", Title: "Images"},
		},
	}

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	parsed, err := wipp.ParseEntity(wipp.KindPlugins, payload)
	require.NoError(t, err)

	restored, ok := parsed.(wipp.Plugin)
	require.True(t, ok)
	assert.Equal(t, original, restored)
	// Input order is part of the manifest contract.
	assert.Equal(t, "images", restored.Inputs[0].Name)
	assert.Equal(t, "pattern", restored.Inputs[1].Name)
}
