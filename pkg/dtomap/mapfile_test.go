package dtomap_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flahallen61-boop/dto-map-builder/pkg/dtomap"
)

func TestMapfileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), dtomap.DefaultFileName)

	m := dtomap.NewMapfile("CustomerOrder")
	m.Source = dtomap.SourceConfig{Location: "schemas/order.json", Type: "LOCAL-PATH"}
	m.Bindings["id"] = dtomap.Binding{Path: "id"}
	m.Bindings["status"] = dtomap.Binding{Default: "ACTIVE"}

	require.NoError(t, m.Save(path))

	got, err := dtomap.LoadMapfile(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestLoadMapfile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		t.Parallel()

		_, err := dtomap.LoadMapfile(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		_, err := dtomap.LoadMapfile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("UnknownField", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "unknown.yaml")
		require.NoError(t, os.WriteFile(path, []byte("className: X\nextra: true\n"), 0o600))

		_, err := dtomap.LoadMapfile(path)
		require.Error(t, err)
	})
}

func TestMapfileSchema(t *testing.T) {
	t.Parallel()

	jsBytes, err := dtomap.MapfileSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(jsBytes, &doc))

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "className")
	assert.Contains(t, props, "bindings")
}
