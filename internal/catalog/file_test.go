/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSourceJSONArray(t *testing.T) {
	path := writeCatalogFile(t, `[
  {"id": "1", "title": "Beaker Bong", "tags": "family:glass-bong", "vendor": "Acme"},
  {"id": "2", "title": "Quartz Banger", "tags": "family:banger", "vendor": "Other"}
]`)

	items, err := NewFileSource(path).Fetch(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Beaker Bong", items[0].Title)
	assert.Equal(t, "family:glass-bong", items[0].TagString)
}

func TestFileSourceJSONLines(t *testing.T) {
	path := writeCatalogFile(t, `
{"id": "1", "title": "Beaker Bong", "tags": "family:glass-bong"}

{"id": "2", "title": "Quartz Banger", "tags": "family:banger"}
`)

	items, err := NewFileSource(path).Fetch(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[1].ID)
}

func TestFileSourceVendorFilter(t *testing.T) {
	path := writeCatalogFile(t, `[
  {"id": "1", "title": "A", "tags": "", "vendor": "Acme"},
  {"id": "2", "title": "B", "tags": "", "vendor": "other"},
  {"id": "3", "title": "C", "tags": "", "vendor": "ACME"}
]`)

	items, err := NewFileSource(path).Fetch(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, items, 2, "vendor filter is case-insensitive")
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "3", items[1].ID)
}

func TestFileSourceEmptyFile(t *testing.T) {
	path := writeCatalogFile(t, "  \n")
	items, err := NewFileSource(path).Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileSourceErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Fetch(context.Background(), "")
		assert.Error(t, err)
	})
	t.Run("malformed array", func(t *testing.T) {
		path := writeCatalogFile(t, `[{"id": 1}]`)
		_, err := NewFileSource(path).Fetch(context.Background(), "")
		assert.Error(t, err)
	})
	t.Run("malformed line", func(t *testing.T) {
		path := writeCatalogFile(t, "{\"id\": \"1\", \"title\": \"ok\", \"tags\": \"\"}\nnot json\n")
		_, err := NewFileSource(path).Fetch(context.Background(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})
}
