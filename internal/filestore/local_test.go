package filestore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yashp/portfolio-assistant/internal/config"
)

func TestLocalStoreOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chunks.json"), []byte(`[]`), 0o644))

	store, err := New(config.StoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": dir},
	})
	require.NoError(t, err)
	require.Equal(t, "local", store.Type())

	reader, err := store.Open(context.Background(), "chunks.json")
	require.NoError(t, err)
	defer reader.Close()
	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, "[]", string(body))
}

func TestLocalStoreRejectsPathKeys(t *testing.T) {
	store, err := New(config.StoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	for _, key := range []string{"../secret", "a/b.json", `a\b.json`} {
		_, err := store.Open(context.Background(), key)
		require.Error(t, err, "key %q", key)
	}
}

func TestLocalStoreMissingDir(t *testing.T) {
	_, err := New(config.StoreConfig{Type: "local", Data: map[string]interface{}{}})
	require.Error(t, err)
}

func TestNewUnknownType(t *testing.T) {
	_, err := New(config.StoreConfig{Type: "ftp"})
	require.Error(t, err)
}
