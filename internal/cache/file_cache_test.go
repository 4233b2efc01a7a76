package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileCache_SetGetRoundTrip(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	fc := NewFileCache[sample]("test_cache")
	key := fc.GenerateKey("lon", -61.9, "month", "2024-01")

	_, found := fc.Get(key)
	assert.False(t, found)

	want := sample{Name: "NDVI_2024-01.tif", Count: 3}
	require.NoError(t, fc.Set(key, want))

	got, found := fc.Get(key)
	require.True(t, found)
	assert.Equal(t, want, got)
}

func TestFileCache_KeyIsStable(t *testing.T) {
	fc := NewFileCache[sample]("test_cache")
	assert.Equal(t, fc.GenerateKey(1, "a"), fc.GenerateKey(1, "a"))
	assert.NotEqual(t, fc.GenerateKey(1, "a"), fc.GenerateKey(1, "b"))
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	fc := NewFileCache[sample]("test_cache")
	key := fc.GenerateKey("corrupt")
	require.NoError(t, fc.Set(key, sample{Name: "x"}))

	path := filepath.Join(os.Getenv("ROOT_PATH"), "data", "test_cache", key+".json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data":{"name":"tampered"},"checksum":"bad"}`), 0644))

	_, found := fc.Get(key)
	assert.False(t, found)
}
