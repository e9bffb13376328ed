package storage_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mini-maxit/acick/internal/storage"
	"github.com/mini-maxit/acick/internal/workspace"
	"github.com/mini-maxit/acick/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRev = "015a1b2c3d4e5f"

// createTestFile creates a temporary file with test content.
func createTestFile(t *testing.T, content string) workspace.AbsPath {
	tempFile, err := os.CreateTemp(t.TempDir(), "test-file-*.txt")
	require.NoError(t, err)
	defer tempFile.Close()

	_, err = tempFile.WriteString(content)
	require.NoError(t, err)

	return workspace.MustNew(tempFile.Name())
}

func newInitializedCache(t *testing.T, dir string) storage.DownloadCache {
	t.Helper()
	cache := storage.NewDownloadCache(workspace.MustNew(dir))
	require.NoError(t, cache.InitCache())
	return cache
}

func TestDownloadCache_InitCache(t *testing.T) {
	cachedir := filepath.Join(t.TempDir(), "cache")
	newInitializedCache(t, cachedir)

	info, err := os.Stat(cachedir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDownloadCache_CacheFile(t *testing.T) {
	cache := newInitializedCache(t, t.TempDir())
	testFile := createTestFile(t, "5\n2 2 3 5 5\n")
	key := storage.CacheKey{Path: "/ARC100/C/in/sample_01.txt", Rev: testRev}

	require.NoError(t, cache.CacheFile(key, testFile))

	cachedPath, found := cache.GetCachedFile(key)
	require.True(t, found)
	assert.Equal(t, ".txt", filepath.Ext(cachedPath.String()))
	content, err := os.ReadFile(cachedPath.String())
	require.NoError(t, err)
	assert.Equal(t, "5\n2 2 3 5 5\n", string(content))
}

func TestDownloadCache_Misses(t *testing.T) {
	cache := newInitializedCache(t, t.TempDir())
	key := storage.CacheKey{Path: "/ARC100/C/in/sample_01.txt", Rev: testRev}
	require.NoError(t, cache.CacheFile(key, createTestFile(t, "content")))

	tests := []struct {
		name string
		key  storage.CacheKey
	}{
		{name: "unknown path", key: storage.CacheKey{Path: "/ARC100/C/in/missing.txt", Rev: testRev}},
		{name: "newer revision", key: storage.CacheKey{Path: key.Path, Rev: "016a1b2c3d4e5f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cachedPath, found := cache.GetCachedFile(tt.key)
			assert.False(t, found)
			assert.True(t, cachedPath.IsZero())
		})
	}
}

func TestDownloadCache_PersistsAcrossInstances(t *testing.T) {
	cachedir := t.TempDir()
	key := storage.CacheKey{Path: "/ARC100/D/out/01.txt", Rev: testRev}
	require.NoError(t, newInitializedCache(t, cachedir).CacheFile(key, createTestFile(t, "Yes\n")))

	cachedPath, found := newInitializedCache(t, cachedir).GetCachedFile(key)
	require.True(t, found)
	content, err := os.ReadFile(cachedPath.String())
	require.NoError(t, err)
	assert.Equal(t, "Yes\n", string(content))
}

func TestDownloadCache_CleanExpiredCache(t *testing.T) {
	cachedir := t.TempDir()
	key := storage.CacheKey{Path: "/ARC100/C/in/expired.txt", Rev: testRev}
	require.NoError(t, newInitializedCache(t, cachedir).CacheFile(key, createTestFile(t, "old")))

	metadataPath := filepath.Join(cachedir, constants.CacheMetadataFile)
	data, err := os.ReadFile(metadataPath)
	require.NoError(t, err)

	var metadata storage.CacheMetadata
	require.NoError(t, json.Unmarshal(data, &metadata))
	var cachedFile string
	for hash, entry := range metadata.Entries {
		entry.CachedAt = time.Now().Add(-constants.CacheTTL - time.Hour)
		metadata.Entries[hash] = entry
		cachedFile = entry.FilePath
	}
	modifiedData, err := json.MarshalIndent(metadata, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(metadataPath, modifiedData, 0o644))

	cache := newInitializedCache(t, cachedir)

	_, found := cache.GetCachedFile(key)
	assert.False(t, found)
	_, err = os.Stat(cachedFile)
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadCache_OverwriteExistingCache(t *testing.T) {
	cache := newInitializedCache(t, t.TempDir())
	key := storage.CacheKey{Path: "/ARC100/C/out/01.txt", Rev: testRev}

	require.NoError(t, cache.CacheFile(key, createTestFile(t, "first content")))
	require.NoError(t, cache.CacheFile(key, createTestFile(t, "second content")))

	cachedPath, found := cache.GetCachedFile(key)
	require.True(t, found)
	content, err := os.ReadFile(cachedPath.String())
	require.NoError(t, err)
	assert.Equal(t, "second content", string(content))
}

func TestDownloadCache_GetCachedFile_FileDeleted(t *testing.T) {
	cache := newInitializedCache(t, t.TempDir())
	key := storage.CacheKey{Path: "/ARC100/C/out/deleted.txt", Rev: testRev}
	require.NoError(t, cache.CacheFile(key, createTestFile(t, "deleted file test")))

	cachedPath, found := cache.GetCachedFile(key)
	require.True(t, found)
	require.NoError(t, os.Remove(cachedPath.String()))

	_, found = cache.GetCachedFile(key)
	assert.False(t, found)
}

func TestDownloadCache_CorruptMetadataStartsEmpty(t *testing.T) {
	cachedir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cachedir, constants.CacheMetadataFile), []byte("{"), 0o644))

	cache := newInitializedCache(t, cachedir)

	_, found := cache.GetCachedFile(storage.CacheKey{Path: "/a.txt", Rev: testRev})
	assert.False(t, found)
}
