package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sync"
	"time"

	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/internal/workspace"
	"github.com/mini-maxit/acick/pkg/constants"
	"github.com/mini-maxit/acick/utils"
	"go.uber.org/zap"
)

// CacheKey identifies one revision of a remote file.
type CacheKey struct {
	Path string
	Rev  string
}

type CacheEntry struct {
	FilePath     string    `json:"file_path"`
	CachedAt     time.Time `json:"cached_at"`
	OriginalPath string    `json:"original_path"`
	Rev          string    `json:"rev"`
}

type CacheMetadata struct {
	Entries map[string]CacheEntry `json:"entries"` // key is hash of path+rev
}

// DownloadCache keeps downloaded testcase files between runs. Safe for concurrent use.
type DownloadCache interface {
	GetCachedFile(key CacheKey) (workspace.AbsPath, bool)
	CacheFile(key CacheKey, src workspace.AbsPath) error
	CleanExpiredCache() error
	InitCache() error
}

type downloadCache struct {
	mu           sync.Mutex
	logger       *zap.SugaredLogger
	cacheDirPath workspace.AbsPath
	ttl          time.Duration
	metadata     *CacheMetadata
}

func NewDownloadCache(cacheDirPath workspace.AbsPath) DownloadCache {
	logger := logger.NewNamedLogger("cache")
	return &downloadCache{
		logger:       logger,
		cacheDirPath: cacheDirPath,
		ttl:          constants.CacheTTL,
		metadata:     &CacheMetadata{Entries: make(map[string]CacheEntry)},
	}
}

// DefaultCacheDir returns the cache directory under the data directory.
func DefaultCacheDir() (workspace.AbsPath, error) {
	dataDir, err := workspace.DataDir()
	if err != nil {
		return workspace.AbsPath{}, err
	}
	return dataDir.Join(constants.CacheDirName), nil
}

// InitCache creates the cache directory, loads the metadata and drops expired entries.
func (c *downloadCache) InitCache() error {
	if err := c.cacheDirPath.CreateDirAll(); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadMetadata(); err != nil {
		c.logger.Warnf("Failed to load cache metadata, starting empty: %v", err)
		c.metadata = &CacheMetadata{Entries: make(map[string]CacheEntry)}
	}
	if err := c.cleanExpiredLocked(); err != nil {
		c.logger.Warnf("Failed to clean expired cache: %v", err)
	}
	return nil
}

func (c *downloadCache) GetCachedFile(key CacheKey) (workspace.AbsPath, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hash := c.generateKey(key)
	entry, exists := c.metadata.Entries[hash]
	if !exists {
		return workspace.AbsPath{}, false
	}

	if time.Since(entry.CachedAt) > c.ttl {
		c.logger.Debugf("Cache expired for %s", key.Path)
		delete(c.metadata.Entries, hash)
		return workspace.AbsPath{}, false
	}

	cached, err := workspace.New(entry.FilePath)
	if err != nil || !cached.IsFile() {
		c.logger.Debugf("Cached file no longer exists: %s", entry.FilePath)
		delete(c.metadata.Entries, hash)
		return workspace.AbsPath{}, false
	}

	c.logger.Debugf("Cache hit for %s", key.Path)
	return cached, true
}

func (c *downloadCache) CacheFile(key CacheKey, src workspace.AbsPath) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	hash := c.generateKey(key)
	if err := c.cacheDirPath.CreateDirAll(); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if _, exists := c.metadata.Entries[hash]; !exists {
		if len(c.metadata.Entries) >= constants.CacheMaxEntries {
			c.evictOldestEntry()
		}
	}

	cacheFilePath := c.cacheDirPath.Join(c.generateCacheFileName(key))
	if err := utils.CopyFile(src.String(), cacheFilePath.String()); err != nil {
		return fmt.Errorf("failed to copy file to cache: %w", err)
	}

	c.metadata.Entries[hash] = CacheEntry{
		FilePath:     cacheFilePath.String(),
		CachedAt:     time.Now(),
		OriginalPath: key.Path,
		Rev:          key.Rev,
	}

	c.logger.Debugf("Cached file %s", key.Path)
	return c.saveMetadata()
}

// CleanExpiredCache removes expired cache entries and their files.
func (c *downloadCache) CleanExpiredCache() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleanExpiredLocked()
}

func (c *downloadCache) cleanExpiredLocked() error {
	now := time.Now()
	toDelete := []string{}

	for key, entry := range c.metadata.Entries {
		if now.Sub(entry.CachedAt) > c.ttl {
			toDelete = append(toDelete, key)
			if err := os.Remove(entry.FilePath); err != nil && !os.IsNotExist(err) {
				c.logger.Warnf("Failed to remove expired cache file %s: %v", entry.FilePath, err)
			}
		}
	}

	for _, key := range toDelete {
		delete(c.metadata.Entries, key)
	}

	if len(toDelete) > 0 {
		c.logger.Infof("Cleaned %d expired cache entries", len(toDelete))
		return c.saveMetadata()
	}
	return nil
}

func (c *downloadCache) evictOldestEntry() {
	var oldestKey string
	var oldestTime time.Time
	first := true

	for key, entry := range c.metadata.Entries {
		if first || entry.CachedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.CachedAt
			first = false
		}
	}

	if entry, exists := c.metadata.Entries[oldestKey]; exists {
		if err := os.Remove(entry.FilePath); err != nil && !os.IsNotExist(err) {
			c.logger.Warnf("Failed to remove evicted cache file %s: %v", entry.FilePath, err)
		}
		delete(c.metadata.Entries, oldestKey)
		c.logger.Debugf("Evicted oldest cache entry: %s", entry.OriginalPath)
	}
}

func (c *downloadCache) metadataPath() workspace.AbsPath {
	return c.cacheDirPath.Join(constants.CacheMetadataFile)
}

func (c *downloadCache) loadMetadata() error {
	metadata := &CacheMetadata{}
	err := c.metadataPath().Load(func(r io.Reader) error {
		return json.NewDecoder(r).Decode(metadata)
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if metadata.Entries == nil {
		metadata.Entries = make(map[string]CacheEntry)
	}
	c.metadata = metadata
	return nil
}

func (c *downloadCache) saveMetadata() error {
	_, err := c.metadataPath().Save(func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c.metadata)
	}, true)
	if err != nil {
		return fmt.Errorf("failed to save cache metadata: %w", err)
	}
	return nil
}

func (c *downloadCache) generateKey(key CacheKey) string {
	data := fmt.Sprintf("%s:%s", key.Path, key.Rev)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

func (c *downloadCache) generateCacheFileName(key CacheKey) string {
	return c.generateKey(key) + path.Ext(key.Path)
}
