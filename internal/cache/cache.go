// Package cache provides caching for rendered documents and parsed matrices.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/svg-heatmap/server/pkg/heatmap"
)

// Config contains cache configuration.
type Config struct {
	DocumentCacheSizeMB int
	DocumentTTL         time.Duration
	MatrixCacheSize     int
}

// Manager manages the rendered-document and parsed-matrix caches.
type Manager struct {
	docCache    *bigcache.BigCache
	matrixCache *lru.Cache[string, heatmap.Matrix]
}

// NewManager creates a new cache manager.
func NewManager(cfg Config) (*Manager, error) {
	docCacheConfig := bigcache.Config{
		Shards:             1024,
		LifeWindow:         cfg.DocumentTTL,
		CleanWindow:        cfg.DocumentTTL / 2,
		MaxEntriesInWindow: 100000,
		MaxEntrySize:       512 * 1024, // raster-legend documents can be large
		HardMaxCacheSize:   cfg.DocumentCacheSizeMB,
		Verbose:            false,
	}

	docCache, err := bigcache.New(context.Background(), docCacheConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create document cache: %w", err)
	}

	matrixCache, err := lru.New[string, heatmap.Matrix](cfg.MatrixCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create matrix cache: %w", err)
	}

	return &Manager{
		docCache:    docCache,
		matrixCache: matrixCache,
	}, nil
}

// GetDocument retrieves a rendered document from cache.
func (m *Manager) GetDocument(key string) ([]byte, bool) {
	data, err := m.docCache.Get(key)
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetDocument stores a rendered document in cache.
func (m *Manager) SetDocument(key string, data []byte) error {
	return m.docCache.Set(key, data)
}

// GetMatrix retrieves a parsed matrix from cache.
func (m *Manager) GetMatrix(key string) (heatmap.Matrix, bool) {
	return m.matrixCache.Get(key)
}

// SetMatrix stores a parsed matrix in cache.
func (m *Manager) SetMatrix(key string, mat heatmap.Matrix) {
	m.matrixCache.Add(key, mat)
}

// RenderKey generates a deterministic cache key for a render request.
// Options are serialized field by field so the key is independent of any
// map iteration order.
func RenderKey(datasetID string, opts heatmap.Options) string {
	canonical := fmt.Sprintf("render:%s:%s:log=%t:legend=%t:raster=%t:%dx%d:p=%d",
		datasetID, opts.Palette, opts.LogScale, opts.ShowLegend, opts.RasterLegend,
		opts.Width, opts.Height, opts.Precision)

	h := sha256.Sum256([]byte(canonical))
	return "doc:" + hex.EncodeToString(h[:])[:16]
}

// Stats returns cache statistics.
func (m *Manager) Stats() map[string]interface{} {
	return map[string]interface{}{
		"document_cache_len": m.docCache.Len(),
		"document_cache_cap": m.docCache.Capacity(),
		"matrix_cache_len":   m.matrixCache.Len(),
	}
}

// Close closes the cache manager.
func (m *Manager) Close() error {
	return m.docCache.Close()
}
