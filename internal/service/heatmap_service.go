// Package service provides business logic for the heatmap server.
package service

import (
	"github.com/svg-heatmap/server/internal/cache"
	"github.com/svg-heatmap/server/internal/data/matrixio"
	"github.com/svg-heatmap/server/pkg/heatmap"
)

// HeatmapServiceConfig contains heatmap service configuration.
type HeatmapServiceConfig struct {
	DatasetID string
	Reader    *matrixio.Reader
	Cache     *cache.Manager
	Defaults  heatmap.Options
}

// HeatmapService renders documents for one configured dataset, cache-first.
type HeatmapService struct {
	datasetID string
	reader    *matrixio.Reader
	cache     *cache.Manager
	defaults  heatmap.Options
}

// NewHeatmapService creates a new heatmap service.
func NewHeatmapService(cfg HeatmapServiceConfig) *HeatmapService {
	datasetID := cfg.DatasetID
	if datasetID == "" {
		datasetID = "default"
	}
	return &HeatmapService{
		datasetID: datasetID,
		reader:    cfg.Reader,
		cache:     cfg.Cache,
		defaults:  cfg.Defaults,
	}
}

// Defaults returns the render defaults for this dataset. Handlers copy the
// result and overlay per-request overrides.
func (s *HeatmapService) Defaults() heatmap.Options {
	return s.defaults
}

// Metadata returns the dataset's metadata.
func (s *HeatmapService) Metadata() *matrixio.Metadata {
	return s.reader.Metadata()
}

// matrix returns the dataset's matrix, keeping recently used datasets in the
// shared LRU so repeated renders across many datasets stay cheap.
func (s *HeatmapService) matrix() heatmap.Matrix {
	key := "matrix:" + s.datasetID
	if s.cache != nil {
		if m, ok := s.cache.GetMatrix(key); ok {
			return m
		}
	}
	m := s.reader.Matrix()
	if s.cache != nil {
		s.cache.SetMatrix(key, m)
	}
	return m
}

// RenderDocument renders the dataset with the given options. Rendering is
// deterministic, so cached documents are byte-identical to fresh renders.
func (s *HeatmapService) RenderDocument(opts heatmap.Options) ([]byte, error) {
	key := cache.RenderKey(s.datasetID, opts)
	if s.cache != nil {
		if data, ok := s.cache.GetDocument(key); ok {
			return data, nil
		}
	}

	svg, err := heatmap.Render(s.matrix(), opts)
	if err != nil {
		return nil, err
	}

	data := []byte(svg)
	if s.cache != nil {
		s.cache.SetDocument(key, data)
	}
	return data, nil
}
