package api

import (
	"github.com/svg-heatmap/server/internal/service"
)

// DatasetInfo contains information about a dataset for the API response.
type DatasetInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

// DatasetRegistry holds heatmap services for all configured datasets.
type DatasetRegistry struct {
	services       map[string]*service.HeatmapService
	names          map[string]string
	defaultDataset string
	datasetOrder   []string
}

// NewDatasetRegistry creates a new dataset registry.
func NewDatasetRegistry(defaultDataset string, order []string) *DatasetRegistry {
	return &DatasetRegistry{
		services:       make(map[string]*service.HeatmapService),
		names:          make(map[string]string),
		defaultDataset: defaultDataset,
		datasetOrder:   order,
	}
}

// Register adds a heatmap service for a dataset.
func (r *DatasetRegistry) Register(datasetID, name string, svc *service.HeatmapService) {
	r.services[datasetID] = svc
	if name == "" {
		name = datasetID
	}
	r.names[datasetID] = name
}

// Get returns the heatmap service for a dataset, or nil if not found.
func (r *DatasetRegistry) Get(datasetID string) *service.HeatmapService {
	return r.services[datasetID]
}

// DefaultDatasetID returns the default dataset ID.
func (r *DatasetRegistry) DefaultDatasetID() string {
	return r.defaultDataset
}

// DatasetIDs returns all dataset IDs in config order.
func (r *DatasetRegistry) DatasetIDs() []string {
	return r.datasetOrder
}

// Datasets returns dataset info for all registered datasets.
func (r *DatasetRegistry) Datasets() []DatasetInfo {
	infos := make([]DatasetInfo, 0, len(r.datasetOrder))
	for _, id := range r.datasetOrder {
		svc := r.services[id]
		if svc == nil {
			continue
		}
		md := svc.Metadata()
		infos = append(infos, DatasetInfo{
			ID:   id,
			Name: r.names[id],
			Rows: md.Rows,
			Cols: md.Cols,
		})
	}
	return infos
}
