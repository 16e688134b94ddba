// Package config handles configuration loading for the heatmap server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Cache    CacheConfig    `yaml:"cache"`
	Render   RenderConfig   `yaml:"render"`
	Datasets DatasetsConfig `yaml:"datasets"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// CacheConfig contains caching settings.
type CacheConfig struct {
	DocumentSizeMB     int `yaml:"document_size_mb"`
	DocumentTTLMinutes int `yaml:"document_ttl_minutes"`
	MatrixCacheSize    int `yaml:"matrix_cache_size"`
}

// RenderConfig contains rendering defaults applied to dataset requests.
type RenderConfig struct {
	DefaultPalette string `yaml:"default_palette"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
}

// DatasetConfig describes one pre-configured dataset.
type DatasetConfig struct {
	Path string `yaml:"path"`
	Name string `yaml:"name"`
}

// DatasetsConfig is an ordered set of datasets. YAML order is preserved and
// the first entry is the default dataset.
type DatasetsConfig struct {
	Datasets map[string]DatasetConfig
	order    []string
}

// UnmarshalYAML decodes the datasets mapping while recording key order,
// which plain map decoding would lose.
func (d *DatasetsConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("datasets must be a mapping, got %v", node.Kind)
	}

	d.Datasets = make(map[string]DatasetConfig, len(node.Content)/2)
	d.order = make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var id string
		if err := node.Content[i].Decode(&id); err != nil {
			return err
		}
		var ds DatasetConfig
		if err := node.Content[i+1].Decode(&ds); err != nil {
			return err
		}
		d.Datasets[id] = ds
		d.order = append(d.order, id)
	}
	return nil
}

// IDs returns dataset IDs in configuration order.
func (d *DatasetsConfig) IDs() []string {
	return d.order
}

// DefaultID returns the first configured dataset ID, or "".
func (d *DatasetsConfig) DefaultID() string {
	if len(d.order) == 0 {
		return ""
	}
	return d.order[0]
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Cache: CacheConfig{
			DocumentSizeMB:     256,
			DocumentTTLMinutes: 10,
			MatrixCacheSize:    64,
		},
		Render: RenderConfig{
			DefaultPalette: "viridis",
			Width:          400,
			Height:         300,
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = defaults.Server.CORSOrigins
	}
	if cfg.Cache.DocumentSizeMB == 0 {
		cfg.Cache.DocumentSizeMB = defaults.Cache.DocumentSizeMB
	}
	if cfg.Cache.DocumentTTLMinutes == 0 {
		cfg.Cache.DocumentTTLMinutes = defaults.Cache.DocumentTTLMinutes
	}
	if cfg.Cache.MatrixCacheSize == 0 {
		cfg.Cache.MatrixCacheSize = defaults.Cache.MatrixCacheSize
	}
	if cfg.Render.DefaultPalette == "" {
		cfg.Render.DefaultPalette = defaults.Render.DefaultPalette
	}
	if cfg.Render.Width == 0 {
		cfg.Render.Width = defaults.Render.Width
	}
	if cfg.Render.Height == 0 {
		cfg.Render.Height = defaults.Render.Height
	}
}
