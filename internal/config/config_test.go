package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FullConfig(t *testing.T) {
	content := `
server:
  port: 9000
  cors_origins:
    - "http://localhost:4000"
cache:
  document_size_mb: 128
  document_ttl_minutes: 5
  matrix_cache_size: 16
render:
  default_palette: magma
  width: 800
  height: 600
datasets:
  expression:
    path: "/data/expression.csv"
    name: "Gene expression"
  correlation:
    path: "/data/correlation.json.zst"
`
	cfg := loadFromString(t, content)

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Cache.DocumentSizeMB != 128 {
		t.Errorf("expected document cache 128MB, got %d", cfg.Cache.DocumentSizeMB)
	}
	if cfg.Render.DefaultPalette != "magma" {
		t.Errorf("expected magma default, got %q", cfg.Render.DefaultPalette)
	}

	ds, ok := cfg.Datasets.Datasets["expression"]
	if !ok {
		t.Fatal("expected 'expression' dataset")
	}
	if ds.Path != "/data/expression.csv" {
		t.Errorf("unexpected path: %s", ds.Path)
	}
	if ds.Name != "Gene expression" {
		t.Errorf("unexpected name: %s", ds.Name)
	}
}

func TestLoad_DatasetOrderPreserved(t *testing.T) {
	content := `
datasets:
  zebra:
    path: "/data/zebra.csv"
  alpha:
    path: "/data/alpha.csv"
  mid:
    path: "/data/mid.csv"
`
	cfg := loadFromString(t, content)

	ids := cfg.Datasets.IDs()
	if len(ids) != 3 || ids[0] != "zebra" || ids[1] != "alpha" || ids[2] != "mid" {
		t.Errorf("expected YAML order preserved, got %v", ids)
	}
	// First dataset in YAML order is the default
	if cfg.Datasets.DefaultID() != "zebra" {
		t.Errorf("expected default dataset 'zebra', got %q", cfg.Datasets.DefaultID())
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	content := `
server:
  port: 0
`
	cfg := loadFromString(t, content)

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Cache.DocumentSizeMB != 256 {
		t.Errorf("expected default document cache 256, got %d", cfg.Cache.DocumentSizeMB)
	}
	if cfg.Cache.MatrixCacheSize != 64 {
		t.Errorf("expected default matrix cache 64, got %d", cfg.Cache.MatrixCacheSize)
	}
	if cfg.Render.DefaultPalette != "viridis" {
		t.Errorf("expected default palette viridis, got %q", cfg.Render.DefaultPalette)
	}
	if cfg.Render.Width != 400 || cfg.Render.Height != 300 {
		t.Errorf("expected default 400x300 canvas, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for a missing file, got error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if len(cfg.Datasets.IDs()) != 0 {
		t.Errorf("expected no datasets, got %v", cfg.Datasets.IDs())
	}
}

func loadFromString(t *testing.T, content string) *Config {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
