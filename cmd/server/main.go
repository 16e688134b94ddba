// Package main is the entry point for the heatmap server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/svg-heatmap/server/internal/api"
	"github.com/svg-heatmap/server/internal/cache"
	"github.com/svg-heatmap/server/internal/config"
	"github.com/svg-heatmap/server/internal/data/matrixio"
	"github.com/svg-heatmap/server/internal/service"
	"github.com/svg-heatmap/server/pkg/heatmap"
)

func main() {
	configPath := flag.String("config", "config/server.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting heatmap server on port %d", cfg.Server.Port)

	cacheManager, err := cache.NewManager(cache.Config{
		DocumentCacheSizeMB: cfg.Cache.DocumentSizeMB,
		DocumentTTL:         time.Duration(cfg.Cache.DocumentTTLMinutes) * time.Minute,
		MatrixCacheSize:     cfg.Cache.MatrixCacheSize,
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer cacheManager.Close()

	renderDefaults := heatmap.DefaultOptions()
	renderDefaults.Palette = cfg.Render.DefaultPalette
	renderDefaults.Width = cfg.Render.Width
	renderDefaults.Height = cfg.Render.Height

	datasetIDs := cfg.Datasets.IDs()
	registry := api.NewDatasetRegistry(cfg.Datasets.DefaultID(), datasetIDs)

	log.Printf("Initializing %d dataset(s)", len(datasetIDs))

	for _, datasetID := range datasetIDs {
		ds := cfg.Datasets.Datasets[datasetID]

		reader, err := matrixio.NewReader(ds.Path)
		if err != nil {
			log.Fatalf("Failed to load dataset %q: %v", datasetID, err)
		}
		md := reader.Metadata()
		log.Printf("  [%s] Loaded %dx%d matrix from: %s", datasetID, md.Rows, md.Cols, ds.Path)

		svc := service.NewHeatmapService(service.HeatmapServiceConfig{
			DatasetID: datasetID,
			Reader:    reader,
			Cache:     cacheManager,
			Defaults:  renderDefaults,
		})
		registry.Register(datasetID, ds.Name, svc)
	}

	router := api.NewRouter(api.RouterConfig{
		Registry:    registry,
		CORSOrigins: cfg.Server.CORSOrigins,
		Defaults:    renderDefaults,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost:%d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
