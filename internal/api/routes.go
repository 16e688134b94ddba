// Package api provides HTTP handlers for the heatmap server.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/svg-heatmap/server/internal/service"
	"github.com/svg-heatmap/server/pkg/colormap"
	"github.com/svg-heatmap/server/pkg/heatmap"
)

// RouterConfig contains router configuration.
type RouterConfig struct {
	Registry    *DatasetRegistry
	CORSOrigins []string
	// Defaults seeds render options for requests that leave fields unset.
	Defaults heatmap.Options
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/api/palettes", palettesHandler(cfg.Defaults))
	r.Get("/api/datasets", datasetsHandler(cfg.Registry))
	r.Post("/api/render", renderHandler(cfg.Defaults))

	// Dataset-scoped routes: /d/{dataset}/...
	r.Route("/d/{dataset}", func(r chi.Router) {
		r.Use(datasetMiddleware(cfg.Registry))
		r.Get("/heatmap.svg", datasetHeatmapHandler)
		r.Get("/api/metadata", datasetMetadataHandler)
	})

	return r
}

// Context key for dataset service
type ctxKey string

const datasetServiceKey ctxKey = "datasetService"

// datasetMiddleware resolves the dataset from the URL and injects its
// service into the request context.
func datasetMiddleware(registry *DatasetRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			datasetID := chi.URLParam(r, "dataset")
			svc := registry.Get(datasetID)
			if svc == nil {
				http.Error(w, "dataset not found: "+datasetID, http.StatusNotFound)
				return
			}
			ctx := context.WithValue(r.Context(), datasetServiceKey, svc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getDatasetService(r *http.Request) *service.HeatmapService {
	if svc, ok := r.Context().Value(datasetServiceKey).(*service.HeatmapService); ok {
		return svc
	}
	return nil
}

func palettesHandler(defaults heatmap.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"palettes": colormap.Names(),
			"default":  defaults.Palette,
		})
	}
}

// datasetsHandler returns the list of available datasets.
func datasetsHandler(registry *DatasetRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"default":  registry.DefaultDatasetID(),
			"datasets": registry.Datasets(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// renderRequest is the POST /api/render body. Pointer fields distinguish
// "unset, use the server default" from an explicit zero value. The option
// surface is closed: unknown fields are rejected, not ignored.
type renderRequest struct {
	Data         [][]float64 `json:"data"`
	RowLabels    []string    `json:"row_labels"`
	ColLabels    []string    `json:"col_labels"`
	Palette      *string     `json:"palette"`
	LogScale     *bool       `json:"log_scale"`
	Legend       *bool       `json:"legend"`
	RasterLegend *bool       `json:"raster_legend"`
	Width        *int        `json:"width"`
	Height       *int        `json:"height"`
}

func renderHandler(defaults heatmap.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()

		var req renderRequest
		if err := decoder.Decode(&req); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		opts := defaults
		if req.Palette != nil {
			opts.Palette = *req.Palette
		}
		if req.LogScale != nil {
			opts.LogScale = *req.LogScale
		}
		if req.Legend != nil {
			opts.ShowLegend = *req.Legend
		}
		if req.RasterLegend != nil {
			opts.RasterLegend = *req.RasterLegend
		}
		if req.Width != nil {
			opts.Width = *req.Width
		}
		if req.Height != nil {
			opts.Height = *req.Height
		}
		if opts.Width <= 0 || opts.Height <= 0 {
			http.Error(w, "width and height must be positive", http.StatusBadRequest)
			return
		}

		m := heatmap.Matrix{
			Values:    req.Data,
			RowLabels: req.RowLabels,
			ColLabels: req.ColLabels,
		}
		svg, err := heatmap.Render(m, opts)
		if err != nil {
			http.Error(w, err.Error(), statusForRenderError(err))
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte(svg))
	}
}

// datasetQueryKeys is the closed set of recognized query parameters for the
// dataset heatmap endpoint.
var datasetQueryKeys = map[string]bool{
	"palette":       true,
	"log":           true,
	"legend":        true,
	"raster_legend": true,
	"width":         true,
	"height":        true,
}

func datasetHeatmapHandler(w http.ResponseWriter, r *http.Request) {
	svc := getDatasetService(r)
	if svc == nil {
		http.Error(w, "dataset service not found", http.StatusInternalServerError)
		return
	}

	opts, err := datasetOptions(svc.Defaults(), r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := svc.RenderDocument(opts)
	if err != nil {
		http.Error(w, err.Error(), statusForRenderError(err))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

func datasetOptions(defaults heatmap.Options, query url.Values) (heatmap.Options, error) {
	opts := defaults
	for key := range query {
		if !datasetQueryKeys[key] {
			return opts, errors.New("unrecognized query parameter: " + key)
		}
	}

	if v := query.Get("palette"); v != "" {
		opts.Palette = v
	}
	var err error
	if v := query.Get("log"); v != "" {
		if opts.LogScale, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New("invalid log parameter: " + v)
		}
	}
	if v := query.Get("legend"); v != "" {
		if opts.ShowLegend, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New("invalid legend parameter: " + v)
		}
	}
	if v := query.Get("raster_legend"); v != "" {
		if opts.RasterLegend, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New("invalid raster_legend parameter: " + v)
		}
	}
	if v := query.Get("width"); v != "" {
		if opts.Width, err = strconv.Atoi(v); err != nil {
			return opts, errors.New("invalid width parameter: " + v)
		}
	}
	if v := query.Get("height"); v != "" {
		if opts.Height, err = strconv.Atoi(v); err != nil {
			return opts, errors.New("invalid height parameter: " + v)
		}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return opts, errors.New("width and height must be positive")
	}
	return opts, nil
}

func datasetMetadataHandler(w http.ResponseWriter, r *http.Request) {
	svc := getDatasetService(r)
	if svc == nil {
		http.Error(w, "dataset service not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(svc.Metadata())
}

func statusForRenderError(err error) int {
	switch {
	case errors.Is(err, heatmap.ErrInvalidMatrix), errors.Is(err, colormap.ErrUnknownPalette):
		return http.StatusBadRequest
	case errors.Is(err, heatmap.ErrLegendRender):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
