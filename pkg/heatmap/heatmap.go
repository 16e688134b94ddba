// Package heatmap renders a 2-D numeric matrix as a self-contained SVG
// document: one colored rectangle per cell, row and column tick labels, and
// an optional color-scale legend.
//
// Rendering is a pure function: identical inputs produce byte-identical
// documents. Cells are emitted row-major with row 0 at the top of the
// canvas, the conventional matrix-display orientation.
package heatmap

import (
	"github.com/svg-heatmap/server/pkg/colormap"
)

// Options enumerates the recognized render settings. The option surface is
// closed: anything a caller wants to control is a named field here.
type Options struct {
	// Palette names a colormap from the colormap registry.
	Palette string
	// LogScale selects logarithmic normalization.
	LogScale bool
	// ShowLegend toggles the color-scale legend.
	ShowLegend bool
	// RasterLegend embeds the legend as a base64 PNG instead of a native
	// vector gradient.
	RasterLegend bool
	// Width and Height are the overall canvas size in pixels.
	Width  int
	Height int
	// Precision is the number of decimals used for coordinates.
	Precision int
}

// DefaultOptions returns the default render settings: viridis palette,
// linear scaling, vector legend shown, 400x300 canvas, 2-decimal precision.
func DefaultOptions() Options {
	return Options{
		Palette:    "viridis",
		ShowLegend: true,
		Width:      400,
		Height:     300,
		Precision:  2,
	}
}

func applyDefaults(opts *Options) {
	defaults := DefaultOptions()
	if opts.Palette == "" {
		opts.Palette = defaults.Palette
	}
	if opts.Width == 0 {
		opts.Width = defaults.Width
	}
	if opts.Height == 0 {
		opts.Height = defaults.Height
	}
	if opts.Precision <= 0 {
		opts.Precision = defaults.Precision
	}
}

// Render draws the matrix as an SVG document string.
//
// Errors: ErrInvalidMatrix for malformed matrices or matrices with no
// eligible values, colormap.ErrUnknownPalette for unrecognized palette
// names, ErrLegendRender when the raster legend collaborator fails.
func Render(m Matrix, opts Options) (string, error) {
	applyDefaults(&opts)

	cm, err := colormap.Get(opts.Palette)
	if err != nil {
		return "", err
	}

	scale := ScaleLinear
	if opts.LogScale {
		scale = ScaleLog
	}
	norm, err := Normalize(m, scale)
	if err != nil {
		return "", err
	}

	lay, err := newLayout(m, opts)
	if err != nil {
		return "", err
	}

	fragments := renderGrid(norm, cm, lay)
	fragments = append(fragments, renderColTicks(m, lay)...)
	fragments = append(fragments, renderRowTicks(m, lay)...)

	if opts.ShowLegend {
		legend, err := selectLegend(opts).render(norm.Range, cm, lay)
		if err != nil {
			return "", err
		}
		fragments = append(fragments, legend...)
	}

	return composeDocument(opts.Width, opts.Height, fragments), nil
}
