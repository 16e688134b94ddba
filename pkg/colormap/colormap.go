// Package colormap provides the continuous color schemes used for heatmap
// rendering, addressable by name through a fixed registry.
package colormap

import (
	"image/color"
)

// A Colormap maps a normalized value in [0, 1] to a color. Inputs outside
// the interval are clamped to the nearest endpoint.
type Colormap interface {
	At(t float64) color.Color
}

// Gradient is a continuous colormap that linearly interpolates between a
// sequence of evenly spaced sRGB anchor colors.
type Gradient struct {
	anchors []color.RGBA
}

// At returns the interpolated color at position t, clamping t to [0, 1].
func (g Gradient) At(t float64) color.Color {
	if t <= 0 {
		return g.anchors[0]
	}
	if t >= 1 {
		return g.anchors[len(g.anchors)-1]
	}

	pos := t * float64(len(g.anchors)-1)
	lower := int(pos)
	upper := lower + 1
	if upper >= len(g.anchors) {
		upper = len(g.anchors) - 1
	}

	return lerp(g.anchors[lower], g.anchors[upper], pos-float64(lower))
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R) + t*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + t*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + t*(float64(b.B)-float64(a.B))),
		A: 255,
	}
}

// Viridis colormap (matplotlib viridis)
var Viridis = Gradient{
	anchors: []color.RGBA{
		{68, 1, 84, 255},
		{72, 35, 116, 255},
		{64, 67, 135, 255},
		{52, 94, 141, 255},
		{41, 120, 142, 255},
		{32, 144, 140, 255},
		{34, 167, 132, 255},
		{68, 190, 112, 255},
		{121, 209, 81, 255},
		{189, 222, 38, 255},
		{253, 231, 37, 255},
	},
}

// Plasma colormap
var Plasma = Gradient{
	anchors: []color.RGBA{
		{13, 8, 135, 255},
		{75, 3, 161, 255},
		{125, 3, 168, 255},
		{168, 34, 150, 255},
		{203, 70, 121, 255},
		{229, 107, 93, 255},
		{248, 148, 65, 255},
		{253, 195, 40, 255},
		{240, 249, 33, 255},
	},
}

// Inferno colormap
var Inferno = Gradient{
	anchors: []color.RGBA{
		{0, 0, 4, 255},
		{40, 11, 84, 255},
		{101, 21, 110, 255},
		{159, 42, 99, 255},
		{212, 72, 66, 255},
		{245, 125, 21, 255},
		{250, 193, 39, 255},
		{252, 255, 164, 255},
	},
}

// Magma colormap
var Magma = Gradient{
	anchors: []color.RGBA{
		{0, 0, 4, 255},
		{28, 16, 68, 255},
		{79, 18, 123, 255},
		{129, 37, 129, 255},
		{181, 54, 122, 255},
		{229, 80, 100, 255},
		{251, 135, 97, 255},
		{254, 194, 135, 255},
		{252, 253, 191, 255},
	},
}

// Cividis colormap
var Cividis = Gradient{
	anchors: []color.RGBA{
		{0, 34, 78, 255},
		{18, 53, 112, 255},
		{59, 73, 108, 255},
		{87, 93, 109, 255},
		{112, 113, 115, 255},
		{138, 134, 120, 255},
		{166, 157, 117, 255},
		{196, 181, 108, 255},
		{254, 232, 56, 255},
	},
}

// Gray colormap (black to white)
var Gray = Gradient{
	anchors: []color.RGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
	},
}
