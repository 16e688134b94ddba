package heatmap

import (
	"errors"
	"fmt"
	"math"

	"github.com/svg-heatmap/server/pkg/colormap"
)

// ErrLegendRender is returned when the raster legend collaborator fails.
// There is no silent fallback to the vector strategy; callers wanting one
// must retry with RasterLegend disabled.
var ErrLegendRender = errors.New("legend render failed")

// gradientStops is the number of sampled color stops in the vector legend.
const gradientStops = 16

// legendStrategy renders the color-scale legend block. The two strategies
// trade output size against visual fidelity: the vector gradient is compact,
// the embedded raster reproduces bitmap-rendered gradients and tick text
// exactly.
type legendStrategy interface {
	render(r Range, cm colormap.Colormap, lay layout) ([]string, error)
}

func selectLegend(opts Options) legendStrategy {
	if opts.RasterLegend {
		return newRasterLegend()
	}
	return vectorLegend{}
}

// legendTick is one labeled position on the bar, pos in [0, 1] with 0 at
// the bottom (minimum) and 1 at the top (maximum).
type legendTick struct {
	value float64
	pos   float64
}

// legendTicks computes tick positions for the bar. Linear scaling labels
// min, midpoint and max; log scaling labels min, max and every integer
// power of ten strictly between them.
func legendTicks(r Range) []legendTick {
	if r.Min == r.Max {
		return []legendTick{{value: r.Min, pos: 0.5}}
	}

	if r.Scale == ScaleLog {
		logMin := math.Log(r.Min)
		logSpan := math.Log(r.Max) - logMin
		ticks := []legendTick{{value: r.Min, pos: 0}}
		for exp := math.Floor(math.Log10(r.Min)) + 1; ; exp++ {
			v := math.Pow(10, exp)
			if v >= r.Max {
				break
			}
			if v <= r.Min {
				continue
			}
			ticks = append(ticks, legendTick{value: v, pos: (math.Log(v) - logMin) / logSpan})
		}
		return append(ticks, legendTick{value: r.Max, pos: 1})
	}

	return []legendTick{
		{value: r.Min, pos: 0},
		{value: (r.Min + r.Max) / 2, pos: 0.5},
		{value: r.Max, pos: 1},
	}
}

// vectorLegend draws the bar as a native SVG linear gradient.
type vectorLegend struct{}

func (vectorLegend) render(r Range, cm colormap.Colormap, lay layout) ([]string, error) {
	barW := 0.25 * lay.legendW
	x0 := lay.legendX()
	h := lay.legendH()

	frags := []string{`<linearGradient id="colorbar-gradient" x1="0" y1="1" x2="0" y2="0">`}
	for i := 0; i <= gradientStops; i++ {
		t := float64(i) / gradientStops
		frags = append(frags, fmt.Sprintf(`<stop offset="%s" stop-color="%s"/>`,
			fmtNum(t, 4), hexColor(cm.At(t))))
	}
	frags = append(frags, `</linearGradient>`)
	frags = append(frags, fmt.Sprintf(`<rect x="%s" y="0" width="%s" height="%s" fill="url(#colorbar-gradient)"/>`,
		fmtNum(x0, lay.prec), fmtNum(barW, lay.prec), fmtNum(h, lay.prec)))

	frags = append(frags, fmt.Sprintf(`<g font-family="monospace" font-size="%s">`, fmtNum(lay.fontSize, lay.prec)))
	tickX := x0 + barW + 0.25*lay.fontSize
	for _, tick := range legendTicks(r) {
		y := (1 - tick.pos) * h
		// Keep baselines inside the bar's vertical extent.
		if y < lay.letterH {
			y = lay.letterH
		}
		frags = append(frags, text(tickX, y, fmtNum(tick.value, lay.prec), lay.prec))
	}
	frags = append(frags, `</g>`)

	return frags, nil
}
