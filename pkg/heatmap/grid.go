package heatmap

import (
	"fmt"
	"math"

	"github.com/svg-heatmap/server/pkg/colormap"
)

// missingFill is the fill for cells excluded from color mapping. "none"
// leaves the document background visible through the cell.
const missingFill = "none"

// layout holds the derived geometry for one render call. Font metrics follow
// a monospace model scaled from the canvas size, and the left/bottom margins
// are driven by the widest tick label so labels never collide with the grid.
type layout struct {
	width, height float64
	fontSize      float64
	letterW       float64
	letterH       float64
	left          float64 // margin reserved for row tick labels
	bottom        float64 // margin reserved for column tick labels
	legendW       float64 // legend column width, 0 when the legend is hidden
	legendGap     float64 // gap between the grid and the legend column
	cellW, cellH  float64
	prec          int
}

func newLayout(m Matrix, opts Options) (layout, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return layout{}, fmt.Errorf("canvas dimensions must be positive, got %dx%d", opts.Width, opts.Height)
	}

	maxDim := float64(opts.Width)
	if h := float64(opts.Height); h > maxDim {
		maxDim = h
	}
	fontSize := 4 * math.Round(math.Log10(maxDim))
	if fontSize < 4 {
		fontSize = 4
	}

	lay := layout{
		width:    float64(opts.Width),
		height:   float64(opts.Height),
		fontSize: fontSize,
		letterW:  0.61 * fontSize,
		letterH:  math.Floor(fontSize * 1.1875),
		prec:     opts.Precision,
	}

	maxRowLabel := 0
	for _, label := range m.rowLabels() {
		if len(label) > maxRowLabel {
			maxRowLabel = len(label)
		}
	}
	lay.left = float64(maxRowLabel)*lay.letterW + fontSize
	lay.bottom = lay.letterH + fontSize

	if opts.ShowLegend {
		lay.legendW = 15 * math.Round(math.Log10(maxDim))
		lay.legendGap = 0.5 * fontSize
	}

	plotW := lay.width - lay.left - lay.legendW - lay.legendGap
	plotH := lay.height - lay.bottom
	if plotW <= 0 || plotH <= 0 {
		return layout{}, fmt.Errorf("canvas %dx%d too small for labels and legend", opts.Width, opts.Height)
	}
	lay.cellW = plotW / float64(m.Cols())
	lay.cellH = plotH / float64(m.Rows())

	return lay, nil
}

// legendX returns the x origin of the legend column.
func (l layout) legendX() float64 {
	return l.width - l.legendW
}

// legendH returns the legend bar height (full canvas height minus the
// bottom label margin, matching the grid's vertical extent).
func (l layout) legendH() float64 {
	return l.height - l.bottom
}

// renderGrid emits one rectangle per cell in row-major order, row 0 at the
// top of the canvas. Eligible cells are filled through the colormap; missing
// cells keep the background fill.
func renderGrid(norm *Normalized, cm colormap.Colormap, lay layout) []string {
	rows := len(norm.Values)
	cols := len(norm.Values[0])
	frags := make([]string, 0, rows*cols)
	for r := 0; r < rows; r++ {
		y := float64(r) * lay.cellH
		for c := 0; c < cols; c++ {
			fill := missingFill
			if !norm.Missing[r][c] {
				fill = hexColor(cm.At(norm.Values[r][c]))
			}
			x := lay.left + float64(c)*lay.cellW
			frags = append(frags, rect(x, y, lay.cellW, lay.cellH, fill, lay.prec))
		}
	}
	return frags
}

// renderColTicks emits the column labels centered under each column.
func renderColTicks(m Matrix, lay layout) []string {
	frags := []string{fmt.Sprintf(`<g font-family="monospace" font-size="%s" text-anchor="middle">`, fmtNum(lay.fontSize, lay.prec))}
	y := lay.height - 0.5*lay.fontSize
	for c, label := range m.colLabels() {
		x := lay.left + (float64(c)+0.5)*lay.cellW
		frags = append(frags, text(x, y, label, lay.prec))
	}
	frags = append(frags, "</g>")
	return frags
}

// renderRowTicks emits the row labels right-aligned against the grid's left
// edge, vertically centered on each row.
func renderRowTicks(m Matrix, lay layout) []string {
	frags := []string{fmt.Sprintf(`<g font-family="monospace" font-size="%s" text-anchor="end">`, fmtNum(lay.fontSize, lay.prec))}
	x := lay.left - 0.5*lay.fontSize
	for r, label := range m.rowLabels() {
		y := (float64(r)+0.5)*lay.cellH + 0.5*lay.letterH
		frags = append(frags, text(x, y, label, lay.prec))
	}
	frags = append(frags, "</g>")
	return frags
}
