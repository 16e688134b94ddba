package heatmap

import (
	"fmt"
	"math"
)

// Scale selects how raw values are mapped onto the colormap domain.
type Scale int

const (
	// ScaleLinear maps values with (v - min) / (max - min).
	ScaleLinear Scale = iota
	// ScaleLog maps values with (ln v - ln min) / (ln max - ln min).
	// Values <= 0 are treated as missing.
	ScaleLog
)

// Range is the span of eligible values a normalization was computed over.
type Range struct {
	Min   float64
	Max   float64
	Scale Scale
}

// Normalized holds per-cell values mapped to [0, 1] and a mask of cells that
// were excluded from mapping (non-finite, or non-positive under ScaleLog).
type Normalized struct {
	Values  [][]float64
	Missing [][]bool
	Range   Range
}

// Normalize computes the normalization range over the matrix's eligible
// values and maps every eligible cell into [0, 1]. A constant matrix maps
// every eligible cell to 0.5. Returns ErrInvalidMatrix when the matrix is
// malformed or no value is eligible.
func Normalize(m Matrix, scale Scale) (*Normalized, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	min, max := math.Inf(1), math.Inf(-1)
	eligible := 0
	for _, row := range m.Values {
		for _, v := range row {
			if !eligibleValue(v, scale) {
				continue
			}
			eligible++
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if eligible == 0 {
		return nil, fmt.Errorf("%w: no values eligible for %s scaling", ErrInvalidMatrix, scaleName(scale))
	}

	span := max - min
	logMin := 0.0
	logSpan := 0.0
	if scale == ScaleLog {
		logMin = math.Log(min)
		logSpan = math.Log(max) - logMin
	}

	values := make([][]float64, m.Rows())
	missing := make([][]bool, m.Rows())
	for r, row := range m.Values {
		values[r] = make([]float64, len(row))
		missing[r] = make([]bool, len(row))
		for c, v := range row {
			if !eligibleValue(v, scale) {
				missing[r][c] = true
				continue
			}
			switch {
			case span == 0:
				// Constant matrix: pin to the midpoint instead of
				// dividing by zero.
				values[r][c] = 0.5
			case scale == ScaleLog:
				values[r][c] = (math.Log(v) - logMin) / logSpan
			default:
				values[r][c] = (v - min) / span
			}
		}
	}

	return &Normalized{
		Values:  values,
		Missing: missing,
		Range:   Range{Min: min, Max: max, Scale: scale},
	}, nil
}

func eligibleValue(v float64, scale Scale) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if scale == ScaleLog && v <= 0 {
		return false
	}
	return true
}

func scaleName(s Scale) string {
	if s == ScaleLog {
		return "logarithmic"
	}
	return "linear"
}
