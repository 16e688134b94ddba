package heatmap

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeLinearExtremes(t *testing.T) {
	t.Parallel()

	norm, err := Normalize(NewMatrix([][]float64{{2, 8}, {5, 4}}), ScaleLinear)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if norm.Values[0][0] != 0 {
		t.Errorf("expected min cell to normalize to 0, got %v", norm.Values[0][0])
	}
	if norm.Values[0][1] != 1 {
		t.Errorf("expected max cell to normalize to 1, got %v", norm.Values[0][1])
	}
	if norm.Range.Min != 2 || norm.Range.Max != 8 {
		t.Errorf("unexpected range: %+v", norm.Range)
	}
	for r := range norm.Values {
		for c, v := range norm.Values[r] {
			if v < 0 || v > 1 {
				t.Errorf("cell %d,%d normalized outside [0,1]: %v", r, c, v)
			}
			if norm.Missing[r][c] {
				t.Errorf("cell %d,%d unexpectedly missing", r, c)
			}
		}
	}
}

func TestNormalizeNonFiniteMissing(t *testing.T) {
	t.Parallel()

	norm, err := Normalize(NewMatrix([][]float64{{1, math.NaN()}, {math.Inf(1), 3}}), ScaleLinear)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !norm.Missing[0][1] || !norm.Missing[1][0] {
		t.Errorf("expected NaN and Inf cells to be missing: %v", norm.Missing)
	}
	if norm.Missing[0][0] || norm.Missing[1][1] {
		t.Errorf("finite cells marked missing: %v", norm.Missing)
	}
	if norm.Range.Min != 1 || norm.Range.Max != 3 {
		t.Errorf("range should ignore non-finite values, got %+v", norm.Range)
	}
}

func TestNormalizeLogRejectsNonPositive(t *testing.T) {
	t.Parallel()

	norm, err := Normalize(NewMatrix([][]float64{{1, 2}, {3, -1}}), ScaleLog)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !norm.Missing[1][1] {
		t.Errorf("expected -1 to be missing under log scaling")
	}
	if norm.Missing[0][0] || norm.Missing[0][1] || norm.Missing[1][0] {
		t.Errorf("positive cells marked missing: %v", norm.Missing)
	}
}

func TestNormalizeLogMonotonic(t *testing.T) {
	t.Parallel()

	norm, err := Normalize(NewMatrix([][]float64{{1, 2}, {3, 4}}), ScaleLog)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	flat := []float64{norm.Values[0][0], norm.Values[0][1], norm.Values[1][0], norm.Values[1][1]}
	for i := 1; i < len(flat); i++ {
		if flat[i] <= flat[i-1] {
			t.Errorf("expected strictly increasing normalized values, got %v", flat)
		}
	}
	if flat[0] != 0 || flat[len(flat)-1] != 1 {
		t.Errorf("expected endpoints at 0 and 1, got %v", flat)
	}
}

func TestNormalizeConstantMatrix(t *testing.T) {
	t.Parallel()

	norm, err := Normalize(NewMatrix([][]float64{{5, 5}, {5, 5}}), ScaleLinear)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	for r := range norm.Values {
		for c, v := range norm.Values[r] {
			if v != 0.5 {
				t.Errorf("cell %d,%d: expected midpoint 0.5, got %v", r, c, v)
			}
		}
	}
}

func TestNormalizeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		matrix Matrix
		scale  Scale
	}{
		{"emptyMatrix", NewMatrix(nil), ScaleLinear},
		{"emptyRows", NewMatrix([][]float64{{}, {}}), ScaleLinear},
		{"ragged", NewMatrix([][]float64{{1, 2}, {3}}), ScaleLinear},
		{"allNaN", NewMatrix([][]float64{{math.NaN(), math.NaN()}}), ScaleLinear},
		{"allNonPositiveLog", NewMatrix([][]float64{{-1, 0}}), ScaleLog},
		{"labelMismatch", Matrix{Values: [][]float64{{1, 2}}, RowLabels: []string{"a", "b"}}, ScaleLinear},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.matrix, tc.scale)
			if !errors.Is(err, ErrInvalidMatrix) {
				t.Fatalf("expected ErrInvalidMatrix, got %v", err)
			}
		})
	}
}
