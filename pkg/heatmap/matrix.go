package heatmap

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidMatrix is returned for empty or malformed matrices, and for
// matrices with no values eligible for color mapping.
var ErrInvalidMatrix = errors.New("invalid matrix")

// Matrix is a rectangular 2-D dataset with optional row and column labels.
// When labels are nil, positional indices are used.
type Matrix struct {
	Values    [][]float64
	RowLabels []string
	ColLabels []string
}

// NewMatrix wraps a 2-D slice of values without labels.
func NewMatrix(values [][]float64) Matrix {
	return Matrix{Values: values}
}

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m.Values)
}

// Cols returns the number of columns, taken from the first row.
func (m Matrix) Cols() int {
	if len(m.Values) == 0 {
		return 0
	}
	return len(m.Values[0])
}

// validate checks shape invariants: at least one row and one column, every
// row the same length, and label counts matching the shape when present.
func (m Matrix) validate() error {
	if m.Rows() == 0 || m.Cols() == 0 {
		return fmt.Errorf("%w: shape %dx%d", ErrInvalidMatrix, m.Rows(), m.Cols())
	}
	cols := m.Cols()
	for i, row := range m.Values {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidMatrix, i, len(row), cols)
		}
	}
	if m.RowLabels != nil && len(m.RowLabels) != m.Rows() {
		return fmt.Errorf("%w: %d row labels for %d rows", ErrInvalidMatrix, len(m.RowLabels), m.Rows())
	}
	if m.ColLabels != nil && len(m.ColLabels) != cols {
		return fmt.Errorf("%w: %d column labels for %d columns", ErrInvalidMatrix, len(m.ColLabels), cols)
	}
	return nil
}

// rowLabels returns the row labels, synthesizing positional indices when the
// matrix carries none.
func (m Matrix) rowLabels() []string {
	if m.RowLabels != nil {
		return m.RowLabels
	}
	return indexLabels(m.Rows())
}

// colLabels returns the column labels, synthesizing positional indices when
// the matrix carries none.
func (m Matrix) colLabels() []string {
	if m.ColLabels != nil {
		return m.ColLabels
	}
	return indexLabels(m.Cols())
}

func indexLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}
