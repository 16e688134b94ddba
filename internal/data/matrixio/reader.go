// Package matrixio loads labeled numeric matrices from dataset files.
//
// Two formats are supported, selected by file extension: JSON
// ({"rows": [...], "cols": [...], "values": [[...]]}) and CSV (first row
// holds column labels, first column holds row labels, empty cells parse as
// NaN). Files with a trailing ".zst" extension are zstd-decompressed before
// parsing.
package matrixio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/svg-heatmap/server/pkg/heatmap"
)

// Format identifies a dataset file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Metadata describes a loaded dataset.
type Metadata struct {
	Path   string `json:"path"`
	Format Format `json:"format"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
}

// Reader holds one dataset's matrix, parsed eagerly at construction.
type Reader struct {
	matrix   heatmap.Matrix
	metadata *Metadata
}

// NewReader loads and parses the matrix file at path.
func NewReader(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read matrix file: %w", err)
	}

	name := path
	if strings.HasSuffix(name, ".zst") {
		data, err = decompress(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		name = strings.TrimSuffix(name, ".zst")
	}

	var (
		matrix heatmap.Matrix
		format Format
	)
	switch ext := filepath.Ext(name); ext {
	case ".csv":
		format = FormatCSV
		matrix, err = parseCSV(data)
	case ".json":
		format = FormatJSON
		matrix, err = parseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported matrix format %q (expected .csv or .json)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &Reader{
		matrix: matrix,
		metadata: &Metadata{
			Path:   path,
			Format: format,
			Rows:   matrix.Rows(),
			Cols:   matrix.Cols(),
		},
	}, nil
}

// Matrix returns the loaded matrix.
func (r *Reader) Matrix() heatmap.Matrix {
	return r.matrix
}

// Metadata returns dataset metadata.
func (r *Reader) Metadata() *Metadata {
	return r.metadata
}

func decompress(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress failed: %w", err)
	}
	return out, nil
}

type jsonMatrix struct {
	Rows   []string    `json:"rows"`
	Cols   []string    `json:"cols"`
	Values [][]float64 `json:"values"`
}

func parseJSON(data []byte) (heatmap.Matrix, error) {
	var jm jsonMatrix
	if err := json.Unmarshal(data, &jm); err != nil {
		return heatmap.Matrix{}, err
	}
	if len(jm.Values) == 0 {
		return heatmap.Matrix{}, fmt.Errorf("matrix has no values")
	}
	return heatmap.Matrix{
		Values:    jm.Values,
		RowLabels: jm.Rows,
		ColLabels: jm.Cols,
	}, nil
}

func parseCSV(data []byte) (heatmap.Matrix, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return heatmap.Matrix{}, err
	}
	if len(records) < 2 || len(records[0]) < 2 {
		return heatmap.Matrix{}, fmt.Errorf("csv matrix needs a header row, a label column and at least one cell")
	}

	// Header: corner cell, then column labels.
	colLabels := records[0][1:]

	rowLabels := make([]string, 0, len(records)-1)
	values := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(records[0]) {
			return heatmap.Matrix{}, fmt.Errorf("row %d has %d fields, expected %d", i+1, len(record), len(records[0]))
		}
		rowLabels = append(rowLabels, record[0])

		row := make([]float64, 0, len(record)-1)
		for j, field := range record[1:] {
			field = strings.TrimSpace(field)
			if field == "" {
				row = append(row, math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return heatmap.Matrix{}, fmt.Errorf("invalid value at row %d col %d: %q", i+1, j+1, field)
			}
			row = append(row, v)
		}
		values = append(values, row)
	}

	return heatmap.Matrix{
		Values:    values,
		RowLabels: rowLabels,
		ColLabels: colLabels,
	}, nil
}
