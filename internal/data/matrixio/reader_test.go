package matrixio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "m.csv", []byte(",jan,feb,mar\nnorth,1.5,2,3\nsouth,4,,6\n"))
	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	m := r.Matrix()
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Fatalf("unexpected shape %dx%d", m.Rows(), m.Cols())
	}
	if m.Values[0][0] != 1.5 || m.Values[1][2] != 6 {
		t.Errorf("unexpected values: %v", m.Values)
	}
	if !math.IsNaN(m.Values[1][1]) {
		t.Errorf("expected empty cell to parse as NaN, got %v", m.Values[1][1])
	}
	if m.RowLabels[0] != "north" || m.RowLabels[1] != "south" {
		t.Errorf("unexpected row labels: %v", m.RowLabels)
	}
	if m.ColLabels[0] != "jan" || m.ColLabels[2] != "mar" {
		t.Errorf("unexpected column labels: %v", m.ColLabels)
	}

	md := r.Metadata()
	if md.Format != FormatCSV || md.Rows != 2 || md.Cols != 3 {
		t.Errorf("unexpected metadata: %+v", md)
	}
}

func TestReadJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "m.json", []byte(`{"rows":["a","b"],"cols":["x","y"],"values":[[1,2],[3,4]]}`))
	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	m := r.Matrix()
	if m.Rows() != 2 || m.Cols() != 2 {
		t.Fatalf("unexpected shape %dx%d", m.Rows(), m.Cols())
	}
	if m.RowLabels[1] != "b" || m.ColLabels[0] != "x" {
		t.Errorf("unexpected labels: %v / %v", m.RowLabels, m.ColLabels)
	}
	if r.Metadata().Format != FormatJSON {
		t.Errorf("unexpected format: %v", r.Metadata().Format)
	}
}

func TestReadZstdCompressed(t *testing.T) {
	t.Parallel()

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("failed to create zstd encoder: %v", err)
	}
	defer encoder.Close()

	raw := []byte(`{"values":[[1,2],[3,4]]}`)
	path := writeFile(t, "m.json.zst", encoder.EncodeAll(raw, nil))

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if r.Matrix().Rows() != 2 {
		t.Errorf("unexpected rows: %d", r.Matrix().Rows())
	}
	if r.Metadata().Format != FormatJSON {
		t.Errorf("expected inner extension to select the format, got %v", r.Metadata().Format)
	}
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		file    string
		content []byte
	}{
		{"unsupportedFormat", "m.txt", []byte("1 2 3")},
		{"emptyJSON", "m.json", []byte(`{"values":[]}`)},
		{"badNumber", "m.csv", []byte(",a\nr,abc\n")},
		{"raggedCSV", "m.csv", []byte(",a,b\nr,1\n")},
		{"headerOnly", "m.csv", []byte(",a,b\n")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.content)
			if _, err := NewReader(path); err == nil {
				t.Fatalf("expected an error for %s", tc.name)
			}
		})
	}

	t.Run("missingFile", func(t *testing.T) {
		if _, err := NewReader(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
			t.Fatal("expected an error for a missing file")
		}
	})
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
