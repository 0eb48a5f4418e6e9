// Package export resolves output paths and writes indicator frames as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zhuxining/skills-dev/internal/indicator"
)

// DefaultOutputDir is where tool output lands unless configured otherwise.
const DefaultOutputDir = "output"

// ResolveOutputPath forces name under baseDir, creating parent directories
// as needed. name may contain subdirectories ("stocks/700.hk.csv") but must
// not escape the base.
func ResolveOutputPath(baseDir, name string) (string, error) {
	if baseDir == "" {
		baseDir = DefaultOutputDir
	}
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output name %q escapes the output directory", name)
	}

	path := filepath.Join(baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return path, nil
}

// WriteCSV writes the frame as CSV: a datetime/symbol prefix followed by
// every column in frame order. Warm-up NaN entries become empty cells.
func WriteCSV(w io.Writer, f *indicator.Frame) error {
	cw := csv.NewWriter(w)

	names := f.ColumnNames()
	header := append([]string{"datetime", "symbol"}, names...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	cols := make([][]float64, len(names))
	for i, name := range names {
		vals, err := f.Column(name)
		if err != nil {
			return err
		}
		cols[i] = vals
	}

	index := f.Index()
	record := make([]string, len(header))
	for row := 0; row < f.Len(); row++ {
		record[0] = index[row].UTC().Format(time.RFC3339)
		record[1] = f.Symbol
		for i, vals := range cols {
			record[i+2] = formatCell(vals[row])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFrame writes the frame to a CSV file at path.
func WriteFrame(path string, f *indicator.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteCSV(file, f); err != nil {
		return err
	}
	return file.Close()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
