package export

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zhuxining/skills-dev/internal/indicator"
)

func TestResolveOutputPathNested(t *testing.T) {
	base := t.TempDir()
	path, err := ResolveOutputPath(base, "stocks/700.hk.csv")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != filepath.Join(base, "stocks", "700.hk.csv") {
		t.Fatalf("unexpected path %s", path)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("parent directory not created: %v", err)
	}
}

func TestResolveOutputPathRejectsEscape(t *testing.T) {
	if _, err := ResolveOutputPath(t.TempDir(), "../evil.csv"); err == nil {
		t.Fatalf("expected error for path escape")
	}
	if _, err := ResolveOutputPath(t.TempDir(), "/abs/evil.csv"); err == nil {
		t.Fatalf("expected error for absolute path")
	}
}

func TestWriteCSV(t *testing.T) {
	idx := []time.Time{
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	f := indicator.NewFrame("700.HK", idx)
	if err := f.SetColumn("close", []float64{100.5, 101}); err != nil {
		t.Fatalf("set close: %v", err)
	}
	if err := f.SetColumn("ema_5", []float64{math.NaN(), 100.75}); err != nil {
		t.Fatalf("set ema: %v", err)
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, f); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "datetime,symbol,close,ema_5" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "2024-01-02T00:00:00Z,700.HK,100.5," {
		t.Fatalf("NaN not written as empty cell: %q", lines[1])
	}
	if lines[2] != "2024-01-03T00:00:00Z,700.HK,101,100.75" {
		t.Fatalf("unexpected row %q", lines[2])
	}
}

func TestWriteFrame(t *testing.T) {
	idx := []time.Time{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	f := indicator.NewFrame("AAPL.US", idx)
	if err := f.SetColumn("close", []float64{187.15}); err != nil {
		t.Fatalf("set close: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteFrame(path, f); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(b), "AAPL.US,187.15") {
		t.Fatalf("unexpected file contents %q", b)
	}
}
