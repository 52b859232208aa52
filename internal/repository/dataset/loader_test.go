package dataset

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/globearc/internal/domain"
	"github.com/kailas-cloud/globearc/internal/domain/geo"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func f64(v float64) *float64 { return &v }

func TestNew_InfersFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"data/g_slim.json", FormatJSON},
		{"edges.PARQUET", FormatParquet},
	}
	for _, tc := range tests {
		l, err := New(tc.path, "", nil)
		if err != nil {
			t.Fatalf("New(%q): %v", tc.path, err)
		}
		if l.format != tc.want {
			t.Errorf("New(%q) format = %q, want %q", tc.path, l.format, tc.want)
		}
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	_, err := New("edges.csv", "", nil)
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestNew_EmptyPath(t *testing.T) {
	if _, err := New("", FormatJSON, nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "g_slim.json", `[
		{"loc_a_latitude":0,"loc_a_longitude":0,"loc_b_latitude":0,"loc_b_longitude":90,"edge_weight":0.5},
		{"loc_a_latitude":51.5,"loc_a_longitude":-0.12,"loc_b_latitude":40.7,"loc_b_longitude":-74,"edge_weight":1}
	]`)
	l, err := New(path, "", zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Edges) != 2 || len(res.Skipped) != 0 {
		t.Fatalf("want 2 edges / 0 skipped, got %d / %d", len(res.Edges), len(res.Skipped))
	}
	first := res.Edges[0]
	if first.A != (geo.GeoPoint{}) || first.B != (geo.GeoPoint{Lat: 0, Lng: 90}) || first.Weight != 0.5 {
		t.Errorf("unexpected first edge: %+v", first)
	}
	if len(res.Hash) != 64 {
		t.Errorf("want hex sha256 hash, got %q", res.Hash)
	}
}

func TestLoad_SkipsMalformedRecords(t *testing.T) {
	path := writeFile(t, "edges.json", `[
		{"loc_a_latitude":0,"loc_a_longitude":0,"loc_b_latitude":0,"loc_b_longitude":90,"edge_weight":0.5},
		{"loc_a_latitude":0,"loc_a_longitude":0,"loc_b_latitude":0,"edge_weight":0.5},
		{"loc_a_latitude":"north","loc_a_longitude":0,"loc_b_latitude":0,"loc_b_longitude":1,"edge_weight":0.1},
		42,
		null,
		{"loc_a_latitude":10,"loc_a_longitude":10,"loc_b_latitude":20,"loc_b_longitude":20,"edge_weight":0.9}
	]`)

	core, logs := observer.New(zapcore.WarnLevel)
	l, err := New(path, FormatJSON, zap.New(core))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Edges) != 2 {
		t.Fatalf("want 2 edges, got %d", len(res.Edges))
	}
	wantSkipped := []int{1, 2, 3, 4}
	if len(res.Skipped) != len(wantSkipped) {
		t.Fatalf("want %d skipped, got %+v", len(wantSkipped), res.Skipped)
	}
	for i, idx := range wantSkipped {
		if res.Skipped[i].Index != idx {
			t.Errorf("skipped[%d].Index = %d, want %d", i, res.Skipped[i].Index, idx)
		}
		if res.Skipped[i].Reason == "" {
			t.Errorf("skipped[%d] has no reason", i)
		}
	}
	if res.Skipped[0].Reason != "missing field loc_b_longitude" {
		t.Errorf("unexpected reason: %q", res.Skipped[0].Reason)
	}

	if got := logs.FilterMessage("Skipping malformed record").Len(); got != len(wantSkipped) {
		t.Errorf("want %d warn logs, got %d", len(wantSkipped), got)
	}
}

func TestLoad_KeepsOutOfRangeCoordinates(t *testing.T) {
	path := writeFile(t, "edges.json",
		`[{"loc_a_latitude":95,"loc_a_longitude":200,"loc_b_latitude":0,"loc_b_longitude":0,"edge_weight":0.3}]`)
	l, _ := New(path, "", nil)

	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Edges) != 1 || len(res.Skipped) != 0 {
		t.Fatalf("out-of-range record should be kept, got %d edges / %d skipped", len(res.Edges), len(res.Skipped))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	l, _ := New(filepath.Join(t.TempDir(), "absent.json"), "", nil)
	_, err := l.Load(context.Background())
	if !errors.Is(err, domain.ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	for name, content := range map[string]string{
		"object":    `{"loc_a_latitude":0}`,
		"truncated": `[{"loc_a_latitude":0,`,
		"empty":     ``,
		"null":      `null`,
		"string":    `"x"`,
	} {
		t.Run(name, func(t *testing.T) {
			l, _ := New(writeFile(t, "bad.json", content), "", nil)
			_, err := l.Load(context.Background())
			if !errors.Is(err, domain.ErrDatasetMalformed) {
				t.Fatalf("expected ErrDatasetMalformed, got %v", err)
			}
		})
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	l, _ := New(writeFile(t, "edges.json", `[]`), "", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.parquet")
	rows := []record{
		{ALat: f64(0), ALng: f64(0), BLat: f64(0), BLng: f64(90), Weight: f64(0.5)},
		{ALat: f64(1), ALng: f64(2), BLat: nil, BLng: f64(4), Weight: f64(0.5)},
		{ALat: f64(1), ALng: f64(2), BLat: f64(3), BLng: f64(4), Weight: f64(math.NaN())},
		{ALat: f64(-12), ALng: f64(130), BLat: f64(35), BLng: f64(139), Weight: f64(0.25)},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	l, err := New(path, "", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Edges) != 2 {
		t.Fatalf("want 2 edges, got %d", len(res.Edges))
	}
	if len(res.Skipped) != 2 || res.Skipped[0].Index != 1 || res.Skipped[1].Index != 2 {
		t.Fatalf("unexpected skipped records: %+v", res.Skipped)
	}
	if res.Edges[1].Weight != 0.25 {
		t.Errorf("second edge weight = %v, want 0.25", res.Edges[1].Weight)
	}
}

func TestLoad_ParquetMalformed(t *testing.T) {
	l, _ := New(writeFile(t, "edges.parquet", "not a parquet file"), "", nil)
	if _, err := l.Load(context.Background()); !errors.Is(err, domain.ErrDatasetMalformed) {
		t.Fatalf("expected ErrDatasetMalformed, got %v", err)
	}
}
