package export

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sineSeries(n int) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = math.Sin(float64(i) / 10)
	}
	return xs, ys
}

func TestSeriesToSVG(t *testing.T) {
	xs, ys := sineSeries(50)
	svg := SeriesToSVG(xs, ys, 640, 480, "#00ff00")

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml header")
	}
	if !strings.Contains(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not an svg document")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke color not applied")
	}
	if got := strings.Count(svg, " L"); got != 49 {
		t.Errorf("expected 49 line segments, got %d", got)
	}
}

func TestSeriesToSVGDegenerate(t *testing.T) {
	if svg := SeriesToSVG([]float64{1}, []float64{2}, 100, 100, "red"); svg != "" {
		t.Error("expected empty string for a single point")
	}
	if svg := SeriesToSVG([]float64{1, 2}, []float64{2}, 100, 100, "red"); svg != "" {
		t.Error("expected empty string for mismatched lengths")
	}
	// constant series must not divide by zero
	svg := SeriesToSVG([]float64{1, 2, 3}, []float64{5, 5, 5}, 100, 100, "red")
	if !strings.Contains(svg, "</svg>") {
		t.Error("constant series not rendered")
	}
	if strings.Contains(svg, "NaN") {
		t.Error("NaN leaked into svg")
	}
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.svg")
	xs, ys := sineSeries(20)

	if err := WriteSVG(path, xs, ys, 640, 480, "#ffaa00"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("file is not a complete svg")
	}

	if err := WriteSVG(path, xs[:1], ys[:1], 640, 480, "red"); err == nil {
		t.Error("expected error for a single point")
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.png")
	xs, ys := sineSeries(100)

	if err := WritePNG(path, "E/N", xs, ys, 640, 480); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	signature := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	if len(data) < 8 || string(data[:8]) != string(signature) {
		t.Error("file does not start with the png signature")
	}

	if err := WritePNG(path, "E/N", xs[:1], ys[:1], 640, 480); err == nil {
		t.Error("expected error for a single point")
	}
}
