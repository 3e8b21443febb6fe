package plot

import (
	"strings"
	"testing"

	"github.com/pcastellanos/hubblefit/internal/domain"
)

func testRenderer() *Renderer {
	return &Renderer{Width: 32, Height: 10, Theme: PlainTheme()}
}

func sampleCatalog(t *testing.T) domain.Catalog {
	t.Helper()
	cat, err := domain.NewCatalog("x",
		[]float64{10, 20, 30, 40},
		[]float64{700, 1400, 2100, 2800},
		[]float64{10, 10, 10, 10},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

// fitCurve samples v = h0*d over [0, maxD] at n points, matching the shape
// the fit command hands the renderer.
func fitCurve(h0, maxD float64, n int) (ds, vs []float64) {
	ds = make([]float64, n)
	vs = make([]float64, n)
	for i := range ds {
		ds[i] = float64(i) / float64(n-1) * maxD
		vs[i] = h0 * ds[i]
	}
	return ds, vs
}

func TestScatter_ContainsPointsAndLine(t *testing.T) {
	curveD, curveV := fitCurve(70, 40, 32)
	out := testRenderer().Scatter(sampleCatalog(t), curveD, curveV)
	if !strings.Contains(out, "o") {
		t.Fatalf("plot has no data points:\n%s", out)
	}
	if !strings.Contains(out, "·") {
		t.Fatalf("plot has no fit line:\n%s", out)
	}
	if !strings.Contains(out, "velocity [km/s]") || !strings.Contains(out, "40 Mpc") {
		t.Fatalf("plot missing axis labels:\n%s", out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// label + height rows + axis + range label
	if len(lines) != 13 {
		t.Fatalf("expected 13 lines, got %d:\n%s", len(lines), out)
	}
}

func TestScatter_NoFitLineWithoutCurve(t *testing.T) {
	out := testRenderer().Scatter(sampleCatalog(t), nil, nil)
	if strings.Contains(out, "·") {
		t.Fatalf("expected no fit line without a curve:\n%s", out)
	}
	if !strings.Contains(out, "o") {
		t.Fatalf("data points must still render:\n%s", out)
	}
}

func TestScatter_EmptyCatalog(t *testing.T) {
	curveD, curveV := fitCurve(70, 40, 32)
	if out := testRenderer().Scatter(domain.Catalog{}, curveD, curveV); out != "" {
		t.Fatalf("expected empty render, got:\n%s", out)
	}
}

func TestScatter_MismatchedCurve(t *testing.T) {
	if out := testRenderer().Scatter(sampleCatalog(t), []float64{0, 40}, []float64{0}); out != "" {
		t.Fatalf("expected empty render for mismatched curve, got:\n%s", out)
	}
}

func TestHistogram_Bars(t *testing.T) {
	bins := []HistogramBin{
		{Lo: 0, Hi: 10, Count: 1},
		{Lo: 10, Hi: 20, Count: 4},
		{Lo: 20, Hi: 30, Count: 2},
	}
	out := testRenderer().Histogram(bins, 8)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 bars, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], strings.Repeat("█", 8)) {
		t.Fatalf("largest bin should fill the bar width:\n%s", out)
	}
	if !strings.HasSuffix(lines[2], " 2") {
		t.Fatalf("expected count suffix:\n%s", out)
	}
}

func TestHistogram_Empty(t *testing.T) {
	if out := testRenderer().Histogram(nil, 8); out != "" {
		t.Fatalf("expected empty render, got %q", out)
	}
}
