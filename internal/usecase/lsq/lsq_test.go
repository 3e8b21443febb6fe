package lsq

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pcastellanos/hubblefit/internal/domain"
)

func hubble(x float64, params []float64) float64 {
	return domain.HubbleVelocity(x, params[0])
}

func TestCurveFit_NoiselessLinear(t *testing.T) {
	xs := []float64{10, 20, 30, 40}
	ys := []float64{700, 1400, 2100, 2800}
	sigmas := []float64{10, 10, 10, 10}

	params, stderrs, diag, err := CurveFit(hubble, xs, ys, sigmas, []float64{50}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(params[0]-70) > 1e-6 {
		t.Fatalf("expected H0=70, got %v", params[0])
	}
	if stderrs[0] > 1e-4 {
		t.Fatalf("expected near-zero stderr for noiseless data, got %v", stderrs[0])
	}
	if diag.ChiSquare > 1e-8 {
		t.Fatalf("expected near-zero chi-square, got %v", diag.ChiSquare)
	}
}

func TestCurveFit_NoisyRecovery(t *testing.T) {
	const h0True = 70.0
	rng := rand.New(rand.NewSource(42))

	n := 50
	xs := make([]float64, n)
	ys := make([]float64, n)
	sigmas := make([]float64, n)
	for i := range xs {
		xs[i] = 5 + 90*rng.Float64()
		sigmas[i] = 50
		ys[i] = h0True*xs[i] + rng.NormFloat64()*sigmas[i]
	}

	params, stderrs, _, err := CurveFit(hubble, xs, ys, sigmas, []float64{40}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stderrs[0] <= 0 {
		t.Fatalf("expected positive stderr, got %v", stderrs[0])
	}
	if diff := math.Abs(params[0] - h0True); diff > 4*stderrs[0] {
		t.Fatalf("H0=%v is %v away from truth, stderr only %v", params[0], diff, stderrs[0])
	}
}

func TestCurveFit_WeightingPullsTowardPreciseData(t *testing.T) {
	// Two populations disagree; the precise one must dominate the fit.
	xs := []float64{10, 20, 30, 10, 20, 30}
	ys := []float64{700, 1400, 2100, 900, 1800, 2700}
	sigmas := []float64{1, 1, 1, 1000, 1000, 1000}

	params, _, _, err := CurveFit(hubble, xs, ys, sigmas, []float64{80}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(params[0]-70) > 0.1 {
		t.Fatalf("expected fit near the low-uncertainty population (70), got %v", params[0])
	}
}

func TestCurveFit_InsufficientData(t *testing.T) {
	cases := [][]float64{
		{},
		{10},
	}
	for _, xs := range cases {
		ys := make([]float64, len(xs))
		_, _, _, err := CurveFit(hubble, xs, ys, nil, []float64{50}, Options{})
		if !errors.Is(err, domain.ErrInsufficientData) {
			t.Fatalf("n=%d: expected ErrInsufficientData, got %v", len(xs), err)
		}
		if !domain.IsKind(err, domain.KindInsufficientData) {
			t.Fatalf("n=%d: expected insufficient_data kind", len(xs))
		}
	}
}

func TestCurveFit_LengthMismatch(t *testing.T) {
	_, _, _, err := CurveFit(hubble, []float64{1, 2, 3}, []float64{1, 2}, nil, []float64{50}, Options{})
	if !errors.Is(err, domain.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestCurveFit_SingularProblem(t *testing.T) {
	// All distances zero: the model is insensitive to H0, J^T W J is singular.
	xs := []float64{0, 0, 0}
	ys := []float64{1, 2, 3}

	_, _, _, err := CurveFit(hubble, xs, ys, nil, []float64{50}, Options{})
	if !domain.IsKind(err, domain.KindNoConvergence) {
		t.Fatalf("expected no_convergence, got %v", err)
	}
}

func TestCurveFit_ZeroSigmaAmongNonzero(t *testing.T) {
	_, _, _, err := CurveFit(hubble,
		[]float64{10, 20, 30}, []float64{700, 1400, 2100}, []float64{10, 0, 10},
		[]float64{50}, Options{})
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestCurveFit_AllZeroSigmasMeansUnweighted(t *testing.T) {
	xs := []float64{10, 20, 30, 40}
	ys := []float64{700, 1400, 2100, 2800}

	params, _, _, err := CurveFit(hubble, xs, ys, []float64{0, 0, 0, 0}, []float64{50}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(params[0]-70) > 1e-6 {
		t.Fatalf("expected H0=70, got %v", params[0])
	}
}

func TestCurveFit_TwoParamModel(t *testing.T) {
	// v = a*d + b, to check the solver is not hardwired to one parameter.
	affine := func(x float64, p []float64) float64 { return p[0]*x + p[1] }

	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{12, 22, 32, 42, 52} // a=10, b=2

	params, _, _, err := CurveFit(affine, xs, ys, nil, []float64{1, 0}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(params[0]-10) > 1e-5 || math.Abs(params[1]-2) > 1e-4 {
		t.Fatalf("expected (10, 2), got %v", params)
	}
}
