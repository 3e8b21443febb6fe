// Package lsq implements weighted nonlinear least squares with a
// Levenberg-Marquardt solver. The Jacobian is taken by finite differences, so
// any Model works; for linear models the solver converges in one step.
package lsq

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/pcastellanos/hubblefit/internal/domain"
)

// Model evaluates a regression model at x for a parameter vector.
type Model func(x float64, params []float64) float64

// Options tune the solver. Zero values fall back to defaults.
type Options struct {
	MaxIterations int
	Tolerance     float64
}

// Diagnostics describes how the fit went.
type Diagnostics struct {
	ChiSquare  float64
	Iterations int
}

const (
	defaultMaxIterations = 50
	defaultTolerance     = 1e-10

	lambdaInit = 1e-3
	lambdaUp   = 10
	lambdaDown = 10
	lambdaMax  = 1e12

	fdStep = 1e-8
)

// CurveFit minimizes the weighted sum of squared residuals between ys and
// model(xs, params), starting from p0. Weights are 1/sigma^2; a nil or
// all-zero sigmas slice means an unweighted fit. Returns the parameter
// estimates, their one-standard-deviation errors from the diagonal of the
// scaled covariance matrix, and fit diagnostics.
//
// Strictly more observations than parameters are required. The covariance is
// (J^T W J)^-1 scaled by chi^2/(N-p), so noiseless data reports near-zero
// standard errors.
func CurveFit(model Model, xs, ys, sigmas, p0 []float64, opts Options) ([]float64, []float64, Diagnostics, error) {
	n := len(xs)
	np := len(p0)

	if len(ys) != n || (sigmas != nil && len(sigmas) != n) {
		return nil, nil, Diagnostics{}, &domain.OpError{
			Op:   "lsq.fit",
			Kind: domain.KindInvalidInput,
			Err:  domain.ErrLengthMismatch,
		}
	}
	if np == 0 {
		return nil, nil, Diagnostics{}, &domain.OpError{
			Op:   "lsq.fit",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("no free parameters"),
		}
	}
	if n <= np {
		return nil, nil, Diagnostics{}, &domain.OpError{
			Op:   "lsq.fit",
			Kind: domain.KindInsufficientData,
			Err:  fmt.Errorf("%d observation(s) for %d parameter(s): %w", n, np, domain.ErrInsufficientData),
		}
	}

	weights, err := buildWeights(sigmas, n)
	if err != nil {
		return nil, nil, Diagnostics{}, err
	}

	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defaultMaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = defaultTolerance
	}

	params := append([]float64(nil), p0...)
	chi2 := chiSquare(model, xs, ys, weights, params)
	if !isFinite(chi2) {
		return nil, nil, Diagnostics{}, nonConvergence("initial residuals not finite")
	}

	lambda := lambdaInit
	var iters int

	for iters = 1; iters <= opts.MaxIterations; iters++ {
		jac := jacobian(model, xs, params)

		// Normal equations: A = J^T W J, g = J^T W r.
		a := mat.NewDense(np, np, nil)
		g := mat.NewVecDense(np, nil)
		for i := 0; i < n; i++ {
			r := ys[i] - model(xs[i], params)
			for j := 0; j < np; j++ {
				g.SetVec(j, g.AtVec(j)+weights[i]*jac[i][j]*r)
				for k := 0; k < np; k++ {
					a.Set(j, k, a.At(j, k)+weights[i]*jac[i][j]*jac[i][k])
				}
			}
		}

		accepted := false
		for lambda <= lambdaMax {
			damped := mat.DenseCopyOf(a)
			for j := 0; j < np; j++ {
				damped.Set(j, j, a.At(j, j)*(1+lambda))
			}

			var delta mat.VecDense
			if err := delta.SolveVec(damped, g); err != nil {
				lambda *= lambdaUp
				continue
			}

			trial := make([]float64, np)
			for j := range trial {
				trial[j] = params[j] + delta.AtVec(j)
			}

			trialChi2 := chiSquare(model, xs, ys, weights, trial)
			if isFinite(trialChi2) && math.Abs(trialChi2-chi2) <= opts.Tolerance*(chi2+opts.Tolerance) {
				// Already at the minimum: no step changes chi^2 meaningfully.
				if trialChi2 < chi2 {
					params = trial
					chi2 = trialChi2
				}
				return finish(model, xs, ys, weights, params, chi2, iters)
			}
			if !isFinite(trialChi2) || trialChi2 > chi2 {
				lambda *= lambdaUp
				continue
			}

			improved := chi2 - trialChi2
			params = trial
			prev := chi2
			chi2 = trialChi2
			lambda /= lambdaDown
			if lambda < 1e-12 {
				lambda = 1e-12
			}
			accepted = true

			if improved <= opts.Tolerance*(prev+opts.Tolerance) {
				return finish(model, xs, ys, weights, params, chi2, iters)
			}
			break
		}

		if !accepted {
			return nil, nil, Diagnostics{}, nonConvergence(
				fmt.Sprintf("no downhill step found after %d iteration(s)", iters))
		}
	}

	// Ran out of iterations without meeting the tolerance, but still at a
	// finite minimum estimate: report non-convergence.
	return nil, nil, Diagnostics{}, nonConvergence(
		fmt.Sprintf("tolerance not reached in %d iterations", opts.MaxIterations))
}

func finish(model Model, xs, ys, weights, params []float64, chi2 float64, iters int) ([]float64, []float64, Diagnostics, error) {
	n := len(xs)
	np := len(params)

	a := mat.NewDense(np, np, nil)
	jac := jacobian(model, xs, params)
	for i := 0; i < n; i++ {
		for j := 0; j < np; j++ {
			for k := 0; k < np; k++ {
				a.Set(j, k, a.At(j, k)+weights[i]*jac[i][j]*jac[i][k])
			}
		}
	}

	var cov mat.Dense
	if err := cov.Inverse(a); err != nil {
		return nil, nil, Diagnostics{}, nonConvergence("singular parameter covariance")
	}

	// Scale by reduced chi-square so the reported errors reflect the actual
	// scatter of the data around the model.
	scale := chi2 / float64(n-np)

	stderrs := make([]float64, np)
	for j := 0; j < np; j++ {
		v := cov.At(j, j) * scale
		if !isFinite(v) || v < 0 {
			return nil, nil, Diagnostics{}, nonConvergence("non-finite parameter variance")
		}
		stderrs[j] = math.Sqrt(v)
	}

	return params, stderrs, Diagnostics{ChiSquare: chi2, Iterations: iters}, nil
}

func buildWeights(sigmas []float64, n int) ([]float64, error) {
	weights := make([]float64, n)

	allZero := true
	for _, s := range sigmas {
		if s != 0 {
			allZero = false
			break
		}
	}
	if sigmas == nil || allZero {
		for i := range weights {
			weights[i] = 1
		}
		return weights, nil
	}

	for i, s := range sigmas {
		if s <= 0 {
			return nil, &domain.OpError{
				Op:   "lsq.fit",
				Kind: domain.KindInvalidInput,
				Err:  fmt.Errorf("observation %d has uncertainty %g alongside nonzero ones: %w", i, s, domain.ErrInvalidInput),
			}
		}
		weights[i] = 1 / (s * s)
	}
	return weights, nil
}

func jacobian(model Model, xs, params []float64) [][]float64 {
	n := len(xs)
	np := len(params)

	jac := make([][]float64, n)
	for i := range jac {
		jac[i] = make([]float64, np)
	}

	p := append([]float64(nil), params...)
	for j := 0; j < np; j++ {
		h := fdStep * math.Max(math.Abs(p[j]), 1)
		orig := p[j]

		p[j] = orig + h
		for i := 0; i < n; i++ {
			jac[i][j] = model(xs[i], p)
		}
		p[j] = orig - h
		for i := 0; i < n; i++ {
			jac[i][j] = (jac[i][j] - model(xs[i], p)) / (2 * h)
		}
		p[j] = orig
	}
	return jac
}

func chiSquare(model Model, xs, ys, weights, params []float64) float64 {
	var sum float64
	for i := range xs {
		r := ys[i] - model(xs[i], params)
		sum += weights[i] * r * r
	}
	return sum
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonConvergence(msg string) error {
	return &domain.OpError{
		Op:   "lsq.fit",
		Kind: domain.KindNoConvergence,
		Err:  fmt.Errorf("%s: %w", msg, domain.ErrNoConvergence),
	}
}
