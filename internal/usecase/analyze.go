package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pcastellanos/hubblefit/internal/domain"
	"github.com/pcastellanos/hubblefit/internal/ports"
	"github.com/pcastellanos/hubblefit/internal/usecase/lsq"
)

// Analyze runs the full pipeline: load catalog, subselect the low-distance
// sample, fit Hubble's Law, derive the age estimate, and optionally persist
// the result.
type Analyze struct {
	catalogs ports.CatalogLoader
	store    ports.ResultStore // nil disables persistence
	now      func() time.Time
}

type AnalyzeOption func(*Analyze)

// WithNow is useful for tests.
func WithNow(now func() time.Time) AnalyzeOption {
	return func(uc *Analyze) { uc.now = now }
}

func NewAnalyze(cl ports.CatalogLoader, store ports.ResultStore, opts ...AnalyzeOption) *Analyze {
	uc := &Analyze{
		catalogs: cl,
		store:    store,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute performs a single analysis run. The returned AnalysisResult carries
// the store-assigned ID when persistence is enabled.
func (uc *Analyze) Execute(ctx context.Context, cfg domain.Config) (domain.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.AnalysisResult{}, err
	}

	cat, err := uc.catalogs.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	res := domain.AnalysisResult{
		CatalogPath:    cat.Source,
		TotalPoints:    cat.Len(),
		MaxDistanceMpc: cfg.Selection.MaxDistanceMpc,
		StartedAt:      uc.now(),
	}

	sample := cat.SelectBelow(cfg.Selection.MaxDistanceMpc)
	if sample.Len() < 2 {
		return domain.AnalysisResult{}, &domain.OpError{
			Op:   "analyze.subselect",
			Kind: domain.KindInsufficientData,
			Path: cat.Source,
			Err: fmt.Errorf("%d of %d observation(s) below %g Mpc: %w",
				sample.Len(), cat.Len(), cfg.Selection.MaxDistanceMpc, domain.ErrInsufficientData),
		}
	}

	model := func(d float64, p []float64) float64 {
		return domain.HubbleVelocity(d, p[0])
	}

	params, stderrs, diag, err := lsq.CurveFit(
		model,
		sample.DistancesMpc,
		sample.VelocitiesKms,
		sample.UncertaintiesKms,
		[]float64{cfg.Fit.InitialH0},
		lsq.Options{
			MaxIterations: cfg.Fit.MaxIterations,
			Tolerance:     cfg.Fit.Tolerance,
		},
	)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	res.Fit = domain.FitResult{
		H0:         params[0],
		H0Stderr:   stderrs[0],
		PointsUsed: sample.Len(),
		ChiSquare:  diag.ChiSquare,
		Iterations: diag.Iterations,
	}

	age, err := domain.AgeFromH0(res.Fit.H0, res.Fit.H0Stderr)
	if err != nil {
		return domain.AnalysisResult{}, &domain.OpError{
			Op:   "analyze.age",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	res.Age = age
	res.FinishedAt = uc.now()

	if uc.store != nil {
		id, err := uc.store.SaveResult(res)
		if err != nil {
			return res, err
		}
		res.ID = id
	}

	return res, nil
}

// FitCurve evaluates the fitted model over nPoints evenly spaced distances in
// [0, maxDistanceMpc], for plot overlays.
func FitCurve(h0, maxDistanceMpc float64, nPoints int) (ds, vs []float64) {
	if nPoints < 2 {
		nPoints = 2
	}
	ds = make([]float64, nPoints)
	vs = make([]float64, nPoints)
	step := maxDistanceMpc / float64(nPoints-1)
	for i := range ds {
		ds[i] = float64(i) * step
		vs[i] = domain.HubbleVelocity(ds[i], h0)
	}
	return ds, vs
}
