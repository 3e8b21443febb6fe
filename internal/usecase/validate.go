package usecase

import (
	"context"
	"fmt"

	"github.com/pcastellanos/hubblefit/internal/domain"
	"github.com/pcastellanos/hubblefit/internal/ports"
)

// Validate checks a configuration + catalog pair without running the fit:
// the catalog loads and validates, and the subselection leaves enough
// observations for a meaningful fit.
type Validate struct {
	catalogs ports.CatalogLoader
}

func NewValidate(cl ports.CatalogLoader) *Validate {
	return &Validate{catalogs: cl}
}

func (uc *Validate) Execute(ctx context.Context, cfg domain.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if cfg.Selection.MaxDistanceMpc <= 0 {
		return &domain.OpError{
			Op:   "validate.selection",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("max distance must be positive, got %g", cfg.Selection.MaxDistanceMpc),
		}
	}
	if cfg.Fit.InitialH0 <= 0 {
		return &domain.OpError{
			Op:   "validate.fit",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("initial H0 must be positive, got %g", cfg.Fit.InitialH0),
		}
	}

	cat, err := uc.catalogs.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	sample := cat.SelectBelow(cfg.Selection.MaxDistanceMpc)
	if sample.Len() < 2 {
		return &domain.OpError{
			Op:   "validate.subselect",
			Kind: domain.KindInsufficientData,
			Path: cat.Source,
			Err: fmt.Errorf("%d of %d observation(s) below %g Mpc: %w",
				sample.Len(), cat.Len(), cfg.Selection.MaxDistanceMpc, domain.ErrInsufficientData),
		}
	}

	return nil
}
