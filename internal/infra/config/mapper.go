package config

import (
	"fmt"
	"strings"

	"github.com/pcastellanos/hubblefit/internal/domain"
)

// MapAnalysis validates a YAML DTO and merges it over the domain defaults.
func MapAnalysis(path string, ya YAMLAnalysis) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if strings.TrimSpace(ya.Catalog.Path) == "" {
		return domain.Config{}, invalidField(path, "catalog.path", "catalog path is required")
	}
	cfg.Catalog.Path = ya.Catalog.Path

	switch strings.TrimSpace(ya.Catalog.Format) {
	case "", string(domain.FormatTable):
		cfg.Catalog.Format = domain.FormatTable
	case string(domain.FormatJSON):
		cfg.Catalog.Format = domain.FormatJSON
		cols := domain.JSONColumns{
			Distance:    strings.TrimSpace(ya.Catalog.JSON.Distance),
			Velocity:    strings.TrimSpace(ya.Catalog.JSON.Velocity),
			Uncertainty: strings.TrimSpace(ya.Catalog.JSON.Uncertainty),
		}
		if cols.Distance == "" || cols.Velocity == "" || cols.Uncertainty == "" {
			return domain.Config{}, invalidField(path, "catalog.json",
				"json format requires distance, velocity and uncertainty expressions")
		}
		cfg.Catalog.JSONColumns = cols
	default:
		return domain.Config{}, invalidField(path, "catalog.format",
			fmt.Sprintf("unknown format %q (expected table|json)", ya.Catalog.Format))
	}

	if ya.Selection.MaxDistanceMpc != nil {
		if *ya.Selection.MaxDistanceMpc <= 0 {
			return domain.Config{}, invalidField(path, "selection.max_distance_mpc",
				fmt.Sprintf("must be positive, got %g", *ya.Selection.MaxDistanceMpc))
		}
		cfg.Selection.MaxDistanceMpc = *ya.Selection.MaxDistanceMpc
	}

	if ya.Fit.InitialH0 != nil {
		if *ya.Fit.InitialH0 <= 0 {
			return domain.Config{}, invalidField(path, "fit.initial_h0",
				fmt.Sprintf("must be positive, got %g", *ya.Fit.InitialH0))
		}
		cfg.Fit.InitialH0 = *ya.Fit.InitialH0
	}
	if ya.Fit.MaxIterations != nil {
		if *ya.Fit.MaxIterations <= 0 {
			return domain.Config{}, invalidField(path, "fit.max_iterations",
				fmt.Sprintf("must be positive, got %d", *ya.Fit.MaxIterations))
		}
		cfg.Fit.MaxIterations = *ya.Fit.MaxIterations
	}
	if ya.Fit.Tolerance != nil {
		if *ya.Fit.Tolerance <= 0 {
			return domain.Config{}, invalidField(path, "fit.tolerance",
				fmt.Sprintf("must be positive, got %g", *ya.Fit.Tolerance))
		}
		cfg.Fit.Tolerance = *ya.Fit.Tolerance
	}

	if strings.TrimSpace(ya.Output.ResultsDir) != "" {
		cfg.Output.ResultsDir = ya.Output.ResultsDir
	}
	if ya.Output.Save != nil {
		cfg.Output.Save = *ya.Output.Save
	}

	return cfg, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map_analysis",
		Kind: domain.KindInvalidInput,
		Path: path,
		Err:  fmt.Errorf("%s: %s", field, msg),
	}
}
