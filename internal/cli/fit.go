package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pcastellanos/hubblefit/internal/domain"
	"github.com/pcastellanos/hubblefit/internal/infra/config"
	"github.com/pcastellanos/hubblefit/internal/infra/logger"
	"github.com/pcastellanos/hubblefit/internal/infra/plot"
	"github.com/pcastellanos/hubblefit/internal/infra/resultstore"
	"github.com/pcastellanos/hubblefit/internal/ports"
	"github.com/pcastellanos/hubblefit/internal/usecase"
)

func fitCmd() *cobra.Command {
	var cfgPath string
	var format string
	var noSave bool
	var showPlot bool

	c := &cobra.Command{
		Use:   "fit",
		Short: "Fit Hubble's Law to a catalog and report H0 and the Hubble time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadAnalysis(cfgPath)
			if err != nil {
				return err
			}

			loader, err := newCatalogLoader(cfg)
			if err != nil {
				return err
			}

			uc := usecase.NewAnalyze(loader, newStore(cfg, noSave))

			logger.L().Info("fit.start", "catalog", cfg.Catalog.Path, "max_distance_mpc", cfg.Selection.MaxDistanceMpc)
			res, err := uc.Execute(cmd.Context(), cfg)
			if err != nil {
				logger.L().Error("fit.failed", "err", err)
				return err
			}
			logger.L().Info("fit.done", "h0", res.Fit.H0, "stderr", res.Fit.H0Stderr, "age_gyr", res.Age.Gyr)

			if err := printResult(cmd.OutOrStdout(), res, format); err != nil {
				return err
			}

			if showPlot {
				cat, err := loader.LoadCatalog(cfg.Catalog.Path)
				if err != nil {
					return err
				}
				sample := cat.SelectBelow(cfg.Selection.MaxDistanceMpc)
				r := plot.NewRenderer()
				curveD, curveV := usecase.FitCurve(res.Fit.H0, sample.MaxDistance(), r.Width)
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), r.Scatter(sample, curveD, curveV))
			}
			return nil
		},
	}

	c.Flags().StringVarP(&cfgPath, "config", "c", "", "Analysis config file (required)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the result under the results dir")
	c.Flags().BoolVar(&showPlot, "plot", false, "Render an ASCII scatter plot with the fitted line")

	_ = c.MarkFlagRequired("config")
	return c
}

// newStore returns the interface type so the disabled case is a true nil,
// not a typed-nil *JSONStore hiding inside a non-nil interface.
func newStore(cfg domain.Config, noSave bool) ports.ResultStore {
	if noSave || !cfg.Output.Save {
		return nil
	}
	return resultstore.NewJSONStore(cfg.Output.ResultsDir)
}

func printResult(w io.Writer, res domain.AnalysisResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "pretty", "":
		printPrettyResult(w, res)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func printPrettyResult(w io.Writer, res domain.AnalysisResult) {
	fmt.Fprintln(w, titleStyle.Render("Hubble's Law fit"))
	fmt.Fprintf(w, "Catalog:    %s\n", res.CatalogPath)
	fmt.Fprintf(w, "Sample:     %d of %d galaxies below %g Mpc\n",
		res.Fit.PointsUsed, res.TotalPoints, res.MaxDistanceMpc)
	if res.ID != "" {
		fmt.Fprintf(w, "Run ID:     %s\n", res.ID)
	}
	if !res.StartedAt.IsZero() {
		fmt.Fprintf(w, "Started:    %s\n", res.StartedAt.Format(time.RFC3339))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "H0  = %.2f ± %.2f km/s/Mpc\n", res.Fit.H0, res.Fit.H0Stderr)
	fmt.Fprintf(w, "Age = %.2f ± %.2f Gyr\n", res.Age.Gyr, res.Age.StderrGyr)
	fmt.Fprintln(w)

	fmt.Fprintln(w, faintStyle.Render(fmt.Sprintf(
		"chi-square %.4g over %d point(s), %d iteration(s)",
		res.Fit.ChiSquare, res.Fit.PointsUsed, res.Fit.Iterations)))
}

func newCatalogLoader(cfg domain.Config) (loaderPort, error) {
	switch cfg.Catalog.Format {
	case domain.FormatJSON:
		return catalogJSON(cfg), nil
	case domain.FormatTable, "":
		return catalogTable(), nil
	default:
		return nil, &domain.OpError{
			Op:   "cli.catalog_loader",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("unknown catalog format %q", cfg.Catalog.Format),
		}
	}
}
