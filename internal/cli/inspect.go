package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pcastellanos/hubblefit/internal/infra/plot"
	"github.com/pcastellanos/hubblefit/internal/usecase"
)

func inspectCmd() *cobra.Command {
	var dataPath string
	var bins int

	c := &cobra.Command{
		Use:   "inspect",
		Short: "Print summary statistics and a velocity histogram for a catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := usecase.NewInspect(catalogTable())

			sum, err := uc.Execute(dataPath, bins)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}

	c.Flags().StringVarP(&dataPath, "data", "d", "", "Catalog file, whitespace table format (required)")
	c.Flags().IntVar(&bins, "bins", 10, "Histogram bin count for the velocity column")

	_ = c.MarkFlagRequired("data")
	return c
}

func printSummary(w io.Writer, sum usecase.CatalogSummary) {
	fmt.Fprintln(w, titleStyle.Render("Catalog "+sum.Source))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-12s %6s %10s %10s %10s %10s %10s\n",
		"column", "n", "min", "max", "mean", "median", "stddev")
	for _, c := range sum.Columns {
		fmt.Fprintf(w, "%-12s %6d %10.2f %10.2f %10.2f %10.2f %10.2f\n",
			c.Name+" ["+c.Unit+"]", c.N, c.Min, c.Max, c.Mean, c.Median, c.StdDev)
	}

	if len(sum.Histogram) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("velocity distribution [km/s]"))

		bins := make([]plot.HistogramBin, 0, len(sum.Histogram))
		for _, b := range sum.Histogram {
			bins = append(bins, plot.HistogramBin{Lo: b.Lo, Hi: b.Hi, Count: b.Count})
		}
		fmt.Fprint(w, plot.NewRenderer().Histogram(bins, 40))
	}
}
