package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcastellanos/hubblefit/internal/infra/config"
	"github.com/pcastellanos/hubblefit/internal/usecase"
)

func validateCmd() *cobra.Command {
	var cfgPath string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Check a config and its catalog without running the fit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadAnalysis(cfgPath)
			if err != nil {
				return err
			}

			loader, err := newCatalogLoader(cfg)
			if err != nil {
				return err
			}

			if err := usecase.NewValidate(loader).Execute(cmd.Context(), cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", cfg.Catalog.Path)
			return nil
		},
	}

	c.Flags().StringVarP(&cfgPath, "config", "c", "", "Analysis config file (required)")
	_ = c.MarkFlagRequired("config")
	return c
}
