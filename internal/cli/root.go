package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pcastellanos/hubblefit/internal/buildinfo"
	"github.com/pcastellanos/hubblefit/internal/infra/logger"
)

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "hubblefit",
		Short:        "hubblefit — fit Hubble's Law to a galaxy catalog",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			cleanup, _ := logger.Setup(logger.Config{Root: wd, Debug: debug})
			if cleanup != nil {
				cobra.OnFinalize(func() { _ = cleanup() })
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .hubblefit/logs/hubblefit.log")

	cmd.AddCommand(fitCmd())
	cmd.AddCommand(inspectCmd())
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(buildinfo.String())
		},
	}
}
