package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version is set during build.
	Version = "0.1.0-dev"

	rootCmd = &cobra.Command{
		Use:          "kmsprobe",
		Short:        "Inspect the DRM/KMS resource graph of a GPU device",
		Long:         `kmsprobe opens the kmsdrm backend and prints the GPU it chose along with its CRTCs, planes, and connectors.`,
		SilenceUsage: true,
	}

	flagDevice   string
	flagSeat     string
	flagLegacy   bool
	flagLogLevel string
)

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVar(&flagDevice, "device", "", "force a specific DRM device node instead of scanning")
	rootCmd.PersistentFlags().StringVar(&flagSeat, "seat", "seat0", "seat to open the session against")
	rootCmd.PersistentFlags().BoolVar(&flagLegacy, "legacy", false, "force the legacy commit engine instead of atomic")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override KMSDRM_LOG_LEVEL for this run")

	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(modesCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
