package cmd

import (
	"fmt"

	"github.com/driftwl/kmsdrm"
	"github.com/spf13/cobra"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List every mode reported by each connector",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend()
		if err != nil {
			return fmt.Errorf("open backend: %w", err)
		}
		defer b.Close()

		for _, c := range b.Connectors {
			fmt.Printf("%s (id=%d, %s):\n", c.Name, c.ID, statusName(c.Status))
			if c.Status != kmsdrm.StatusConnected {
				continue
			}
			for _, m := range c.Modes {
				marker := ""
				if m.Preferred {
					marker = " (preferred)"
				}
				fmt.Printf("  %dx%d @ %d mHz%s\n", m.Width, m.Height, m.RefreshMilliHz, marker)
			}
			if len(c.Modes) == 0 {
				fb := c.FallbackMode
				fmt.Printf("  (no kernel modes; fallback %dx%d @ %d mHz)\n", fb.Width, fb.Height, fb.RefreshMilliHz)
			}
		}
		return nil
	},
}
