package cmd

import (
	"fmt"

	"github.com/driftwl/kmsdrm"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Print the chosen GPU, its CRTCs, planes and connectors",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend()
		if err != nil {
			return fmt.Errorf("open backend: %w", err)
		}
		defer b.Close()

		fmt.Printf("gpu: %s (driver %s)\n", b.GPU.Path, b.GPU.DriverName)
		fmt.Printf("capabilities: async-flip=%v addfb2-modifiers=%v cursor=%dx%d\n",
			b.Caps.SupportsAsyncFlip, b.Caps.SupportsAddFBWithModifiers,
			b.Caps.CursorWidth, b.Caps.CursorHeight)
		fmt.Printf("engine: %T\n\n", b.Engine)

		fmt.Printf("crtcs (%d):\n", len(b.Crtcs))
		for _, c := range b.Crtcs {
			fmt.Printf("  crtc %d: refresh=%dmHz primary=%s cursor=%s\n",
				c.ID, c.RefreshMilliHz, planeLabel(c.PrimaryPlane), planeLabel(c.CursorPlane))
		}

		fmt.Printf("\nplanes (%d):\n", len(b.Planes))
		for _, p := range b.Planes {
			fmt.Printf("  plane %d: type=%s formats=%d possible_crtcs=%#x\n",
				p.ID, planeTypeName(p.Type), len(p.Formats), p.PossibleCrtcs)
		}

		fmt.Printf("\nconnectors (%d):\n", len(b.Connectors))
		for _, c := range b.Connectors {
			fmt.Printf("  %s (id=%d): status=%s modes=%d crtc=%s\n",
				c.Name, c.ID, statusName(c.Status), len(c.Modes), crtcLabel(c.CRTC))
		}

		return nil
	},
}

func planeLabel(p *kmsdrm.Plane) string {
	if p == nil {
		return "none"
	}
	return fmt.Sprintf("%d", p.ID)
}

func crtcLabel(c *kmsdrm.Crtc) string {
	if c == nil {
		return "none"
	}
	return fmt.Sprintf("%d", c.ID)
}

func planeTypeName(t kmsdrm.PlaneType) string {
	switch t {
	case kmsdrm.PlanePrimary:
		return "primary"
	case kmsdrm.PlaneCursor:
		return "cursor"
	default:
		return "overlay"
	}
}

func statusName(s kmsdrm.ConnectionStatus) string {
	switch s {
	case kmsdrm.StatusConnected:
		return "connected"
	case kmsdrm.StatusDisconnected:
		return "disconnected"
	default:
		return "uninit"
	}
}
