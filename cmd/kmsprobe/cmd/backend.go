package cmd

import (
	"github.com/driftwl/kmsdrm"
	"github.com/driftwl/kmsdrm/config"
	"github.com/driftwl/kmsdrm/internal/logx"
)

// openBackend builds config.Options from the persistent flags and
// opens a Backend, the one place every subcommand funnels through.
func openBackend() (*kmsdrm.Backend, error) {
	if flagLogLevel != "" {
		logx.SetLevel(logx.ParseLevel(flagLogLevel))
	}

	opts, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagSeat != "" {
		opts.SeatName = flagSeat
	}
	if flagLegacy {
		opts.ForceLegacyEngine = true
	}
	if flagDevice != "" {
		opts.DevicePaths = []string{flagDevice}
	}

	return kmsdrm.NewBackend(opts)
}
