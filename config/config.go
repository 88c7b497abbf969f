// Package config loads backend construction options through Viper,
// following the config-file-plus-defaults-plus-env idiom the example
// pack uses for its own much larger option set, scaled down to the
// handful of knobs this backend actually exposes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/driftwl/kmsdrm/internal/logx"
)

// Options configures backend construction. A zero-value Options{} is
// valid: every field defaults to the documented behavior (seat
// "seat0", atomic commit engine where the driver supports it and
// legacy otherwise, no device-path override).
type Options struct {
	// SeatName overrides the seat the session layer opens; empty means
	// "seat0".
	SeatName string `mapstructure:"seat_name"`

	// ForceLegacyEngine pins the commit engine to the legacy path even
	// on drivers that would otherwise qualify for atomic.
	ForceLegacyEngine bool `mapstructure:"force_legacy_engine"`

	// DevicePaths, if non-empty, restricts device scanning to exactly
	// these nodes instead of walking the hardware database — used by
	// tests and by operators pinning a specific GPU.
	DevicePaths []string `mapstructure:"device_paths"`

	// LogLevel holds a level name ("trace", "debug", "info", "warn",
	// "error", "critical") read from the config file or the
	// KMSDRM_LOG_LEVEL variable. NewBackend does not apply it; the
	// process-wide level is set by logx from KMSDRM_LOG_LEVEL at
	// startup or by logx.SetLevel.
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the documented zero-value behavior as a concrete
// Options value, useful as a base to override individual fields from.
func Default() Options {
	return Options{SeatName: "seat0"}
}

// Load reads backend options from (in ascending priority) built-in
// defaults, /etc/kmsdrm/kmsdrm.toml, $HOME/.config/kmsdrm/kmsdrm.toml,
// ./kmsdrm.toml, and KMSDRM_-prefixed environment variables. A missing
// config file is not an error — Load falls back to Default().
func Load() (Options, error) {
	v := viper.New()
	v.SetConfigName("kmsdrm")
	v.SetConfigType("toml")

	v.AddConfigPath("/etc/kmsdrm")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "kmsdrm"))
	}
	v.AddConfigPath(".")

	def := Default()
	v.SetDefault("seat_name", def.SeatName)
	v.SetDefault("force_legacy_engine", def.ForceLegacyEngine)
	v.SetDefault("device_paths", def.DevicePaths)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix("KMSDRM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Options{}, fmt.Errorf("read config: %w", err)
		}
		logx.Debug("no kmsdrm config file found, using defaults")
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return opts, nil
}
