package config

import "testing"

func TestDefault(t *testing.T) {
	d := Default()
	if d.SeatName != "seat0" {
		t.Errorf("SeatName = %q, want seat0", d.SeatName)
	}
	if d.ForceLegacyEngine {
		t.Error("ForceLegacyEngine should default to false")
	}
	if len(d.DevicePaths) != 0 {
		t.Error("DevicePaths should default to empty")
	}
}

func TestLoadWithNoConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	opts, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.SeatName != "seat0" {
		t.Errorf("SeatName = %q, want seat0", opts.SeatName)
	}
}
