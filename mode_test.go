package kmsdrm

import (
	"testing"

	"github.com/driftwl/kmsdrm/kms"
)

func TestNewModeFromInfoRejectsInterlace(t *testing.T) {
	info := kms.Info{Hdisplay: 1920, Vdisplay: 1080, Flags: kms.ModeFlagInterlace}
	if _, ok := newModeFromInfo(info); ok {
		t.Fatal("expected interlaced mode to be rejected")
	}
}

func TestCalculateRefreshMilliHz1080p60(t *testing.T) {
	// The standard CEA-861 1920x1080@60Hz timing.
	info := kms.Info{
		Clock:  148500,
		Htotal: 2200,
		Vtotal: 1125,
		Vscan:  1,
	}
	got := calculateRefreshMilliHz(info)
	// (148500*1e6 + 562) / (2200*1125) = 60000 mHz.
	if got != 60000 {
		t.Fatalf("refresh = %d mHz, want 60000", got)
	}
}

func TestCalculateRefreshMilliHzDblScanHalves(t *testing.T) {
	base := kms.Info{Clock: 25175, Htotal: 800, Vtotal: 525, Vscan: 1}
	doubled := base
	doubled.Flags |= kms.ModeFlagDblScan
	doubled.Vtotal = 525 // dblscan halves the refresh, not vtotal

	r1 := calculateRefreshMilliHz(base)
	r2 := calculateRefreshMilliHz(doubled)
	if r2 != r1/2 {
		t.Errorf("dblscan refresh = %d, want half of %d", r2, r1)
	}
}

func TestEnsureBlobSynthesizesForCustomMode(t *testing.T) {
	m := &Mode{Width: 2560, Height: 1440, RefreshMilliHz: 144000}
	blob := m.ensureBlob()
	if blob.Clock == 0 {
		t.Fatal("expected nonzero synthesized clock")
	}
	if blob.Hdisplay == 0 || blob.Vdisplay != 1440 {
		t.Errorf("unexpected synthesized dimensions: %dx%d", blob.Hdisplay, blob.Vdisplay)
	}
	if blob.HsyncEnd <= blob.HsyncStart || blob.Htotal <= blob.HsyncEnd {
		t.Error("expected increasing hsync_start < hsync_end < htotal")
	}
}
