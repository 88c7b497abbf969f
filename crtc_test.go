package kmsdrm

import (
	"testing"

	"github.com/driftwl/kmsdrm/kms"
)

func TestNewCrtcCopiesKernelFields(t *testing.T) {
	raw := kms.Crtc{
		ID:        3,
		GammaSize: 256,
		Mode:      kms.Info{Clock: 148500, Htotal: 2080, Vtotal: 1111, Vscan: 1},
	}
	c := newCrtc(raw)
	if c.ID != 3 || c.GammaSize != 256 {
		t.Errorf("newCrtc() = %+v, want id=3 gamma=256", c)
	}
	if c.RefreshMilliHz == 0 {
		t.Error("expected a nonzero refresh computed from the crtc's current mode")
	}
	if c.PrimaryPlane != nil || c.CursorPlane != nil {
		t.Error("expected a freshly converted crtc to have no plane assignment yet")
	}
}
