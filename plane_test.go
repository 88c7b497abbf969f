package kmsdrm

import (
	"testing"

	"github.com/driftwl/kmsdrm/kms"
)

func TestPlaneCanAttach(t *testing.T) {
	p := &Plane{PossibleCrtcs: 0b0101}
	if !p.canAttach(0) {
		t.Error("expected plane to attach to crtc index 0")
	}
	if p.canAttach(1) {
		t.Error("did not expect plane to attach to crtc index 1")
	}
	if !p.canAttach(2) {
		t.Error("expected plane to attach to crtc index 2")
	}
}

func TestPlaneSupportsFormat(t *testing.T) {
	p := &Plane{Formats: []FormatModifiers{
		{Format: 1, Modifiers: []uint64{kms.FormatModLinear, 42}},
	}}

	if !p.supportsFormat(1, kms.FormatModLinear) {
		t.Error("expected linear modifier to be supported")
	}
	if !p.supportsFormat(1, 42) {
		t.Error("expected modifier 42 to be supported")
	}
	if p.supportsFormat(1, 7) {
		t.Error("did not expect unlisted modifier to be supported")
	}
	if p.supportsFormat(2, kms.FormatModLinear) {
		t.Error("did not expect unlisted format to be supported")
	}
	if !p.supportsFormat(1, kms.FormatModInvalid) {
		t.Error("expected FormatModInvalid to match any modifier the plane lists for the format")
	}
}

func TestAssignPlanesFirstFit(t *testing.T) {
	crtcs := []*Crtc{{ID: 1}, {ID: 2}}
	primary0 := &Plane{ID: 10, Type: PlanePrimary, PossibleCrtcs: 0b01}
	cursor0 := &Plane{ID: 11, Type: PlaneCursor, PossibleCrtcs: 0b01}
	primary1 := &Plane{ID: 12, Type: PlanePrimary, PossibleCrtcs: 0b10}
	overlay := &Plane{ID: 13, Type: PlaneOverlay, PossibleCrtcs: 0b11}

	assignPlanes(crtcs, []*Plane{primary0, cursor0, primary1, overlay})

	if crtcs[0].PrimaryPlane != primary0 {
		t.Errorf("crtc 0 primary = %v, want %v", crtcs[0].PrimaryPlane, primary0)
	}
	if crtcs[0].CursorPlane != cursor0 {
		t.Errorf("crtc 0 cursor = %v, want %v", crtcs[0].CursorPlane, cursor0)
	}
	if crtcs[1].PrimaryPlane != primary1 {
		t.Errorf("crtc 1 primary = %v, want %v", crtcs[1].PrimaryPlane, primary1)
	}
	if crtcs[1].CursorPlane != nil {
		t.Errorf("crtc 1 cursor = %v, want nil", crtcs[1].CursorPlane)
	}
}

func TestAssignPlanesDoesNotOverwriteFirstMatch(t *testing.T) {
	crtcs := []*Crtc{{ID: 1}}
	first := &Plane{ID: 1, Type: PlanePrimary, PossibleCrtcs: 0b1}
	second := &Plane{ID: 2, Type: PlanePrimary, PossibleCrtcs: 0b1}

	assignPlanes(crtcs, []*Plane{first, second})

	if crtcs[0].PrimaryPlane != first {
		t.Errorf("expected first-fit to keep the first matching primary plane, got %v", crtcs[0].PrimaryPlane)
	}
}
