package kmsdrm

import "github.com/driftwl/kmsdrm/kms"

// maxCRTCs is the hard cap spec §4.3 imposes, matching the width of
// the possible_crtcs bitmask this backend relies on for plane
// assignment.
const maxCRTCs = 32

// Crtc represents one display pipeline: a scanout engine that reads
// from planes and drives a connector.
type Crtc struct {
	ID        uint32
	GammaSize uint32

	PrimaryPlane *Plane
	CursorPlane  *Plane

	RefreshMilliHz uint32

	propModeID      uint32
	propActive      uint32
	propVRREnabled  uint32
}

// newCrtc converts a kernel-reported kms.Crtc into a Crtc record, the
// rest of its fields (plane assignment, property ids) filled in by
// resource enumeration.
func newCrtc(raw kms.Crtc) *Crtc {
	return &Crtc{
		ID:             raw.ID,
		GammaSize:      raw.GammaSize,
		RefreshMilliHz: calculateRefreshMilliHz(raw.Mode),
	}
}
