package kmsdrm

import "github.com/driftwl/kmsdrm/kms"

// PlaneType mirrors the kernel's plane "type" enum property.
type PlaneType int

const (
	PlaneOverlay PlaneType = iota
	PlanePrimary
	PlaneCursor
)

// FormatModifiers pairs a pixel format with the list of modifiers the
// plane supports it under.
type FormatModifiers struct {
	Format    uint32
	Modifiers []uint64
}

// Plane represents one hardware plane.
type Plane struct {
	ID            uint32
	Type          PlaneType
	PossibleCrtcs uint32

	Formats []FormatModifiers

	FrontFB, BackFB *Framebuffer

	propCRTCID uint32
	propFBID   uint32

	// Geometry properties an atomic commit must carry alongside
	// CRTC_ID/FB_ID whenever the plane transitions from disabled to
	// enabled (spec §4.10's "src_*/crtc_*" cached id set).
	propSrcX, propSrcY, propSrcW, propSrcH     uint32
	propCrtcX, propCrtcY, propCrtcW, propCrtcH uint32
}

// canAttach reports whether this plane may be attached to the CRTC at
// bit position crtcIndex in the global CRTC list.
func (p *Plane) canAttach(crtcIndex int) bool {
	return p.PossibleCrtcs&(1<<uint(crtcIndex)) != 0
}

// supportsFormat reports whether format/modifier is in the plane's
// supported set. FormatModInvalid matches any modifier the plane
// lists for the format (the "driver doesn't care" sentinel).
func (p *Plane) supportsFormat(format uint32, modifier uint64) bool {
	for _, fm := range p.Formats {
		if fm.Format != format {
			continue
		}
		if modifier == kms.FormatModInvalid {
			return true
		}
		for _, m := range fm.Modifiers {
			if m == modifier {
				return true
			}
		}
	}
	return false
}

// assignPlanes performs the first-fit primary/cursor plane assignment
// per spec §4.3: each CRTC gets at most one primary and one cursor
// plane, taken in plane-list order.
func assignPlanes(crtcs []*Crtc, planes []*Plane) {
	for i, c := range crtcs {
		for _, p := range planes {
			if !p.canAttach(i) {
				continue
			}
			switch p.Type {
			case PlanePrimary:
				if c.PrimaryPlane == nil {
					c.PrimaryPlane = p
				}
			case PlaneCursor:
				if c.CursorPlane == nil {
					c.CursorPlane = p
				}
			}
		}
	}
}
