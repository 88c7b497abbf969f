package kmsdrm

import (
	"github.com/driftwl/kmsdrm/internal/cvt"
	"github.com/driftwl/kmsdrm/kms"
)

// Mode is a display mode: pixel dimensions, refresh rate in
// millihertz, whether the kernel flagged it preferred, and the raw
// kernel timing blob backing it (present for kernel-reported modes,
// absent for a compositor-requested custom size until synthesized).
type Mode struct {
	Width, Height int
	RefreshMilliHz uint32
	Preferred      bool

	Blob    *kms.Info
	hasBlob bool
}

// newModeFromInfo converts a kernel-reported kms.Info into a Mode,
// rejecting interlaced modes per spec invariant 7. ok is false for a
// rejected mode.
func newModeFromInfo(info kms.Info) (Mode, bool) {
	if info.Flags&kms.ModeFlagInterlace != 0 {
		return Mode{}, false
	}
	blob := info
	m := Mode{
		Width:          int(info.Hdisplay),
		Height:         int(info.Vdisplay),
		RefreshMilliHz: calculateRefreshMilliHz(info),
		Preferred:      info.Type&kms.ModeTypePreferred != 0,
		Blob:           &blob,
		hasBlob:        true,
	}
	return m, true
}

// calculateRefreshMilliHz computes the refresh rate in millihertz
// from a raw mode timing, the formula spec.md §8 invariant 8 pins:
// round((clock*1e6 + vtotal/2) / (htotal*vtotal)) scaled for
// interlace/dblscan/vscan.
func calculateRefreshMilliHz(info kms.Info) uint32 {
	htotal := uint64(info.Htotal)
	vtotal := uint64(info.Vtotal)
	if htotal == 0 || vtotal == 0 {
		return 0
	}

	refresh := (uint64(info.Clock)*1_000_000 + vtotal/2) / (htotal * vtotal)

	if info.Flags&kms.ModeFlagInterlace != 0 {
		refresh *= 2
	}
	if info.Flags&kms.ModeFlagDblScan != 0 {
		refresh /= 2
	}
	vscan := uint64(info.Vscan)
	if vscan > 1 {
		refresh /= vscan
	}

	// Clock is in kHz, so clock*1e6 over the frame's pixel count is
	// already in millihertz, the stored unit.
	return uint32(refresh)
}

// ensureBlob synthesizes a raw CVT-reduced-blanking timing for a mode
// that has no kernel-reported blob — a compositor-requested custom
// size — and caches it on the Mode.
func (m *Mode) ensureBlob() *kms.Info {
	if m.hasBlob && m.Blob != nil {
		return m.Blob
	}

	t := cvt.Compute(m.Width, m.Height, m.RefreshMilliHz)
	blob := kms.Info{
		Clock:      t.ClockKHz,
		Hdisplay:   t.HDisplay,
		HsyncStart: t.HSyncStart,
		HsyncEnd:   t.HSyncEnd,
		Htotal:     t.HTotal,
		Vdisplay:   t.VDisplay,
		VsyncStart: t.VSyncStart,
		VsyncEnd:   t.VSyncEnd,
		Vtotal:     t.VTotal,
		Vscan:      1,
		Flags:      kms.ModeFlagNHSync | kms.ModeFlagPVSync,
	}
	name := cvt.Name(m.Width, m.Height)
	copy(blob.Name[:], name)

	m.Blob = &blob
	m.hasBlob = true
	return m.Blob
}
