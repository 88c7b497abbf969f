package kmsdrm

import (
	"fmt"

	"github.com/driftwl/kmsdrm/kms"
)

// ConnectionStatus mirrors the kernel's connector connection enum.
type ConnectionStatus int

const (
	StatusUninit ConnectionStatus = iota
	StatusDisconnected
	StatusConnected
)

// pendingFlip is the owning back-reference spec §9 describes for
// kernel-callback identity: the backend looks it up by a stable
// connector id rather than handing the kernel a Go pointer.
type pendingFlip struct {
	pending bool
}

// Connector represents a physical output port.
type Connector struct {
	ID     uint32
	Name   string
	Status ConnectionStatus

	Modes       []Mode
	FallbackMode Mode

	MaxBPC struct{ Min, Max uint64 }
	VRRCapable bool

	Make, Model, Serial string // EDID parsing is a documented TODO (spec §9 open question b)

	possibleCrtcs uint32
	CRTC          *Crtc

	flip pendingFlip

	// Output is non-nil iff Status == StatusConnected (spec invariant
	// 1); Connector owns it, Output's view back is non-owning.
	Output *Output

	propCRTCID     uint32
	propNonDesktop uint32
	propMaxBPC     uint32
	propEDID       uint32
}

// newConnector creates a fresh, UNINIT connector record for an id
// first seen during a scan.
func newConnector(id uint32) *Connector {
	return &Connector{ID: id, Status: StatusUninit}
}

// buildModes converts a kernel connector's raw mode list into Modes,
// skipping interlaced entries and picking a fallback (the kernel's
// preferred mode, or the first mode if none is marked preferred).
func buildModes(raw kms.Connector) ([]Mode, Mode) {
	var modes []Mode
	var fallback Mode
	haveFallback := false

	for _, info := range raw.Modes {
		m, ok := newModeFromInfo(info)
		if !ok {
			continue
		}
		modes = append(modes, m)
		if m.Preferred || !haveFallback {
			fallback = m
			haveFallback = m.Preferred || !haveFallback
		}
	}
	return modes, fallback
}

// selectCRTC picks a CRTC for conn, preferring its currently-assigned
// CRTC (if any and not already claimed by another connector in this
// scan), else falling back to the first free CRTC compatible with one
// of the connector's encoders. Ported from the teacher's own
// findCrtc, generalized from a single static modeset to repeated
// rescans against a live claimed-set.
func selectCRTC(gpu *GPU, raw kms.Connector, crtcs []*Crtc, claimed map[uint32]bool) (*Crtc, error) {
	if raw.EncoderID != 0 {
		enc, err := kms.GetEncoder(gpu.File, raw.EncoderID)
		if err == nil && enc.CrtcID != 0 && !claimed[enc.CrtcID] {
			if c := findCrtcByID(crtcs, enc.CrtcID); c != nil {
				return c, nil
			}
		}
	}

	for _, encID := range raw.Encoders {
		enc, err := kms.GetEncoder(gpu.File, encID)
		if err != nil {
			continue
		}
		for i, c := range crtcs {
			if enc.PossibleCrtcs&(1<<uint(i)) == 0 {
				continue
			}
			if claimed[c.ID] {
				continue
			}
			return c, nil
		}
	}

	return nil, fmt.Errorf("no suitable crtc for connector %d", raw.ID)
}

func findCrtcByID(crtcs []*Crtc, id uint32) *Crtc {
	for _, c := range crtcs {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// statusFromKMS converts the kernel's raw connection value.
func statusFromKMS(v uint32) ConnectionStatus {
	switch v {
	case kms.Connected:
		return StatusConnected
	case kms.Disconnected:
		return StatusDisconnected
	default:
		return StatusUninit
	}
}
