package kmsdrm

import (
	"errors"

	"github.com/driftwl/kmsdrm/kms"
)

// CommittedField is a bit in the committed bitmask an OutputState
// carries (spec §6 "Commit inputs").
type CommittedField uint32

const (
	CommittedEnabled CommittedField = 1 << iota
	CommittedMode
	CommittedFormat
	CommittedBuffer
	CommittedAdaptiveSync
	CommittedPresentationMode
)

// OutputState is the compositor-facing commit request.
type OutputState struct {
	Committed CommittedField

	Enabled bool
	Mode    *Mode
	Format  uint32
	Buffer  Buffer

	AdaptiveSync          bool
	ImmediatePresentation bool
}

// CommitData is what the commit engine actually consumes: kernel-
// level inputs translated from an OutputState, per spec §4.6.
type CommitData struct {
	MainFB, CursorFB *Framebuffer
	ModeInfo         *kms.Info

	IsModeset  bool
	IsBlocking bool
	IsTest     bool
	Flags      uint32
}

// checkPreconditions enforces the six commit preconditions spec
// §4.6 lists, returning the first violated one.
func checkPreconditions(o *Output, state OutputState) error {
	if !o.Backend.Session.Active() {
		return ErrSessionInactive
	}
	if o.Connector.CRTC == nil {
		return ErrNoCRTC
	}
	if state.Committed&CommittedEnabled != 0 && state.Enabled && state.Mode == nil {
		return ErrNoModeOnEnable
	}
	if state.Committed&CommittedAdaptiveSync != 0 && state.AdaptiveSync && !o.Connector.VRRCapable {
		return ErrNoVRRSupport
	}
	if state.Committed&CommittedPresentationMode != 0 && state.ImmediatePresentation && !o.Backend.Caps.SupportsAsyncFlip {
		return ErrNoAsyncFlip
	}
	if state.Committed&CommittedBuffer != 0 && state.Buffer == nil {
		return ErrNoBuffer
	}
	return nil
}

// classify implements spec §4.6's commit classification.
func classify(state OutputState) (needsReconfig, blocking bool) {
	needsReconfig = state.Committed&(CommittedEnabled|CommittedFormat|CommittedMode) != 0
	blocking = needsReconfig || state.Committed&CommittedBuffer == 0
	return
}

// commitFlags computes the PAGE_FLIP_EVENT/ASYNC ioctl flags per spec
// §4.6.
func commitFlags(state OutputState, remainsEnabled bool) uint32 {
	var flags uint32
	if remainsEnabled {
		flags |= kms.PageFlipEvent
	}
	if state.Committed&CommittedPresentationMode != 0 && state.ImmediatePresentation {
		flags |= kms.PageFlipAsync
	}
	return flags
}

// resolveFB decides whether to reuse the CRTC's current front/back FB
// for the committed buffer, or import a fresh one, per spec §4.6 ("if
// the committed buffer matches the CRTC's current back or front FB,
// reuse that FB; otherwise import").
func resolveFB(gpu *GPU, caps Capabilities, plane *Plane, buf Buffer) (*Framebuffer, error) {
	if plane != nil {
		if plane.FrontFB != nil && plane.FrontFB.Source != nil && plane.FrontFB.Source.Handle() == buf.Handle() {
			return plane.FrontFB, nil
		}
		if plane.BackFB != nil && plane.BackFB.Source != nil && plane.BackFB.Source.Handle() == buf.Handle() {
			return plane.BackFB, nil
		}
	}
	return importFramebuffer(gpu, caps, buf)
}

// commitOutput runs the full commit pipeline: preconditions,
// classification, FB resolution, the engine call, and (on a
// successful non-test commit) the front/back FB rotation and stored
// refresh update.
func commitOutput(o *Output, state OutputState, isTest bool) (bool, error) {
	if err := checkPreconditions(o, state); err != nil {
		return false, err
	}

	_, blocking := classify(state)
	if !blocking && o.Connector.flip.pending {
		return false, ErrFlipPending
	}

	remainsEnabled := o.Connector.CRTC != nil && (state.Committed&CommittedEnabled == 0 || state.Enabled)
	data := &CommitData{
		IsModeset:  state.Committed&(CommittedEnabled|CommittedMode) != 0,
		IsBlocking: blocking,
		IsTest:     isTest,
		Flags:      commitFlags(state, remainsEnabled),
	}

	if state.Committed&CommittedMode != 0 && state.Mode != nil {
		data.ModeInfo = state.Mode.ensureBlob()
	}

	crtc := o.Connector.CRTC

	if state.Committed&CommittedBuffer != 0 {
		fb, err := resolveFB(o.Backend.GPU, o.Backend.Caps, crtc.PrimaryPlane, state.Buffer)
		if err != nil {
			return false, err
		}
		data.MainFB = fb
	}

	ok, err := o.Backend.Engine.Commit(o.Backend.GPU, o.Connector, data)
	if err != nil || !ok {
		if err == nil {
			err = errCommitRejected
		}
		return false, err
	}
	if isTest {
		return true, nil
	}

	applyCommitted(o, state, data, blocking)
	return true, nil
}

func applyCommitted(o *Output, state OutputState, data *CommitData, blocking bool) {
	crtc := o.Connector.CRTC
	if crtc.PrimaryPlane != nil && data.MainFB != nil {
		crtc.PrimaryPlane.BackFB = crtc.PrimaryPlane.FrontFB
		crtc.PrimaryPlane.FrontFB = data.MainFB
	}
	if crtc.CursorPlane != nil {
		crtc.CursorPlane.BackFB = nil
	}
	if state.Committed&CommittedMode != 0 && state.Mode != nil {
		crtc.RefreshMilliHz = state.Mode.RefreshMilliHz
	}
	if !blocking {
		o.Connector.flip.pending = true
	}
}

var errCommitRejected = errors.New("kmsdrm: commit engine rejected submission")
