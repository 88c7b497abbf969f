package kmsdrm

import (
	"testing"
	"time"
)

// fakeSession is the minimal Session stand-in commit_test.go and
// output_test.go use to drive checkPreconditions without a real VT.
type fakeSession struct {
	active bool
}

func (f *fakeSession) SeatName() string                    { return "seat0" }
func (f *fakeSession) Active() bool                        { return f.active }
func (f *fakeSession) OnActiveChanged(func(active bool))   {}
func (f *fakeSession) WaitActive(time.Duration) bool        { return f.active }
func (f *fakeSession) Close() error                         { return nil }

// fakeBuffer is a minimal Buffer stand-in; it exposes no dmabuf
// planes since the preconditions/classification tests never reach FB
// import.
type fakeBuffer struct {
	handle       uintptr
	unimportable bool
}

func (b *fakeBuffer) Dmabuf() []DmabufPlane  { return nil }
func (b *fakeBuffer) Width() int             { return 1920 }
func (b *fakeBuffer) Height() int            { return 1080 }
func (b *fakeBuffer) Format() uint32         { return 0 }
func (b *fakeBuffer) Modifier() uint64       { return 0 }
func (b *fakeBuffer) Unimportable() bool     { return b.unimportable }
func (b *fakeBuffer) SetUnimportable()       { b.unimportable = true }
func (b *fakeBuffer) Handle() uintptr        { return b.handle }

func newTestOutput(active bool, crtc *Crtc) *Output {
	conn := &Connector{ID: 1, CRTC: crtc}
	backend := &Backend{Session: &fakeSession{active: active}}
	o := &Output{Backend: backend, Connector: conn}
	conn.Output = o
	return o
}

func TestCheckPreconditionsSessionInactive(t *testing.T) {
	o := newTestOutput(false, &Crtc{ID: 1})
	if err := checkPreconditions(o, OutputState{}); err != ErrSessionInactive {
		t.Fatalf("err = %v, want ErrSessionInactive", err)
	}
}

func TestCheckPreconditionsNoCRTC(t *testing.T) {
	o := newTestOutput(true, nil)
	if err := checkPreconditions(o, OutputState{}); err != ErrNoCRTC {
		t.Fatalf("err = %v, want ErrNoCRTC", err)
	}
}

func TestCheckPreconditionsNoModeOnEnable(t *testing.T) {
	o := newTestOutput(true, &Crtc{ID: 1})
	state := OutputState{Committed: CommittedEnabled, Enabled: true}
	if err := checkPreconditions(o, state); err != ErrNoModeOnEnable {
		t.Fatalf("err = %v, want ErrNoModeOnEnable", err)
	}
}

func TestCheckPreconditionsNoVRRSupport(t *testing.T) {
	o := newTestOutput(true, &Crtc{ID: 1})
	o.Connector.VRRCapable = false
	state := OutputState{Committed: CommittedAdaptiveSync, AdaptiveSync: true}
	if err := checkPreconditions(o, state); err != ErrNoVRRSupport {
		t.Fatalf("err = %v, want ErrNoVRRSupport", err)
	}
}

func TestCheckPreconditionsNoAsyncFlip(t *testing.T) {
	o := newTestOutput(true, &Crtc{ID: 1})
	state := OutputState{Committed: CommittedPresentationMode, ImmediatePresentation: true}
	if err := checkPreconditions(o, state); err != ErrNoAsyncFlip {
		t.Fatalf("err = %v, want ErrNoAsyncFlip", err)
	}
}

func TestCheckPreconditionsNoBuffer(t *testing.T) {
	o := newTestOutput(true, &Crtc{ID: 1})
	state := OutputState{Committed: CommittedBuffer}
	if err := checkPreconditions(o, state); err != ErrNoBuffer {
		t.Fatalf("err = %v, want ErrNoBuffer", err)
	}
}

func TestCheckPreconditionsOK(t *testing.T) {
	o := newTestOutput(true, &Crtc{ID: 1})
	mode := Mode{Width: 1920, Height: 1080}
	state := OutputState{Committed: CommittedEnabled | CommittedMode, Enabled: true, Mode: &mode}
	if err := checkPreconditions(o, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClassifyModesetIsAlwaysBlocking(t *testing.T) {
	needsReconfig, blocking := classify(OutputState{Committed: CommittedEnabled})
	if !needsReconfig || !blocking {
		t.Errorf("needsReconfig=%v blocking=%v, want both true for a mode-affecting commit", needsReconfig, blocking)
	}
}

func TestClassifyBufferOnlyIsNonBlocking(t *testing.T) {
	needsReconfig, blocking := classify(OutputState{Committed: CommittedBuffer})
	if needsReconfig {
		t.Error("did not expect a buffer-only commit to need reconfig")
	}
	if blocking {
		t.Error("expected a buffer-only commit to be non-blocking")
	}
}

func TestClassifyNoBufferIsBlocking(t *testing.T) {
	_, blocking := classify(OutputState{})
	if !blocking {
		t.Error("expected a commit with no buffer bit to be blocking")
	}
}

func TestCommitFlagsPageFlipEventWhenRemainsEnabled(t *testing.T) {
	flags := commitFlags(OutputState{}, true)
	if flags == 0 {
		t.Error("expected PAGE_FLIP_EVENT to be set when the output remains enabled")
	}
}

func TestCommitFlagsAsyncWhenImmediatePresentation(t *testing.T) {
	state := OutputState{Committed: CommittedPresentationMode, ImmediatePresentation: true}
	flags := commitFlags(state, true)
	withoutAsync := commitFlags(OutputState{}, true)
	if flags == withoutAsync {
		t.Error("expected the async flag to be set for immediate presentation")
	}
}

func TestResolveFBReusesFrontFB(t *testing.T) {
	buf := &fakeBuffer{handle: 42}
	front := &Framebuffer{ID: 7, Source: buf}
	plane := &Plane{FrontFB: front}

	fb, err := resolveFB(nil, Capabilities{}, plane, buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb != front {
		t.Errorf("resolveFB() = %v, want the reused front FB %v", fb, front)
	}
}

func TestResolveFBReusesBackFB(t *testing.T) {
	buf := &fakeBuffer{handle: 99}
	back := &Framebuffer{ID: 8, Source: buf}
	plane := &Plane{BackFB: back}

	fb, err := resolveFB(nil, Capabilities{}, plane, buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb != back {
		t.Errorf("resolveFB() = %v, want the reused back FB %v", fb, back)
	}
}

func TestApplyCommittedRotatesFrontBack(t *testing.T) {
	crtc := &Crtc{PrimaryPlane: &Plane{}}
	o := &Output{Connector: &Connector{CRTC: crtc}}
	oldFront := &Framebuffer{ID: 1}
	crtc.PrimaryPlane.FrontFB = oldFront
	newFB := &Framebuffer{ID: 2}

	applyCommitted(o, OutputState{Committed: CommittedBuffer}, &CommitData{MainFB: newFB}, false)

	if crtc.PrimaryPlane.FrontFB != newFB {
		t.Errorf("front FB = %v, want %v", crtc.PrimaryPlane.FrontFB, newFB)
	}
	if crtc.PrimaryPlane.BackFB != oldFront {
		t.Errorf("back FB = %v, want the prior front FB %v", crtc.PrimaryPlane.BackFB, oldFront)
	}
	if !o.Connector.flip.pending {
		t.Error("expected a non-blocking commit to mark a flip pending")
	}
}
