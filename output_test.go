package kmsdrm

import "testing"

func TestScheduleFrameNoopWhilePending(t *testing.T) {
	o := newTestOutput(true, &Crtc{ID: 1})
	o.Connector.flip.pending = true

	o.ScheduleFrame()

	if o.framePendingIdle {
		t.Error("expected ScheduleFrame to be a no-op while a flip is pending")
	}
}

func TestScheduleFrameMarksIdleWhenNotPending(t *testing.T) {
	o := newTestOutput(true, &Crtc{ID: 1})

	o.ScheduleFrame()

	if !o.framePendingIdle {
		t.Error("expected ScheduleFrame to mark a pending idle frame callback")
	}
}

func TestFireDestroyFiresOnDestroy(t *testing.T) {
	o := newTestOutput(true, &Crtc{ID: 1})
	fired := false
	o.OnDestroy = func() { fired = true }

	o.fireDestroy()

	if !fired {
		t.Error("expected fireDestroy to invoke OnDestroy")
	}
}

func TestFireDestroyToleratesNilCallback(t *testing.T) {
	o := newTestOutput(true, &Crtc{ID: 1})
	o.fireDestroy() // must not panic
}
