package kmsdrm

// Output is the compositor-facing abstraction of a connected display
// (spec §4.9). It exists only while its Connector is CONNECTED.
type Output struct {
	Backend   *Backend
	Connector *Connector
	Name      string
	Swapchain Allocator

	state OutputState

	framePendingIdle bool

	OnPresent func(PresentEvent)
	OnFrame   func()
	OnCommit  func()
	OnDestroy func()
}

// newOutput creates the Output for a newly connected connector,
// naming it after the connector per spec (e.g. "HDMI-A-1").
func newOutput(backend *Backend, conn *Connector) *Output {
	return &Output{Backend: backend, Connector: conn, Name: conn.Name}
}

// Test validates state without applying it to hardware.
func (o *Output) Test(state OutputState) (bool, error) {
	return commitOutput(o, state, true)
}

// Commit applies state to hardware, subject to the preconditions in
// spec §4.6.
func (o *Output) Commit(state OutputState) (bool, error) {
	ok, err := commitOutput(o, state, false)
	if ok && o.OnCommit != nil {
		o.OnCommit()
	}
	if ok {
		// Keep the last committed mode across commits that do not
		// carry one, so Backend.Restore can re-apply it.
		prevMode := o.state.Mode
		o.state = state
		if state.Committed&CommittedMode == 0 {
			o.state.Mode = prevMode
		}
	}
	return ok, err
}

// MaxCursorSize reports the backend's cached cursor plane size cap.
func (o *Output) MaxCursorSize() (width, height uint64) {
	return o.Backend.Caps.CursorWidth, o.Backend.Caps.CursorHeight
}

// ScheduleFrame is a no-op while a flip is pending; otherwise it fires
// a frame event on the next dispatch turn (spec §4.9). Since this
// module's dispatch loop is driven synchronously by DispatchEvents,
// "next dispatch turn" is the next DispatchEvents call.
func (o *Output) ScheduleFrame() {
	if o.Connector.flip.pending {
		return
	}
	o.framePendingIdle = true
}

// fireDestroy fires the destroy event (spec connector state machine
// CONNECTED→DISCONNECTED). It does not detach the Output; the
// backend's onDisconnect clears Connector.Output after calling it.
func (o *Output) fireDestroy() {
	if o.OnDestroy != nil {
		o.OnDestroy()
	}
}
