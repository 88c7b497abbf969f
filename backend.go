package kmsdrm

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/driftwl/kmsdrm/config"
	"github.com/driftwl/kmsdrm/hwdb"
	"github.com/driftwl/kmsdrm/internal/logx"
	"github.com/driftwl/kmsdrm/kms"
	"github.com/driftwl/kmsdrm/session"
)

// Backend is the top-level orchestrator: session lifecycle, the
// device/resource graph, and event dispatch (spec "Backend shell").
type Backend struct {
	GPU    *GPU
	Caps   Capabilities
	Engine CommitEngine

	Session Session
	HWDB    HardwareDatabase

	Crtcs      []*Crtc
	Planes     []*Plane
	Connectors map[uint32]*Connector

	Allocator Allocator

	ready bool

	NewOutput func(*Output)

	hotplug       <-chan hwdb.Event
	hotplugCancel context.CancelFunc
}

// hwdbAdapter satisfies HardwareDatabase against the concrete hwdb
// package, keeping backend.go decoupled from hwdb's Card type so
// tests can substitute a fake HardwareDatabase.
type hwdbAdapter struct{}

func (hwdbAdapter) Scan() ([]HardwareCard, error) {
	cards, err := hwdb.Scan()
	if err != nil {
		return nil, err
	}
	out := make([]HardwareCard, len(cards))
	for i, c := range cards {
		out[i] = HardwareCard{DevPath: c.DevPath, Seat: c.Seat, BootVGA: c.BootVGA}
	}
	return out, nil
}

// sessionAdapter satisfies the Session interface against the concrete
// session package.
type sessionAdapter struct{ *session.Session }

// NewBackend opens a session, scans devices, picks the first
// seat-matching KMS-capable GPU, probes capabilities, enumerates
// resources, and scans connectors — spec §4.1-§4.4 end to end.
func NewBackend(opts config.Options) (*Backend, error) {
	seatName := opts.SeatName
	if seatName == "" {
		seatName = "seat0"
	}

	sess, err := session.Open(seatName)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	b := &Backend{
		Session:    sessionAdapter{sess},
		HWDB:       hwdbAdapter{},
		Connectors: map[uint32]*Connector{},
	}

	if err := b.openDevice(opts); err != nil {
		sess.Close()
		return nil, err
	}
	if err := b.probeCapabilities(); err != nil {
		b.GPU.Close()
		sess.Close()
		return nil, err
	}
	b.selectEngine(opts)
	if err := b.enumerateResources(); err != nil {
		b.GPU.Close()
		sess.Close()
		return nil, err
	}
	if err := b.ScanConnectors(); err != nil {
		b.GPU.Close()
		sess.Close()
		return nil, err
	}

	b.ready = true
	for _, c := range b.Connectors {
		if c.Output != nil && b.NewOutput != nil {
			b.NewOutput(c.Output)
		}
	}

	// Re-commit every live output when the session regains the
	// display (spec §4.8), mirroring the original's
	// changeActive-to-restoreAfterVT wiring.
	b.Session.OnActiveChanged(func(active bool) {
		if active {
			b.Restore()
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	b.hotplugCancel = cancel
	if events, err := hwdb.Watch(ctx); err != nil {
		logx.Debug("hotplug watch unavailable", "err", err)
		cancel()
	} else {
		b.hotplug = events
	}

	return b, nil
}

// openDevice implements spec §4.1: enumerate from the hardware
// database, filter by seat, skip non-KMS devices, promote boot_vga.
func (b *Backend) openDevice(opts config.Options) error {
	var candidates []HardwareCard
	if len(opts.DevicePaths) > 0 {
		for _, p := range opts.DevicePaths {
			candidates = append(candidates, HardwareCard{DevPath: p, Seat: b.Session.SeatName()})
		}
	} else {
		cards, err := b.HWDB.Scan()
		if err != nil {
			return fmt.Errorf("scan hardware database: %w", err)
		}
		candidates = cards
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].BootVGA && !candidates[j].BootVGA
	})

	seat := b.Session.SeatName()
	for _, c := range candidates {
		if c.Seat != "" && seat != "" && c.Seat != seat {
			logx.Debug("skipping device on other seat", "path", c.DevPath, "seat", c.Seat)
			continue
		}
		f, ok := session.OpenDevice(c.DevPath)
		if !ok {
			continue
		}
		version, err := kms.GetVersion(f)
		driverName := ""
		if err == nil {
			driverName = version.Name
		}
		b.GPU = &GPU{File: f, Path: c.DevPath, DriverName: driverName}
		return nil
	}
	return ErrNoDevice
}

// probeCapabilities implements spec §4.2.
func (b *Backend) probeCapabilities() error {
	g := b.GPU.File

	if v, err := kms.GetCap(g, kms.CapPrime); err != nil || v&kms.PrimeCapImport == 0 {
		return fmt.Errorf("%w: PRIME import", ErrMissingCapability)
	}
	if v, err := kms.GetCap(g, kms.CapCrtcInVBlankEvent); err != nil || v == 0 {
		return fmt.Errorf("%w: in-vblank event reporting", ErrMissingCapability)
	}
	if v, err := kms.GetCap(g, kms.CapTimestampMonotonic); err != nil || v == 0 {
		return fmt.Errorf("%w: monotonic timestamps", ErrMissingCapability)
	}
	if err := kms.SetClientCap(g, kms.ClientCapUniversalPlanes, 1); err != nil {
		return fmt.Errorf("%w: universal planes", ErrMissingCapability)
	}

	var caps Capabilities
	if v, err := kms.GetCap(g, kms.CapAsyncPageFlip); err == nil {
		caps.SupportsAsyncFlip = v != 0
	}
	if v, err := kms.GetCap(g, kms.CapAddFB2Modifiers); err == nil {
		caps.SupportsAddFBWithModifiers = v != 0
	}
	caps.CursorWidth, _ = kms.GetCap(g, kms.CapCursorWidth)
	caps.CursorHeight, _ = kms.GetCap(g, kms.CapCursorHeight)
	if caps.CursorWidth == 0 {
		caps.CursorWidth = 64
	}
	if caps.CursorHeight == 0 {
		caps.CursorHeight = 64
	}

	b.Caps = caps
	return nil
}

// selectEngine opts into atomic client capability and switches the
// commit engine when the driver supports it and the caller hasn't
// pinned legacy (spec §4.2 "choice of commit backend ... made here").
func (b *Backend) selectEngine(opts config.Options) {
	if opts.ForceLegacyEngine {
		b.Engine = LegacyEngine{}
		return
	}
	if err := kms.SetClientCap(b.GPU.File, kms.ClientCapAtomic, 1); err == nil {
		b.Engine = AtomicEngine{}
		return
	}
	b.Engine = LegacyEngine{}
}

// enumerateResources implements spec §4.3.
func (b *Backend) enumerateResources() error {
	res, err := kms.GetResources(b.GPU.File)
	if err != nil {
		return fmt.Errorf("get resources: %w", err)
	}
	if len(res.Crtcs) > maxCRTCs {
		return ErrTooManyCRTCs
	}

	for _, id := range res.Crtcs {
		raw, err := kms.GetCrtc(b.GPU.File, id)
		if err != nil {
			logx.Debug("failed to read crtc", "id", id, "err", err)
			continue
		}
		c := newCrtc(*raw)
		resolveCrtcProps(b.GPU, c)
		b.Crtcs = append(b.Crtcs, c)
	}

	planeIDs, err := kms.GetPlaneResources(b.GPU.File)
	if err != nil {
		logx.Debug("failed to enumerate planes", "err", err)
	}
	for _, id := range planeIDs {
		raw, err := kms.GetPlane(b.GPU.File, id)
		if err != nil {
			continue
		}
		p := &Plane{ID: raw.ID, PossibleCrtcs: raw.PossibleCrtcs}
		p.Type = planeType(b.GPU, raw.ID)
		p.Formats = planeFormats(b.GPU, raw, p.Type)
		resolvePlaneProps(b.GPU, p)
		b.Planes = append(b.Planes, p)
	}

	assignPlanes(b.Crtcs, b.Planes)
	return nil
}

func planeType(gpu *GPU, planeID uint32) PlaneType {
	v, ok, err := kms.PropertyValue(gpu.File, planeID, kms.ObjectPlane, "type")
	if err != nil || !ok {
		return PlaneOverlay
	}
	switch v {
	case kms.PlaneTypePrimary:
		return PlanePrimary
	case kms.PlaneTypeCursor:
		return PlaneCursor
	default:
		return PlaneOverlay
	}
}

// planeFormats implements spec §4.3's format/modifier registration:
// cursor planes get only linear modifiers; others read IN_FORMATS
// when the blob is available.
func planeFormats(gpu *GPU, raw *kms.Plane, typ PlaneType) []FormatModifiers {
	if typ == PlaneCursor {
		out := make([]FormatModifiers, len(raw.Formats))
		for i, f := range raw.Formats {
			out[i] = FormatModifiers{Format: f, Modifiers: []uint64{kms.FormatModLinear}}
		}
		return out
	}

	if blobID, ok, err := kms.PropertyValue(gpu.File, raw.ID, kms.ObjectPlane, "IN_FORMATS"); err == nil && ok && blobID != 0 {
		if blob, err := kms.GetPropertyBlob(gpu.File, uint32(blobID)); err == nil {
			if decoded, err := kms.DecodeFormatModifiers(blob); err == nil && len(decoded) > 0 {
				out := make([]FormatModifiers, 0, len(decoded))
				for f, mods := range decoded {
					out = append(out, FormatModifiers{Format: f, Modifiers: mods})
				}
				return out
			}
		}
	}

	out := make([]FormatModifiers, len(raw.Formats))
	for i, f := range raw.Formats {
		out[i] = FormatModifiers{Format: f, Modifiers: []uint64{kms.FormatModLinear}}
	}
	return out
}

// ScanConnectors implements spec §4.4, invoked at init, on hot-plug,
// and after VT reactivation.
func (b *Backend) ScanConnectors() error {
	res, err := kms.GetResources(b.GPU.File)
	if err != nil {
		return fmt.Errorf("get resources: %w", err)
	}

	claimed := map[uint32]bool{}
	for _, c := range b.Connectors {
		if c.CRTC != nil {
			claimed[c.CRTC.ID] = true
		}
	}

	for _, id := range res.Connectors {
		raw, err := kms.GetConnector(b.GPU.File, id)
		if err != nil {
			logx.Debug("failed to read connector", "id", id, "err", err)
			continue
		}

		conn, known := b.Connectors[id]
		if !known {
			conn = newConnector(id)
			b.Connectors[id] = conn
			resolveConnectorProps(b.GPU, conn)
		}
		conn.Name = connectorName(*raw)
		conn.possibleCrtcs = possibleCrtcsMask(b.GPU, *raw)

		newStatus := statusFromKMS(raw.Connection)
		prior := conn.Status
		conn.Status = newStatus

		switch {
		case prior != StatusConnected && newStatus == StatusConnected:
			b.onConnect(conn, *raw, claimed)
		case prior == StatusConnected && newStatus != StatusConnected:
			b.onDisconnect(conn)
		}
	}
	return nil
}

func (b *Backend) onConnect(conn *Connector, raw kms.Connector, claimed map[uint32]bool) {
	modes, fallback := buildModes(raw)
	conn.Modes = modes
	conn.FallbackMode = fallback
	conn.VRRCapable = vrrCapable(b.GPU, raw)
	resolveMaxBPC(b.GPU, conn)
	fetchEDID(b.GPU, conn)

	if crtc, err := selectCRTC(b.GPU, raw, b.Crtcs, claimed); err == nil {
		conn.CRTC = crtc
		claimed[crtc.ID] = true
	} else {
		logx.Debug("no crtc available for connector", "connector", conn.ID, "err", err)
	}

	conn.Output = newOutput(b, conn)
	if b.ready && b.NewOutput != nil {
		b.NewOutput(conn.Output)
	}
}

func (b *Backend) onDisconnect(conn *Connector) {
	if conn.Output != nil {
		conn.Output.fireDestroy()
	}
	conn.Output = nil
	conn.CRTC = nil
	conn.flip.pending = false
}

func vrrCapable(gpu *GPU, raw kms.Connector) bool {
	v, ok, err := kms.PropertyValue(gpu.File, raw.ID, kms.ObjectConnector, "vrr_capable")
	return err == nil && ok && v != 0
}

func connectorName(raw kms.Connector) string {
	kind := connectorKindName(raw.Type)
	return fmt.Sprintf("%s-%d", kind, raw.TypeID)
}

func connectorKindName(t uint32) string {
	switch t {
	case 11:
		return "HDMI-A"
	case 10:
		return "DisplayPort"
	case 14:
		return "eDP"
	case 7:
		return "LVDS"
	case 15:
		return "Virtual"
	default:
		return "Unknown"
	}
}

// possibleCrtcsMask ORs together the possible_crtcs bitmask of every
// encoder raw lists, the same encoders selectCRTC walks, cached on
// the connector for diagnostics.
func possibleCrtcsMask(gpu *GPU, raw kms.Connector) uint32 {
	var mask uint32
	for _, encID := range raw.Encoders {
		enc, err := kms.GetEncoder(gpu.File, encID)
		if err != nil {
			continue
		}
		mask |= enc.PossibleCrtcs
	}
	return mask
}

// Restore implements spec §4.8: on session reactivation, rescan
// connectors, then reset and re-commit every connector with a CRTC.
func (b *Backend) Restore() {
	if err := b.ScanConnectors(); err != nil {
		logx.Error("restore: rescan failed", "err", err)
	}

	for _, conn := range b.Connectors {
		if conn.CRTC == nil || conn.Output == nil {
			continue
		}
		if err := b.Engine.Reset(b.GPU, conn); err != nil {
			logx.Error("restore: reset failed", "connector", conn.ID, "err", err)
			continue
		}

		// Restore to the last mode the compositor actually committed,
		// falling back to the connect-time fallback/CVT-synthesized
		// mode only if nothing was ever committed.
		mode := conn.FallbackMode
		if conn.Output.state.Mode != nil {
			mode = *conn.Output.state.Mode
		}
		state := OutputState{
			Committed: CommittedEnabled | CommittedMode,
			Enabled:   true,
			Mode:      &mode,
		}
		if _, err := conn.Output.Commit(state); err != nil {
			logx.Error("restore: modeset commit failed", "connector", conn.ID, "err", err)
		}
	}
}

// PollFD returns the GPU file descriptor, for the host event loop to
// poll on (spec §6 "dispatch surface").
func (b *Backend) PollFD() uintptr {
	return b.GPU.File.Fd()
}

// DispatchEvents drains kernel page-flip completions, rescans
// connectors on any buffered hot-plug uevent, and fires any queued
// idle (ScheduleFrame) callbacks exactly once, per spec §6/§4.4.
func (b *Backend) DispatchEvents() error {
	events, err := kms.ReadEvents(b.GPU.File)
	if err != nil {
		return err
	}
	for _, ev := range events {
		b.handlePageFlip(ev)
	}

	b.drainHotplug()

	for _, conn := range b.Connectors {
		if conn.Output != nil && conn.Output.framePendingIdle {
			conn.Output.framePendingIdle = false
			if conn.Output.OnFrame != nil {
				conn.Output.OnFrame()
			}
		}
	}
	return nil
}

// drainHotplug consumes every buffered hwdb.Event without blocking,
// rescanning connectors once per event the way the original wires
// gpu->events.change straight to scanConnectors().
func (b *Backend) drainHotplug() {
	for {
		select {
		case ev, ok := <-b.hotplug:
			if !ok {
				b.hotplug = nil
				return
			}
			logx.Debug("hotplug event", "action", ev.Action, "path", ev.DevPath)
			if err := b.ScanConnectors(); err != nil {
				logx.Error("hotplug rescan failed", "err", err)
			}
		default:
			return
		}
	}
}

// handlePageFlip implements spec §4.7.
func (b *Backend) handlePageFlip(ev kms.FlipEvent) {
	connID := uint32(ev.UserData)
	conn, ok := b.Connectors[connID]
	if !ok || conn.CRTC == nil || conn.Status != StatusConnected {
		return
	}

	conn.flip.pending = false
	if conn.Output == nil {
		return
	}

	present := PresentEvent{
		Presented: b.Session.Active(),
		When:      time.Unix(int64(ev.Sec), int64(ev.Usec)*1000),
		Sequence:  ev.Sequence,
		Flags:     PresentVSync | PresentHWClock | PresentHWCompletion | PresentZeroCopy,
	}
	if conn.CRTC.RefreshMilliHz > 0 {
		present.RefreshNs = 1_000_000_000_000 / int64(conn.CRTC.RefreshMilliHz)
	}

	if conn.Output.OnPresent != nil {
		conn.Output.OnPresent(present)
	}
	if b.Session.Active() && conn.Output.OnFrame != nil {
		conn.Output.OnFrame()
	}
}

// Close releases the GPU handle, the session's controlling tty, and
// stops the hot-plug watch.
func (b *Backend) Close() error {
	if b.hotplugCancel != nil {
		b.hotplugCancel()
	}
	err := b.GPU.Close()
	if sessErr := b.Session.Close(); sessErr != nil && err == nil {
		err = sessErr
	}
	return err
}
