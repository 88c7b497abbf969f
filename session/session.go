// Package session provides the seat/session handoff the backend needs
// before it may legally set a mode: knowledge of whether this process
// currently owns the display (the "active" flag), and VT-switch
// notifications when that ownership changes. It reimplements the
// logind/libseat contract directly against the kernel's virtual
// terminal ioctls and POSIX signals, since no cgo seat library is
// available in this module.
package session

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/driftwl/kmsdrm/internal/logx"
	"github.com/driftwl/kmsdrm/ioctl"
	"github.com/driftwl/kmsdrm/kms"
)

// Linux VT ioctl numbers (linux/vt.h). golang.org/x/sys/unix does not
// wrap these, so they're declared directly the way the ioctl package
// expects: already-encoded legacy command numbers, not built through
// ioctl.NewCode.
const (
	vtGetMode = 0x5601
	vtSetMode = 0x5602
	vtRelDisp = 0x5605
)

// vtProcess is the .mode value of struct vt_mode that selects
// signal-driven switching; vtAckAcq is the VT_RELDISP argument that
// acknowledges a VT acquire.
const (
	vtProcess = 1
	vtAckAcq  = 2
)

type vtMode struct {
	mode   int8
	waitv  int8
	relsig int16
	acqsig int16
	frsig  int16
}

// ActivationTimeout is the 5s timeout for a WaitActive call and
// activationPoll the 250ms interval at which WaitActive polls.
// NewBackend does not call WaitActive; it proceeds without waiting
// for the session to become active.
const (
	ActivationTimeout = 5 * time.Second
	activationPoll    = 250 * time.Millisecond
)

// Session tracks whether this process currently owns the display and
// notifies registered callbacks when that changes via VT-switch
// signals.
type Session struct {
	mu       sync.Mutex
	tty      *os.File
	active   bool
	watchers []func(bool)
	sigc     chan os.Signal
	stop     chan struct{}
	seatName string
}

// SeatName returns the seat this session was opened against.
func (s *Session) SeatName() string {
	return s.seatName
}

// Open acquires the controlling VT and arms signal-driven VT
// switching. seatName is currently informational only (single-seat
// hosts are the only ones this module targets), mirroring the
// "defaulting to the standard seat" behavior the hardware database
// documents.
func Open(seatName string) (*Session, error) {
	tty, err := openControllingTTY()
	if err != nil {
		return nil, fmt.Errorf("open controlling tty: %w", err)
	}

	s := &Session{tty: tty, active: true, sigc: make(chan os.Signal, 4), stop: make(chan struct{}), seatName: seatName}

	mode := &vtMode{mode: vtProcess, relsig: int16(unix.SIGUSR1), acqsig: int16(unix.SIGUSR2)}
	if err := ioctl.Do(tty.Fd(), vtSetMode, uintptr(unsafe.Pointer(mode))); err != nil {
		tty.Close()
		return nil, fmt.Errorf("VT_SETMODE: %w", err)
	}

	signal.Notify(s.sigc, unix.SIGUSR1, unix.SIGUSR2)
	go s.dispatchLoop()

	logx.Debug("session opened", "seat", seatName)
	return s, nil
}

func openControllingTTY() (*os.File, error) {
	for _, path := range []string{"/dev/tty", "/dev/tty0", "/dev/console"} {
		f, err := os.OpenFile(path, os.O_RDWR, 0)
		if err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("no controlling tty found")
}

// Active reports whether this process currently owns the display.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// OnActiveChanged registers a callback invoked whenever Active's value
// flips, on the goroutine that dispatches VT signals.
func (s *Session) OnActiveChanged(fn func(active bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// WaitActive blocks until the session becomes active or timeout
// elapses, polling at activationPoll, the Go-native form of the
// "5-second wait in 250ms slices" activation contract.
func (s *Session) WaitActive(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if s.Active() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(activationPoll)
	}
}

func (s *Session) dispatchLoop() {
	for {
		select {
		case <-s.stop:
			return
		case sig := <-s.sigc:
			switch sig {
			case unix.SIGUSR1:
				s.setActive(false)
				_ = ioctl.Do(s.tty.Fd(), vtRelDisp, 1)
			case unix.SIGUSR2:
				_ = ioctl.Do(s.tty.Fd(), vtRelDisp, uintptr(vtAckAcq))
				s.setActive(true)
			}
		}
	}
}

func (s *Session) setActive(active bool) {
	s.mu.Lock()
	if s.active == active {
		s.mu.Unlock()
		return
	}
	s.active = active
	watchers := append([]func(bool){}, s.watchers...)
	s.mu.Unlock()

	logx.Debug("session active changed", "active", active)
	for _, w := range watchers {
		w(active)
	}
}

// DispatchPendingEventsAsync drains any buffered VT signals without
// blocking, used by WaitActive callers that want to pump the loop
// themselves instead of sleeping.
func (s *Session) DispatchPendingEventsAsync() {
	for {
		select {
		case sig := <-s.sigc:
			switch sig {
			case unix.SIGUSR1:
				s.setActive(false)
				_ = ioctl.Do(s.tty.Fd(), vtRelDisp, 1)
			case unix.SIGUSR2:
				_ = ioctl.Do(s.tty.Fd(), vtRelDisp, uintptr(vtAckAcq))
				s.setActive(true)
			}
		default:
			return
		}
	}
}

// Close releases the controlling tty and stops signal dispatch.
func (s *Session) Close() error {
	close(s.stop)
	signal.Stop(s.sigc)
	return s.tty.Close()
}

// OpenDevice opens a candidate DRM device node read/write and probes
// it for master-capable KMS support, the Go equivalent of
// CSessionDevice::openIfKMS: a render-only node opens fine but fails
// the master probe and is reported as not KMS-capable.
func OpenDevice(path string) (*os.File, bool) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		logx.Debug("failed to open device node", "path", path, "err", err)
		return nil, false
	}

	if err := kms.SetMaster(f); err != nil {
		logx.Debug("device is not KMS-master-capable", "path", path, "err", err)
		f.Close()
		return nil, false
	}
	_ = kms.DropMaster(f)

	return f, true
}
