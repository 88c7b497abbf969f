package kmsdrm

import "time"

// Session is the seat/session collaborator the backend shell depends
// on (§6): it knows whether this process currently owns the display.
// Device nodes are opened with the session package's OpenDevice
// function, not through this interface. The session package's
// *session.Session satisfies this with a real VT-switch
// implementation; tests supply a fake.
type Session interface {
	SeatName() string
	Active() bool
	OnActiveChanged(func(active bool))
	WaitActive(timeout time.Duration) bool
	Close() error
}

// HardwareDatabase enumerates candidate GPU device nodes, playing the
// role a real udev database would. hwdb.Scan-backed in production.
type HardwareDatabase interface {
	Scan() ([]HardwareCard, error)
}

// HardwareCard is one enumerable GPU entry.
type HardwareCard struct {
	DevPath string
	Seat    string
	BootVGA bool
}

// Buffer is a client-supplied GPU buffer eligible for import as a
// scanout framebuffer: one dmabuf fd, stride and offset per plane,
// plus format and modifier.
type Buffer interface {
	// Dmabuf returns per-plane (fd, pitch, offset) triples. An empty
	// result means the buffer exposes no dmabuf.
	Dmabuf() []DmabufPlane

	Width() int
	Height() int
	Format() uint32
	Modifier() uint64

	// Unimportable reports and sets the "once failed KMS import" tag
	// so repeat import attempts short-circuit without calling the
	// kernel, per spec's FB invariant.
	Unimportable() bool
	SetUnimportable()

	// Handle uniquely identifies the underlying buffer allocation, so
	// the commit engine can tell a reused buffer from a fresh one
	// (spec invariant: a buffer matching the current front/back FB is
	// reused rather than re-imported).
	Handle() uintptr
}

// DmabufPlane is a single plane's dmabuf descriptor.
type DmabufPlane struct {
	FD     int32
	Pitch  uint32
	Offset uint32
}

// Allocator is the opaque collaborator a consumer supplies for
// swapchain-owned buffers, attached to an Output only once the
// backend is "ready" (spec §6). This module ships no
// implementation.
type Allocator interface {
	Acquire(width, height int, format uint32) (Buffer, error)
}

// OutputEvents is the consumer-facing event surface (spec §6):
// newOutput plus per-output present/frame/commit/destroy.
type OutputEvents interface {
	NewOutput(o *Output)
}

// PresentFlag is a bitmask carried on a present event.
type PresentFlag uint32

const (
	PresentVSync        PresentFlag = 1 << 0
	PresentHWClock      PresentFlag = 1 << 1
	PresentHWCompletion PresentFlag = 1 << 2
	PresentZeroCopy     PresentFlag = 1 << 3
)

// PresentEvent mirrors SPresentEvent from spec §4.7/§6.
type PresentEvent struct {
	Presented bool
	When      time.Time
	Sequence  uint32
	RefreshNs int64
	Flags     PresentFlag
}
