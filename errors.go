package kmsdrm

import "errors"

var (
	// ErrNoDevice is returned by NewBackend when the hardware database
	// has no seat-matching, KMS-capable GPU.
	ErrNoDevice = errors.New("kmsdrm: no suitable GPU device found")

	// ErrMissingCapability is returned when a required driver
	// capability (PRIME import, in-vblank events, monotonic
	// timestamps, universal planes) is absent.
	ErrMissingCapability = errors.New("kmsdrm: required capability missing")

	// ErrTooManyCRTCs is returned when the kernel reports more than 32
	// CRTCs, the width of the possible_crtcs bitmask this backend
	// relies on.
	ErrTooManyCRTCs = errors.New("kmsdrm: more than 32 CRTCs reported")

	// ErrSessionInactive is returned by Commit when the session is not
	// active (the process does not currently own the display).
	ErrSessionInactive = errors.New("kmsdrm: session is not active")

	// ErrNoCRTC is returned by Commit when the connector has no
	// attached CRTC.
	ErrNoCRTC = errors.New("kmsdrm: connector has no attached crtc")

	// ErrNoModeOnEnable is returned when a commit enables the output
	// but carries no mode.
	ErrNoModeOnEnable = errors.New("kmsdrm: no mode on enable commit")

	// ErrNoVRRSupport is returned when adaptive sync is requested on a
	// non-VRR-capable connector.
	ErrNoVRRSupport = errors.New("kmsdrm: connector does not support VRR")

	// ErrNoAsyncFlip is returned when immediate presentation is
	// requested but the driver does not support async page-flip.
	ErrNoAsyncFlip = errors.New("kmsdrm: driver does not support async page-flip")

	// ErrNoBuffer is returned when BUFFER is committed but no buffer
	// is present.
	ErrNoBuffer = errors.New("kmsdrm: buffer committed but none provided")

	// ErrFlipPending is returned by a non-blocking commit when a
	// page-flip is already outstanding on this connector.
	ErrFlipPending = errors.New("kmsdrm: cannot commit when a page-flip is awaiting")

	// ErrBufferUnimportable is returned when a buffer was previously
	// tagged unimportable and a fresh attempt is short-circuited.
	ErrBufferUnimportable = errors.New("kmsdrm: buffer is tagged unimportable")

	// ErrModifierUnsupported is returned when a buffer declares a
	// non-linear, non-invalid modifier but the driver lacks
	// AddFB2-with-modifiers support.
	ErrModifierUnsupported = errors.New("kmsdrm: modifier unsupported without AddFB2 modifiers capability")

	// ErrNoDmabuf is returned when a buffer exposes no dmabuf planes.
	ErrNoDmabuf = errors.New("kmsdrm: buffer has no dmabuf planes")
)
