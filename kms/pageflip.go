package kms

import (
	"encoding/binary"
	"os"
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

// DRM_EVENT_* identifiers, the type field of a drm_event read back off
// the device fd.
const (
	EventVBlank      = 0x01
	EventFlipComplete = 0x02
)

// eventHeaderSize and eventFlipSize mirror struct drm_event and
// struct drm_event_vblank (with the trailing crtc_id/reserved pair
// added by the page_flip_handler2 ABI).
const (
	eventHeaderSize = 8
	eventFlipSize   = 32
)

// PageFlip issues DRM_IOCTL_MODE_PAGE_FLIP, requesting a page flip on
// crtcID to fbID. userData round-trips through the kernel and is
// returned verbatim in the FlipEvent delivered once the flip
// completes; the backend uses it to carry a stable connector id (see
// the design notes on kernel-callback identity).
func PageFlip(file *os.File, crtcID, fbID, flags uint32, userData uint64) error {
	p := &sysPageFlip{crtcID: crtcID, fbID: fbID, flags: flags, userData: userData}
	return ioctl.Do(file.Fd(), uintptr(ioctlModePageFlip), uintptr(unsafe.Pointer(p)))
}

// FlipEvent is a single page-flip completion as delivered by the
// kernel on the device fd.
type FlipEvent struct {
	Sequence uint32
	Sec      uint32
	Usec     uint32
	CrtcID   uint32
	UserData uint64
}

// ReadEvents performs one read(2) on the device fd and parses every
// drm_event it contains. It is the direct analogue of libdrm's
// drmHandleEvent: a readable poll_fd is expected to yield at least one
// full event, but a single read may contain several if completions
// were coalesced.
func ReadEvents(file *os.File) ([]FlipEvent, error) {
	buf := make([]byte, 4096)
	n, err := file.Read(buf)
	if err != nil {
		return nil, err
	}
	buf = buf[:n]

	var events []FlipEvent
	for len(buf) >= eventHeaderSize {
		typ := binary.LittleEndian.Uint32(buf[0:4])
		length := binary.LittleEndian.Uint32(buf[4:8])
		if length < eventHeaderSize || int(length) > len(buf) {
			break
		}

		if typ == EventFlipComplete && length >= eventFlipSize {
			events = append(events, FlipEvent{
				UserData: binary.LittleEndian.Uint64(buf[8:16]),
				Sec:      binary.LittleEndian.Uint32(buf[16:20]),
				Usec:     binary.LittleEndian.Uint32(buf[20:24]),
				Sequence: binary.LittleEndian.Uint32(buf[24:28]),
				CrtcID:   binary.LittleEndian.Uint32(buf[28:32]),
			})
		}

		buf = buf[length:]
	}
	return events, nil
}
