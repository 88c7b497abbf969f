package kms

import (
	"os"
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

// GetCrtc issues DRM_IOCTL_MODE_GETCRTC for id.
func GetCrtc(file *os.File, id uint32) (*Crtc, error) {
	c := &sysCrtc{id: id}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetCrtc), uintptr(unsafe.Pointer(c))); err != nil {
		return nil, err
	}
	return &Crtc{
		ID:        c.id,
		BufferID:  c.fbID,
		X:         c.x,
		Y:         c.y,
		ModeValid: c.modeValid != 0,
		Mode:      c.mode,
		GammaSize: c.gammaSize,
	}, nil
}

// SetCrtc issues the legacy DRM_IOCTL_MODE_SETCRTC, the ioctl the
// legacy commit engine uses for modeset commits and the VT-restore
// path uses to reprogram a CRTC from scratch.
func SetCrtc(file *os.File, crtcID, fbID, x, y uint32, connectorIDs []uint32, mode *Info) error {
	c := &sysCrtc{id: crtcID, fbID: fbID, x: x, y: y}
	if len(connectorIDs) > 0 {
		c.setConnectorsPtr = uintptr(unsafe.Pointer(&connectorIDs[0]))
		c.countConnectors = uint32(len(connectorIDs))
	}
	if mode != nil {
		c.mode = *mode
		c.modeValid = 1
	}
	return ioctl.Do(file.Fd(), uintptr(ioctlModeSetCrtc), uintptr(unsafe.Pointer(c)))
}
