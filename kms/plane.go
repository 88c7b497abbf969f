package kms

import (
	"os"
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

// GetPlaneResources issues DRM_IOCTL_MODE_GETPLANERESOURCES, returning
// every plane id the driver exposes. Requires universal planes to have
// been enabled via SetClientCap(ClientCapUniversalPlanes, 1); without
// it the kernel only reports the legacy cursor/overlay planes.
func GetPlaneResources(file *os.File) ([]uint32, error) {
	res := &sysGetPlaneResources{}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetPlaneResources), uintptr(unsafe.Pointer(res))); err != nil {
		return nil, err
	}

	if res.CountPlanes == 0 {
		return nil, nil
	}

	ids := make([]uint32, res.CountPlanes)
	res.planeIDPtr = uintptr(unsafe.Pointer(&ids[0]))
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetPlaneResources), uintptr(unsafe.Pointer(res))); err != nil {
		return nil, err
	}
	return ids[:res.CountPlanes], nil
}

// GetPlane issues DRM_IOCTL_MODE_GETPLANE for id.
func GetPlane(file *os.File, id uint32) (*Plane, error) {
	p := &sysGetPlane{planeID: id}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetPlane), uintptr(unsafe.Pointer(p))); err != nil {
		return nil, err
	}

	var formats []uint32
	if p.countFormatTypes > 0 {
		formats = make([]uint32, p.countFormatTypes)
		p.formatTypePtr = uintptr(unsafe.Pointer(&formats[0]))
		if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetPlane), uintptr(unsafe.Pointer(p))); err != nil {
			return nil, err
		}
	}

	return &Plane{
		ID:            p.planeID,
		CrtcID:        p.crtcID,
		FbID:          p.fbID,
		PossibleCrtcs: p.possibleCrtcs,
		Formats:       formats,
	}, nil
}

// SetPlane issues DRM_IOCTL_MODE_SETPLANE, setting a plane's position
// and scanout FB once the CRTC itself is already configured. The
// legacy engine does not call it; it uses SetCrtc and PageFlip.
func SetPlane(file *os.File, planeID, crtcID, fbID uint32, crtcX, crtcY int32, crtcW, crtcH uint32, srcW, srcH uint32) error {
	p := &sysSetPlane{
		planeID: planeID,
		crtcID:  crtcID,
		fbID:    fbID,
		crtcX:   crtcX,
		crtcY:   crtcY,
		crtcW:   crtcW,
		crtcH:   crtcH,
		srcW:    srcW << 16,
		srcH:    srcH << 16,
	}
	return ioctl.Do(file.Fd(), uintptr(ioctlModeSetPlane), uintptr(unsafe.Pointer(p)))
}
