package kms

import (
	"os"
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

// AddFB2 issues DRM_IOCTL_MODE_ADDFB2 without modifiers, used when the
// driver lacks DRM_CAP_ADDFB2_MODIFIERS. Every plane's modifier must
// already be known to be DRM_FORMAT_MOD_LINEAR or MOD_INVALID by the
// caller — this function does not itself enforce that, the root
// package's FB import path does.
func AddFB2(file *os.File, width, height, format uint32, handles, pitches, offsets [4]uint32) (uint32, error) {
	f := &sysFBCmd2{
		width: width, height: height, pixelFormat: format,
		handles: handles, pitches: pitches, offsets: offsets,
	}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeAddFB2), uintptr(unsafe.Pointer(f))); err != nil {
		return 0, err
	}
	return f.fbID, nil
}

// AddFB2WithModifiers issues DRM_IOCTL_MODE_ADDFB2 with the
// DRM_MODE_FB_MODIFIERS flag set and a per-plane modifier array
// populated, used when the driver supports
// DRM_CAP_ADDFB2_MODIFIERS and the buffer declares an explicit
// modifier.
func AddFB2WithModifiers(file *os.File, width, height, format uint32, handles, pitches, offsets [4]uint32, modifiers [4]uint64) (uint32, error) {
	f := &sysFBCmd2{
		width: width, height: height, pixelFormat: format, flags: FBModifiers,
		handles: handles, pitches: pitches, offsets: offsets, modifier: modifiers,
	}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeAddFB2), uintptr(unsafe.Pointer(f))); err != nil {
		return 0, err
	}
	return f.fbID, nil
}

// CloseFB issues the newer DRM_IOCTL_MODE_CLOSEFB, which closes a
// framebuffer object without requiring it to have been created by the
// calling process (RmFB predates per-object ownership tracking and is
// kept only as the fallback for drivers/kernels that reject CloseFB).
func CloseFB(file *os.File, fbID uint32) error {
	id := fbID
	return ioctl.Do(file.Fd(), uintptr(ioctlModeCloseFB), uintptr(unsafe.Pointer(&id)))
}

// RmFB issues the legacy DRM_IOCTL_MODE_RMFB.
func RmFB(file *os.File, fbID uint32) error {
	r := &sysRmFB{handle: fbID}
	return ioctl.Do(file.Fd(), uintptr(ioctlModeRmFB), uintptr(unsafe.Pointer(r)))
}
