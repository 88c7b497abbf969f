package kms

import (
	"os"
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

// CreateDumbBuffer issues DRM_IOCTL_MODE_CREATE_DUMB. Dumb buffers are
// a software-only allocation path for callers that need a real
// scannable buffer without a GBM/EGL allocator; the core commit path
// never calls this.
func CreateDumbBuffer(file *os.File, width, height uint32, bpp uint32) (*DumbBuffer, error) {
	c := &sysCreateDumb{width: width, height: height, bpp: bpp}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeCreateDumb), uintptr(unsafe.Pointer(c))); err != nil {
		return nil, err
	}
	return &DumbBuffer{
		Width: c.width, Height: c.height, BPP: c.bpp,
		Handle: c.handle, Pitch: c.pitch, Size: c.size,
	}, nil
}

// MapDumbBuffer issues DRM_IOCTL_MODE_MAP_DUMB, returning the fake
// offset the caller passes to mmap(2) on the device fd.
func MapDumbBuffer(file *os.File, handle uint32) (uint64, error) {
	m := &sysMapDumb{handle: handle}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeMapDumb), uintptr(unsafe.Pointer(m))); err != nil {
		return 0, err
	}
	return m.offset, nil
}

// DestroyDumbBuffer issues DRM_IOCTL_MODE_DESTROY_DUMB.
func DestroyDumbBuffer(file *os.File, handle uint32) error {
	d := &sysDestroyDumb{handle: handle}
	return ioctl.Do(file.Fd(), uintptr(ioctlModeDestroyDumb), uintptr(unsafe.Pointer(d)))
}
