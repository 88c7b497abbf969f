package kms

import (
	"os"
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

// PrimeFDToHandle issues DRM_IOCTL_PRIME_FD_TO_HANDLE, converting a
// dmabuf file descriptor into a driver-private buffer-object handle.
// The returned handle is intentionally never closed by the FB import
// path (see the root package's fb.go); it is released only when the
// device fd itself is closed, to avoid racing driver-internal
// bookkeeping on some drivers.
func PrimeFDToHandle(file *os.File, fd int32) (uint32, error) {
	p := &sysPrimeHandle{fd: fd}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlPrimeFDToHandle), uintptr(unsafe.Pointer(p))); err != nil {
		return 0, err
	}
	return p.handle, nil
}

// PrimeHandleToFD issues DRM_IOCTL_PRIME_HANDLE_TO_FD, the inverse
// operation, for allocators that need to hand a dumb buffer's handle
// back out as a dmabuf fd.
func PrimeHandleToFD(file *os.File, handle uint32, flags uint32) (int32, error) {
	p := &sysPrimeHandle{handle: handle, flags: flags}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlPrimeHandleToFD), uintptr(unsafe.Pointer(p))); err != nil {
		return -1, err
	}
	return p.fd, nil
}
