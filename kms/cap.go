package kms

import (
	"os"
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

// DRM_CAP_* identifiers, read with GetCap.
const (
	CapDumbBuffer         = 0x1
	CapVBlankHighCRTC     = 0x2
	CapDumbPreferredDepth = 0x3
	CapDumbPreferShadow   = 0x4
	CapPrime              = 0x5
	CapTimestampMonotonic = 0x6
	CapAsyncPageFlip      = 0x7
	CapCursorWidth        = 0x8
	CapCursorHeight       = 0x9
	CapAddFB2Modifiers    = 0x10
	CapCrtcInVBlankEvent  = 0x12

	PrimeCapImport = 0x1
	PrimeCapExport = 0x2
)

// DRM_CLIENT_CAP_* identifiers, written with SetClientCap.
const (
	ClientCapUniversalPlanes = 2
	ClientCapAtomic          = 3
)

// GetCap issues DRM_IOCTL_GET_CAP for capability.
func GetCap(file *os.File, capability uint64) (uint64, error) {
	c := &sysCap{cap: capability}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlGetCap), uintptr(unsafe.Pointer(c))); err != nil {
		return 0, err
	}
	return c.val, nil
}

// SetClientCap issues DRM_IOCTL_SET_CLIENT_CAP, e.g. to opt into
// universal-plane or atomic semantics for the lifetime of the fd.
func SetClientCap(file *os.File, capability, value uint64) error {
	c := &sysClientCap{capability: capability, value: value}
	return ioctl.Do(file.Fd(), uintptr(ioctlSetClientCap), uintptr(unsafe.Pointer(c)))
}

// SetMaster and DropMaster issue DRM_IOCTL_SET_MASTER / DROP_MASTER,
// used by the session layer to decide whether an opened node is
// actually usable for mode-setting.
func SetMaster(file *os.File) error {
	return ioctl.Do(file.Fd(), uintptr(ioctlSetMaster), 0)
}

func DropMaster(file *os.File) error {
	return ioctl.Do(file.Fd(), uintptr(ioctlDropMaster), 0)
}
