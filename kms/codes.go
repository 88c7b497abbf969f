package kms

import (
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

// ioctlBase is the DRM driver character used in every ioctl code in
// this package, including the version ioctl in version.go.
const ioctlBase = 'd'

var (
	ioctlSetMaster  = ioctl.NewCode(ioctl.None, 0, ioctlBase, 0x1e)
	ioctlDropMaster = ioctl.NewCode(ioctl.None, 0, ioctlBase, 0x1f)
	ioctlGetCap     = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysCap{})), ioctlBase, 0x0c)
	ioctlSetClientCap = ioctl.NewCode(ioctl.Write, uint16(unsafe.Sizeof(sysClientCap{})), ioctlBase, 0x0d)

	ioctlPrimeHandleToFD = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysPrimeHandle{})), ioctlBase, 0x2d)
	ioctlPrimeFDToHandle = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysPrimeHandle{})), ioctlBase, 0x2e)

	ioctlModeGetResources       = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysResources{})), ioctlBase, 0xA0)
	ioctlModeGetCrtc            = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysCrtc{})), ioctlBase, 0xA1)
	ioctlModeSetCrtc            = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysCrtc{})), ioctlBase, 0xA2)
	ioctlModeGetEncoder         = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysGetEncoder{})), ioctlBase, 0xA6)
	ioctlModeGetConnector       = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysGetConnector{})), ioctlBase, 0xA7)
	ioctlModeGetProperty        = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysGetProperty{})), ioctlBase, 0xAA)
	ioctlModeGetPropBlob        = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysGetPropBlob{})), ioctlBase, 0xAC)
	ioctlModeAddFB              = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysFBCmd{})), ioctlBase, 0xAE)
	ioctlModeRmFB               = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(uint32(0))), ioctlBase, 0xAF)
	ioctlModePageFlip           = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysPageFlip{})), ioctlBase, 0xB0)
	ioctlModeCreateDumb         = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysCreateDumb{})), ioctlBase, 0xB2)
	ioctlModeMapDumb            = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysMapDumb{})), ioctlBase, 0xB3)
	ioctlModeDestroyDumb        = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysDestroyDumb{})), ioctlBase, 0xB4)
	ioctlModeGetPlaneResources  = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysGetPlaneResources{})), ioctlBase, 0xB5)
	ioctlModeGetPlane           = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysGetPlane{})), ioctlBase, 0xB6)
	ioctlModeSetPlane           = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysSetPlane{})), ioctlBase, 0xB7)
	ioctlModeAddFB2             = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysFBCmd2{})), ioctlBase, 0xB8)
	ioctlModeObjGetProperties   = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysObjGetProperties{})), ioctlBase, 0xB9)
	ioctlModeAtomic             = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysAtomic{})), ioctlBase, 0xBC)
	ioctlModeCreatePropBlob     = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysCreateBlob{})), ioctlBase, 0xBD)
	ioctlModeDestroyPropBlob    = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysDestroyBlob{})), ioctlBase, 0xBE)
	ioctlModeCloseFB            = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(uint32(0))), ioctlBase, 0xD0)
)
