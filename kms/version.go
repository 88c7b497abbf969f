package kms

import (
	"bytes"
	"os"
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

type sysVersion struct {
	Major, Minor, Patch int32
	namelen             int64
	name                uintptr
	datelen             int64
	date                uintptr
	desclen             int64
	desc                uintptr
}

// Version identifies the kernel driver bound to a DRM device node.
type Version struct {
	Major, Minor, Patch int32
	Name, Date, Desc    string
}

var ioctlVersion = ioctl.NewCode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysVersion{})), ioctlBase, 0x00)

// GetVersion issues DRM_IOCTL_VERSION, first to learn the string
// lengths and then again to fill them in, exactly like the teacher's
// two-pass resource ioctls.
func GetVersion(file *os.File) (Version, error) {
	v := &sysVersion{}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlVersion), uintptr(unsafe.Pointer(v))); err != nil {
		return Version{}, err
	}

	var name, date, desc []byte
	if v.namelen > 0 {
		name = make([]byte, v.namelen+1)
		v.name = uintptr(unsafe.Pointer(&name[0]))
	}
	if v.datelen > 0 {
		date = make([]byte, v.datelen+1)
		v.date = uintptr(unsafe.Pointer(&date[0]))
	}
	if v.desclen > 0 {
		desc = make([]byte, v.desclen+1)
		v.desc = uintptr(unsafe.Pointer(&desc[0]))
	}

	if err := ioctl.Do(file.Fd(), uintptr(ioctlVersion), uintptr(unsafe.Pointer(v))); err != nil {
		return Version{}, err
	}

	trim := func(b []byte, n int64) string {
		if int64(len(b)) < n {
			n = int64(len(b))
		}
		return string(bytes.TrimRight(b[:n], "\x00"))
	}

	return Version{
		Major: v.Major,
		Minor: v.Minor,
		Patch: v.Patch,
		Name:  trim(name, v.namelen),
		Date:  trim(date, v.datelen),
		Desc:  trim(desc, v.desclen),
	}, nil
}
