// Package ioctl builds Linux ioctl request codes and issues them.
//
// DRM, like most Linux subsystems, encodes ioctl requests in a fixed
// bit layout: a direction (none/read/write/both), an argument size, a
// driver-unique character and a function number. This package only
// knows how to build and issue that encoding; it has no notion of what
// a DRM object or property is.
package ioctl

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// To decode a hex IOCTL code:
//
// Most architectures use this generic format, but check
// include/ARCH/ioctl.h for specifics, e.g. powerpc
// uses 3 bits to encode read/write and 13 bits for size.
//
//  bits    meaning
//  31-30	00 - no parameters: uses _IO macro
// 	10 - read: _IOR
// 	01 - write: _IOW
// 	11 - read/write: _IOWR
//
//  29-16	size of arguments
//
//  15-8	ascii character supposedly
// 	unique to each driver
//
//  7-0	function #
//
// So for example 0x82187201 is a read with arg length of 0x218,
// character 'r' function 1. Grepping the source reveals this is:
//
// #define VFAT_IOCTL_READDIR_BOTH         _IOR('r', 1, struct dirent [2])
// source: https://www.kernel.org/doc/Documentation/ioctl/ioctl-decoding.txt

type Code struct {
	typ  uint8  // type of ioctl call (read, write, both or none)
	sz   uint16 // size of arguments (only 14bits usable)
	uniq uint8  // unique ascii character for this device
	fn   uint8  // function code
}

const (
	None  = uint8(0x0)
	Write = uint8(0x1)
	Read  = uint8(0x2)
)

// NewCode assembles a raw ioctl request number from its four fields.
func NewCode(typ uint8, sz uint16, uniq, fn uint8) uint32 {
	var code uint32
	if typ > Write|Read {
		panic(fmt.Errorf("invalid ioctl code value: %d", typ))
	}

	if sz >= 1<<14 {
		panic(fmt.Errorf("invalid ioctl size value: %d", sz))
	}

	code = code | (uint32(typ) << 30)
	code = code | (uint32(sz) << 16) // sz has 14bits
	code = code | (uint32(uniq) << 8)
	code = code | uint32(fn)
	return code
}

// Do issues cmd against fd with ptr as the argument pointer, exactly as
// built by NewCode. It retries on EINTR: DRM ioctls (notably atomic
// commit and page-flip) can return it spuriously under signal-heavy
// VT-switch workloads, and every caller wants the retry rather than
// having to remember to ask for it.
func Do(fd, cmd, ptr uintptr) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, cmd, ptr)
		switch errno {
		case 0:
			return nil
		case unix.EINTR:
			continue
		default:
			return errno
		}
	}
}
