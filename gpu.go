package kmsdrm

import "os"

// GPU is the opaque handle the backend owns for the lifetime of a
// device: its file descriptor, device path, and driver name as
// reported by DRM_IOCTL_VERSION.
type GPU struct {
	File       *os.File
	Path       string
	DriverName string
}

// Close releases the underlying device file descriptor. PRIME handles
// created against this GPU are never closed individually (per spec
// §5); they are released as a side effect of this.
func (g *GPU) Close() error {
	return g.File.Close()
}

// Capabilities are the booleans and small values spec §4.2 requires
// be probed once at init and cached immutably.
type Capabilities struct {
	SupportsAsyncFlip         bool
	SupportsAddFBWithModifiers bool
	CursorWidth, CursorHeight uint64
}
