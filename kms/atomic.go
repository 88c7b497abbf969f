package kms

import (
	"os"
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

// Atomic commit flags, mirrored from the kernel ABI. TestOnly asks the
// kernel to validate the request without applying it; AllowModeset
// permits a full modeset instead of a plane-only fast path; Nonblock
// requests the ioctl return before the commit has actually completed,
// with completion reported later as a PageFlipEvent.
const (
	AtomicFlagPageFlipEvent = PageFlipEvent
	AtomicFlagAllowModeset  = 0x0400
	AtomicFlagNonblock      = 0x0200
	AtomicFlagTestOnly      = 0x0100
)

// AtomicRequest is a flat list of (object, property, value) triples
// destined for a single DRM_IOCTL_MODE_ATOMIC call. Object ids repeat
// across entries; the kernel groups them back into per-object property
// sets on its side.
type AtomicRequest struct {
	objs   []uint32
	counts []uint32
	props  []uint32
	values []uint64

	pending uint32
}

// AddProperty appends a single property write for objID, grouping it
// under the previous entry if objID repeats the last-added object —
// the same grouping the kernel expects the propsPtr/valuesPtr arrays
// to already carry.
func (r *AtomicRequest) AddProperty(objID, propID uint32, value uint64) {
	if len(r.objs) == 0 || r.objs[len(r.objs)-1] != objID {
		r.objs = append(r.objs, objID)
		r.counts = append(r.counts, 0)
	}
	r.counts[len(r.counts)-1]++
	r.props = append(r.props, propID)
	r.values = append(r.values, value)
}

// AtomicEntry is a single (object, property, value) triple, the
// expanded form Entries returns for diagnostics and tests that need
// to inspect a built request without issuing it.
type AtomicEntry struct {
	ObjID, PropID uint32
	Value         uint64
}

// Entries expands the run-length-encoded objs/counts grouping back
// into one AtomicEntry per queued property.
func (r *AtomicRequest) Entries() []AtomicEntry {
	out := make([]AtomicEntry, 0, len(r.props))
	idx := 0
	for gi, obj := range r.objs {
		for n := uint32(0); n < r.counts[gi]; n++ {
			out = append(out, AtomicEntry{ObjID: obj, PropID: r.props[idx], Value: r.values[idx]})
			idx++
		}
	}
	return out
}

// Atomic issues DRM_IOCTL_MODE_ATOMIC against req, the single entry
// point both the legacy-parity "one-shot" commits and the real atomic
// commit engine route through.
func Atomic(file *os.File, req *AtomicRequest, flags uint32, userData uint64) error {
	if len(req.objs) == 0 {
		return nil
	}

	a := &sysAtomic{
		flags:     flags,
		countObjs: uint32(len(req.objs)),
		objsPtr:   uintptr(unsafe.Pointer(&req.objs[0])),
		userData:  userData,
	}
	a.countPropsPtr = uintptr(unsafe.Pointer(&req.counts[0]))
	if len(req.props) > 0 {
		a.propsPtr = uintptr(unsafe.Pointer(&req.props[0]))
		a.propValuesPtr = uintptr(unsafe.Pointer(&req.values[0]))
	}

	return ioctl.Do(file.Fd(), uintptr(ioctlModeAtomic), uintptr(unsafe.Pointer(a)))
}
