package kms

import (
	"bytes"
	"fmt"
	"os"
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

// Property describes a single KMS property definition: its id, name
// and (for range properties) bounds.
type Property struct {
	ID    uint32
	Name  string
	Flags uint32
	Min   uint64
	Max   uint64
}

// ObjectProperties reads every property id/value pair attached to a
// KMS object (a connector, CRTC or plane) via
// DRM_IOCTL_MODE_OBJ_GETPROPERTIES.
func ObjectProperties(file *os.File, objID, objType uint32) ([]uint32, []uint64, error) {
	req := &sysObjGetProperties{objID: objID, objType: objType}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeObjGetProperties), uintptr(unsafe.Pointer(req))); err != nil {
		return nil, nil, err
	}

	if req.countProps == 0 {
		return nil, nil, nil
	}

	ids := make([]uint32, req.countProps)
	vals := make([]uint64, req.countProps)
	req.propsPtr = uintptr(unsafe.Pointer(&ids[0]))
	req.propValuesPtr = uintptr(unsafe.Pointer(&vals[0]))

	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeObjGetProperties), uintptr(unsafe.Pointer(req))); err != nil {
		return nil, nil, err
	}
	return ids[:req.countProps], vals[:req.countProps], nil
}

// GetProperty issues DRM_IOCTL_MODE_GETPROPERTY for propID, returning
// its name and, for range properties, its [min,max] bound.
func GetProperty(file *os.File, propID uint32) (Property, error) {
	p := &sysGetProperty{propID: propID}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetProperty), uintptr(unsafe.Pointer(p))); err != nil {
		return Property{}, err
	}

	var values []uint64
	if p.countValues > 0 {
		values = make([]uint64, p.countValues)
		p.valuesPtr = uintptr(unsafe.Pointer(&values[0]))
		if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetProperty), uintptr(unsafe.Pointer(p))); err != nil {
			return Property{}, err
		}
	}

	prop := Property{
		ID:    propID,
		Name:  string(bytes.TrimRight(p.name[:], "\x00")),
		Flags: p.flags,
	}
	if len(values) >= 2 {
		prop.Min, prop.Max = values[0], values[1]
	}
	return prop, nil
}

// GetPropertyBlob issues DRM_IOCTL_MODE_GETPROPBLOB for blobID,
// returning the raw blob bytes (a mode Info, an IN_FORMATS table, or
// an EDID).
func GetPropertyBlob(file *os.File, blobID uint32) ([]byte, error) {
	b := &sysGetPropBlob{blobID: blobID}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetPropBlob), uintptr(unsafe.Pointer(b))); err != nil {
		return nil, err
	}

	if b.length == 0 {
		return nil, nil
	}

	data := make([]byte, b.length)
	b.dataPtr = uintptr(unsafe.Pointer(&data[0]))
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetPropBlob), uintptr(unsafe.Pointer(b))); err != nil {
		return nil, err
	}
	return data, nil
}

// FindPropertyID resolves a property name (e.g. "CRTC_ID", "MODE_ID",
// "IN_FORMATS") to its id among the property ids attached to objID,
// mirroring getDRMProp's name-lookup loop in the original backend.
func FindPropertyID(file *os.File, objID, objType uint32, name string) (uint32, bool, error) {
	ids, _, err := ObjectProperties(file, objID, objType)
	if err != nil {
		return 0, false, fmt.Errorf("object properties for %d: %w", objID, err)
	}
	for _, id := range ids {
		prop, err := GetProperty(file, id)
		if err != nil {
			continue
		}
		if prop.Name == name {
			return id, true, nil
		}
	}
	return 0, false, nil
}

// PropertyRange resolves propID's [min, max] bound for a range-type
// property (e.g. a connector's max-bpc), reusing GetProperty's own
// value-pair decoding rather than re-walking the object's property
// list by name.
func PropertyRange(file *os.File, propID uint32) (min, max uint64, ok bool) {
	p, err := GetProperty(file, propID)
	if err != nil {
		return 0, 0, false
	}
	if p.Min == 0 && p.Max == 0 {
		return 0, 0, false
	}
	return p.Min, p.Max, true
}

// CreatePropertyBlob issues DRM_IOCTL_MODE_CREATEPROPBLOB, uploading
// data (typically a raw mode timing) as a kernel blob and returning
// its id, for use as an atomic MODE_ID property value.
func CreatePropertyBlob(file *os.File, data []byte) (uint32, error) {
	if len(data) == 0 {
		return 0, nil
	}
	b := &sysCreateBlob{dataPtr: uintptr(unsafe.Pointer(&data[0])), length: uint32(len(data))}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeCreatePropBlob), uintptr(unsafe.Pointer(b))); err != nil {
		return 0, err
	}
	return b.blobID, nil
}

// DestroyPropertyBlob issues DRM_IOCTL_MODE_DESTROYPROPBLOB.
func DestroyPropertyBlob(file *os.File, blobID uint32) error {
	b := &sysDestroyBlob{blobID: blobID}
	return ioctl.Do(file.Fd(), uintptr(ioctlModeDestroyPropBlob), uintptr(unsafe.Pointer(b)))
}

// PropertyValue looks up the current value of a named property on
// objID, combining FindPropertyID with ObjectProperties' value list.
func PropertyValue(file *os.File, objID, objType uint32, name string) (uint64, bool, error) {
	ids, vals, err := ObjectProperties(file, objID, objType)
	if err != nil {
		return 0, false, err
	}
	for i, id := range ids {
		prop, err := GetProperty(file, id)
		if err != nil {
			continue
		}
		if prop.Name == name {
			return vals[i], true, nil
		}
	}
	return 0, false, nil
}
