package kms

import (
	"os"
	"unsafe"

	"github.com/driftwl/kmsdrm/ioctl"
)

// Resources is the top-level object list for a DRM device: every CRTC,
// connector, encoder and framebuffer id the driver currently knows
// about.
type Resources struct {
	Fbs        []uint32
	Crtcs      []uint32
	Connectors []uint32
	Encoders   []uint32
}

// GetResources issues DRM_IOCTL_MODE_GETRESOURCES twice: once to learn
// the object counts, once more with buffers sized to receive them.
// Hot-plug events landing between the two calls can only ever shrink
// or grow the visible set; callers rescan rather than trust a single
// snapshot to be exhaustive.
func GetResources(file *os.File) (*Resources, error) {
	mres := &sysResources{}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetResources), uintptr(unsafe.Pointer(mres))); err != nil {
		return nil, err
	}

	var fbs, crtcs, conns, encs []uint32

	if mres.CountFbs > 0 {
		fbs = make([]uint32, mres.CountFbs)
		mres.fbIDPtr = uintptr(unsafe.Pointer(&fbs[0]))
	}
	if mres.CountCrtcs > 0 {
		crtcs = make([]uint32, mres.CountCrtcs)
		mres.crtcIDPtr = uintptr(unsafe.Pointer(&crtcs[0]))
	}
	if mres.CountEncoders > 0 {
		encs = make([]uint32, mres.CountEncoders)
		mres.encoderIDPtr = uintptr(unsafe.Pointer(&encs[0]))
	}
	if mres.CountConnectors > 0 {
		conns = make([]uint32, mres.CountConnectors)
		mres.connectorIDPtr = uintptr(unsafe.Pointer(&conns[0]))
	}

	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetResources), uintptr(unsafe.Pointer(mres))); err != nil {
		return nil, err
	}

	return &Resources{Fbs: fbs, Crtcs: crtcs, Connectors: conns, Encoders: encs}, nil
}

// GetConnector issues DRM_IOCTL_MODE_GETCONNECTOR for id, including its
// mode list and raw property id/value pairs.
func GetConnector(file *os.File, id uint32) (*Connector, error) {
	conn := &sysGetConnector{ID: id}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetConnector), uintptr(unsafe.Pointer(conn))); err != nil {
		return nil, err
	}

	var props, encoders []uint32
	var propVals []uint64
	var modes []Info

	if conn.countProps > 0 {
		props = make([]uint32, conn.countProps)
		conn.propsPtr = uintptr(unsafe.Pointer(&props[0]))
		propVals = make([]uint64, conn.countProps)
		conn.propValuesPtr = uintptr(unsafe.Pointer(&propVals[0]))
	}

	if conn.countModes == 0 {
		conn.countModes = 1
	}
	modes = make([]Info, conn.countModes)
	conn.modesPtr = uintptr(unsafe.Pointer(&modes[0]))

	if conn.countEncoders > 0 {
		encoders = make([]uint32, conn.countEncoders)
		conn.encodersPtr = uintptr(unsafe.Pointer(&encoders[0]))
	}

	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetConnector), uintptr(unsafe.Pointer(conn))); err != nil {
		return nil, err
	}

	ret := &Connector{
		ID:        conn.ID,
		EncoderID: conn.encoderID,
		Type:      conn.connectorType,
		TypeID:    conn.connectorTypeID,

		Connection: conn.connection,
		WidthMM:    conn.mmWidth,
		HeightMM:   conn.mmHeight,
		Subpixel:   conn.subpixel,
	}

	ret.Props = append([]uint32(nil), props[:conn.countProps]...)
	ret.PropVals = append([]uint64(nil), propVals[:conn.countProps]...)
	ret.Modes = append([]Info(nil), modes...)
	ret.Encoders = append([]uint32(nil), encoders[:conn.countEncoders]...)

	return ret, nil
}

// GetEncoder issues DRM_IOCTL_MODE_GETENCODER for id.
func GetEncoder(file *os.File, id uint32) (*Encoder, error) {
	enc := &sysGetEncoder{id: id}
	if err := ioctl.Do(file.Fd(), uintptr(ioctlModeGetEncoder), uintptr(unsafe.Pointer(enc))); err != nil {
		return nil, err
	}
	return &Encoder{
		ID:             enc.id,
		Type:           enc.typ,
		CrtcID:         enc.crtcID,
		PossibleCrtcs:  enc.possibleCrtcs,
		PossibleClones: enc.possibleClones,
	}, nil
}
