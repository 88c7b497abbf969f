package kmsdrm

import (
	"unsafe"

	"github.com/driftwl/kmsdrm/kms"
)

// AtomicEngine drives commits through DRM_IOCTL_MODE_ATOMIC, the
// pluggable variant spec §1/§9 describes: it honors the same
// CommitEngine contract as LegacyEngine, differing only in how it
// talks to the kernel.
type AtomicEngine struct{}

func (AtomicEngine) Commit(gpu *GPU, conn *Connector, data *CommitData) (bool, error) {
	crtc := conn.CRTC
	if crtc == nil {
		return false, ErrNoCRTC
	}

	req, err := buildAtomicRequest(gpu, crtc, conn, data)
	if err != nil {
		return false, err
	}

	if err := kms.Atomic(gpu.File, req, atomicFlags(data), uint64(conn.ID)); err != nil {
		return false, err
	}
	return true, nil
}

// buildAtomicRequest translates a CommitData into the flat
// (object, property, value) triples an atomic commit needs. Only the
// modeset branch touches gpu (to upload the mode blob); the
// plane-geometry assembly below is pure, so it can be exercised
// without a real device.
func buildAtomicRequest(gpu *GPU, crtc *Crtc, conn *Connector, data *CommitData) (*kms.AtomicRequest, error) {
	req := &kms.AtomicRequest{}

	if data.IsModeset && data.ModeInfo != nil {
		blobID, err := createModeBlob(gpu, data.ModeInfo)
		if err != nil {
			return nil, err
		}
		req.AddProperty(crtc.ID, crtc.propModeID, uint64(blobID))
		req.AddProperty(crtc.ID, crtc.propActive, 1)
		req.AddProperty(conn.ID, conn.propCRTCID, uint64(crtc.ID))
	}

	if data.MainFB != nil && crtc.PrimaryPlane != nil {
		addPlaneGeometry(req, crtc, crtc.PrimaryPlane, data.MainFB)
	}

	return req, nil
}

// addPlaneGeometry writes CRTC_ID/FB_ID plus the SRC_*/CRTC_*
// geometry a plane-enabling atomic commit must carry: the kernel's
// atomic check rejects a crtc_id/fb_id transition from zero unless
// SRC_W/H and CRTC_W/H are already part of the same state. SRC_* are
// 16.16 fixed-point per the atomic UAPI; CRTC_* are plain pixels.
// Geometry is skipped (not zero-filled) when the property ids never
// resolved, to avoid writing property id 0 into the request.
func addPlaneGeometry(req *kms.AtomicRequest, crtc *Crtc, p *Plane, fb *Framebuffer) {
	req.AddProperty(p.ID, p.propCRTCID, uint64(crtc.ID))
	req.AddProperty(p.ID, p.propFBID, uint64(fb.ID))

	if fb.Source == nil || p.propSrcW == 0 || p.propCrtcW == 0 {
		return
	}
	w, h := uint64(fb.Source.Width()), uint64(fb.Source.Height())
	req.AddProperty(p.ID, p.propSrcX, 0)
	req.AddProperty(p.ID, p.propSrcY, 0)
	req.AddProperty(p.ID, p.propSrcW, w<<16)
	req.AddProperty(p.ID, p.propSrcH, h<<16)
	req.AddProperty(p.ID, p.propCrtcX, 0)
	req.AddProperty(p.ID, p.propCrtcY, 0)
	req.AddProperty(p.ID, p.propCrtcW, w)
	req.AddProperty(p.ID, p.propCrtcH, h)
}

// atomicFlags computes the DRM_IOCTL_MODE_ATOMIC flags for data.
func atomicFlags(data *CommitData) uint32 {
	flags := kms.AtomicFlagAllowModeset
	if data.IsTest {
		flags = kms.AtomicFlagTestOnly
	} else if !data.IsBlocking {
		flags |= kms.AtomicFlagNonblock
	}
	flags |= int(data.Flags)
	return uint32(flags)
}

func (AtomicEngine) Reset(gpu *GPU, conn *Connector) error {
	crtc := conn.CRTC
	if crtc == nil {
		return nil
	}
	req := &kms.AtomicRequest{}
	req.AddProperty(crtc.ID, crtc.propActive, 0)
	if crtc.PrimaryPlane != nil {
		req.AddProperty(crtc.PrimaryPlane.ID, crtc.PrimaryPlane.propFBID, 0)
	}
	return kms.Atomic(gpu.File, req, kms.AtomicFlagAllowModeset, 0)
}

// createModeBlob uploads a raw mode timing as a kernel property blob
// for use as an atomic MODE_ID property value.
func createModeBlob(gpu *GPU, mode *kms.Info) (uint32, error) {
	data := (*[unsafe.Sizeof(kms.Info{})]byte)(unsafe.Pointer(mode))[:]
	return kms.CreatePropertyBlob(gpu.File, data)
}
