package kmsdrm

import "github.com/driftwl/kmsdrm/kms"

// props is the one other component besides the commit engine
// permitted to write to the GPU file handle (spec §4.10) — in
// practice every write it performs is itself issued through kms, so
// the single-writer discipline is enforced by routing rather than by
// a runtime check.
type props struct{}

// resolveConnectorProps caches the property ids a connector needs for
// atomic commits, for reading its current CRTC, for its max-bpc
// range, and for its EDID blob.
func resolveConnectorProps(gpu *GPU, c *Connector) {
	c.propCRTCID, _, _ = kms.FindPropertyID(gpu.File, c.ID, kms.ObjectConnector, "CRTC_ID")
	c.propNonDesktop, _, _ = kms.FindPropertyID(gpu.File, c.ID, kms.ObjectConnector, "non-desktop")
	c.propMaxBPC, _, _ = kms.FindPropertyID(gpu.File, c.ID, kms.ObjectConnector, "max bpc")
	c.propEDID, _, _ = kms.FindPropertyID(gpu.File, c.ID, kms.ObjectConnector, "EDID")
}

// resolveMaxBPC populates conn.MaxBPC from the cached max-bpc range
// property, spec §4.4's CONNECTED-transition "read max-bpc range"
// requirement.
func resolveMaxBPC(gpu *GPU, c *Connector) {
	if c.propMaxBPC == 0 {
		return
	}
	if min, max, ok := kms.PropertyRange(gpu.File, c.propMaxBPC); ok {
		c.MaxBPC.Min, c.MaxBPC.Max = min, max
	}
}

// fetchEDID reads the connector's raw EDID blob, if any, and hands it
// to parseEDID. parseEDID itself is a documented stub: the blob is
// fetched but its contents are not decoded (open question b).
func fetchEDID(gpu *GPU, c *Connector) {
	if c.propEDID == 0 {
		return
	}
	ids, vals, err := kms.ObjectProperties(gpu.File, c.ID, kms.ObjectConnector)
	if err != nil {
		return
	}
	for i, id := range ids {
		if id != c.propEDID || i >= len(vals) {
			continue
		}
		blobID := uint32(vals[i])
		if blobID == 0 {
			return
		}
		if raw, err := kms.GetPropertyBlob(gpu.File, blobID); err == nil && len(raw) > 0 {
			parseEDID(c, raw)
		}
		return
	}
}

// parseEDID is a documented stub (open question b): EDID block
// checksums and extension blocks are not decoded, so Make/Model/Serial
// stay zero-valued even once the raw blob is in hand.
func parseEDID(c *Connector, raw []byte) {
	_ = raw
}

// resolveCrtcProps caches the CRTC-level property ids the atomic
// engine needs (MODE_ID, ACTIVE, VRR_ENABLED).
func resolveCrtcProps(gpu *GPU, c *Crtc) {
	c.propModeID, _, _ = kms.FindPropertyID(gpu.File, c.ID, kms.ObjectCRTC, "MODE_ID")
	c.propActive, _, _ = kms.FindPropertyID(gpu.File, c.ID, kms.ObjectCRTC, "ACTIVE")
	c.propVRREnabled, _, _ = kms.FindPropertyID(gpu.File, c.ID, kms.ObjectCRTC, "VRR_ENABLED")
}

// resolvePlaneProps caches the plane-level property ids the atomic
// engine needs: CRTC_ID, FB_ID, and the full SRC_*/CRTC_* geometry
// set a plane-enabling commit must carry alongside them.
func resolvePlaneProps(gpu *GPU, p *Plane) {
	p.propCRTCID, _, _ = kms.FindPropertyID(gpu.File, p.ID, kms.ObjectPlane, "CRTC_ID")
	p.propFBID, _, _ = kms.FindPropertyID(gpu.File, p.ID, kms.ObjectPlane, "FB_ID")
	p.propSrcX, _, _ = kms.FindPropertyID(gpu.File, p.ID, kms.ObjectPlane, "SRC_X")
	p.propSrcY, _, _ = kms.FindPropertyID(gpu.File, p.ID, kms.ObjectPlane, "SRC_Y")
	p.propSrcW, _, _ = kms.FindPropertyID(gpu.File, p.ID, kms.ObjectPlane, "SRC_W")
	p.propSrcH, _, _ = kms.FindPropertyID(gpu.File, p.ID, kms.ObjectPlane, "SRC_H")
	p.propCrtcX, _, _ = kms.FindPropertyID(gpu.File, p.ID, kms.ObjectPlane, "CRTC_X")
	p.propCrtcY, _, _ = kms.FindPropertyID(gpu.File, p.ID, kms.ObjectPlane, "CRTC_Y")
	p.propCrtcW, _, _ = kms.FindPropertyID(gpu.File, p.ID, kms.ObjectPlane, "CRTC_W")
	p.propCrtcH, _, _ = kms.FindPropertyID(gpu.File, p.ID, kms.ObjectPlane, "CRTC_H")
}

// currentCRTCID resolves a connector's current CRTC id either via its
// CRTC_ID property (atomic drivers) or via its current encoder
// (legacy drivers without that property), mirroring getDRMProp's
// layered lookup in the original backend.
func currentCRTCID(gpu *GPU, raw kms.Connector) uint32 {
	if v, ok, err := kms.PropertyValue(gpu.File, raw.ID, kms.ObjectConnector, "CRTC_ID"); err == nil && ok {
		return uint32(v)
	}
	if raw.EncoderID != 0 {
		if enc, err := kms.GetEncoder(gpu.File, raw.EncoderID); err == nil {
			return enc.CrtcID
		}
	}
	return 0
}
