package kmsdrm

import (
	"github.com/driftwl/kmsdrm/kms"
)

// LegacyEngine drives mode-setting and page-flips through the legacy
// DRM_IOCTL_MODE_SETCRTC / DRM_IOCTL_MODE_PAGE_FLIP ioctls — the
// baseline commit backend spec §4.6/§9 requires before any atomic
// optimization.
type LegacyEngine struct{}

func (LegacyEngine) Commit(gpu *GPU, conn *Connector, data *CommitData) (bool, error) {
	crtc := conn.CRTC
	if crtc == nil {
		return false, ErrNoCRTC
	}

	if data.IsTest {
		// The legacy ioctl surface has no dry-run mode; a test commit
		// is reported accepted without touching hardware, matching
		// the "no kernel call on test commits" contract for the
		// legacy path.
		return true, nil
	}

	if data.IsModeset {
		connectorIDs := []uint32{conn.ID}
		fbID := uint32(0)
		if data.MainFB != nil {
			fbID = data.MainFB.ID
		}
		if err := kms.SetCrtc(gpu.File, crtc.ID, fbID, 0, 0, connectorIDs, data.ModeInfo); err != nil {
			return false, err
		}
		return true, nil
	}

	if data.MainFB == nil {
		return true, nil
	}

	userData := uint64(conn.ID)
	flags := data.Flags
	if data.IsBlocking {
		// The legacy page-flip ioctl is inherently async; a "blocking"
		// commit here means "wait for acceptance", which the ioctl
		// already gives us synchronously.
		flags &^= kms.PageFlipAsync
	}
	if err := kms.PageFlip(gpu.File, crtc.ID, data.MainFB.ID, flags, userData); err != nil {
		return false, err
	}
	return true, nil
}

func (LegacyEngine) Reset(gpu *GPU, conn *Connector) error {
	crtc := conn.CRTC
	if crtc == nil {
		return nil
	}
	return kms.SetCrtc(gpu.File, crtc.ID, 0, 0, 0, nil, nil)
}
