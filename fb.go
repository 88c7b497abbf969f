package kmsdrm

import (
	"fmt"

	"github.com/driftwl/kmsdrm/internal/logx"
	"github.com/driftwl/kmsdrm/kms"
)

const maxFBPlanes = 4

// Framebuffer wraps an imported dmabuf as a KMS scanout object.
type Framebuffer struct {
	ID uint32

	Source  Buffer
	Handles [maxFBPlanes]uint32

	dropped      bool
	handlesClosed bool
}

// importFramebuffer implements spec §4.5: refuse unimportable
// buffers, PRIME-import each plane, call AddFB2WithModifiers or
// AddFB2 depending on capability and the buffer's declared modifier,
// and tag the buffer unimportable on any failure.
func importFramebuffer(gpu *GPU, caps Capabilities, buf Buffer) (*Framebuffer, error) {
	if buf.Unimportable() {
		return nil, ErrBufferUnimportable
	}

	planes := buf.Dmabuf()
	if len(planes) == 0 {
		buf.SetUnimportable()
		return nil, ErrNoDmabuf
	}
	if len(planes) > maxFBPlanes {
		buf.SetUnimportable()
		return nil, fmt.Errorf("kmsdrm: buffer declares %d planes, max %d", len(planes), maxFBPlanes)
	}

	fb := &Framebuffer{Source: buf}

	var handles, pitches, offsets [maxFBPlanes]uint32
	for i, p := range planes {
		handle, err := kms.PrimeFDToHandle(gpu.File, p.FD)
		if err != nil {
			buf.SetUnimportable()
			return nil, fmt.Errorf("prime import plane %d: %w", i, err)
		}
		handles[i] = handle
		pitches[i] = p.Pitch
		offsets[i] = p.Offset
	}
	fb.Handles = handles

	width, height, format, modifier := uint32(buf.Width()), uint32(buf.Height()), buf.Format(), buf.Modifier()

	var id uint32
	var err error
	switch {
	case caps.SupportsAddFBWithModifiers && modifier != kms.FormatModInvalid:
		var mods [maxFBPlanes]uint64
		for i := range planes {
			mods[i] = modifier
		}
		id, err = kms.AddFB2WithModifiers(gpu.File, width, height, format, handles, pitches, offsets, mods)
	case modifier != kms.FormatModLinear && modifier != kms.FormatModInvalid:
		buf.SetUnimportable()
		return nil, ErrModifierUnsupported
	default:
		id, err = kms.AddFB2(gpu.File, width, height, format, handles, pitches, offsets)
	}
	if err != nil {
		buf.SetUnimportable()
		return nil, fmt.Errorf("add fb: %w", err)
	}

	fb.ID = id
	return fb, nil
}

// drop releases the kernel framebuffer object, trying the newer
// close RPC and falling back to the legacy RmFB, per spec §4.5.
// PRIME-imported buffer-object handles are deliberately left open
// (spec §5).
func (f *Framebuffer) drop(gpu *GPU) error {
	if f.dropped {
		return nil
	}
	f.dropped = true
	id := f.ID
	f.ID = 0

	if err := kms.CloseFB(gpu.File, id); err != nil {
		logx.Debug("CloseFB failed, falling back to RmFB", "fb", id, "err", err)
		if err := kms.RmFB(gpu.File, id); err != nil {
			return fmt.Errorf("drop fb %d: %w", id, err)
		}
	}
	f.handlesClosed = true
	return nil
}
