package kmsdrm

import (
	"testing"

	"github.com/driftwl/kmsdrm/kms"
)

func entryValue(entries []kms.AtomicEntry, objID, propID uint32) (uint64, bool) {
	for _, e := range entries {
		if e.ObjID == objID && e.PropID == propID {
			return e.Value, true
		}
	}
	return 0, false
}

func TestAddPlaneGeometryWritesSrcAndCrtcRects(t *testing.T) {
	crtc := &Crtc{ID: 10}
	plane := &Plane{
		ID: 20,
		propCRTCID: 1, propFBID: 2,
		propSrcX: 3, propSrcY: 4, propSrcW: 5, propSrcH: 6,
		propCrtcX: 7, propCrtcY: 8, propCrtcW: 9, propCrtcH: 11,
	}
	fb := &Framebuffer{ID: 99, Source: &fakeBuffer{}}

	req := &kms.AtomicRequest{}
	addPlaneGeometry(req, crtc, plane, fb)
	entries := req.Entries()

	if v, ok := entryValue(entries, plane.ID, plane.propCRTCID); !ok || v != uint64(crtc.ID) {
		t.Fatalf("CRTC_ID = %v, %v, want %d", v, ok, crtc.ID)
	}
	if v, ok := entryValue(entries, plane.ID, plane.propFBID); !ok || v != uint64(fb.ID) {
		t.Fatalf("FB_ID = %v, %v, want %d", v, ok, fb.ID)
	}

	w, h := uint64(fb.Source.Width()), uint64(fb.Source.Height())
	cases := []struct {
		name  string
		prop  uint32
		want  uint64
	}{
		{"SRC_X", plane.propSrcX, 0},
		{"SRC_Y", plane.propSrcY, 0},
		{"SRC_W", plane.propSrcW, w << 16},
		{"SRC_H", plane.propSrcH, h << 16},
		{"CRTC_X", plane.propCrtcX, 0},
		{"CRTC_Y", plane.propCrtcY, 0},
		{"CRTC_W", plane.propCrtcW, w},
		{"CRTC_H", plane.propCrtcH, h},
	}
	for _, c := range cases {
		v, ok := entryValue(entries, plane.ID, c.prop)
		if !ok || v != c.want {
			t.Errorf("%s = %v, %v, want %d", c.name, v, ok, c.want)
		}
	}
}

func TestAddPlaneGeometrySkippedWhenPropsUnresolved(t *testing.T) {
	crtc := &Crtc{ID: 10}
	plane := &Plane{ID: 20, propCRTCID: 1, propFBID: 2}
	fb := &Framebuffer{ID: 99, Source: &fakeBuffer{}}

	req := &kms.AtomicRequest{}
	addPlaneGeometry(req, crtc, plane, fb)
	entries := req.Entries()

	if len(entries) != 2 {
		t.Fatalf("expected only CRTC_ID/FB_ID entries, got %d: %+v", len(entries), entries)
	}
}

func TestAddPlaneGeometrySkippedWhenSourceNil(t *testing.T) {
	crtc := &Crtc{ID: 10}
	plane := &Plane{
		ID: 20,
		propCRTCID: 1, propFBID: 2,
		propSrcX: 3, propSrcY: 4, propSrcW: 5, propSrcH: 6,
		propCrtcX: 7, propCrtcY: 8, propCrtcW: 9, propCrtcH: 11,
	}
	fb := &Framebuffer{ID: 99}

	req := &kms.AtomicRequest{}
	addPlaneGeometry(req, crtc, plane, fb)
	entries := req.Entries()

	if len(entries) != 2 {
		t.Fatalf("expected only CRTC_ID/FB_ID entries, got %d: %+v", len(entries), entries)
	}
}

func TestBuildAtomicRequestIncludesPlaneGeometryOnCommit(t *testing.T) {
	crtc := &Crtc{
		ID:         10,
		propModeID: 1, propActive: 2,
		PrimaryPlane: &Plane{ID: 20, propCRTCID: 3, propFBID: 4, propSrcW: 5, propCrtcW: 6},
	}
	conn := &Connector{ID: 30, propCRTCID: 7, CRTC: crtc}
	fb := &Framebuffer{ID: 99, Source: &fakeBuffer{}}

	req, err := buildAtomicRequest(nil, crtc, conn, &CommitData{MainFB: fb})
	if err != nil {
		t.Fatalf("buildAtomicRequest: %v", err)
	}
	entries := req.Entries()
	if _, ok := entryValue(entries, crtc.PrimaryPlane.ID, crtc.PrimaryPlane.propSrcW); !ok {
		t.Fatalf("expected SRC_W among entries, got %+v", entries)
	}
	if _, ok := entryValue(entries, crtc.ID, crtc.propModeID); ok {
		t.Fatalf("non-modeset commit should not touch MODE_ID, got %+v", entries)
	}
}

func TestBuildAtomicRequestSkipsPlaneWhenNoFB(t *testing.T) {
	crtc := &Crtc{ID: 10, PrimaryPlane: &Plane{ID: 20, propCRTCID: 3, propFBID: 4}}
	conn := &Connector{ID: 30, CRTC: crtc}

	req, err := buildAtomicRequest(nil, crtc, conn, &CommitData{})
	if err != nil {
		t.Fatalf("buildAtomicRequest: %v", err)
	}
	if entries := req.Entries(); len(entries) != 0 {
		t.Fatalf("expected no entries without a MainFB, got %+v", entries)
	}
}

func TestAtomicFlags(t *testing.T) {
	cases := []struct {
		name string
		data *CommitData
		want uint32
	}{
		{"test-only", &CommitData{IsTest: true}, uint32(kms.AtomicFlagTestOnly)},
		{"blocking modeset", &CommitData{IsBlocking: true}, uint32(kms.AtomicFlagAllowModeset)},
		{"nonblocking", &CommitData{IsBlocking: false}, uint32(kms.AtomicFlagAllowModeset | kms.AtomicFlagNonblock)},
		{"extra flags merged", &CommitData{IsBlocking: true, Flags: kms.AtomicFlagPageFlipEvent}, uint32(kms.AtomicFlagAllowModeset | kms.AtomicFlagPageFlipEvent)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := atomicFlags(c.data); got != c.want {
				t.Errorf("atomicFlags() = %#x, want %#x", got, c.want)
			}
		})
	}
}
