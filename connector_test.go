package kmsdrm

import (
	"testing"

	"github.com/driftwl/kmsdrm/kms"
)

func TestBuildModesSkipsInterlacedAndPicksPreferred(t *testing.T) {
	raw := kms.Connector{
		Modes: []kms.Info{
			{Hdisplay: 1920, Vdisplay: 1080, Htotal: 2080, Vtotal: 1111, Clock: 148500},
			{Hdisplay: 1280, Vdisplay: 720, Htotal: 1650, Vtotal: 750, Clock: 74250, Type: kms.ModeTypePreferred},
			{Hdisplay: 720, Vdisplay: 480, Flags: kms.ModeFlagInterlace},
		},
	}

	modes, fallback := buildModes(raw)
	if len(modes) != 2 {
		t.Fatalf("expected 2 non-interlaced modes, got %d", len(modes))
	}
	if !fallback.Preferred || fallback.Width != 1280 || fallback.Height != 720 {
		t.Errorf("expected the preferred 1280x720 mode as fallback, got %dx%d preferred=%v", fallback.Width, fallback.Height, fallback.Preferred)
	}
}

func TestBuildModesFirstModeIsFallbackWhenNonePreferred(t *testing.T) {
	raw := kms.Connector{
		Modes: []kms.Info{
			{Hdisplay: 1024, Vdisplay: 768, Htotal: 1344, Vtotal: 806, Clock: 65000},
			{Hdisplay: 800, Vdisplay: 600, Htotal: 1056, Vtotal: 628, Clock: 40000},
		},
	}

	_, fallback := buildModes(raw)
	if fallback.Width != 1024 || fallback.Height != 768 {
		t.Errorf("expected first mode as fallback, got %dx%d", fallback.Width, fallback.Height)
	}
}

func TestSelectCRTCNoEncodersIsAnError(t *testing.T) {
	gpu := &GPU{}
	raw := kms.Connector{ID: 7}
	if _, err := selectCRTC(gpu, raw, nil, map[uint32]bool{}); err == nil {
		t.Fatal("expected an error for a connector with no encoders")
	}
}

func TestFindCrtcByID(t *testing.T) {
	crtcs := []*Crtc{{ID: 1}, {ID: 2}, {ID: 3}}
	if c := findCrtcByID(crtcs, 2); c == nil || c.ID != 2 {
		t.Fatalf("expected to find crtc 2, got %v", c)
	}
	if c := findCrtcByID(crtcs, 99); c != nil {
		t.Fatalf("expected no match, got %v", c)
	}
}

func TestStatusFromKMS(t *testing.T) {
	cases := map[uint32]ConnectionStatus{
		kms.Connected:    StatusConnected,
		kms.Disconnected: StatusDisconnected,
		99:                StatusUninit,
	}
	for raw, want := range cases {
		if got := statusFromKMS(raw); got != want {
			t.Errorf("statusFromKMS(%d) = %v, want %v", raw, got, want)
		}
	}
}

func TestConnectorNameAndKind(t *testing.T) {
	raw := kms.Connector{Type: 11, TypeID: 2}
	if got, want := connectorName(raw), "HDMI-A-2"; got != want {
		t.Errorf("connectorName() = %q, want %q", got, want)
	}
	if got, want := connectorKindName(999), "Unknown"; got != want {
		t.Errorf("connectorKindName(unknown) = %q, want %q", got, want)
	}
}

func TestNewConnectorStartsUninit(t *testing.T) {
	c := newConnector(5)
	if c.ID != 5 || c.Status != StatusUninit {
		t.Errorf("newConnector() = %+v, want id=5 status=Uninit", c)
	}
}
