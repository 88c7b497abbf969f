package kmsdrm

import "testing"

func TestLegacyEngineCommitNoCRTC(t *testing.T) {
	conn := &Connector{ID: 1}
	ok, err := LegacyEngine{}.Commit(nil, conn, &CommitData{})
	if ok || err != ErrNoCRTC {
		t.Fatalf("Commit() = (%v, %v), want (false, ErrNoCRTC)", ok, err)
	}
}

func TestLegacyEngineCommitTestNeverTouchesHardware(t *testing.T) {
	conn := &Connector{ID: 1, CRTC: &Crtc{ID: 9}}
	ok, err := LegacyEngine{}.Commit(nil, conn, &CommitData{IsTest: true})
	if !ok || err != nil {
		t.Fatalf("Commit(IsTest) = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestLegacyEngineCommitNoBufferIsAcceptedNoop(t *testing.T) {
	conn := &Connector{ID: 1, CRTC: &Crtc{ID: 9}}
	ok, err := LegacyEngine{}.Commit(nil, conn, &CommitData{})
	if !ok || err != nil {
		t.Fatalf("Commit(no FB, no modeset) = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestLegacyEngineResetNoCRTCIsNoop(t *testing.T) {
	conn := &Connector{ID: 1}
	if err := (LegacyEngine{}).Reset(nil, conn); err != nil {
		t.Fatalf("Reset() with no CRTC = %v, want nil", err)
	}
}
