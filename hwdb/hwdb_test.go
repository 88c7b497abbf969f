package hwdb

import "testing"

func TestIsCardDir(t *testing.T) {
	cases := map[string]bool{
		"card0":      true,
		"card12":     true,
		"card0-HDMI": false,
		"render128":  false,
		"card":       false,
	}
	for name, want := range cases {
		if got := isCardDir(name); got != want {
			t.Errorf("isCardDir(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseUevent(t *testing.T) {
	raw := "ACTION=change\x00DEVPATH=/devices/pci0000:00/card0\x00SUBSYSTEM=drm\x00"
	ev, ok := parseUevent([]byte(raw))
	if !ok {
		t.Fatal("expected a parsed event")
	}
	if ev.Action != ActionChange {
		t.Errorf("action = %q, want %q", ev.Action, ActionChange)
	}
	if ev.DevPath != "/devices/pci0000:00/card0" {
		t.Errorf("devpath = %q", ev.DevPath)
	}
}

func TestParseUeventIgnoresOtherSubsystems(t *testing.T) {
	raw := "ACTION=add\x00DEVPATH=/devices/virtual/input/event3\x00SUBSYSTEM=input\x00"
	if _, ok := parseUevent([]byte(raw)); ok {
		t.Fatal("expected non-drm uevent to be ignored")
	}
}
