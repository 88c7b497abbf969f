package session

import "testing"

func TestWaitActiveAlreadyActive(t *testing.T) {
	s := &Session{active: true}
	if !s.WaitActive(0) {
		t.Fatal("expected already-active session to return immediately")
	}
}

func TestSetActiveNotifiesWatchers(t *testing.T) {
	s := &Session{active: true}
	var got []bool
	s.OnActiveChanged(func(active bool) { got = append(got, active) })

	s.setActive(false)
	s.setActive(false) // no-op: unchanged
	s.setActive(true)

	want := []bool{false, true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
