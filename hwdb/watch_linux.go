package hwdb

import (
	"context"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/driftwl/kmsdrm/internal/logx"
)

// EventAction mirrors the udev-style action word carried in a kernel
// uevent: "change" (hot-plug on an existing card, e.g. a connector
// appearing), "remove", or "add".
type EventAction string

const (
	ActionAdd    EventAction = "add"
	ActionChange EventAction = "change"
	ActionRemove EventAction = "remove"
)

// Event is a single drm-subsystem uevent.
type Event struct {
	Action  EventAction
	DevPath string
}

// Watch opens a NETLINK_KOBJECT_UEVENT socket and streams drm-subsystem
// events until ctx is canceled, the Go-native replacement for
// libudev's monitor API.
func Watch(ctx context.Context) (<-chan Event, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW, unix.NETLINK_KOBJECT_UEVENT)
	if err != nil {
		return nil, err
	}
	sa := &unix.SockaddrNetlink{Family: unix.AF_NETLINK, Groups: 1, Pid: 0}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, err
	}

	out := make(chan Event, 16)
	go func() {
		defer unix.Close(fd)
		defer close(out)

		buf := make([]byte, 4096)
		for {
			if ctx.Err() != nil {
				return
			}
			n, _, err := unix.Recvfrom(fd, buf, 0)
			if err != nil {
				if err == unix.EINTR {
					continue
				}
				logx.Debug("uevent recv failed", "err", err)
				return
			}
			if ev, ok := parseUevent(buf[:n]); ok {
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// parseUevent extracts ACTION and DEVPATH from a NUL-separated uevent
// payload, discarding anything not under the drm subsystem.
func parseUevent(raw []byte) (Event, bool) {
	fields := strings.Split(string(raw), "\x00")

	var ev Event
	isDRM := false
	for _, f := range fields {
		switch {
		case strings.HasPrefix(f, "ACTION="):
			ev.Action = EventAction(strings.TrimPrefix(f, "ACTION="))
		case strings.HasPrefix(f, "DEVPATH="):
			ev.DevPath = strings.TrimPrefix(f, "DEVPATH=")
		case strings.HasPrefix(f, "SUBSYSTEM=drm"):
			isDRM = true
		}
	}
	if !isDRM || ev.Action == "" {
		return Event{}, false
	}
	return ev, true
}
