// Package hwdb enumerates GPU device nodes exposed by the kernel and
// watches for hot-plug changes, playing the role a real udev database
// would play for the session layer. It walks sysfs directly rather
// than shelling out or linking libudev, the same sysfs-walking idiom
// the example pack uses to resolve persistent input-device paths.
package hwdb

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/driftwl/kmsdrm/internal/logx"
)

// Card describes one /sys/class/drm/cardN entry: its device node, the
// seat it belongs to, and whether the firmware marked it as the boot
// display adapter.
type Card struct {
	DevPath string
	SysPath string
	Seat    string
	BootVGA bool
}

// Scan walks /sys/class/drm for card* entries and returns them ordered
// with boot_vga-flagged cards first, matching the "boot_vga promoted
// to front" ordering spec.md's device scanner requires.
func Scan() ([]Card, error) {
	entries, err := os.ReadDir("/sys/class/drm")
	if err != nil {
		return nil, fmt.Errorf("read /sys/class/drm: %w", err)
	}

	var cards []Card
	seen := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		if !isCardDir(name) {
			continue
		}
		sysPath := filepath.Join("/sys/class/drm", name)
		devPath, err := devNode(sysPath)
		if err != nil {
			logx.Debug("skipping drm sysfs entry", "path", sysPath, "err", err)
			continue
		}
		if seen[devPath] {
			continue
		}
		seen[devPath] = true

		cards = append(cards, Card{
			DevPath: devPath,
			SysPath: sysPath,
			Seat:    resolveSeat(sysPath),
			BootVGA: bootVGA(sysPath),
		})
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].BootVGA && !cards[j].BootVGA
	})
	return cards, nil
}

// isCardDir matches "card0", "card1", ... but not the render-node or
// connector entries sysfs also lists under /sys/class/drm.
func isCardDir(name string) bool {
	if !strings.HasPrefix(name, "card") {
		return false
	}
	rest := name[len("card"):]
	if rest == "" {
		return false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// devNode reads device/uevent under a card's sysfs directory for
// DEVNAME, reconstructing the /dev/dri/cardN path the kernel exposes.
func devNode(sysPath string) (string, error) {
	f, err := os.Open(filepath.Join(sysPath, "device", "uevent"))
	if err != nil {
		// Some kernels expose DEVNAME on the card node itself instead
		// of its parent "device" link.
		f, err = os.Open(filepath.Join(sysPath, "uevent"))
		if err != nil {
			return "/dev/dri/" + filepath.Base(sysPath), nil
		}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if name, ok := strings.CutPrefix(line, "DEVNAME="); ok {
			return "/dev/" + name, nil
		}
	}
	return "/dev/dri/" + filepath.Base(sysPath), nil
}

// bootVGA reads the boot_vga attribute off the card's parent PCI
// device node, true for the adapter the firmware used at boot.
func bootVGA(sysPath string) bool {
	data, err := os.ReadFile(filepath.Join(sysPath, "device", "boot_vga"))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "1"
}

// resolveSeat follows the device/seat symlink some sysfs trees
// expose, defaulting to "seat0" when absent.
func resolveSeat(sysPath string) string {
	target, err := os.Readlink(filepath.Join(sysPath, "device", "seat"))
	if err != nil {
		return "seat0"
	}
	return filepath.Base(target)
}
