// Package cvt synthesizes a raw display mode timing (clock, porches,
// sync polarities) from pixel dimensions and a target refresh rate,
// for connectors whose kernel-reported mode blob is missing or
// incomplete. It follows the reduced-blanking branch of the VESA CVT
// 1.2 algorithm, the same family of calculation the original backend
// drives through libdisplay-info's di_cvt_compute.
package cvt

import (
	"math"
	"strconv"
)

// Timing is a synthesized mode's raw blob, in the same units the kms
// package's Info struct stores (pixel clock in kHz, porches in pixel
// or line counts).
type Timing struct {
	ClockKHz uint32

	HDisplay, HSyncStart, HSyncEnd, HTotal uint16
	VDisplay, VSyncStart, VSyncEnd, VTotal uint16

	VRefreshMilliHz uint32
}

const (
	cellGranularity = 8 // CVT requires HDisplay rounded to a multiple of this

	// CVT-RB v1 fixed values (VESA CVT 1.2, reduced blanking).
	rbHBlank        = 160.0 // fixed horizontal blank, pixels
	rbHSync         = 32.0  // fixed horizontal sync width, pixels
	rbVFrontPorch   = 3.0   // fixed vertical front porch, lines
	rbMinVBackPorch = 6.0   // minimum vertical back porch, lines
	rbMinVBlankUs   = 460.0 // minimum vertical blanking time, microseconds
)

// Compute synthesizes a reduced-blanking timing for width x height
// pixels at refreshMilliHz, rounding HDisplay down to a multiple of 8
// as CVT requires. Timing carries no sync-polarity flags; the caller
// stamps those.
func Compute(width, height int, refreshMilliHz uint32) Timing {
	if refreshMilliHz == 0 {
		refreshMilliHz = 60000
	}
	refreshHz := float64(refreshMilliHz) / 1000.0

	hDisplay := (width / cellGranularity) * cellGranularity
	if hDisplay == 0 {
		hDisplay = width
	}
	vDisplay := height

	hPeriodEstimate := ((1.0 / refreshHz) - rbMinVBlankUs/1e6) / float64(vDisplay) * 1e6

	vBackPorch := rbMinVBackPorch
	vSyncWidth := 6.0
	vBlankLines := math.Ceil((rbMinVBlankUs / hPeriodEstimate))
	vFrontPorch := rbVFrontPorch
	if vBlankLines < vFrontPorch+vSyncWidth+vBackPorch {
		vBlankLines = vFrontPorch + vSyncWidth + vBackPorch
	}

	totalActiveTime := hPeriodEstimate * float64(vDisplay)
	idealDutyCycle := 100.0 - (rbMinVBlankUs*100.0)/(1.0/refreshHz*1e6)
	_ = idealDutyCycle // kept for parity with the reference derivation; unused beyond documentation

	hTotal := float64(hDisplay) + rbHBlank
	hPeriod := totalActiveTime / float64(vDisplay)
	_ = hPeriod

	clockMHz := (hTotal * refreshHz * float64(vDisplay+int(vBlankLines))) / 1e6 * 1e3
	// Round to the nearest 0.25MHz CVT clock step, expressed in kHz.
	const step = 250.0
	clockMHz = math.Round(clockMHz/step) * step
	clockKHz := uint32(math.Round(clockMHz))

	vTotal := vDisplay + int(vBlankLines)
	vSyncStart := vDisplay + int(vFrontPorch)
	vSyncEnd := vSyncStart + int(vSyncWidth)

	hSyncEnd := hDisplay + int(rbHBlank) - int(rbHBlank-rbHSync)/2
	hSyncStart := hSyncEnd - int(rbHSync)

	return Timing{
		ClockKHz:        clockKHz,
		HDisplay:        uint16(hDisplay),
		HSyncStart:      uint16(hSyncStart),
		HSyncEnd:        uint16(hSyncEnd),
		HTotal:          uint16(hTotal),
		VDisplay:        uint16(vDisplay),
		VSyncStart:      uint16(vSyncStart),
		VSyncEnd:        uint16(vSyncEnd),
		VTotal:          uint16(vTotal),
		VRefreshMilliHz: refreshMilliHz,
	}
}

// Name formats the mode name stamp used for synthesized modes, "WxH".
func Name(width, height int) string {
	return strconv.Itoa(width) + "x" + strconv.Itoa(height)
}
