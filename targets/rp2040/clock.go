//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"

	"gobounce/core"
)

// TickHz is the RP2040 timer rate: the peripheral counts microseconds
const TickHz = 1000000

// RP2040 Timer peripheral memory map
//
// Timer register offsets:
// timeHW   @ 0x00 - Write to upper 32b
// timeLW   @ 0x04 - Write to lower 32b
// timeHR   @ 0x08 - Latched read from upper 32b
// timeLR   @ 0x0C - Latched read from lower 32b
// alarm[4] @ 0x10-0x1C
// armed    @ 0x20
// timeRawH @ 0x24 - Raw read from upper 32b
// timeRawL @ 0x28 - Raw read from lower 32b
const (
	timerBase     = 0x40054000       // RP2040 TIMER base address
	timerTimeRawL = timerBase + 0x28 // Raw timer low (no latching)
)

var timerRawL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTimeRawL)))

// rpTimer exposes the low 16 bits of the microsecond timer as the
// clock's tick source. The timer wraps its full 64 bits, not 16, so
// there is no overflow interrupt to carry on; the clock runs the polled
// strategy and the scan loop reads it far more often than once per
// 65536us raw period.
type rpTimer struct{}

func (t *rpTimer) ReadRaw() uint16 {
	return uint16(timerRawL.Get())
}

// NewSystemClock returns the polled clock over the hardware timer.
// TinyGo's runtime has already brought up the tick generator.
func NewSystemClock() *core.Clock {
	// Read and discard a few values so the first real reading is stable
	_ = timerRawL.Get()
	_ = timerRawL.Get()
	return core.NewPolledClock(&rpTimer{})
}
