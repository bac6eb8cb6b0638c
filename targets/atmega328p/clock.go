//go:build atmega328p

package main

import (
	"device/avr"
	"runtime/interrupt"

	"gobounce/core"
)

// TickHz is the Timer1 rate: 16MHz system clock through the /8 prescaler
const TickHz = 2000000

// avrTimer exposes Timer1 as the clock's tick source. Timer1 free-runs in
// normal mode; TOV1 latches on every wrap and vectors to the overflow
// interrupt.
type avrTimer struct{}

// ReadRaw samples TCNT1. Low byte first: the hardware latches the high
// byte into TEMP on the low read, so the two bytes come from one instant.
// Callers hold the interrupt mask, keeping TEMP ours.
func (t *avrTimer) ReadRaw() uint16 {
	lo := avr.TCNT1L.Get()
	hi := avr.TCNT1H.Get()
	return uint16(hi)<<8 | uint16(lo)
}

func (t *avrTimer) OverflowPending() bool {
	return avr.TIFR1.HasBits(avr.TIFR1_TOV1)
}

// ClearOverflow acknowledges TOV1 (write one to clear)
func (t *avrTimer) ClearOverflow() {
	avr.TIFR1.Set(avr.TIFR1_TOV1)
}

var systemClock *core.Clock

// NewSystemClock starts Timer1 and returns the interrupt-carried clock.
// Call once at boot, before the scan loop.
func NewSystemClock() *core.Clock {
	clk := core.NewInterruptClock(&avrTimer{})
	systemClock = clk

	avr.TCCR1A.Set(0)                  // normal mode, no output compare
	avr.TCCR1B.Set(avr.TCCR1B_CS11)    // clk/8
	avr.TCNT1H.Set(0)                  // high byte first through TEMP
	avr.TCNT1L.Set(0)
	avr.TIFR1.Set(avr.TIFR1_TOV1)      // drop any stale wrap
	avr.TIMSK1.Set(avr.TIMSK1_TOIE1)

	// TOIE1 above is the enable; vectoring clears TOV1 by hardware
	interrupt.New(avr.IRQ_TIMER1_OVF, func(i interrupt.Interrupt) {
		systemClock.OverflowInterrupt()
	})

	return clk
}
