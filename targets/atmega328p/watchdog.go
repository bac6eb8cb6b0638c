//go:build atmega328p

package main

import (
	"device/avr"
	"runtime/interrupt"
)

// AVRWatchdog drives the on-chip watchdog in system reset mode. The
// machine package has no watchdog HAL on AVR, so this talks to WDTCSR
// directly.
type AVRWatchdog struct{}

// Configure arms a 500ms reset timeout. WDTCSR changes require the timed
// sequence: set WDCE and WDE, then write the new value within four
// cycles, with interrupts masked.
func (w *AVRWatchdog) Configure() {
	state := interrupt.Disable()
	avr.Asm("wdr")
	avr.WDTCSR.Set(avr.WDTCSR_WDCE | avr.WDTCSR_WDE)
	avr.WDTCSR.Set(avr.WDTCSR_WDE | avr.WDTCSR_WDP2 | avr.WDTCSR_WDP0)
	interrupt.Restore(state)
}

func (w *AVRWatchdog) Ack() {
	avr.Asm("wdr")
}
