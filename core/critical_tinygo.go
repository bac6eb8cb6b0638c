//go:build tinygo

package core

import "runtime/interrupt"

// irqState mirrors interrupt.State on TinyGo
type irqState = interrupt.State

// irqLock masks interrupts and returns the previous state.
// Sections guarded by it must stay short: the overflow handler
// cannot run until irqUnlock.
func irqLock() irqState {
	return interrupt.Disable()
}

// irqUnlock restores the interrupt state saved by irqLock
func irqUnlock(state irqState) {
	interrupt.Restore(state)
}
