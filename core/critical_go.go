//go:build !tinygo

package core

import "sync"

// irqMu stands in for the interrupt mask on hosted builds. Simulated
// overflow handlers run from goroutines; running them under this lock
// gives mainline clock reads the same exclusion the mask gives hardware.
var irqMu sync.Mutex

// irqState is a placeholder for saved interrupt state on hosted builds
type irqState uintptr

// irqLock takes the hosted stand-in for the interrupt mask
func irqLock() irqState {
	irqMu.Lock()
	return 0
}

// irqUnlock releases the hosted stand-in for the interrupt mask
func irqUnlock(state irqState) {
	irqMu.Unlock()
}
