package core

import "sync/atomic"

// Fault reason codes, reported through ShutdownReason and the event ring
const (
	FaultNone          = 0
	FaultUnderflow     = 1 // output released with no assertion held
	FaultWatchdogReset = 2 // previous reset was a watchdog timeout
	FaultBrownout      = 3 // previous reset was a brown-out
	FaultBadWiring     = 4 // wiring table rejected at startup
	FaultIO            = 5 // a GPIO backend stopped answering
)

var (
	shutdownFlag   uint32 // atomic; 1 once a fault has latched
	shutdownReason uint32 // atomic; first fault wins

	// emergencyShutdown forces every output to its fail-safe level.
	// Registered by the wiring target before the scan loop starts.
	emergencyShutdown func(reason uint8)

	// halt parks the device after a fault. Target code registers a
	// handler that never returns but keeps feeding the watchdog; hosted
	// builds register one that exits or, in tests, records the call.
	halt func(reason uint8)
)

// SetEmergencyShutdown registers the fail-safe output forcing hook
func SetEmergencyShutdown(fn func(reason uint8)) {
	emergencyShutdown = fn
}

// SetHalt registers the post-fault halt hook
func SetHalt(fn func(reason uint8)) {
	halt = fn
}

// IsShutdown reports whether a fatal fault has latched
func IsShutdown() bool {
	return atomic.LoadUint32(&shutdownFlag) != 0
}

// ShutdownReason returns the first latched fault reason
func ShutdownReason() uint8 {
	return uint8(atomic.LoadUint32(&shutdownReason))
}

// Fatal handles an unrecoverable fault: latch the reason, force every
// output to its fail-safe level, dump the event ring for post-mortem, and
// halt. Recovery is a power cycle or reflash, not a code path. With no
// halt hook registered Fatal panics, so a fault can never be silently
// ignored on hosted builds.
func Fatal(reason uint8) {
	if atomic.CompareAndSwapUint32(&shutdownFlag, 0, 1) {
		atomic.StoreUint32(&shutdownReason, uint32(reason))
	}
	if emergencyShutdown != nil {
		emergencyShutdown(ShutdownReason())
	}
	RecordEvent(EvtFault, 0, 0, reason)
	DumpEventRing()
	if halt == nil {
		panic("fatal fault " + utoa(uint32(reason)) + " with no halt hook")
	}
	halt(ShutdownReason())
}

// ResetShutdown clears the latch. Hosted test and simulator support, so
// one process can run many scenarios; firmware recovers from a fault by
// power cycle only and never calls this.
func ResetShutdown() {
	atomic.StoreUint32(&shutdownFlag, 0)
	atomic.StoreUint32(&shutdownReason, 0)
}
