package core

// Watchdog is the liveness interface. The scan loop calls Ack after every
// connection evaluation; when acknowledgments stop, the underlying timer
// resets the device. There is no soft recovery path: a missed deadline is
// a hardware reset.
type Watchdog interface {
	Ack()
}

// Global singleton used by core code.
var watchdog Watchdog

// SetWatchdog is called by target-specific code to register its watchdog.
func SetWatchdog(w Watchdog) {
	watchdog = w
}

// MustWatchdog returns the configured watchdog or panics if missing.
func MustWatchdog() Watchdog {
	if watchdog == nil {
		panic("watchdog not configured")
	}
	return watchdog
}
