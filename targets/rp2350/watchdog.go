//go:build rp2350

package main

import "machine"

// watchdogTimeoutMs is the reset window. The scan loop acknowledges once
// per connection evaluation, so anything near this bound means the loop
// is dead, not slow.
const watchdogTimeoutMs = 500

// RPWatchdog drives the on-chip watchdog through TinyGo's machine HAL
type RPWatchdog struct{}

func (w *RPWatchdog) Configure() error {
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: watchdogTimeoutMs})
	if err != nil {
		return err
	}
	return machine.Watchdog.Start()
}

func (w *RPWatchdog) Ack() {
	machine.Watchdog.Update()
}
