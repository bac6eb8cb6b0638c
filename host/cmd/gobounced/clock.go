//go:build linux

package main

import (
	"time"

	"gobounce/core"
)

// TickHz is the hosted tick rate: one tick per microsecond, matching
// the MCU targets so the same windows mean the same time everywhere.
const TickHz = 1000000

// hostTimer exposes the low 16 bits of the process's monotonic
// microsecond count as the clock's tick source. The polled strategy
// needs a read at least once per 65536us raw period; config validation
// caps the scan interval well inside that.
type hostTimer struct {
	start time.Time
}

func (t *hostTimer) ReadRaw() uint16 {
	return uint16(time.Since(t.start).Microseconds())
}

// NewSystemClock returns the polled clock over the host's monotonic time
func NewSystemClock() *core.Clock {
	return core.NewPolledClock(&hostTimer{start: time.Now()})
}
