package sim

import (
	"github.com/pkg/errors"

	"gobounce/core"
)

// SimGPIO is an in-memory GPIO driver. The runner owns it from a single
// goroutine; scenario events drive input levels through SetLevel and the
// core drives outputs through WritePin.
type SimGPIO struct {
	levels  map[core.Pin]bool
	pullups map[core.Pin]bool
	inputs  map[core.Pin]bool
	outputs map[core.Pin]bool
}

func NewSimGPIO() *SimGPIO {
	return &SimGPIO{
		levels:  make(map[core.Pin]bool),
		pullups: make(map[core.Pin]bool),
		inputs:  make(map[core.Pin]bool),
		outputs: make(map[core.Pin]bool),
	}
}

func (g *SimGPIO) ConfigureInput(pin core.Pin, pullup bool) error {
	if g.outputs[pin] {
		return errors.Errorf("pin %d already configured as output", pin)
	}
	g.inputs[pin] = true
	g.pullups[pin] = pullup
	// An untouched pulled-up line floats high
	g.levels[pin] = pullup
	return nil
}

func (g *SimGPIO) ConfigureOutput(pin core.Pin) error {
	if g.inputs[pin] {
		return errors.Errorf("pin %d already configured as input", pin)
	}
	g.outputs[pin] = true
	return nil
}

func (g *SimGPIO) ReadPin(pin core.Pin) bool {
	return g.levels[pin]
}

func (g *SimGPIO) WritePin(pin core.Pin, level bool) {
	g.levels[pin] = level
}

// SetLevel drives an input line from outside, the way the switch would
func (g *SimGPIO) SetLevel(pin core.Pin, level bool) {
	g.levels[pin] = level
}

// Level inspects a line's current electrical state
func (g *SimGPIO) Level(pin core.Pin) bool {
	return g.levels[pin]
}

// ReleasedLevel returns the electrical level of an untouched input line
func (g *SimGPIO) ReleasedLevel(pin core.Pin) bool {
	return g.pullups[pin]
}

// SimTimer is a tick counter the runner advances by hand. It backs the
// polled clock strategy, same as the hosted targets.
type SimTimer struct {
	ticks uint32
}

func (t *SimTimer) ReadRaw() uint16 {
	return uint16(t.ticks)
}

// Ticks returns the full-width tick count
func (t *SimTimer) Ticks() uint32 {
	return t.ticks
}

// Advance moves simulated time forward
func (t *SimTimer) Advance(ticks uint32) {
	t.ticks += ticks
}

// SimWatchdog checks that acknowledgments arrive inside the timeout, in
// simulated time. A starved watchdog marks the run failed rather than
// resetting anything.
type SimWatchdog struct {
	timer   *SimTimer
	timeout uint32 // ticks
	lastAck uint32
	acks    int
	starved bool
}

func NewSimWatchdog(timer *SimTimer, timeoutTicks uint32) *SimWatchdog {
	return &SimWatchdog{timer: timer, timeout: timeoutTicks}
}

func (w *SimWatchdog) Ack() {
	now := w.timer.Ticks()
	if now-w.lastAck > w.timeout {
		w.starved = true
	}
	w.lastAck = now
	w.acks++
}

// Starved reports whether any ack gap exceeded the timeout
func (w *SimWatchdog) Starved() bool {
	return w.starved
}

// Acks returns the total acknowledgment count
func (w *SimWatchdog) Acks() int {
	return w.acks
}
