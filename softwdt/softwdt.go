// Package softwdt provides a software watchdog for hosted builds, where
// the debouncer runs as an ordinary process without a hardware timer
// backing it. A monitor goroutine checks for acknowledgments once per
// timeout period and invokes the registered action when a period passes
// without one. Worst-case detection is two periods, same as a hardware
// watchdog with a petting window.
package softwdt

import (
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// Watchdog supervises a loop that must keep calling Ack. It satisfies the
// firmware watchdog interface, so hosted targets register it where MCU
// targets register their hardware timer.
type Watchdog struct {
	clk       clock.Clock
	timeout   time.Duration
	onTimeout func()

	fed  uint32 // atomic; set by Ack, consumed by the monitor
	stop chan struct{}
	done chan struct{}
}

// New returns a watchdog on the wall clock. onTimeout runs on the monitor
// goroutine when a full period passes without an acknowledgment; it is
// expected not to return (exit, or force outputs safe and exit).
func New(timeout time.Duration, onTimeout func()) *Watchdog {
	return NewWithClock(clock.New(), timeout, onTimeout)
}

// NewWithClock is New with an injectable clock for tests
func NewWithClock(clk clock.Clock, timeout time.Duration, onTimeout func()) *Watchdog {
	return &Watchdog{
		clk:       clk,
		timeout:   timeout,
		onTimeout: onTimeout,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the monitor goroutine. The first period begins now.
func (w *Watchdog) Start() {
	go w.monitor()
}

// Ack records that the supervised loop is alive
func (w *Watchdog) Ack() {
	atomic.StoreUint32(&w.fed, 1)
}

// Stop shuts the monitor down and waits for it. For orderly process exit;
// a stopped watchdog supervises nothing.
func (w *Watchdog) Stop() {
	close(w.stop)
	<-w.done
}

func (w *Watchdog) monitor() {
	defer close(w.done)
	ticker := w.clk.Ticker(w.timeout)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if atomic.SwapUint32(&w.fed, 0) == 0 {
				w.onTimeout()
				return
			}
		case <-w.stop:
			return
		}
	}
}
