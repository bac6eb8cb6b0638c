package core

// ScanLoop drives the whole wiring table from a single goroutine. Each
// pass reads every input, runs its debounce step, and feeds the watchdog,
// so a stuck evaluation becomes a hardware reset instead of a silent
// hang. There is no event queue and no concurrency in the hot path; the
// loop's only state lives in the connections and outputs it owns.
type ScanLoop struct {
	wiring *Wiring
	clock  *Clock
}

// NewScanLoop binds a validated wiring table to the clock it runs against
func NewScanLoop(w *Wiring, clk *Clock) *ScanLoop {
	return &ScanLoop{wiring: w, clock: clk}
}

// Pass evaluates every connection exactly once, in table order
func (s *ScanLoop) Pass() {
	d := MustGPIO()
	wd := MustWatchdog()
	for _, cn := range s.wiring.Connections {
		raw := d.ReadPin(cn.in.Pin)
		level := CorrectedLevel(raw, cn.in.PullUp, cn.in.Invert)
		cn.Step(level, s.clock.Now())
		wd.Ack()
	}
}

// Run scans until shutdown. The polled clock strategy relies on every
// pass reading the clock well inside one raw counter period; a table
// small enough for its watchdog window is also small enough for that.
func (s *ScanLoop) Run() {
	for !IsShutdown() {
		s.Pass()
	}
}
