package sim

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/womat/debug"

	"gobounce/core"
)

// Result summarizes one scenario run
type Result struct {
	Passes   int
	Acks     int
	Failures []string
}

// Runner executes one scenario against the debouncer core on simulated
// time. It owns the HAL singletons for the duration of the run; one
// runner at a time per process.
type Runner struct {
	scn    *Scenario
	gpio   *SimGPIO
	timer  *SimTimer
	wd     *SimWatchdog
	clk    *core.Clock
	wiring *core.Wiring
	loop   *core.ScanLoop

	events []EventDef
	checks []CheckDef

	halted     bool
	haltReason uint8
}

// NewRunner validates the scenario's wiring against the core and prepares
// a run
func NewRunner(scn *Scenario) (*Runner, error) {
	passTicks := ticksAt(scn.ScanIntervalUS, scn.TickHz)
	if passTicks < 1 {
		return nil, errors.Errorf("scan interval %dus is shorter than one clock tick", scn.ScanIntervalUS)
	}
	if passTicks >= 1<<16 {
		return nil, errors.Errorf("scan interval %dus exceeds the raw counter period", scn.ScanIntervalUS)
	}

	wiring, err := scn.WiringSpec().Build(scn.TickHz)
	if err != nil {
		return nil, errors.Wrap(err, "building wiring")
	}

	timer := &SimTimer{}
	wdTicks := uint32(uint64(scn.WatchdogMS) * uint64(scn.TickHz) / 1000)
	return &Runner{
		scn:    scn,
		gpio:   NewSimGPIO(),
		timer:  timer,
		wd:     NewSimWatchdog(timer, wdTicks),
		clk:    core.NewPolledClock(timer),
		wiring: wiring,
		events: scn.sortedEvents(),
		checks: scn.sortedChecks(),
	}, nil
}

// Run replays the scenario and reports every expectation it missed
func (r *Runner) Run() (*Result, error) {
	core.SetGPIODriver(r.gpio)
	core.SetWatchdog(r.wd)
	core.SetEmergencyShutdown(func(reason uint8) { r.wiring.ForceAllSafe() })
	core.SetHalt(func(reason uint8) {
		r.halted = true
		r.haltReason = reason
	})
	core.ResetShutdown()
	core.ClearEventRing()

	if err := r.wiring.Setup(r.clk.Now()); err != nil {
		return nil, errors.Wrap(err, "wiring setup")
	}
	r.loop = core.NewScanLoop(r.wiring, r.clk)

	res := &Result{}
	interval := r.scn.ScanIntervalUS
	end := r.scn.endUS()
	levels := r.outputLevels()
	nextCheck := 0

	debug.InfoLog.Printf("scenario %q: %d inputs, %d outputs, %d events, %d checks",
		r.scn.Name, len(r.scn.Inputs), len(r.scn.Outputs), len(r.checks))

	for us := interval; us <= end && !r.halted; us += interval {
		for _, in := range r.scn.Inputs {
			pin := core.Pin(in.Pin)
			r.gpio.SetLevel(pin, r.levelAt(pin, us))
		}
		r.timer.Advance(ticksAt(us, r.scn.TickHz) - r.timer.Ticks())
		r.loop.Pass()
		res.Passes++

		levels = r.logOutputChanges(us, levels)

		for nextCheck < len(r.checks) && r.checks[nextCheck].AtUS <= us {
			c := r.checks[nextCheck]
			nextCheck++
			out := r.wiring.Output(c.Output)
			if got := out.Driven(); got != c.Driven {
				res.Failures = append(res.Failures,
					fmt.Sprintf("t=%dus: output %q driven=%v, expected %v (level %d)",
						c.AtUS, c.Output, got, c.Driven, out.Level()))
			}
		}
	}

	if r.halted {
		res.Failures = append(res.Failures,
			fmt.Sprintf("fatal fault %d latched during the run", r.haltReason))
	}
	if r.wd.Starved() {
		res.Failures = append(res.Failures, "watchdog starved: an ack gap exceeded the timeout")
	}
	for ; nextCheck < len(r.checks) && !r.halted; nextCheck++ {
		res.Failures = append(res.Failures,
			fmt.Sprintf("t=%dus: check never evaluated", r.checks[nextCheck].AtUS))
	}

	res.Acks = r.wd.Acks()
	if len(res.Failures) > 0 {
		return res, errors.Errorf("scenario %q: %d failures", r.scn.Name, len(res.Failures))
	}
	debug.InfoLog.Printf("scenario %q passed: %d passes, %d acks", r.scn.Name, res.Passes, res.Acks)
	return res, nil
}

// levelAt computes the electrical level of an input line at a simulated
// time: the settled level of the last event on it, or its chatter if the
// event is still bouncing. Lines with no event yet sit at their released
// level.
func (r *Runner) levelAt(pin core.Pin, us int) bool {
	level := r.gpio.ReleasedLevel(pin)
	for _, e := range r.events {
		if e.AtUS > us {
			break
		}
		if core.Pin(e.Pin) != pin {
			continue
		}
		target := e.Level == "high"
		if us >= e.AtUS+e.BounceUS {
			level = target
			continue
		}
		// Mid-bounce: alternate every chatter period, starting away
		// from the settled level so the burst is visible.
		n := (us - e.AtUS) / r.scn.ChatterUS
		if n%2 == 0 {
			level = !target
		} else {
			level = target
		}
	}
	return level
}

// outputLevels snapshots every output's assertion count
func (r *Runner) outputLevels() []uint8 {
	levels := make([]uint8, len(r.wiring.Outputs))
	for i, o := range r.wiring.Outputs {
		levels[i] = o.Level()
	}
	return levels
}

// logOutputChanges reports count movement since the previous pass
func (r *Runner) logOutputChanges(us int, prev []uint8) []uint8 {
	now := r.outputLevels()
	for i, o := range r.wiring.Outputs {
		if now[i] != prev[i] {
			debug.DebugLog.Printf("t=%dus: output %q level %d -> %d (driven=%v)",
				us, o.Name(), prev[i], now[i], o.Driven())
		}
	}
	return now
}

// ticksAt converts a simulated-time offset to absolute clock ticks
func ticksAt(us int, tickHz uint32) uint32 {
	return uint32(uint64(us) * uint64(tickHz) / 1000000)
}
