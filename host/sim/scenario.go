// Package sim replays switch activity against the debouncer core on a
// simulated clock. Scenarios are YAML files describing a wiring table,
// line events (with optional contact chatter), and the output states
// expected along the way. Runs are fully deterministic; simulated time
// has no relation to wall time.
package sim

import (
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"gobounce/core"
)

// Scenario defaults
const (
	DefaultTickHz         = 1000000
	DefaultScanIntervalUS = 25
	DefaultActiveTimeUS   = 200
	DefaultDwellTimeMS    = 100
	DefaultWatchdogMS     = 500
	DefaultChatterUS      = 40
)

// OutputDef declares one indicator output
type OutputDef struct {
	Name   string `yaml:"name"`
	Pin    uint32 `yaml:"pin"`
	Invert bool   `yaml:"invert"`
}

// InputDef declares one switch input and the output it drives. Zero
// debounce windows fall back to the scenario-wide values.
type InputDef struct {
	Pin          uint32 `yaml:"pin"`
	PullUp       bool   `yaml:"pullup"`
	Invert       bool   `yaml:"invert"`
	Output       string `yaml:"output"`
	ActiveTimeUS int    `yaml:"active_time_us"`
	DwellTimeMS  int    `yaml:"dwell_time_ms"`
}

// EventDef moves one input line at a point in simulated time. A nonzero
// bounce_us makes the line chatter for that long before settling at the
// target level, the way a real contact closes.
type EventDef struct {
	AtUS     int    `yaml:"at_us"`
	Pin      uint32 `yaml:"pin"`
	Level    string `yaml:"level"` // "high" or "low"
	BounceUS int    `yaml:"bounce_us"`
}

// CheckDef asserts an output's driven state at a point in simulated time
type CheckDef struct {
	AtUS   int    `yaml:"at_us"`
	Output string `yaml:"output"`
	Driven bool   `yaml:"driven"`
}

// Scenario is one complete simulator run
type Scenario struct {
	Name           string      `yaml:"name"`
	TickHz         uint32      `yaml:"tick_hz"`
	ScanIntervalUS int         `yaml:"scan_interval_us"`
	ActiveTimeUS   int         `yaml:"active_time_us"`
	DwellTimeMS    int         `yaml:"dwell_time_ms"`
	WatchdogMS     int         `yaml:"watchdog_ms"`
	ChatterUS      int         `yaml:"chatter_us"`
	Outputs        []OutputDef `yaml:"outputs"`
	Inputs         []InputDef  `yaml:"inputs"`
	Events         []EventDef  `yaml:"events"`
	Checks         []CheckDef  `yaml:"checks"`
}

// Load reads and validates a scenario file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %q", path)
	}
	return Parse(data)
}

// Parse decodes and validates scenario YAML
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, errors.Wrap(err, "parsing scenario")
	}
	s.applyDefaults()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	if s.TickHz == 0 {
		s.TickHz = DefaultTickHz
	}
	if s.ScanIntervalUS == 0 {
		s.ScanIntervalUS = DefaultScanIntervalUS
	}
	if s.ActiveTimeUS == 0 {
		s.ActiveTimeUS = DefaultActiveTimeUS
	}
	if s.DwellTimeMS == 0 {
		s.DwellTimeMS = DefaultDwellTimeMS
	}
	if s.WatchdogMS == 0 {
		s.WatchdogMS = DefaultWatchdogMS
	}
	if s.ChatterUS == 0 {
		s.ChatterUS = DefaultChatterUS
	}
}

func (s *Scenario) validate() error {
	if s.ScanIntervalUS < 1 {
		return errors.New("scan_interval_us must be positive")
	}
	if s.ChatterUS < 1 {
		return errors.New("chatter_us must be positive")
	}
	if s.WatchdogMS < 1 {
		return errors.New("watchdog_ms must be positive")
	}
	if len(s.Inputs) == 0 {
		return errors.New("scenario has no inputs")
	}

	inputs := make(map[uint32]bool, len(s.Inputs))
	for _, in := range s.Inputs {
		inputs[in.Pin] = true
	}
	outputs := make(map[string]bool, len(s.Outputs))
	for _, o := range s.Outputs {
		outputs[o.Name] = true
	}

	for i, e := range s.Events {
		if !inputs[e.Pin] {
			return errors.Errorf("event %d drives pin %d which is not an input", i, e.Pin)
		}
		if e.Level != "high" && e.Level != "low" {
			return errors.Errorf("event %d level must be \"high\" or \"low\", got %q", i, e.Level)
		}
		if e.AtUS < 0 || e.BounceUS < 0 {
			return errors.Errorf("event %d has a negative time", i)
		}
	}
	for i, c := range s.Checks {
		if !outputs[c.Output] {
			return errors.Errorf("check %d references unknown output %q", i, c.Output)
		}
		if c.AtUS < 0 {
			return errors.Errorf("check %d has a negative time", i)
		}
	}
	return nil
}

// WiringSpec converts the scenario's table into the core representation.
// Core validation (shared pins, unknown outputs, window limits) happens
// in Build, not here.
func (s *Scenario) WiringSpec() core.WiringSpec {
	var spec core.WiringSpec
	for _, o := range s.Outputs {
		spec.Outputs = append(spec.Outputs, core.OutputSpec{
			Name:   o.Name,
			Pin:    core.Pin(o.Pin),
			Invert: o.Invert,
		})
	}
	for _, in := range s.Inputs {
		activeUS := in.ActiveTimeUS
		if activeUS == 0 {
			activeUS = s.ActiveTimeUS
		}
		dwellMS := in.DwellTimeMS
		if dwellMS == 0 {
			dwellMS = s.DwellTimeMS
		}
		spec.Connections = append(spec.Connections, core.ConnectionSpec{
			Input: core.InputSpec{
				Pin:    core.Pin(in.Pin),
				PullUp: in.PullUp,
				Invert: in.Invert,
			},
			Output:     in.Output,
			ActiveTime: time.Duration(activeUS) * time.Microsecond,
			DwellTime:  time.Duration(dwellMS) * time.Millisecond,
		})
	}
	return spec
}

// endUS returns the simulated time the run must reach to cover every
// event settling and every check.
func (s *Scenario) endUS() int {
	end := 0
	for _, e := range s.Events {
		if t := e.AtUS + e.BounceUS; t > end {
			end = t
		}
	}
	for _, c := range s.Checks {
		if c.AtUS > end {
			end = c.AtUS
		}
	}
	return end + s.ScanIntervalUS
}

// sortedEvents returns the events ordered by time, stably
func (s *Scenario) sortedEvents() []EventDef {
	evs := make([]EventDef, len(s.Events))
	copy(evs, s.Events)
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].AtUS < evs[j].AtUS })
	return evs
}

// sortedChecks returns the checks ordered by time, stably
func (s *Scenario) sortedChecks() []CheckDef {
	chs := make([]CheckDef, len(s.Checks))
	copy(chs, s.Checks)
	sort.SliceStable(chs, func(i, j int) bool { return chs[i].AtUS < chs[j].AtUS })
	return chs
}
