package core

import (
	"time"

	"github.com/pkg/errors"
)

// InputSpec locates one switch input and its polarity handling
type InputSpec struct {
	Pin    Pin
	PullUp bool
	Invert bool
}

// OutputSpec declares one indicator output. Name is how connections refer
// to it; any number of connections may share an output.
type OutputSpec struct {
	Name   string
	Pin    Pin
	Invert bool
}

// ConnectionSpec wires one input to one output with its debounce windows
type ConnectionSpec struct {
	Input      InputSpec
	Output     string
	ActiveTime time.Duration
	DwellTime  time.Duration
}

// WiringSpec is the complete build-time table for one machine. Targets
// define theirs as package data; nothing changes it after Build.
type WiringSpec struct {
	Outputs     []OutputSpec
	Connections []ConnectionSpec
}

// Wiring is the resolved, validated table the scan loop runs against.
// Construction happens once at startup; afterwards only per-connection
// and per-output runtime state mutates.
type Wiring struct {
	Outputs     []*OutputPin
	Connections []*Connection
}

// maxFanIn caps how many connections may share one output, so the
// assertion count stays inside its 8-bit range.
const maxFanIn = 255

// Build validates the table and resolves output references. tickHz is the
// rate of the clock the scan loop will read; debounce windows convert to
// ticks here, once, so the scan path does no arithmetic beyond compares.
func (s WiringSpec) Build(tickHz uint32) (*Wiring, error) {
	if tickHz == 0 {
		return nil, errors.New("tick rate must be non-zero")
	}
	if len(s.Connections) == 0 {
		return nil, errors.New("no connections defined")
	}
	if len(s.Connections) > maxFanIn {
		return nil, errors.Errorf("%d connections, at most %d supported", len(s.Connections), maxFanIn)
	}

	w := &Wiring{
		Outputs:     make([]*OutputPin, 0, len(s.Outputs)),
		Connections: make([]*Connection, 0, len(s.Connections)),
	}
	byName := make(map[string]*OutputPin, len(s.Outputs))
	outPins := make(map[Pin]string, len(s.Outputs))

	for _, o := range s.Outputs {
		if o.Name == "" {
			return nil, errors.Errorf("output on pin %d has no name", o.Pin)
		}
		if _, dup := byName[o.Name]; dup {
			return nil, errors.Errorf("duplicate output %q", o.Name)
		}
		if prev, dup := outPins[o.Pin]; dup {
			return nil, errors.Errorf("outputs %q and %q share pin %d", prev, o.Name, o.Pin)
		}
		pin := &OutputPin{name: o.Name, pin: o.Pin}
		if o.Invert {
			pin.flags |= OutInvert
		}
		byName[o.Name] = pin
		outPins[o.Pin] = o.Name
		w.Outputs = append(w.Outputs, pin)
	}

	inPins := make(map[Pin]bool, len(s.Connections))
	for i, c := range s.Connections {
		out, ok := byName[c.Output]
		if !ok {
			return nil, errors.Errorf("connection %d references unknown output %q", i, c.Output)
		}
		if inPins[c.Input.Pin] {
			return nil, errors.Errorf("input pin %d wired twice", c.Input.Pin)
		}
		if _, clash := outPins[c.Input.Pin]; clash {
			return nil, errors.Errorf("pin %d used as both input and output", c.Input.Pin)
		}
		inPins[c.Input.Pin] = true

		active, err := windowTicks(c.ActiveTime, tickHz)
		if err != nil {
			return nil, errors.Wrapf(err, "connection %d active time", i)
		}
		dwell, err := windowTicks(c.DwellTime, tickHz)
		if err != nil {
			return nil, errors.Wrapf(err, "connection %d dwell time", i)
		}
		w.Connections = append(w.Connections, &Connection{
			id:          uint8(i),
			in:          c.Input,
			out:         out,
			activeTicks: active,
			dwellTicks:  dwell,
		})
	}
	return w, nil
}

// windowTicks converts a debounce window to clock ticks, rounding up so a
// short window never collapses to zero. Windows at or above half the
// jiffies space are rejected; After cannot order them.
func windowTicks(d time.Duration, tickHz uint32) (Jiffies, error) {
	if d <= 0 {
		return 0, errors.New("must be positive")
	}
	ticks := (uint64(d)*uint64(tickHz) + uint64(time.Second) - 1) / uint64(time.Second)
	if ticks >= 1<<31 {
		return 0, errors.Errorf("%v is %d ticks, beyond the comparable range", d, ticks)
	}
	return Jiffies(ticks), nil
}

// Setup configures every pin direction and pull-up, drives all outputs
// inactive, then arms each connection's confirmation window. Call once at
// startup, after the GPIO driver is registered.
func (w *Wiring) Setup(now Jiffies) error {
	d := MustGPIO()
	for _, o := range w.Outputs {
		if err := d.ConfigureOutput(o.pin); err != nil {
			return errors.Wrapf(err, "output pin %d", o.pin)
		}
		o.set(false)
	}
	for _, cn := range w.Connections {
		if err := d.ConfigureInput(cn.in.Pin, cn.in.PullUp); err != nil {
			return errors.Wrapf(err, "input pin %d", cn.in.Pin)
		}
		cn.setup(now)
	}
	return nil
}

// ForceAllSafe drives every output to its asserted level directly,
// bypassing assertion counts. Shutdown path only.
func (w *Wiring) ForceAllSafe() {
	for _, o := range w.Outputs {
		o.ForceActive()
	}
}

// Output returns the named output, or nil if the table has none
func (w *Wiring) Output(name string) *OutputPin {
	for _, o := range w.Outputs {
		if o.name == name {
			return o
		}
	}
	return nil
}
