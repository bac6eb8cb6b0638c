package core

import (
	"strings"
	"testing"
	"time"
)

func validSpec() WiringSpec {
	return WiringSpec{
		Outputs: []OutputSpec{
			{Name: "limits", Pin: 20},
			{Name: "ref-x", Pin: 21, Invert: true},
		},
		Connections: []ConnectionSpec{
			{Input: InputSpec{Pin: 1, PullUp: true}, Output: "limits", ActiveTime: 200 * time.Microsecond, DwellTime: 100 * time.Millisecond},
			{Input: InputSpec{Pin: 2, PullUp: true}, Output: "limits", ActiveTime: 200 * time.Microsecond, DwellTime: 100 * time.Millisecond},
			{Input: InputSpec{Pin: 3}, Output: "ref-x", ActiveTime: 200 * time.Microsecond, DwellTime: 100 * time.Millisecond},
		},
	}
}

func TestBuildResolvesSharedOutputs(t *testing.T) {
	w, err := validSpec().Build(1000000)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(w.Outputs) != 2 || len(w.Connections) != 3 {
		t.Fatalf("Expected 2 outputs and 3 connections, got %d and %d", len(w.Outputs), len(w.Connections))
	}
	if w.Connections[0].out != w.Connections[1].out {
		t.Errorf("Connections naming the same output must share one OutputPin")
	}
	if w.Connections[0].out == w.Connections[2].out {
		t.Errorf("Connections naming different outputs must not share an OutputPin")
	}
	if w.Output("limits") != w.Connections[0].out {
		t.Errorf("Output lookup returned a different pin")
	}
	if w.Output("nope") != nil {
		t.Errorf("Unknown output name must return nil")
	}
	if w.Connections[0].activeTicks != 200 {
		t.Errorf("Expected 200 ticks active window at 1MHz, got %d", w.Connections[0].activeTicks)
	}
	if w.Connections[0].dwellTicks != 100000 {
		t.Errorf("Expected 100000 ticks dwell window at 1MHz, got %d", w.Connections[0].dwellTicks)
	}
}

func TestBuildRejectsBadTables(t *testing.T) {
	cases := []struct {
		name   string
		mangle func(*WiringSpec)
		want   string
	}{
		{"no connections", func(s *WiringSpec) { s.Connections = nil }, "no connections"},
		{"unnamed output", func(s *WiringSpec) { s.Outputs[0].Name = ""; s.Connections[0].Output = ""; s.Connections[1].Output = "" }, "no name"},
		{"duplicate output name", func(s *WiringSpec) { s.Outputs[1].Name = "limits" }, "duplicate output"},
		{"output pin shared", func(s *WiringSpec) { s.Outputs[1].Pin = 20 }, "share pin"},
		{"unknown output", func(s *WiringSpec) { s.Connections[2].Output = "missing" }, "unknown output"},
		{"input wired twice", func(s *WiringSpec) { s.Connections[1].Input.Pin = 1 }, "wired twice"},
		{"input is an output", func(s *WiringSpec) { s.Connections[2].Input.Pin = 20 }, "both input and output"},
		{"zero active time", func(s *WiringSpec) { s.Connections[0].ActiveTime = 0 }, "active time"},
		{"negative dwell time", func(s *WiringSpec) { s.Connections[0].DwellTime = -time.Second }, "dwell time"},
		{"window too long", func(s *WiringSpec) { s.Connections[0].DwellTime = 40 * time.Minute }, "beyond the comparable range"},
	}
	for _, c := range cases {
		s := validSpec()
		c.mangle(&s)
		_, err := s.Build(1000000)
		if err == nil {
			t.Errorf("%s: expected an error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: expected error mentioning %q, got %q", c.name, c.want, err.Error())
		}
	}
}

func TestBuildRejectsZeroTickRate(t *testing.T) {
	if _, err := validSpec().Build(0); err == nil {
		t.Errorf("Expected an error for a zero tick rate")
	}
}

func TestWindowTicksRoundsUp(t *testing.T) {
	cases := []struct {
		d      time.Duration
		tickHz uint32
		want   Jiffies
	}{
		{time.Microsecond, 1000000, 1},
		{1500 * time.Nanosecond, 1000000, 2}, // partial tick rounds up
		{100 * time.Millisecond, 1000000, 100000},
		{150 * time.Microsecond, 2000000, 300},
		{time.Nanosecond, 1000, 1}, // never collapses to zero
	}
	for _, c := range cases {
		got, err := windowTicks(c.d, c.tickHz)
		if err != nil {
			t.Errorf("windowTicks(%v, %d) failed: %v", c.d, c.tickHz, err)
			continue
		}
		if got != c.want {
			t.Errorf("windowTicks(%v, %d) = %d, expected %d", c.d, c.tickHz, got, c.want)
		}
	}
}

func TestSetupConfiguresAllPins(t *testing.T) {
	g, _ := setupHAL()
	w, err := validSpec().Build(1000000)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := w.Setup(500); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	if !g.outputs[20] || !g.outputs[21] {
		t.Errorf("Expected both output pins configured")
	}
	if pullup, ok := g.inputs[1]; !ok || !pullup {
		t.Errorf("Expected input pin 1 configured with pull-up")
	}
	if pullup, ok := g.inputs[3]; !ok || pullup {
		t.Errorf("Expected input pin 3 configured without pull-up")
	}

	// Outputs start inactive: pin 20 low, inverted pin 21 high
	if g.pins[20] != false {
		t.Errorf("Expected pin 20 driven inactive low")
	}
	if g.pins[21] != true {
		t.Errorf("Expected inverted pin 21 driven inactive high")
	}

	for i, cn := range w.Connections {
		if cn.Asserted() {
			t.Errorf("Connection %d asserted at boot", i)
		}
		if cn.deadline != 500+cn.activeTicks {
			t.Errorf("Connection %d window not armed from setup time", i)
		}
	}
}

func TestForceAllSafe(t *testing.T) {
	g, _ := setupHAL()
	w, err := validSpec().Build(1000000)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := w.Setup(0); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	w.ForceAllSafe()
	if g.pins[20] != true {
		t.Errorf("Expected pin 20 forced active high")
	}
	if g.pins[21] != false {
		t.Errorf("Expected inverted pin 21 forced active low")
	}
}
