package sim

import (
	"strings"
	"testing"
	"time"
)

const minimalYAML = `
name: minimal
outputs:
  - name: limits
    pin: 20
inputs:
  - pin: 1
    pullup: true
    output: limits
`

func TestParseAppliesDefaults(t *testing.T) {
	s, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.TickHz != DefaultTickHz {
		t.Errorf("Expected default tick rate %d, got %d", DefaultTickHz, s.TickHz)
	}
	if s.ScanIntervalUS != DefaultScanIntervalUS {
		t.Errorf("Expected default scan interval %d, got %d", DefaultScanIntervalUS, s.ScanIntervalUS)
	}
	if s.ActiveTimeUS != DefaultActiveTimeUS || s.DwellTimeMS != DefaultDwellTimeMS {
		t.Errorf("Expected default windows, got %d/%d", s.ActiveTimeUS, s.DwellTimeMS)
	}
	if s.WatchdogMS != DefaultWatchdogMS {
		t.Errorf("Expected default watchdog %d, got %d", DefaultWatchdogMS, s.WatchdogMS)
	}
}

func TestParseRejectsBadScenarios(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			"no inputs",
			`
name: empty
outputs:
  - name: x
    pin: 2
`,
			"no inputs",
		},
		{
			"event on unknown pin",
			minimalYAML + `
events:
  - at_us: 100
    pin: 9
    level: low
`,
			"not an input",
		},
		{
			"bad event level",
			minimalYAML + `
events:
  - at_us: 100
    pin: 1
    level: down
`,
			"level must be",
		},
		{
			"negative event time",
			minimalYAML + `
events:
  - at_us: -5
    pin: 1
    level: low
`,
			"negative time",
		},
		{
			"check on unknown output",
			minimalYAML + `
checks:
  - at_us: 100
    output: nope
    driven: true
`,
			"unknown output",
		},
		{
			"unknown key",
			minimalYAML + `
bogus: 1
`,
			"bogus",
		},
	}
	for _, c := range cases {
		_, err := Parse([]byte(c.yaml))
		if err == nil {
			t.Errorf("%s: expected an error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: expected error mentioning %q, got %q", c.name, c.want, err.Error())
		}
	}
}

func TestWiringSpecConversion(t *testing.T) {
	s, err := Parse([]byte(`
name: conversion
active_time_us: 300
dwell_time_ms: 50
outputs:
  - name: limits
    pin: 20
    invert: true
inputs:
  - pin: 1
    pullup: true
    output: limits
  - pin: 2
    output: limits
    active_time_us: 1000
    dwell_time_ms: 5
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	spec := s.WiringSpec()
	if len(spec.Outputs) != 1 || !spec.Outputs[0].Invert {
		t.Fatalf("Output conversion lost fields: %+v", spec.Outputs)
	}
	if got := spec.Connections[0].ActiveTime; got != 300*time.Microsecond {
		t.Errorf("Expected scenario-wide active time, got %v", got)
	}
	if got := spec.Connections[0].DwellTime; got != 50*time.Millisecond {
		t.Errorf("Expected scenario-wide dwell time, got %v", got)
	}
	if got := spec.Connections[1].ActiveTime; got != time.Millisecond {
		t.Errorf("Expected per-input active override, got %v", got)
	}
	if got := spec.Connections[1].DwellTime; got != 5*time.Millisecond {
		t.Errorf("Expected per-input dwell override, got %v", got)
	}
	if !spec.Connections[0].Input.PullUp || spec.Connections[1].Input.PullUp {
		t.Errorf("Pull-up flags lost in conversion")
	}
}
