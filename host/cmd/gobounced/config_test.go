//go:build linux

package main

import (
	"strings"
	"testing"
	"time"

	"gobounce/core"
)

const millConfig = `
chip: gpiochip1
expander:
  bus: 1
  dev: 0
outputs:
  - name: limits-common
    gpio: 17
  - name: doors
    expander: 8
inputs:
  - gpio: 22
    pullup: true
    output: limits-common
  - expander: 3
    pullup: true
    output: doors
    dwell_time_ms: 250
`

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(millConfig))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.Chip != "gpiochip1" {
		t.Errorf("Expected chip gpiochip1, got %q", cfg.Chip)
	}
	if cfg.ScanIntervalUS != DefaultScanIntervalUS {
		t.Errorf("Expected default scan interval, got %d", cfg.ScanIntervalUS)
	}
	if cfg.WatchdogMS != DefaultWatchdogMS {
		t.Errorf("Expected default watchdog window, got %d", cfg.WatchdogMS)
	}
}

func TestConfigPinSpaces(t *testing.T) {
	cfg, err := ParseConfig([]byte(millConfig))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	spec := cfg.WiringSpec()

	if got := spec.Outputs[0].Pin; got != core.Pin(17) {
		t.Errorf("Expected chip pin 17, got %d", got)
	}
	if got := spec.Outputs[1].Pin; got != expanderBase+8 {
		t.Errorf("Expected expander pin %d, got %d", expanderBase+8, got)
	}
	if got := spec.Connections[1].Input.Pin; got != expanderBase+3 {
		t.Errorf("Expected expander pin %d, got %d", expanderBase+3, got)
	}

	if got := spec.Connections[0].ActiveTime; got != DefaultActiveTimeUS*time.Microsecond {
		t.Errorf("Expected default active time, got %v", got)
	}
	if got := spec.Connections[1].DwellTime; got != 250*time.Millisecond {
		t.Errorf("Expected overridden dwell time 250ms, got %v", got)
	}
}

func TestConfigRejectsBadLocations(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "both gpio and expander",
			yaml: "outputs:\n  - name: x\n    gpio: 1\n    expander: 2\ninputs:\n  - gpio: 3\n    output: x\n",
			want: "mutually exclusive",
		},
		{
			name: "neither gpio nor expander",
			yaml: "outputs:\n  - name: x\ninputs:\n  - gpio: 3\n    output: x\n",
			want: "needs gpio or expander",
		},
		{
			name: "expander pin without a bank",
			yaml: "outputs:\n  - name: x\n    gpio: 1\ninputs:\n  - expander: 3\n    output: x\n",
			want: "none is configured",
		},
		{
			name: "expander pin out of range",
			yaml: "expander:\n  bus: 1\n  dev: 0\noutputs:\n  - name: x\n    gpio: 1\ninputs:\n  - expander: 16\n    output: x\n",
			want: "0-15",
		},
		{
			name: "no inputs",
			yaml: "outputs:\n  - name: x\n    gpio: 1\n",
			want: "no inputs",
		},
		{
			name: "scan interval past the clock period",
			yaml: "scan_interval_us: 40000\noutputs:\n  - name: x\n    gpio: 1\ninputs:\n  - gpio: 3\n    output: x\n",
			want: "clock period",
		},
		{
			name: "unknown key",
			yaml: "wiring: {}\n",
			want: "parsing config",
		},
	}
	for _, tc := range cases {
		_, err := ParseConfig([]byte(tc.yaml))
		if err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}
