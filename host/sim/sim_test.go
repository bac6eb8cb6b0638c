package sim

import (
	"strings"
	"testing"
)

func mustRun(t *testing.T, yaml string) (*Result, error) {
	t.Helper()
	s, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	r, err := NewRunner(s)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	return r.Run()
}

func TestRunCleanPressAndRelease(t *testing.T) {
	res, err := mustRun(t, `
name: clean press and release
outputs:
  - name: limits
    pin: 20
inputs:
  - pin: 1
    pullup: true
    output: limits
events:
  - at_us: 1000
    pin: 1
    level: low
  - at_us: 250000
    pin: 1
    level: high
checks:
  - at_us: 900
    output: limits
    driven: false
  - at_us: 1100
    output: limits
    driven: false
  - at_us: 1300
    output: limits
    driven: true
  - at_us: 349000
    output: limits
    driven: true
  - at_us: 350200
    output: limits
    driven: false
`)
	if err != nil {
		t.Fatalf("Run failed: %v (result %+v)", err, res)
	}
	if res.Passes == 0 || res.Acks != res.Passes {
		t.Errorf("Expected one ack per pass for one input, got %d acks over %d passes", res.Acks, res.Passes)
	}
}

func TestRunChatterDelaysAssertion(t *testing.T) {
	// The contact bounces for 600us before settling closed. The output
	// must hold off through the whole burst and through a full
	// confirmation window after it settles.
	res, err := mustRun(t, `
name: bouncy press
outputs:
  - name: limits
    pin: 20
inputs:
  - pin: 1
    pullup: true
    output: limits
events:
  - at_us: 1000
    pin: 1
    level: low
    bounce_us: 600
checks:
  - at_us: 1500
    output: limits
    driven: false
  - at_us: 1700
    output: limits
    driven: false
  - at_us: 1900
    output: limits
    driven: true
`)
	if err != nil {
		t.Fatalf("Run failed: %v (result %+v)", err, res)
	}
}

func TestRunSharedOutputHeldByEither(t *testing.T) {
	res, err := mustRun(t, `
name: shared limit line
outputs:
  - name: limits
    pin: 20
inputs:
  - pin: 1
    pullup: true
    output: limits
  - pin: 2
    pullup: true
    output: limits
events:
  - at_us: 1000
    pin: 1
    level: low
  - at_us: 5000
    pin: 2
    level: low
  - at_us: 10000
    pin: 1
    level: high
  - at_us: 20000
    pin: 2
    level: high
checks:
  - at_us: 2000
    output: limits
    driven: true
  - at_us: 110500
    output: limits
    driven: true
  - at_us: 121000
    output: limits
    driven: false
`)
	if err != nil {
		t.Fatalf("Run failed: %v (result %+v)", err, res)
	}
	if res.Acks != 2*res.Passes {
		t.Errorf("Expected two acks per pass, got %d over %d passes", res.Acks, res.Passes)
	}
}

func TestRunReportsFailedChecks(t *testing.T) {
	res, err := mustRun(t, `
name: wrong expectation
outputs:
  - name: limits
    pin: 20
inputs:
  - pin: 1
    pullup: true
    output: limits
checks:
  - at_us: 1000
    output: limits
    driven: true
`)
	if err == nil {
		t.Fatalf("Expected the run to fail")
	}
	if len(res.Failures) != 1 || !strings.Contains(res.Failures[0], "expected true") {
		t.Errorf("Expected one failure explaining the check, got %v", res.Failures)
	}
}

func TestRunDetectsWatchdogStarvation(t *testing.T) {
	// A 2ms scan interval against a 1ms watchdog: every ack arrives a
	// full gap too late.
	res, err := mustRun(t, `
name: starved watchdog
scan_interval_us: 2000
watchdog_ms: 1
outputs:
  - name: limits
    pin: 20
inputs:
  - pin: 1
    pullup: true
    output: limits
events:
  - at_us: 8000
    pin: 1
    level: low
`)
	if err == nil {
		t.Fatalf("Expected the run to fail")
	}
	found := false
	for _, f := range res.Failures {
		if strings.Contains(f, "watchdog starved") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a watchdog starvation failure, got %v", res.Failures)
	}
}

func TestNewRunnerRejectsBadWiring(t *testing.T) {
	s, err := Parse([]byte(`
name: broken table
outputs:
  - name: limits
    pin: 20
inputs:
  - pin: 1
    pullup: true
    output: missing
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := NewRunner(s); err == nil {
		t.Errorf("Expected wiring validation to fail")
	}
}
