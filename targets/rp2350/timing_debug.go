//go:build rp2350 && debug

package main

import "time"

// Bench timings: slow enough to follow on an LED while poking switches
// by hand.
const (
	ActiveTime = 200 * time.Millisecond
	DwellTime  = 2 * time.Second
)
