//go:build atmega328p && !debug

package main

import "time"

// Debounce windows for the machine's switches. The assert side confirms
// fast so a tripped limit reaches the controller with little delay; the
// release side holds long enough to ride out the worst contact chatter.
const (
	ActiveTime = 200 * time.Microsecond
	DwellTime  = 100 * time.Millisecond
)
