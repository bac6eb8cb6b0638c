//go:build rp2350 && !debug

package main

import "time"

// Debounce windows for the lathe's switches. The assert side confirms
// fast so a tripped limit reaches the controller with little delay; the
// release side holds long enough to ride out the worst contact chatter.
const (
	ActiveTime = 200 * time.Microsecond
	DwellTime  = 100 * time.Millisecond
)
