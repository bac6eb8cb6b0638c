package core

import "sync/atomic"

// Jiffies is the firmware time base: an unsigned tick count that wraps at
// 32 bits. Never compare two values with < or >; use After and Before,
// which stay correct across the wrap as long as the real interval between
// the values is under half the value space (~35 minutes at 1MHz).
type Jiffies uint32

// After reports whether a is later than b
func After(a, b Jiffies) bool {
	return int32(b-a) < 0
}

// Before reports whether a is earlier than b
func Before(a, b Jiffies) bool {
	return After(b, a)
}

// rawBits is the width of the hardware counter backing the low half
const rawBits = 16

// Clock derives the 32-bit jiffies value from a 16-bit hardware counter
// plus a software-maintained high half. Two strategies exist, matching the
// two ways targets wire their counter:
//
//   - NewInterruptClock: the timer's overflow interrupt calls
//     OverflowInterrupt to carry into the high half. Now masks interrupts,
//     drains any latched wrap the handler has not seen, and retries the
//     read if the counter wraps mid-sequence, so both halves always
//     combine from a single point in time.
//
//   - NewPolledClock: no handler. Every Now call compares the new raw
//     reading against the previous one and carries when the value
//     decreased. Correct only if Now runs at least once per raw counter
//     period (65536 ticks); the scan loop provides that by construction
//     and the watchdog catches gross stalls.
type Clock struct {
	src TickSource
	ovf OverflowSource // nil for the polled strategy

	high    uint32 // upper bits of the jiffies value; atomic
	lastRaw uint16 // previous raw reading; polled strategy only
}

// NewInterruptClock returns a Clock whose high half is carried by the
// target's overflow interrupt. The handler must call OverflowInterrupt;
// nothing else touches the high half.
func NewInterruptClock(src OverflowSource) *Clock {
	return &Clock{src: src, ovf: src}
}

// NewPolledClock returns a Clock that detects counter wraparound on every
// read instead of relying on an interrupt.
func NewPolledClock(src TickSource) *Clock {
	return &Clock{src: src}
}

// OverflowInterrupt carries a counter wrap into the high half. Called from
// the timer overflow handler only; vectoring here has already cleared the
// latched flag on targets where hardware does that.
func (c *Clock) OverflowInterrupt() {
	atomic.AddUint32(&c.high, 1)
}

// Now returns the current jiffies value. Mainline context only, never from
// an interrupt handler.
func (c *Clock) Now() Jiffies {
	if c.ovf != nil {
		return c.nowMasked()
	}
	return c.nowPolled()
}

// nowMasked reads the clock with the overflow interrupt masked. A wrap
// latched before the mask is drained by hand so the handler never counts
// it twice; a wrap during the sequence makes the raw value ambiguous, so
// the read retries.
func (c *Clock) nowMasked() Jiffies {
	state := irqLock()
	for {
		if c.ovf.OverflowPending() {
			c.ovf.ClearOverflow()
			atomic.AddUint32(&c.high, 1)
		}
		high := atomic.LoadUint32(&c.high)
		raw := c.src.ReadRaw()
		if c.ovf.OverflowPending() {
			continue
		}
		if atomic.LoadUint32(&c.high) != high {
			// handler ran mid-read; cannot happen under a real mask
			continue
		}
		irqUnlock(state)
		return Jiffies(high<<rawBits | uint32(raw))
	}
}

// nowPolled reads the clock and carries any wrap since the previous read.
// Must run at least once per raw counter period or wraps are lost
// silently; see the Clock doc.
func (c *Clock) nowPolled() Jiffies {
	raw := c.src.ReadRaw()
	if raw < c.lastRaw {
		atomic.AddUint32(&c.high, 1)
	}
	c.lastRaw = raw
	return Jiffies(atomic.LoadUint32(&c.high)<<rawBits | uint32(raw))
}
