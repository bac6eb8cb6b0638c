package core

// TickSource is the free-running hardware counter backing the monotonic
// clock. Targets expose the low 16 bits of whatever timer the chip
// provides; the clock maintains the upper bits in software.
type TickSource interface {
	// ReadRaw returns the current raw counter value. The counter wraps
	// freely; callers never interpret raw values directly.
	ReadRaw() uint16
}

// OverflowSource is a TickSource whose hardware latches a wrap flag and can
// raise an interrupt for it. Targets with such a timer use the
// interrupt-carried clock strategy.
type OverflowSource interface {
	TickSource

	// OverflowPending reports whether the counter wrapped and the latched
	// flag has not been cleared yet.
	OverflowPending() bool

	// ClearOverflow acknowledges the latched wrap flag.
	ClearOverflow()
}
