package core

// Connection binds one debounced switch input to one output. All mutable
// state belongs to this connection alone; outputs are shared through
// their assertion count.
//
// The debounce policy is asymmetric. A deasserted connection demands the
// input hold its asserted level continuously for activeTicks before it
// believes the press; an asserted connection demands continuous quiet for
// dwellTicks before it believes the release. Chatter inside either window
// restarts the window it argues against, so a bouncing contact can delay
// a transition but never produce a spurious one.
type Connection struct {
	id  uint8
	in  InputSpec
	out *OutputPin

	activeTicks Jiffies
	dwellTicks  Jiffies

	asserted bool
	deadline Jiffies
}

// Input returns the connection's input wiring
func (cn *Connection) Input() InputSpec {
	return cn.in
}

// Asserted reports whether the connection currently holds its output
func (cn *Connection) Asserted() bool {
	return cn.asserted
}

// setup arms the runtime state: deasserted, with a full confirmation
// window ahead of it so a switch held closed across boot still debounces.
func (cn *Connection) setup(now Jiffies) {
	cn.asserted = false
	cn.deadline = now + cn.activeTicks
}

// Step runs one evaluation against the current logical input level and
// clock reading. An input sitting at the level that matches the current
// state restarts the opposing window; a transition fires only once the
// input has held the opposing level through the whole window. The
// deadline counts as passed the tick now reaches it.
func (cn *Connection) Step(level bool, now Jiffies) {
	if cn.asserted {
		if level {
			cn.deadline = now + cn.dwellTicks
			return
		}
		if Before(now, cn.deadline) {
			return
		}
		cn.asserted = false
		cn.out.release()
		cn.deadline = now + cn.activeTicks
		RecordEvent(EvtRelease, cn.id, uint32(now), cn.out.Level())
		return
	}

	if !level {
		cn.deadline = now + cn.activeTicks
		return
	}
	if Before(now, cn.deadline) {
		return
	}
	cn.asserted = true
	cn.out.assert()
	cn.deadline = now + cn.dwellTicks
	RecordEvent(EvtAssert, cn.id, uint32(now), cn.out.Level())
}
