package core

// Output pin flags
const (
	OutInvert uint8 = 1 << 0 // physical line is active-low
	OutDriven uint8 = 1 << 1 // line currently driven to its active level
)

// OutputPin is one physical indicator line, shared by any number of
// connections. level counts how many connections currently hold the line
// asserted; the line is driven active exactly while level > 0.
type OutputPin struct {
	name  string
	pin   Pin
	flags uint8
	level uint8
}

// Name returns the output's name in the wiring table
func (o *OutputPin) Name() string {
	return o.name
}

// Pin returns the physical pin this output drives
func (o *OutputPin) Pin() Pin {
	return o.pin
}

// Level returns the current assertion count
func (o *OutputPin) Level() uint8 {
	return o.level
}

// Asserted reports whether at least one connection holds the output
func (o *OutputPin) Asserted() bool {
	return o.level > 0
}

// Driven reports whether the line is currently driven active
func (o *OutputPin) Driven() bool {
	return o.flags&OutDriven != 0
}

// set drives the physical line, folding in the polarity flag
func (o *OutputPin) set(active bool) {
	if active {
		o.flags |= OutDriven
	} else {
		o.flags &^= OutDriven
	}
	if o.flags&OutInvert != 0 {
		active = !active
	}
	MustGPIO().WritePin(o.pin, active)
}

// assert takes one assertion on the output. The physical line switches
// only on the 0 to 1 transition; the count saturates rather than wrap.
func (o *OutputPin) assert() {
	if o.level == 0 {
		o.set(true)
	}
	if o.level < 0xFF {
		o.level++
	}
}

// release drops one assertion. The physical line switches only on the
// 1 to 0 transition. Releasing an output nobody holds means connection
// state and output state disagree; that is not recoverable.
func (o *OutputPin) release() {
	if o.level == 0 {
		Fatal(FaultUnderflow)
		return
	}
	o.level--
	if o.level == 0 {
		o.set(false)
	}
}

// ForceActive drives the line to its asserted level directly, bypassing
// the assertion count. Shutdown path only.
func (o *OutputPin) ForceActive() {
	o.set(true)
}
