//go:build atmega328p

package main

import (
	"machine"

	"gobounce/core"
)

// JointSwitchTable wires the joint switches of a CNC machining center.
// Limit switches for all three axes share one common output; each axis
// reference switch gets its own line. Every switch shorts its pulled-up
// input to ground when it trips.
func JointSwitchTable() core.WiringSpec {
	return core.WiringSpec{
		Outputs: []core.OutputSpec{
			{Name: "limits-common", Pin: core.Pin(machine.PB0)},
			{Name: "ref-x", Pin: core.Pin(machine.PD7)},
			{Name: "ref-y", Pin: core.Pin(machine.PD6)},
			{Name: "ref-z", Pin: core.Pin(machine.PD5)},
		},
		Connections: []core.ConnectionSpec{
			{Input: pullupInput(machine.PB1), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // X+ limit
			{Input: pullupInput(machine.PB2), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // X- limit
			{Input: pullupInput(machine.PB3), Output: "ref-x", ActiveTime: ActiveTime, DwellTime: DwellTime},
			{Input: pullupInput(machine.PB4), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // Y+ limit
			{Input: pullupInput(machine.PC0), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // Y- limit
			{Input: pullupInput(machine.PC1), Output: "ref-y", ActiveTime: ActiveTime, DwellTime: DwellTime},
			{Input: pullupInput(machine.PC2), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // Z+ limit
			{Input: pullupInput(machine.PC3), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // Z- limit
			{Input: pullupInput(machine.PC4), Output: "ref-z", ActiveTime: ActiveTime, DwellTime: DwellTime},
		},
	}
}

func pullupInput(pin machine.Pin) core.InputSpec {
	return core.InputSpec{Pin: core.Pin(pin), PullUp: true}
}
