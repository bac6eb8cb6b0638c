//go:build rp2350

package main

import (
	"machine"

	"gobounce/core"
)

// LatheTable wires the retrofit lathe: X and Z limit switches share one
// line to the controller, each axis reference switch gets its own.
// Every switch shorts its pulled-up input to ground when it trips.
func LatheTable() core.WiringSpec {
	return core.WiringSpec{
		Outputs: []core.OutputSpec{
			{Name: "limits-common", Pin: core.Pin(machine.GPIO16)},
			{Name: "ref-x", Pin: core.Pin(machine.GPIO17)},
			{Name: "ref-z", Pin: core.Pin(machine.GPIO18)},
		},
		Connections: []core.ConnectionSpec{
			{Input: pullupInput(machine.GPIO2), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // X+ limit
			{Input: pullupInput(machine.GPIO3), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // X- limit
			{Input: pullupInput(machine.GPIO4), Output: "ref-x", ActiveTime: ActiveTime, DwellTime: DwellTime},
			{Input: pullupInput(machine.GPIO5), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // Z+ limit
			{Input: pullupInput(machine.GPIO6), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // Z- limit
			{Input: pullupInput(machine.GPIO7), Output: "ref-z", ActiveTime: ActiveTime, DwellTime: DwellTime},
		},
	}
}

func pullupInput(pin machine.Pin) core.InputSpec {
	return core.InputSpec{Pin: core.Pin(pin), PullUp: true}
}
