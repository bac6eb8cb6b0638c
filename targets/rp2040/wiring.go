//go:build rp2040

package main

import (
	"machine"

	"gobounce/core"
)

// BenchTable wires the Pico bench rig: an engraver's X/Y limit switches
// on one shared line plus a touch probe on its own. Builds tagged
// expander append the enclosure bank on the MCP23017. Every switch
// shorts its pulled-up input to ground when it trips.
func BenchTable() core.WiringSpec {
	spec := core.WiringSpec{
		Outputs: []core.OutputSpec{
			{Name: "limits-common", Pin: core.Pin(machine.GPIO16)},
			{Name: "probe", Pin: core.Pin(machine.GPIO17)},
		},
		Connections: []core.ConnectionSpec{
			{Input: pullupInput(machine.GPIO2), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // X+ limit
			{Input: pullupInput(machine.GPIO3), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // X- limit
			{Input: pullupInput(machine.GPIO4), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // Y+ limit
			{Input: pullupInput(machine.GPIO5), Output: "limits-common", ActiveTime: ActiveTime, DwellTime: DwellTime}, // Y- limit
			{Input: pullupInput(machine.GPIO6), Output: "probe", ActiveTime: ActiveTime, DwellTime: DwellTime},
		},
	}
	spec.Outputs = append(spec.Outputs, expanderOutputs()...)
	spec.Connections = append(spec.Connections, expanderConnections()...)
	return spec
}

func pullupInput(pin machine.Pin) core.InputSpec {
	return core.InputSpec{Pin: core.Pin(pin), PullUp: true}
}
