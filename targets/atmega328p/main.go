//go:build atmega328p

package main

import (
	"device/avr"

	"gobounce/core"
)

func main() {
	fault := startupFault()
	initDebug()

	core.SetGPIODriver(NewAVRGPIODriver())

	wd := &AVRWatchdog{}
	wd.Configure()
	core.SetWatchdog(wd)
	core.SetHalt(halt)

	wiring, err := JointSwitchTable().Build(TickHz)
	if err != nil {
		core.Fatal(core.FaultBadWiring)
	}
	core.SetEmergencyShutdown(func(reason uint8) {
		wiring.ForceAllSafe()
	})

	clk := NewSystemClock()
	if err := wiring.Setup(clk.Now()); err != nil {
		core.Fatal(core.FaultBadWiring)
	}

	// A reset caused by the previous run's fault parks the device
	// instead of letting a wounded machine cycle back into service.
	// Outputs are forced to their safe level by the fault path.
	if fault != core.FaultNone {
		core.Fatal(fault)
	}

	loop := core.NewScanLoop(wiring, clk)
	for !core.IsShutdown() {
		scanMark()
		loop.Pass()
	}
}

// startupFault classifies the reset that brought the firmware up and
// clears the flags for the next one
func startupFault() uint8 {
	mcusr := avr.MCUSR.Get()
	avr.MCUSR.Set(0)
	switch {
	case mcusr&avr.MCUSR_WDRF != 0:
		return core.FaultWatchdogReset
	case mcusr&avr.MCUSR_BORF != 0:
		return core.FaultBrownout
	}
	return core.FaultNone
}

// halt parks the device after a fault. The watchdog stays fed so the
// part holds its forced-safe outputs instead of reset-looping.
func halt(reason uint8) {
	for {
		avr.Asm("wdr")
	}
}
