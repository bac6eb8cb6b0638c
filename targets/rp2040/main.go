//go:build rp2040

package main

import (
	"machine"
	"runtime/volatile"
	"unsafe"

	"gobounce/core"
)

// RP2040 Watchdog peripheral memory map
const (
	watchdogBase   = 0x40058000
	watchdogReason = watchdogBase + 0x08 // REASON: why the last reset happened
)

// REASON bits
const reasonTimer = 0x1 // watchdog timer fired

var reasonReg = (*volatile.Register32)(unsafe.Pointer(uintptr(watchdogReason)))

func main() {
	fault := startupFault()
	initDebug()

	core.SetGPIODriver(NewTargetGPIO())

	wd := &RPWatchdog{}
	if err := wd.Configure(); err != nil {
		// Boot-time, watchdog not armed yet; refuse to run unguarded
		panic(err)
	}
	core.SetWatchdog(wd)
	core.SetHalt(halt)

	wiring, err := BenchTable().Build(TickHz)
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

	core.NewScanLoop(wiring, clk).Run()
}

// startupFault classifies the reset that brought the firmware up.
// REASON is cleared by a power-on reset only, which matches the park
// semantics: a faulted part holds until someone cycles power.
func startupFault() uint8 {
	if reasonReg.Get()&reasonTimer != 0 {
		return core.FaultWatchdogReset
	}
	return core.FaultNone
}

// halt parks the device after a fault. The watchdog stays fed so the
// part holds its forced-safe outputs instead of reset-looping.
func halt(reason uint8) {
	for {
		machine.Watchdog.Update()
	}
}
