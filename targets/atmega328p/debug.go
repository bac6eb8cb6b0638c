//go:build atmega328p && debug

package main

import (
	"machine"

	"gobounce/core"
)

// scopePin toggles once per scan pass, so a scope on PD2 shows the pass
// rate directly. PD2 is unused by the joint switch table.
const scopePin = machine.PD2

var scopeLevel bool

// initDebug routes transition logging to the UART (println goes to the
// default serial output on AVR) and claims the scope pin
func initDebug() {
	core.SetDebugWriter(func(s string) {
		println(s)
	})
	scopePin.Configure(machine.PinConfig{Mode: machine.PinOutput})
}

func scanMark() {
	scopeLevel = !scopeLevel
	scopePin.Set(scopeLevel)
}
