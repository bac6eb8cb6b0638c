//go:build rp2040

package main

import (
	"machine"

	"gobounce/core"
)

// RPGPIODriver implements the GPIODriver interface on the RP2040.
// Core pin numbers are machine.Pin numbers; the wiring table uses the
// machine constants directly.
type RPGPIODriver struct {
	// Track configured pins to catch double configuration
	configuredPins map[core.Pin]machine.Pin
}

// NewRPGPIODriver creates the RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.Pin]machine.Pin),
	}
}

func (d *RPGPIODriver) ConfigureInput(pin core.Pin, pullup bool) error {
	machinePin := machine.Pin(pin)

	mode := machine.PinInput
	if pullup {
		mode = machine.PinInputPullup
	}
	machinePin.Configure(machine.PinConfig{Mode: mode})

	d.configuredPins[pin] = machinePin
	return nil
}

func (d *RPGPIODriver) ConfigureOutput(pin core.Pin) error {
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	d.configuredPins[pin] = machinePin
	return nil
}

func (d *RPGPIODriver) ReadPin(pin core.Pin) bool {
	return machine.Pin(pin).Get()
}

func (d *RPGPIODriver) WritePin(pin core.Pin, level bool) {
	machine.Pin(pin).Set(level)
}
