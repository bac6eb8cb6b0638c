//go:build atmega328p

package main

import (
	"machine"

	"gobounce/core"
)

// AVRGPIODriver implements the GPIODriver interface on the ATmega328P.
// Core pin numbers are machine.Pin numbers; the wiring table uses the
// machine constants directly.
type AVRGPIODriver struct {
	// Track configured pins to catch double configuration
	configuredPins map[core.Pin]machine.Pin
}

// NewAVRGPIODriver creates the ATmega328P GPIO driver
func NewAVRGPIODriver() *AVRGPIODriver {
	return &AVRGPIODriver{
		configuredPins: make(map[core.Pin]machine.Pin),
	}
}

func (d *AVRGPIODriver) ConfigureInput(pin core.Pin, pullup bool) error {
	machinePin := machine.Pin(pin)

	mode := machine.PinInput
	if pullup {
		mode = machine.PinInputPullup
	}
	machinePin.Configure(machine.PinConfig{Mode: mode})

	d.configuredPins[pin] = machinePin
	return nil
}

func (d *AVRGPIODriver) ConfigureOutput(pin core.Pin) error {
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	d.configuredPins[pin] = machinePin
	return nil
}

func (d *AVRGPIODriver) ReadPin(pin core.Pin) bool {
	return machine.Pin(pin).Get()
}

func (d *AVRGPIODriver) WritePin(pin core.Pin, level bool) {
	machine.Pin(pin).Set(level)
}
