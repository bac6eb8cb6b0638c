//go:build rp2040 && !expander

package main

import "gobounce/core"

// NewTargetGPIO returns the plain on-chip driver. Builds without the
// expander tag wire every switch straight to the RP2040's own pins.
func NewTargetGPIO() core.GPIODriver {
	return NewRPGPIODriver()
}

func expanderOutputs() []core.OutputSpec {
	return nil
}

func expanderConnections() []core.ConnectionSpec {
	return nil
}
