//go:build rp2040 && expander

package main

import (
	"machine"

	"tinygo.org/x/drivers/mcp23017"

	"gobounce/core"
)

// Expander pin space. On-chip pins keep their GPIO numbers; pin N on the
// MCP23017 is core.Pin(expanderBase+N). The bank adds sixteen lines over
// I2C0 for switches that outgrew the board header.
const (
	expanderBase core.Pin = 100
	expanderAddr uint8    = 0x20
)

// ExpanderGPIO fronts the on-chip pins and one MCP23017 behind a single
// pin space. Only expander pins cost I2C traffic.
type ExpanderGPIO struct {
	onchip *RPGPIODriver
	dev    *mcp23017.Device
}

// NewTargetGPIO brings up I2C0 and the expander. A bank that does not
// answer at boot is a wiring problem, so this panics rather than running
// with half the switches missing.
func NewTargetGPIO() core.GPIODriver {
	// GPIO0/GPIO1 carry the bus; the default I2C0 pins are switch
	// inputs in the bench table.
	err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400000,
		SDA:       machine.GPIO0,
		SCL:       machine.GPIO1,
	})
	if err != nil {
		panic(err)
	}
	dev, err := mcp23017.New(machine.I2C0, expanderAddr)
	if err != nil {
		panic(err)
	}
	return &ExpanderGPIO{onchip: NewRPGPIODriver(), dev: dev}
}

func (d *ExpanderGPIO) ConfigureInput(pin core.Pin, pullup bool) error {
	if pin < expanderBase {
		return d.onchip.ConfigureInput(pin, pullup)
	}
	mode := mcp23017.Input
	if pullup {
		mode |= mcp23017.Pullup
	}
	return d.dev.Pin(int(pin - expanderBase)).SetMode(mode)
}

func (d *ExpanderGPIO) ConfigureOutput(pin core.Pin) error {
	if pin < expanderBase {
		return d.onchip.ConfigureOutput(pin)
	}
	return d.dev.Pin(int(pin - expanderBase)).SetMode(mcp23017.Output)
}

// ReadPin reads one line. A bus error mid-scan means the switches behind
// the expander are no longer monitored, which is fatal; during shutdown
// the error is unreportable and the scan is over anyway.
func (d *ExpanderGPIO) ReadPin(pin core.Pin) bool {
	if pin < expanderBase {
		return d.onchip.ReadPin(pin)
	}
	level, err := d.dev.Pin(int(pin - expanderBase)).Get()
	if err != nil && !core.IsShutdown() {
		core.Fatal(core.FaultIO)
	}
	return level
}

// WritePin drives one line. A failed write during the shutdown forcing
// sweep is dropped so the remaining outputs still get forced.
func (d *ExpanderGPIO) WritePin(pin core.Pin, level bool) {
	if pin < expanderBase {
		d.onchip.WritePin(pin, level)
		return
	}
	err := d.dev.Pin(int(pin - expanderBase)).Set(level)
	if err != nil && !core.IsShutdown() {
		core.Fatal(core.FaultIO)
	}
}

// expanderOutputs and expanderConnections extend the bench table with
// the enclosure switches on the MCP23017: four door switches sharing one
// indicator line that also lives on the expander.
func expanderOutputs() []core.OutputSpec {
	return []core.OutputSpec{
		{Name: "doors", Pin: expanderBase + 8},
	}
}

func expanderConnections() []core.ConnectionSpec {
	return []core.ConnectionSpec{
		{Input: core.InputSpec{Pin: expanderBase + 0, PullUp: true}, Output: "doors", ActiveTime: ActiveTime, DwellTime: DwellTime},
		{Input: core.InputSpec{Pin: expanderBase + 1, PullUp: true}, Output: "doors", ActiveTime: ActiveTime, DwellTime: DwellTime},
		{Input: core.InputSpec{Pin: expanderBase + 2, PullUp: true}, Output: "doors", ActiveTime: ActiveTime, DwellTime: DwellTime},
		{Input: core.InputSpec{Pin: expanderBase + 3, PullUp: true}, Output: "doors", ActiveTime: ActiveTime, DwellTime: DwellTime},
	}
}
