//go:build linux

package main

import (
	"github.com/pkg/errors"
	"github.com/racerxdl/go-mcp23017"
	"github.com/warthog618/gpiod"
	"github.com/womat/debug"

	"gobounce/core"
)

// Expander pin space. Chip lines keep their offsets; pin N on the
// MCP23017 is core.Pin(expanderBase+N).
const expanderBase core.Pin = 100

// LinuxGPIO implements the GPIODriver interface over the gpiod
// character device, with an optional MCP23017 bank on I2C behind the
// same pin space.
type LinuxGPIO struct {
	chip  *gpiod.Chip
	lines map[core.Pin]*gpiod.Line
	exp   *mcp23017.Device
}

// NewLinuxGPIO opens the GPIO character device and, when the config
// names one, the expander.
func NewLinuxGPIO(cfg *Config) (*LinuxGPIO, error) {
	chip, err := gpiod.NewChip(cfg.Chip, gpiod.WithConsumer("gobounce"))
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", cfg.Chip)
	}
	d := &LinuxGPIO{
		chip:  chip,
		lines: make(map[core.Pin]*gpiod.Line),
	}
	if cfg.Expander != nil {
		d.exp, err = mcp23017.Open(cfg.Expander.Bus, cfg.Expander.Dev)
		if err != nil {
			chip.Close()
			return nil, errors.Wrapf(err, "opening expander on bus %d", cfg.Expander.Bus)
		}
	}
	return d, nil
}

// Close releases every requested line and the chip. The expander keeps
// its last levels; outputs forced by a fault stay forced.
func (d *LinuxGPIO) Close() {
	for _, line := range d.lines {
		if err := line.Close(); err != nil {
			debug.ErrorLog.Printf("closing line: %v", err)
		}
	}
	if err := d.chip.Close(); err != nil {
		debug.ErrorLog.Printf("closing chip: %v", err)
	}
}

func (d *LinuxGPIO) ConfigureInput(pin core.Pin, pullup bool) error {
	if pin >= expanderBase {
		p := uint8(pin - expanderBase)
		if err := d.exp.PinMode(p, mcp23017.INPUT); err != nil {
			return errors.Wrapf(err, "expander pin %d", p)
		}
		return errors.Wrapf(d.exp.SetPullUp(p, pullup), "expander pin %d pull-up", p)
	}

	opts := []gpiod.LineReqOption{gpiod.AsInput}
	if pullup {
		opts = append(opts, gpiod.WithPullUp)
	}
	line, err := d.chip.RequestLine(int(pin), opts...)
	if err != nil {
		return errors.Wrapf(err, "requesting line %d", pin)
	}
	d.lines[pin] = line
	return nil
}

func (d *LinuxGPIO) ConfigureOutput(pin core.Pin) error {
	if pin >= expanderBase {
		p := uint8(pin - expanderBase)
		return errors.Wrapf(d.exp.PinMode(p, mcp23017.OUTPUT), "expander pin %d", p)
	}

	line, err := d.chip.RequestLine(int(pin), gpiod.AsOutput(0))
	if err != nil {
		return errors.Wrapf(err, "requesting line %d", pin)
	}
	d.lines[pin] = line
	return nil
}

// ReadPin reads one line. An I/O error mid-scan means a switch is no
// longer monitored, which is fatal; during shutdown the error is
// unreportable and the scan is over anyway.
func (d *LinuxGPIO) ReadPin(pin core.Pin) bool {
	if pin >= expanderBase {
		state, err := d.exp.DigitalRead(uint8(pin - expanderBase))
		if err != nil && !core.IsShutdown() {
			debug.ErrorLog.Printf("expander read %d: %v", pin-expanderBase, err)
			core.Fatal(core.FaultIO)
		}
		return bool(state)
	}

	v, err := d.lines[pin].Value()
	if err != nil && !core.IsShutdown() {
		debug.ErrorLog.Printf("line %d read: %v", pin, err)
		core.Fatal(core.FaultIO)
	}
	return v != 0
}

// WritePin drives one line. A failed write during the shutdown forcing
// sweep is dropped so the remaining outputs still get forced.
func (d *LinuxGPIO) WritePin(pin core.Pin, level bool) {
	if pin >= expanderBase {
		err := d.exp.DigitalWrite(uint8(pin-expanderBase), mcp23017.PinLevel(level))
		if err != nil && !core.IsShutdown() {
			debug.ErrorLog.Printf("expander write %d: %v", pin-expanderBase, err)
			core.Fatal(core.FaultIO)
		}
		return
	}

	v := 0
	if level {
		v = 1
	}
	if err := d.lines[pin].SetValue(v); err != nil && !core.IsShutdown() {
		debug.ErrorLog.Printf("line %d write: %v", pin, err)
		core.Fatal(core.FaultIO)
	}
}
