//go:build linux

package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"gobounce/core"
)

// Config defaults
const (
	DefaultChip           = "gpiochip0"
	DefaultScanIntervalUS = 1000
	DefaultActiveTimeUS   = 200
	DefaultDwellTimeMS    = 100
	DefaultWatchdogMS     = 500
)

// OutputDef declares one indicator output. Exactly one of gpio and
// expander locates the line; gpio 0 is a real pin, so absence is a nil
// pointer, not a zero.
type OutputDef struct {
	Name     string `yaml:"name"`
	GPIO     *int   `yaml:"gpio"`
	Expander *int   `yaml:"expander"`
	Invert   bool   `yaml:"invert"`
}

// InputDef declares one switch input and the output it drives. Zero
// debounce windows fall back to the config-wide values.
type InputDef struct {
	GPIO         *int   `yaml:"gpio"`
	Expander     *int   `yaml:"expander"`
	PullUp       bool   `yaml:"pullup"`
	Invert       bool   `yaml:"invert"`
	Output       string `yaml:"output"`
	ActiveTimeUS int    `yaml:"active_time_us"`
	DwellTimeMS  int    `yaml:"dwell_time_ms"`
}

// ExpanderDef locates one MCP23017 on an I2C bus
type ExpanderDef struct {
	Bus uint8 `yaml:"bus"`
	Dev uint8 `yaml:"dev"`
}

// Config is the complete wiring and runtime table for one machine,
// loaded once at startup. There is no runtime reconfiguration: edit the
// file and restart the service.
type Config struct {
	Chip           string       `yaml:"chip"`
	ScanIntervalUS int          `yaml:"scan_interval_us"`
	ActiveTimeUS   int          `yaml:"active_time_us"`
	DwellTimeMS    int          `yaml:"dwell_time_ms"`
	WatchdogMS     int          `yaml:"watchdog_ms"`
	Expander       *ExpanderDef `yaml:"expander"`
	Outputs        []OutputDef  `yaml:"outputs"`
	Inputs         []InputDef   `yaml:"inputs"`
}

// LoadConfig reads and validates a config file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates config YAML
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Chip == "" {
		c.Chip = DefaultChip
	}
	if c.ScanIntervalUS == 0 {
		c.ScanIntervalUS = DefaultScanIntervalUS
	}
	if c.ActiveTimeUS == 0 {
		c.ActiveTimeUS = DefaultActiveTimeUS
	}
	if c.DwellTimeMS == 0 {
		c.DwellTimeMS = DefaultDwellTimeMS
	}
	if c.WatchdogMS == 0 {
		c.WatchdogMS = DefaultWatchdogMS
	}
}

func (c *Config) validate() error {
	if c.ScanIntervalUS < 1 {
		return errors.New("scan_interval_us must be positive")
	}
	// The polled clock loses wraps if reads sit a full 65536us raw
	// period apart; half of that leaves room for sleep overshoot.
	if c.ScanIntervalUS > 32767 {
		return errors.New("scan_interval_us must stay under half the 65536us clock period")
	}
	if c.WatchdogMS < 1 {
		return errors.New("watchdog_ms must be positive")
	}
	if len(c.Inputs) == 0 {
		return errors.New("config has no inputs")
	}
	for _, o := range c.Outputs {
		if err := checkLocation(o.GPIO, o.Expander, c.Expander); err != nil {
			return errors.Wrapf(err, "output %q", o.Name)
		}
	}
	for i, in := range c.Inputs {
		if err := checkLocation(in.GPIO, in.Expander, c.Expander); err != nil {
			return errors.Wrapf(err, "input %d", i)
		}
	}
	return nil
}

// checkLocation enforces the one-of-gpio-or-expander rule
func checkLocation(gpio, exp *int, bank *ExpanderDef) error {
	switch {
	case gpio == nil && exp == nil:
		return errors.New("needs gpio or expander")
	case gpio != nil && exp != nil:
		return errors.New("gpio and expander are mutually exclusive")
	case exp != nil && bank == nil:
		return errors.New("references the expander but none is configured")
	case gpio != nil && *gpio < 0:
		return errors.New("negative gpio")
	case exp != nil && (*exp < 0 || *exp > 15):
		return errors.New("expander pin out of 0-15")
	}
	return nil
}

// pinFor maps a config location into the driver's pin space
func pinFor(gpio, exp *int) core.Pin {
	if gpio != nil {
		return core.Pin(*gpio)
	}
	return expanderBase + core.Pin(*exp)
}

// WiringSpec converts the config's table into the core representation.
// Core validation (shared pins, unknown outputs, window limits) happens
// in Build, not here.
func (c *Config) WiringSpec() core.WiringSpec {
	var spec core.WiringSpec
	for _, o := range c.Outputs {
		spec.Outputs = append(spec.Outputs, core.OutputSpec{
			Name:   o.Name,
			Pin:    pinFor(o.GPIO, o.Expander),
			Invert: o.Invert,
		})
	}
	for _, in := range c.Inputs {
		activeUS := in.ActiveTimeUS
		if activeUS == 0 {
			activeUS = c.ActiveTimeUS
		}
		dwellMS := in.DwellTimeMS
		if dwellMS == 0 {
			dwellMS = c.DwellTimeMS
		}
		spec.Connections = append(spec.Connections, core.ConnectionSpec{
			Input: core.InputSpec{
				Pin:    pinFor(in.GPIO, in.Expander),
				PullUp: in.PullUp,
				Invert: in.Invert,
			},
			Output:     in.Output,
			ActiveTime: time.Duration(activeUS) * time.Microsecond,
			DwellTime:  time.Duration(dwellMS) * time.Millisecond,
		})
	}
	return spec
}
