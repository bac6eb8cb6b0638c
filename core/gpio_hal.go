package core

// Pin identifies a hardware I/O line in the active GPIO driver's pin
// space. Targets define the numbering; drivers fronting several banks
// (on-chip pins plus an I2C expander) partition the space themselves.
type Pin uint32

// GPIODriver is the abstract pin interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureInput configures a pin as a digital input, with the
	// internal pull-up enabled when pullup is true.
	// Returns error if pin is invalid or already in use.
	ConfigureInput(pin Pin, pullup bool) error

	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin Pin) error

	// ReadPin returns the raw electrical level of an input pin.
	// Polarity correction happens in core code, never in the driver.
	ReadPin(pin Pin) bool

	// WritePin drives an output pin to the given electrical level
	WritePin(pin Pin, level bool)
}

// Global singleton used by core code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
