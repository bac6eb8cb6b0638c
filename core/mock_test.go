package core

// Shared test doubles for the HAL singletons.

type pinWrite struct {
	pin   Pin
	level bool
}

// MockGPIODriver is a test implementation of GPIODriver
type MockGPIODriver struct {
	pins    map[Pin]bool // electrical level per pin
	inputs  map[Pin]bool // configured inputs, true when pulled up
	outputs map[Pin]bool
	writes  []pinWrite // every WritePin call, in order
}

func NewMockGPIODriver() *MockGPIODriver {
	return &MockGPIODriver{
		pins:    make(map[Pin]bool),
		inputs:  make(map[Pin]bool),
		outputs: make(map[Pin]bool),
	}
}

func (m *MockGPIODriver) ConfigureInput(pin Pin, pullup bool) error {
	m.inputs[pin] = pullup
	if pullup {
		m.pins[pin] = true // released line floats high
	}
	return nil
}

func (m *MockGPIODriver) ConfigureOutput(pin Pin) error {
	m.outputs[pin] = true
	return nil
}

func (m *MockGPIODriver) ReadPin(pin Pin) bool {
	return m.pins[pin]
}

func (m *MockGPIODriver) WritePin(pin Pin, level bool) {
	m.pins[pin] = level
	m.writes = append(m.writes, pinWrite{pin, level})
}

// writesTo returns the WritePin history for one pin
func (m *MockGPIODriver) writesTo(pin Pin) []bool {
	var out []bool
	for _, w := range m.writes {
		if w.pin == pin {
			out = append(out, w.level)
		}
	}
	return out
}

// MockWatchdog counts acknowledgments
type MockWatchdog struct {
	acks int
}

func (m *MockWatchdog) Ack() {
	m.acks++
}

// setupHAL installs fresh mock drivers and clears latched fault state.
// The halt hook is cleared too, so an unexpected fault panics the test
// instead of being swallowed; tests that expect a fault install their own.
func setupHAL() (*MockGPIODriver, *MockWatchdog) {
	g := NewMockGPIODriver()
	w := &MockWatchdog{}
	SetGPIODriver(g)
	SetWatchdog(w)
	SetEmergencyShutdown(nil)
	SetHalt(nil)
	ResetShutdown()
	ClearEventRing()
	return g, w
}
