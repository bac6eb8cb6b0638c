package core

import "testing"

func TestOutputDrivesOnEdgesOnly(t *testing.T) {
	g, _ := setupHAL()
	o := &OutputPin{name: "limits", pin: 20}

	o.assert()
	if o.Level() != 1 || !o.Asserted() {
		t.Fatalf("Expected level 1 asserted, got %d", o.Level())
	}
	o.assert()
	if o.Level() != 2 {
		t.Fatalf("Expected level 2, got %d", o.Level())
	}
	o.release()
	if o.Level() != 1 || !o.Asserted() {
		t.Fatalf("Expected level 1 still asserted, got %d", o.Level())
	}
	o.release()
	if o.Level() != 0 || o.Asserted() {
		t.Fatalf("Expected level 0 released, got %d", o.Level())
	}

	// Four count changes, but the line only moved at 0->1 and 1->0
	writes := g.writesTo(20)
	if len(writes) != 2 || writes[0] != true || writes[1] != false {
		t.Errorf("Expected writes [true false], got %v", writes)
	}
}

func TestOutputInvertedPolarity(t *testing.T) {
	g, _ := setupHAL()
	o := &OutputPin{name: "lamp", pin: 9, flags: OutInvert}

	o.assert()
	if g.pins[9] != false {
		t.Errorf("Active-low output should drive the line low when asserted")
	}
	if !o.Driven() {
		t.Errorf("Driven should report the logical state, not the electrical one")
	}
	o.release()
	if g.pins[9] != true {
		t.Errorf("Active-low output should drive the line high when released")
	}
	if o.Driven() {
		t.Errorf("Expected Driven false after release")
	}
}

func TestOutputLevelSaturates(t *testing.T) {
	setupHAL()
	o := &OutputPin{pin: 4, level: 0xFF}

	o.assert()
	if o.Level() != 0xFF {
		t.Errorf("Expected level to saturate at 255, got %d", o.Level())
	}
}

func TestOutputUnderflowIsFatal(t *testing.T) {
	g, _ := setupHAL()
	var haltReason uint8
	halts := 0
	SetHalt(func(reason uint8) {
		haltReason = reason
		halts++
	})
	o := &OutputPin{pin: 4}
	SetEmergencyShutdown(func(reason uint8) {
		o.ForceActive()
	})

	o.release()

	if !IsShutdown() {
		t.Fatalf("Expected shutdown to latch on underflow")
	}
	if ShutdownReason() != FaultUnderflow {
		t.Errorf("Expected reason %d, got %d", FaultUnderflow, ShutdownReason())
	}
	if halts != 1 || haltReason != FaultUnderflow {
		t.Errorf("Expected one halt with reason %d, got %d halts reason %d", FaultUnderflow, halts, haltReason)
	}
	if o.Level() != 0 {
		t.Errorf("Underflow must not move the count, got %d", o.Level())
	}
	if g.pins[4] != true {
		t.Errorf("Expected the output forced to its safe level")
	}
}

func TestForceActiveBypassesCount(t *testing.T) {
	g, _ := setupHAL()
	o := &OutputPin{pin: 11}

	o.ForceActive()
	if g.pins[11] != true {
		t.Errorf("Expected the line driven active")
	}
	if o.Level() != 0 {
		t.Errorf("ForceActive must not touch the assertion count, got %d", o.Level())
	}
}
