package alu

import (
	"testing"

	"riskvm/isa"
)

func TestPerformArithmetic(t *testing.T) {
	var a ALU

	got, err := a.Perform(3, 4, isa.ADD)
	if err != nil {
		t.Fatalf("ADD returned error: %v", err)
	}
	if got != 7 {
		t.Errorf("ADD got: %d wanted: %d", got, 7)
	}
	if a.Zero {
		t.Error("ADD(3,4) should not set Zero")
	}

	got, err = a.Perform(4, 4, isa.SUB)
	if err != nil {
		t.Fatalf("SUB returned error: %v", err)
	}
	if got != 0 {
		t.Errorf("SUB got: %d wanted: %d", got, 0)
	}
	if !a.Zero {
		t.Error("SUB(4,4) should set Zero")
	}

	got, err = a.Perform(0, 5, isa.INC)
	if err != nil {
		t.Fatalf("INC returned error: %v", err)
	}
	if got != 6 {
		t.Errorf("INC got: %d wanted: %d", got, 6)
	}
}

func TestPerformModZero(t *testing.T) {
	var a ALU
	if _, err := a.Perform(10, 0, isa.MOD); err == nil {
		t.Error("MOD by zero should return an error")
	}
}

func TestPerformModPythonSemantics(t *testing.T) {
	var a ALU
	// Python's -7 % 3 == 2, unlike Go's native -7 % 3 == -1.
	got, err := a.Perform(-7, 3, isa.MOD)
	if err != nil {
		t.Fatalf("MOD returned error: %v", err)
	}
	if got != 2 {
		t.Errorf("MOD(-7,3) got: %d wanted: %d", got, 2)
	}
}

func TestOverflowWrap(t *testing.T) {
	var a ALU

	// MAX + 1 wraps modulo MAX.
	got, err := a.Perform(isa.MaxNumber, 1, isa.ADD)
	if err != nil {
		t.Fatalf("ADD returned error: %v", err)
	}
	want := (isa.MaxNumber + 1) % isa.MaxNumber
	if got != want {
		t.Errorf("overflow above MAX got: %d wanted: %d", got, want)
	}

	// MIN + (-1) wraps below MIN using Python modulo against |MIN|:
	// (-2147483649) % 2147483648 == 2147483647.
	got, err = a.Perform(isa.MinNumber, -1, isa.ADD)
	if err != nil {
		t.Fatalf("ADD returned error: %v", err)
	}
	if got != isa.MaxNumber {
		t.Errorf("overflow below MIN got: %d wanted: %d", got, isa.MaxNumber)
	}
}
