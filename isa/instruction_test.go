package isa

import (
	"errors"
	"testing"
)

func TestCutOperand(t *testing.T) {
	rec := Record{Opcode: LOAD, Op: 42}
	op, err := rec.CutOperand()
	if err != nil {
		t.Fatalf("LOAD CutOperand returned error: %v", err)
	}
	if op != 42 {
		t.Errorf("LOAD CutOperand got: %d wanted: %d", op, 42)
	}

	rec = Record{Opcode: CMP, Op1: 1, Op2: 2}
	if _, err := rec.CutOperand(); !errors.Is(err, OperandError) {
		t.Errorf("CMP CutOperand got: %v wanted: %v", err, OperandError)
	}

	rec = Record{Opcode: DI}
	if _, err := rec.CutOperand(); !errors.Is(err, OperandError) {
		t.Errorf("DI CutOperand got: %v wanted: %v", err, OperandError)
	}
}
