package datapath

import (
	"errors"
	"testing"

	"riskvm/isa"
)

func TestNewZeroFillsMemory(t *testing.T) {
	program := []isa.Record{
		{Kind: isa.KindInstruction, Opcode: isa.HALT},
	}
	d := New(program)
	rec, err := d.ReadMemory(0)
	if err != nil {
		t.Fatalf("ReadMemory(0) returned error: %v", err)
	}
	if rec.Opcode != isa.HALT {
		t.Errorf("ReadMemory(0) got opcode %v wanted %v", rec.Opcode, isa.HALT)
	}

	rec, err = d.ReadMemory(1)
	if err != nil {
		t.Fatalf("ReadMemory(1) returned error: %v", err)
	}
	if rec.Kind != isa.KindInstruction || rec.Opcode != "" {
		t.Errorf("ReadMemory(1) of unused cell got: %+v", rec)
	}
}

func TestReadMemoryOutOfBounds(t *testing.T) {
	d := New(nil)
	if _, err := d.ReadMemory(-1); !errors.Is(err, isa.ErrMemory) {
		t.Errorf("ReadMemory(-1) got: %v wanted: %v", err, isa.ErrMemory)
	}
	if _, err := d.ReadMemory(int64(isa.MemorySize)); !errors.Is(err, isa.ErrMemory) {
		t.Errorf("ReadMemory(MemorySize) got: %v wanted: %v", err, isa.ErrMemory)
	}
}

func TestWriteMemory(t *testing.T) {
	d := New(nil)
	if err := d.WriteMemory(10, 123); err != nil {
		t.Fatalf("WriteMemory returned error: %v", err)
	}
	rec, err := d.ReadMemory(10)
	if err != nil {
		t.Fatalf("ReadMemory returned error: %v", err)
	}
	if rec.Kind != isa.KindData || rec.Data != 123 {
		t.Errorf("ReadMemory(10) got: %+v wanted data cell with 123", rec)
	}

	if err := d.WriteMemory(-1, 0); !errors.Is(err, isa.ErrMemory) {
		t.Errorf("WriteMemory(-1) got: %v wanted: %v", err, isa.ErrMemory)
	}
}

func TestLastMemoryIndex(t *testing.T) {
	d := New(nil)
	if got, want := d.LastMemoryIndex(), int64(isa.MemorySize-1); got != want {
		t.Errorf("LastMemoryIndex() got: %d wanted: %d", got, want)
	}
}
