package registers

import (
	"errors"
	"testing"

	"riskvm/isa"
)

func TestLatchAndGetGeneral(t *testing.T) {
	var f File
	if err := f.LatchGeneral(3, 99); err != nil {
		t.Fatalf("LatchGeneral(3) returned error: %v", err)
	}
	got, err := f.Get(3)
	if err != nil {
		t.Fatalf("Get(3) returned error: %v", err)
	}
	if got != 99 {
		t.Errorf("Get(3) got: %d wanted: %d", got, 99)
	}
}

func TestLatchARAndIPC(t *testing.T) {
	var f File
	if err := f.LatchGeneral(isa.RegAR, 10); err != nil {
		t.Fatalf("LatchGeneral(AR) returned error: %v", err)
	}
	if f.AR() != 10 {
		t.Errorf("AR() got: %d wanted: %d", f.AR(), 10)
	}

	if err := f.LatchGeneral(isa.RegIPC, 20); err != nil {
		t.Fatalf("LatchGeneral(IPC) returned error: %v", err)
	}
	if f.IPC() != 20 {
		t.Errorf("IPC() got: %d wanted: %d", f.IPC(), 20)
	}
}

func TestLatchInvalidRegister(t *testing.T) {
	var f File
	if err := f.LatchGeneral(isa.RegIR, 1); !errors.Is(err, isa.ErrInvalidRegister) {
		t.Errorf("LatchGeneral(IR) got: %v wanted: %v", err, isa.ErrInvalidRegister)
	}
	if _, err := f.Get(isa.RegAR); !errors.Is(err, isa.ErrInvalidRegister) {
		t.Errorf("Get(AR) got: %v wanted: %v", err, isa.ErrInvalidRegister)
	}
}

func TestSelLeftRight(t *testing.T) {
	var f File
	_ = f.LatchGeneral(5, 55)
	if err := f.SelLeft(5); err != nil {
		t.Fatalf("SelLeft(5) returned error: %v", err)
	}
	if f.LeftOut != 55 {
		t.Errorf("LeftOut got: %d wanted: %d", f.LeftOut, 55)
	}

	f.LatchIR(isa.Record{Opcode: isa.LOAD})
	if err := f.SelRight(isa.RegIR); err != nil {
		t.Errorf("SelRight(IR) should be legal, got error: %v", err)
	}
	if err := f.SelLeft(isa.RegIR); !errors.Is(err, isa.ErrInvalidRegister) {
		t.Errorf("SelLeft(IR) got: %v wanted: %v", err, isa.ErrInvalidRegister)
	}
}
