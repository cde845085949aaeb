package simulator

import (
	"testing"

	"riskvm/isa"
)

func charPtr(r rune) *rune { return &r }

// helloWorld builds a program that loads two characters out of a small data
// table and writes them to the output port, then halts: MOVE r0,#<entry>
// style init isn't needed since InitializationCycle only runs cut_operand on
// the record at PC 0, so PC 0 must itself carry an operand.
func helloWorld() []isa.Record {
	return []isa.Record{
		{Kind: isa.KindInstruction, Opcode: isa.JMP, Op: 1}, // entry jump, PC0->PC1
		{Kind: isa.KindInstruction, Opcode: isa.LOAD, Op: 6, AddrType: isa.DIRECT, Reg: 0},
		{Kind: isa.KindInstruction, Opcode: isa.OUT, Op: isa.OutputPortAddress, Reg: 0},
		{Kind: isa.KindInstruction, Opcode: isa.LOAD, Op: 7, AddrType: isa.DIRECT, Reg: 0},
		{Kind: isa.KindInstruction, Opcode: isa.OUT, Op: isa.OutputPortAddress, Reg: 0},
		{Kind: isa.KindInstruction, Opcode: isa.HALT},
		{Kind: isa.KindData, Data: 'h'},
		{Kind: isa.KindData, Data: 'i'},
	}
}

func TestRunHelloWorld(t *testing.T) {
	sim := New(helloWorld(), nil)
	result, err := sim.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Output != "hi" {
		t.Errorf("Output got: %q wanted: %q", result.Output, "hi")
	}
	if result.InstructionCount == 0 {
		t.Error("InstructionCount should be nonzero")
	}
	if result.Ticks == 0 {
		t.Error("Ticks should be nonzero")
	}
}

// spin is a program that never halts on its own, so a schedule-driven
// interrupt is the only thing that changes its course.
func spin() []isa.Record {
	return []isa.Record{
		{Kind: isa.KindInstruction, Opcode: isa.JMP, Op: 1},
		{Kind: isa.KindInstruction, Opcode: isa.EI},
		{Kind: isa.KindInstruction, Opcode: isa.JMP, Op: 2},
	}
}

func TestScheduleInjectsInterruptAtDueTick(t *testing.T) {
	schedule := []ScheduleEntry{{AtTick: 2, Char: charPtr('Q')}}
	sim := New(spin(), schedule)
	if err := sim.Control.InitializationCycle(); err != nil {
		t.Fatalf("InitializationCycle returned error: %v", err)
	}

	raised := func() bool { return sim.Path.Interrupt.Pending() || sim.Path.Interrupt.Handling() }
	for i := 0; i < 10 && !raised(); i++ {
		if _, err := sim.StepOnce(); err != nil {
			t.Fatalf("StepOnce returned error: %v", err)
		}
	}
	if !raised() {
		t.Fatal("interrupt should have been raised once the scheduled tick is reached")
	}
	got, err := sim.Path.Port.Read(isa.InputPortAddress)
	if err != nil {
		t.Fatalf("Port.Read returned error: %v", err)
	}
	if got != int64('Q') {
		t.Errorf("input port got: %d wanted: %d", got, 'Q')
	}
}

func TestRunInstructionLimit(t *testing.T) {
	program := []isa.Record{
		{Kind: isa.KindInstruction, Opcode: isa.JMP, Op: 0},
	}
	sim := New(program, nil)
	result, err := sim.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.InstructionCount != isa.InstructionLimit {
		t.Errorf("InstructionCount got: %d wanted: %d", result.InstructionCount, isa.InstructionLimit)
	}
}

func TestRunArithmeticWrap(t *testing.T) {
	program := []isa.Record{
		{Kind: isa.KindInstruction, Opcode: isa.JMP, Op: 1},
		{Kind: isa.KindInstruction, Opcode: isa.MOVE, Op: int(isa.MaxNumber), Reg: 0},
		{Kind: isa.KindInstruction, Opcode: isa.INC, Op: 0},
		{Kind: isa.KindInstruction, Opcode: isa.HALT},
	}
	sim := New(program, nil)
	if _, err := sim.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	got, err := sim.Path.Registers.Get(0)
	if err != nil {
		t.Fatalf("Get(0) returned error: %v", err)
	}
	if got < isa.MinNumber || got > isa.MaxNumber {
		t.Errorf("R0 got: %d, outside the numeric domain [%d, %d]", got, isa.MinNumber, isa.MaxNumber)
	}
}
