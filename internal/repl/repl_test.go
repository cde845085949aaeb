package repl

import (
	"testing"

	"riskvm/isa"
	"riskvm/vm/simulator"
)

func TestMatchCommand(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"s", "step"},
		{"st", "step"},
		{"r", "regs"},
		{"b", ""}, // "break" requires min 2
		{"br", "break"},
		{"c", "continue"},
		{"q", "quit"},
		{"xyz", ""},
	}
	for _, c := range cases {
		got := matchCommand(c.input)
		if c.want == "" {
			if got != nil {
				t.Errorf("matchCommand(%q) got: %v wanted: nil", c.input, got.name)
			}
			continue
		}
		if got == nil || got.name != c.want {
			t.Errorf("matchCommand(%q) got: %v wanted: %q", c.input, got, c.want)
		}
	}
}

func newDebugger() *Debugger {
	program := []isa.Record{
		{Kind: isa.KindInstruction, Opcode: isa.JMP, Op: 1},
		{Kind: isa.KindInstruction, Opcode: isa.MOVE, Op: 7, Reg: 0},
		{Kind: isa.KindInstruction, Opcode: isa.HALT},
	}
	sim := simulator.New(program, nil)
	return New(sim)
}

func TestDebuggerStepAndRegs(t *testing.T) {
	d := newDebugger()
	if err := d.sim.Control.InitializationCycle(); err != nil {
		t.Fatalf("InitializationCycle returned error: %v", err)
	}
	if _, err := d.step(nil); err != nil {
		t.Fatalf("step returned error: %v", err)
	}
	got, err := d.sim.Path.Registers.Get(0)
	if err != nil {
		t.Fatalf("Get(0) returned error: %v", err)
	}
	if got != 7 {
		t.Errorf("R0 got: %d wanted: %d", got, 7)
	}
	if _, err := d.regs(nil); err != nil {
		t.Errorf("regs returned error: %v", err)
	}
}

func TestDebuggerBreakAndContinue(t *testing.T) {
	d := newDebugger()
	if err := d.sim.Control.InitializationCycle(); err != nil {
		t.Fatalf("InitializationCycle returned error: %v", err)
	}
	if _, err := d.setBreak([]string{"2"}); err != nil {
		t.Fatalf("setBreak returned error: %v", err)
	}
	if _, err := d.cont(nil); err != nil {
		t.Fatalf("cont returned error: %v", err)
	}
	if d.sim.Path.PC != 2 {
		t.Errorf("PC got: %d wanted breakpoint at: %d", d.sim.Path.PC, 2)
	}
}

func TestDebuggerMemInvalidAddress(t *testing.T) {
	d := newDebugger()
	if _, err := d.mem([]string{"not-a-number"}); err == nil {
		t.Error("mem with a non-numeric address should return an error")
	}
}
