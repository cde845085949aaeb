/*
Package control implements the riskvm control unit: the fetch/decode/execute
microprogram, addressing-mode resolution and the interrupt prologue. Each
instruction consumes a deterministic number of ticks.

Copyright (c) 2024, Richard Cornwell

Permission is hereby granted, free of charge, to any person obtaining a
copy of this software and associated documentation files (the "Software"),
to deal in the Software without restriction, including without limitation
the rights to use, copy, modify, merge, publish, distribute, sublicense,
and/or sell copies of the Software, and to permit persons to whom the
Software is furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/
package control

import (
	"fmt"

	"riskvm/isa"
	"riskvm/vm/datapath"
)

// Tracer receives one notification per microtick. The zero value (nil
// Tracer field on Unit) disables tracing; a slog-backed implementation can
// be installed for tick-trace pretty-printing without touching the core
// fetch/execute loop.
type Tracer interface {
	Tick(tick int, pc int64, opcode isa.Opcode, note string)
}

// Unit is the control unit. It owns the tick counter and the
// interruption-enabled flag set by EI and cleared by DI; the handling state
// lives in the data path's Interrupt controller, and the instruction count
// is kept by the simulator driver.
type Unit struct {
	Path    *datapath.DataPath
	Tracer  Tracer
	ticks   int
	enabled bool // interruption_enabled
}

// New constructs a control unit over a data path.
func New(path *datapath.DataPath) *Unit {
	return &Unit{Path: path}
}

// Ticks returns the monotonically non-decreasing tick counter.
func (u *Unit) Ticks() int { return u.ticks }

// InterruptsEnabled reports whether EI has run without a matching DI.
func (u *Unit) InterruptsEnabled() bool { return u.enabled }

func (u *Unit) tick(pc int64, op isa.Opcode, note string) {
	u.ticks++
	if u.Tracer != nil {
		u.Tracer.Tick(u.ticks, pc, op, note)
	}
}

// InitializationCycle realizes the entry jump: MEM[PC] -> IR, cut_operand ->
// AR, 0+AR -> PC. Runs once before the main loop.
func (u *Unit) InitializationCycle() error {
	rec, err := u.Path.ReadMemory(u.Path.PC)
	if err != nil {
		return err
	}
	u.Path.Registers.LatchIR(rec)
	u.tick(u.Path.PC, rec.Opcode, "init: fetch")

	operand, err := rec.CutOperand()
	if err != nil {
		return err
	}
	if err := u.Path.Registers.LatchGeneral(isa.RegAR, int64(operand)); err != nil {
		return err
	}
	u.tick(u.Path.PC, rec.Opcode, "init: cut_operand->AR")

	u.Path.LatchPC(u.Path.Registers.AR())
	u.tick(u.Path.PC, rec.Opcode, "init: 0+AR->PC")
	return nil
}

// fetch reads MEM[PC] into IR — the first action of every instruction.
func (u *Unit) fetch() (isa.Record, error) {
	rec, err := u.Path.ReadMemory(u.Path.PC)
	if err != nil {
		return isa.Record{}, err
	}
	u.Path.Registers.LatchIR(rec)
	u.tick(u.Path.PC, rec.Opcode, "fetch")
	return rec, nil
}

// addressSelection resolves the effective address for LOAD/STORE, leaving
// PC pointed at the final data cell and IPC holding the pre-resolution PC.
func (u *Unit) addressSelection(rec isa.Record) error {
	operand, err := rec.CutOperand()
	if err != nil {
		return err
	}
	if err := u.Path.Registers.LatchGeneral(isa.RegAR, int64(operand)); err != nil {
		return err
	}
	u.tick(u.Path.PC, rec.Opcode, "cut_operand->AR")

	switch rec.AddrType {
	case isa.INDIRECT:
		if err := u.Path.Registers.LatchGeneral(isa.RegIPC, u.Path.PC); err != nil {
			return err
		}
		u.Path.LatchPC(u.Path.Registers.AR())
		u.tick(u.Path.PC, rec.Opcode, "PC->IPC; 0+AR->PC")

		hop, err := u.Path.ReadMemory(u.Path.PC)
		if err != nil {
			return err
		}
		if err := u.Path.Registers.LatchGeneral(isa.RegAR, int64(hop.Data)); err != nil {
			return err
		}
		u.Path.LatchPC(u.Path.Registers.AR())
		u.tick(u.Path.PC, rec.Opcode, "MEM[PC]->AR; 0+AR->PC")
	case isa.DIRECT:
		if err := u.Path.Registers.LatchGeneral(isa.RegIPC, u.Path.PC); err != nil {
			return err
		}
		u.Path.LatchPC(u.Path.Registers.AR())
		u.tick(u.Path.PC, rec.Opcode, "PC->IPC; 0+AR->PC")
	default:
		return fmt.Errorf("control: load/store with addrType %v", rec.AddrType)
	}
	return nil
}

// Halted is returned by Step when the instruction just executed was HALT.
var Halted = fmt.Errorf("control: halt")

// Step fetches, decodes and executes exactly one instruction. It returns
// Halted (check with errors.Is) when the executed instruction was
// HALT. The interrupt check and prologue run separately via CheckInterrupt,
// so the driver can interleave schedule injection between the two in the
// order execute, inject, check.
func (u *Unit) Step() error {
	rec, err := u.fetch()
	if err != nil {
		return err
	}
	return u.execute(rec)
}

func (u *Unit) execute(rec isa.Record) error {
	switch rec.Opcode {
	case isa.LOAD:
		return u.execLoad(rec)
	case isa.STORE:
		return u.execStore(rec)
	case isa.ADD, isa.SUB, isa.MOD:
		return u.execBinary(rec)
	case isa.CMP:
		return u.execCmp(rec)
	case isa.INC:
		return u.execInc(rec)
	case isa.JZ:
		return u.execBranch(rec, u.Path.ALU.Zero)
	case isa.JNZ:
		return u.execBranch(rec, !u.Path.ALU.Zero)
	case isa.JMP:
		return u.execJump(rec)
	case isa.MOVE:
		return u.execMove(rec)
	case isa.EI:
		u.enabled = true
		u.Path.LatchPC(u.Path.PC + 1)
		u.tick(u.Path.PC, rec.Opcode, "ei")
		return nil
	case isa.DI:
		u.enabled = false
		u.Path.LatchPC(u.Path.PC + 1)
		u.tick(u.Path.PC, rec.Opcode, "di")
		return nil
	case isa.IN:
		return u.execIn(rec)
	case isa.OUT:
		return u.execOut(rec)
	case isa.HALT:
		return Halted
	case isa.IRET:
		return u.execIret()
	default:
		return fmt.Errorf("%w: %s", isa.ErrUnknownOpcode, rec.Opcode)
	}
}

func (u *Unit) execLoad(rec isa.Record) error {
	if err := u.addressSelection(rec); err != nil {
		return err
	}
	cell, err := u.Path.ReadMemory(u.Path.PC)
	if err != nil {
		return err
	}
	if err := u.Path.Registers.LatchGeneral(rec.Reg, int64(cell.Data)); err != nil {
		return err
	}
	u.tick(u.Path.PC, rec.Opcode, "MEM[PC].data->R[reg]")

	u.Path.LatchPC(u.Path.Registers.IPC() + 1)
	u.tick(u.Path.PC, rec.Opcode, "1+IPC->PC")
	return nil
}

func (u *Unit) execStore(rec isa.Record) error {
	if err := u.addressSelection(rec); err != nil {
		return err
	}
	value, err := u.Path.Registers.Get(rec.Reg)
	if err != nil {
		return err
	}
	if err := u.Path.WriteMemory(u.Path.PC, value); err != nil {
		return err
	}
	u.tick(u.Path.PC, rec.Opcode, "R[reg]->MEM[PC]")

	u.Path.LatchPC(u.Path.Registers.IPC() + 1)
	u.tick(u.Path.PC, rec.Opcode, "1+IPC->PC")
	return nil
}

func (u *Unit) execBinary(rec isa.Record) error {
	left, err := u.Path.Registers.Get(rec.Op2)
	if err != nil {
		return err
	}
	right, err := u.Path.Registers.Get(rec.Op3)
	if err != nil {
		return err
	}
	result, err := u.Path.ALU.Perform(left, right, rec.Opcode)
	if err != nil {
		return err
	}
	if err := u.Path.Registers.LatchGeneral(rec.Op1, result); err != nil {
		return err
	}
	u.tick(u.Path.PC, rec.Opcode, "ALU(op2,op3)->R[op1]")

	u.Path.LatchPC(u.Path.PC + 1)
	u.tick(u.Path.PC, rec.Opcode, "PC+1->PC")
	return nil
}

func (u *Unit) execCmp(rec isa.Record) error {
	left, err := u.Path.Registers.Get(rec.Op1)
	if err != nil {
		return err
	}
	right, err := u.Path.Registers.Get(rec.Op2)
	if err != nil {
		return err
	}
	if _, err := u.Path.ALU.Perform(left, right, isa.SUB); err != nil {
		return err
	}
	u.tick(u.Path.PC, rec.Opcode, "ALU(op1,op2) flags only")

	u.Path.LatchPC(u.Path.PC + 1)
	u.tick(u.Path.PC, rec.Opcode, "PC+1->PC")
	return nil
}

func (u *Unit) execInc(rec isa.Record) error {
	right, err := u.Path.Registers.Get(rec.Op)
	if err != nil {
		return err
	}
	result, err := u.Path.ALU.Perform(1, right, isa.ADD)
	if err != nil {
		return err
	}
	if err := u.Path.Registers.LatchGeneral(rec.Op, result); err != nil {
		return err
	}
	u.tick(u.Path.PC, rec.Opcode, "ALU(1,R[op])->R[op]")

	u.Path.LatchPC(u.Path.PC + 1)
	u.tick(u.Path.PC, rec.Opcode, "PC+1->PC")
	return nil
}

func (u *Unit) execBranch(rec isa.Record, taken bool) error {
	if taken {
		operand, err := rec.CutOperand()
		if err != nil {
			return err
		}
		u.Path.LatchPC(int64(operand))
		u.tick(u.Path.PC, rec.Opcode, "cut_operand->PC (taken)")
		return nil
	}
	u.Path.LatchPC(u.Path.PC + 1)
	u.tick(u.Path.PC, rec.Opcode, "PC+1->PC (not taken)")
	return nil
}

func (u *Unit) execJump(rec isa.Record) error {
	operand, err := rec.CutOperand()
	if err != nil {
		return err
	}
	u.Path.LatchPC(int64(operand))
	u.tick(u.Path.PC, rec.Opcode, "cut_operand->PC")
	return nil
}

func (u *Unit) execMove(rec isa.Record) error {
	var value int64
	if rec.AddrType == isa.REGISTER {
		src, err := u.Path.Registers.Get(rec.Op)
		if err != nil {
			return err
		}
		value, err = u.Path.ALU.Perform(0, src, isa.ADD)
		if err != nil {
			return err
		}
	} else {
		operand, err := rec.CutOperand()
		if err != nil {
			return err
		}
		value = int64(operand)
	}
	if err := u.Path.Registers.LatchGeneral(rec.Reg, value); err != nil {
		return err
	}
	u.tick(u.Path.PC, rec.Opcode, "move->R[reg]")

	u.Path.LatchPC(u.Path.PC + 1)
	u.tick(u.Path.PC, rec.Opcode, "PC+1->PC")
	return nil
}

func (u *Unit) execIn(rec isa.Record) error {
	operand, err := rec.CutOperand()
	if err != nil {
		return err
	}
	if err := u.Path.Registers.LatchGeneral(isa.RegAR, int64(operand)); err != nil {
		return err
	}
	if u.Path.Registers.AR() != isa.InputPortAddress {
		return fmt.Errorf("%w: in targets %d", isa.ErrInvalidPort, u.Path.Registers.AR())
	}
	value, err := u.Path.Port.Read(isa.InputPortAddress)
	if err != nil {
		return err
	}
	if err := u.Path.Registers.LatchGeneral(rec.Reg, value); err != nil {
		return err
	}
	u.tick(u.Path.PC, rec.Opcode, "port0->R[reg]")

	u.Path.LatchPC(u.Path.PC + 1)
	u.tick(u.Path.PC, rec.Opcode, "PC+1->PC")
	return nil
}

func (u *Unit) execOut(rec isa.Record) error {
	operand, err := rec.CutOperand()
	if err != nil {
		return err
	}
	if err := u.Path.Registers.LatchGeneral(isa.RegAR, int64(operand)); err != nil {
		return err
	}
	if u.Path.Registers.AR() != isa.OutputPortAddress {
		return fmt.Errorf("%w: out targets %d", isa.ErrInvalidPort, u.Path.Registers.AR())
	}
	value, err := u.Path.Registers.Get(rec.Reg)
	if err != nil {
		return err
	}
	if err := u.Path.Port.Write(isa.OutputPortAddress, value); err != nil {
		return err
	}
	u.tick(u.Path.PC, rec.Opcode, "R[reg]->port1")

	u.Path.LatchPC(u.Path.PC + 1)
	u.tick(u.Path.PC, rec.Opcode, "PC+1->PC")
	return nil
}

func (u *Unit) execIret() error {
	u.Path.Interrupt.Clear()
	r12, err := u.Path.Registers.Get(12)
	if err != nil {
		return err
	}
	u.Path.LatchPC(r12)
	u.tick(u.Path.PC, isa.IRET, "iret: R12->PC")
	return nil
}

// CheckInterrupt runs the prologue when interrupts are enabled, one is
// pending, and none is already being handled.
func (u *Unit) CheckInterrupt() error {
	if !u.enabled || !u.Path.Interrupt.Pending() || u.Path.Interrupt.Handling() {
		return nil
	}
	u.Path.Interrupt.BeginHandling()
	if err := u.Path.Registers.LatchGeneral(12, u.Path.PC); err != nil {
		return err
	}
	u.Path.LatchPC(u.Path.Interrupt.VectorAddr())
	u.tick(u.Path.PC, "", "interrupt: PC->R12; vector->PC")

	vectorRec, err := u.Path.ReadMemory(u.Path.PC)
	if err != nil {
		return err
	}
	if err := u.Path.Registers.LatchGeneral(isa.RegAR, int64(vectorRec.IntVec)); err != nil {
		return err
	}
	u.tick(u.Path.PC, "", "interrupt: MEM[PC]->AR")

	u.Path.LatchPC(u.Path.Registers.AR())
	u.tick(u.Path.PC, "", "interrupt: 0+AR.int1->PC")
	return nil
}
