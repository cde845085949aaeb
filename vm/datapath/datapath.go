/*
Package datapath wires memory, PC, the register file, the ALU, the
interrupt controller and the port controller into one simulation's owned
state. There is no package-level state: every simulation run constructs its
own DataPath.

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
package datapath

import (
	"fmt"

	"riskvm/isa"
	"riskvm/vm/alu"
	"riskvm/vm/interrupt"
	"riskvm/vm/port"
	"riskvm/vm/registers"
)

// DataPath owns everything a single simulation run touches.
type DataPath struct {
	Registers  registers.File
	ALU        alu.ALU
	Interrupt  interrupt.Controller
	Port       port.Controller
	PC         int64
	memory     []isa.Record
	memorySize int
}

// New constructs a DataPath with a program preloaded into low memory,
// zero-filled up to MemorySize.
func New(program []isa.Record) *DataPath {
	mem := make([]isa.Record, isa.MemorySize)
	copy(mem, program)
	return &DataPath{memory: mem, memorySize: isa.MemorySize}
}

// LatchPC sets the program counter.
func (d *DataPath) LatchPC(value int64) {
	d.PC = value
}

// ReadMemory returns the record at addr, bounds-checked against
// MemorySize.
func (d *DataPath) ReadMemory(addr int64) (isa.Record, error) {
	if addr < 0 || addr >= int64(d.memorySize) {
		return isa.Record{}, fmt.Errorf("%w: read %d", isa.ErrMemory, addr)
	}
	return d.memory[addr], nil
}

// WriteMemory overwrites the record at addr with a data cell holding value,
// bounds-checked against MemorySize. This is how STORE mutates memory;
// program records are otherwise immutable once translated.
func (d *DataPath) WriteMemory(addr int64, value int64) error {
	if addr < 0 || addr >= int64(d.memorySize) {
		return fmt.Errorf("%w: write %d", isa.ErrMemory, addr)
	}
	d.memory[addr] = isa.Record{Kind: isa.KindData, Data: int(value)}
	return nil
}

// LastMemoryIndex returns the index of the interrupt-vector record, which
// conventionally lives in the last memory cell.
func (d *DataPath) LastMemoryIndex() int64 {
	return int64(d.memorySize - 1)
}
