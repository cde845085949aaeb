/*
riskvm ISA definitions: opcode set, addressing-mode tags, register
indices and the numeric domain shared by the translator and the simulator.

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
package isa

// Opcode is the closed mnemonic set of the riskvm ISA.
type Opcode string

const (
	LOAD  Opcode = "load"
	STORE Opcode = "store"

	ADD Opcode = "add"
	SUB Opcode = "sub"
	MOD Opcode = "mod"
	INC Opcode = "inc"
	CMP Opcode = "cmp"

	DI Opcode = "di"
	EI Opcode = "ei"
	IN Opcode = "in"

	OUT Opcode = "out"

	JZ  Opcode = "jz"
	JNZ Opcode = "jnz"
	JMP Opcode = "jmp"

	MOVE Opcode = "move"

	HALT Opcode = "halt"
	IRET Opcode = "iret"
)

// knownOpcodes backs LookupOpcode and the translator's mnemonic dispatch.
var knownOpcodes = map[string]Opcode{
	string(LOAD): LOAD, string(STORE): STORE,
	string(ADD): ADD, string(SUB): SUB, string(MOD): MOD, string(INC): INC, string(CMP): CMP,
	string(DI): DI, string(EI): EI, string(IN): IN, string(OUT): OUT,
	string(JZ): JZ, string(JNZ): JNZ, string(JMP): JMP,
	string(MOVE): MOVE,
	string(HALT): HALT, string(IRET): IRET,
}

// LookupOpcode returns the canonical Opcode for a mnemonic token, if any.
func LookupOpcode(mnemonic string) (Opcode, bool) {
	op, ok := knownOpcodes[mnemonic]
	return op, ok
}

// AddrMode is the addressing-mode tag carried by every instruction record.
type AddrMode int

const (
	DIRECT AddrMode = iota
	INDIRECT
	REGISTER
	NONE
	PORT
)

// Numeric domain: a full 32-bit signed range, MinNumber..MaxNumber
// inclusive. Go's shift binds tighter than subtraction, so the literal
// below is unambiguous (unlike the equivalent expression in a language
// where shift binds looser, which would silently evaluate to a much
// smaller bound).
const (
	MaxNumber int64 = 1<<31 - 1
	MinNumber int64 = -(1 << 31)
)

// Memory and port layout constants shared by translator and simulator.
const (
	MemorySize        = 1_048_567
	InputPortAddress  = 0
	OutputPortAddress = 1
	InstructionLimit  = 10_000
)

// Register index space. 0..12 are general purpose; 13..15 are the
// architectural registers. PC is not addressable by index.
const (
	RegAR  = 13 // address register
	RegIR  = 14 // instruction register (whole decoded record)
	RegIPC = 15 // interrupt/return PC
)

// IsGeneral reports whether idx names one of the 13 general-purpose registers.
func IsGeneral(idx int) bool {
	return idx >= 0 && idx <= 12
}
