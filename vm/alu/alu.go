/*
Package alu implements the riskvm arithmetic-logic unit: binary/unary
operations, overflow canonicalization and the zero flag.

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
package alu

import (
	"fmt"

	"riskvm/isa"
)

// ALU holds the single zero flag Z, set by every operation it performs.
type ALU struct {
	Zero bool
}

// binaryHandlers mirrors ALU_OPCODE_BINARY_HANDLERS: ADD/SUB/MOD/CMP all
// reduce to a two-operand integer function; CMP's result is discarded by
// the caller, flags only.
var binaryHandlers = map[isa.Opcode]func(left, right int64) int64{
	isa.ADD: func(l, r int64) int64 { return l + r },
	isa.SUB: func(l, r int64) int64 { return l - r },
	isa.MOD: pyMod,
	isa.CMP: func(l, r int64) int64 { return l - r },
}

// unaryHandlers mirrors ALU_OPCODE_SINGLE_HANDLERS: INC ignores its wired
// left operand (the constant 1) and adds it to right.
var unaryHandlers = map[isa.Opcode]func(right int64) int64{
	isa.INC: func(r int64) int64 { return r + 1 },
}

// Perform computes left OP right (or just right for unary INC), canonicalizes
// the result into the 32-bit signed domain, latches the zero flag, and
// returns the canonicalized value.
func (a *ALU) Perform(left, right int64, opcode isa.Opcode) (int64, error) {
	var value int64
	switch {
	case opcode == isa.MOD && right == 0:
		return 0, fmt.Errorf("alu: mod by zero")
	case binaryHandlers[opcode] != nil:
		value = binaryHandlers[opcode](left, right)
	case unaryHandlers[opcode] != nil:
		value = unaryHandlers[opcode](right)
	default:
		return 0, fmt.Errorf("alu: unknown ALU command %s", opcode)
	}
	value = handleOverflow(value)
	a.setFlags(value)
	return value, nil
}

// handleOverflow reproduces the source's modulus-against-bound semantics
// exactly (not two's-complement wrap): a value above MAX wraps via `% MAX`,
// a value below MIN wraps via `% |MIN|`. The divisor above MAX is MAX
// itself, not MAX+1.
func handleOverflow(value int64) int64 {
	switch {
	case value > isa.MaxNumber:
		return pyMod(value, isa.MaxNumber)
	case value < isa.MinNumber:
		return pyMod(value, -isa.MinNumber)
	default:
		return value
	}
}

// pyMod is Python's `%`: the result takes the sign of the divisor, unlike
// Go's truncated-toward-zero `%`. Source parity for negative overflow
// (e.g. ALU(MIN, -1, ADD)) and for the MOD opcode itself depends on this.
func pyMod(value, divisor int64) int64 {
	m := value % divisor
	if m != 0 && (m < 0) != (divisor < 0) {
		m += divisor
	}
	return m
}

func (a *ALU) setFlags(value int64) {
	a.Zero = value == 0
}
