/*
Package registers implements the riskvm register file: 13 general-purpose
registers plus AR, IR and IPC, with two read ports and one write port.

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
package registers

import (
	"fmt"

	"riskvm/isa"
)

// File is the register file. IR holds the whole decoded record rather than
// an integer, which is why it has its own read/latch path instead of
// flowing through LatchGeneral like AR and IPC.
type File struct {
	general [13]int64
	ar      int64
	ir      isa.Record
	ipc     int64

	LeftOut  int64
	RightOut int64
}

// LatchGeneral writes a value to a register selected by index. Only 0..12
// (general), 13 (AR) and 15 (IPC) are legal write targets; 14 (IR) is only
// latched via LatchIR.
func (f *File) LatchGeneral(index int, value int64) error {
	switch {
	case isa.IsGeneral(index):
		f.general[index] = value
	case index == isa.RegAR:
		f.ar = value
	case index == isa.RegIPC:
		f.ipc = value
	default:
		return fmt.Errorf("%w: write to %d", isa.ErrInvalidRegister, index)
	}
	return nil
}

// LatchIR latches the currently decoded instruction record into IR.
func (f *File) LatchIR(rec isa.Record) {
	f.ir = rec
}

// IR returns the currently latched instruction record.
func (f *File) IR() isa.Record {
	return f.ir
}

// SelLeft drives LeftOut from the register selected by index (0..12, 13, 15;
// not 14 — IR has no numeric left-output value).
func (f *File) SelLeft(index int) error {
	switch {
	case isa.IsGeneral(index):
		f.LeftOut = f.general[index]
	case index == isa.RegAR:
		f.LeftOut = f.ar
	case index == isa.RegIPC:
		f.LeftOut = f.ipc
	default:
		return fmt.Errorf("%w: left-read %d", isa.ErrInvalidRegister, index)
	}
	return nil
}

// SelRight drives RightOut from the register selected by index. Unlike
// SelLeft, 14 (IR) is a legal source here: its "value" is read through
// Record.CutOperand by the control unit, not through RightOut.
func (f *File) SelRight(index int) error {
	switch {
	case isa.IsGeneral(index):
		f.RightOut = f.general[index]
	case index == isa.RegAR:
		f.RightOut = f.ar
	case index == isa.RegIR:
		// IR's operand is read via Record.CutOperand; RightOut is left as is.
	case index == isa.RegIPC:
		f.RightOut = f.ipc
	default:
		return fmt.Errorf("%w: right-read %d", isa.ErrInvalidRegister, index)
	}
	return nil
}

// Get reads a general-purpose register directly, for callers (LOAD/STORE/
// IN/OUT/MOVE execution) that already know they want r0..r12 without going
// through the left/right read ports.
func (f *File) Get(index int) (int64, error) {
	if !isa.IsGeneral(index) {
		return 0, fmt.Errorf("%w: read %d", isa.ErrInvalidRegister, index)
	}
	return f.general[index], nil
}

// AR returns the address register's value.
func (f *File) AR() int64 { return f.ar }

// IPC returns the interrupt/return PC.
func (f *File) IPC() int64 { return f.ipc }
