/*
Package disasm renders translated records back to assembly text, dispatching
one opcode family at a time through a mnemonic/operand-shape lookup table.

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
package disasm

import (
	"fmt"

	"riskvm/isa"
)

const (
	famLoadStore = iota
	famArith
	famSingle
	famJump
	famMove
	famData
	famIntVec
)

type family struct {
	mnemonic string
	kind     int
}

var opMap = map[isa.Opcode]family{
	isa.LOAD:  {"load", famLoadStore},
	isa.STORE: {"store", famLoadStore},
	isa.ADD:   {"add", famArith},
	isa.SUB:   {"sub", famArith},
	isa.MOD:   {"mod", famArith},
	isa.INC:   {"inc", famArith},
	isa.CMP:   {"cmp", famArith},
	isa.DI:    {"di", famSingle},
	isa.EI:    {"ei", famSingle},
	isa.IN:    {"in", famSingle},
	isa.OUT:   {"out", famSingle},
	isa.IRET:  {"iret", famSingle},
	isa.HALT:  {"halt", famSingle},
	isa.JZ:    {"jz", famJump},
	isa.JNZ:   {"jnz", famJump},
	isa.JMP:   {"jmp", famJump},
	isa.MOVE:  {"move", famMove},
}

// One renders a single record at program index pc, showing a branch/load/
// store target by the label name recorded in the record's Term at
// translation time, or by its numeric address when no label was recorded.
func One(pc int, rec isa.Record) string {
	switch rec.Kind {
	case isa.KindData:
		return fmt.Sprintf("%04d  %-6s %d", pc, ".data", rec.Data)
	case isa.KindIntVec:
		if rec.Resolved {
			return fmt.Sprintf("%04d  %-6s %d", pc, ".int1", rec.IntVec)
		}
		return fmt.Sprintf("%04d  %-6s -", pc, ".int1")
	}

	fam, ok := opMap[rec.Opcode]
	if !ok {
		return fmt.Sprintf("%04d  ??? %v", pc, rec.Opcode)
	}

	var operands string
	switch fam.kind {
	case famLoadStore:
		operands = loadStoreOperands(rec)
	case famArith:
		operands = arithOperands(rec)
	case famSingle:
		operands = singleOperands(rec)
	case famJump:
		operands = jumpOperands(rec)
	case famMove:
		operands = moveOperands(rec)
	}

	inst := fam.mnemonic
	if operands != "" {
		inst += " " + operands
	}
	return fmt.Sprintf("%04d  %s", pc, inst)
}

func loadStoreOperands(rec isa.Record) string {
	target := targetText(rec)
	if rec.AddrType == isa.INDIRECT {
		target = "(" + target + ")"
	}
	return fmt.Sprintf("r%d, %s", rec.Reg, target)
}

func arithOperands(rec isa.Record) string {
	switch rec.Opcode {
	case isa.INC:
		return fmt.Sprintf("r%d", rec.Op)
	case isa.CMP:
		return fmt.Sprintf("r%d, r%d", rec.Op1, rec.Op2)
	default: // add/sub/mod
		return fmt.Sprintf("r%d, r%d, r%d", rec.Op1, rec.Op2, rec.Op3)
	}
}

func singleOperands(rec isa.Record) string {
	if rec.AddrType == isa.PORT {
		return fmt.Sprintf("r%d, %d", rec.Reg, rec.Op)
	}
	return ""
}

func jumpOperands(rec isa.Record) string {
	return targetText(rec)
}

func moveOperands(rec isa.Record) string {
	if rec.AddrType == isa.REGISTER {
		return fmt.Sprintf("r%d, r%d", rec.Reg, rec.Op)
	}
	return fmt.Sprintf("r%d, #%d", rec.Reg, rec.Op)
}

// targetText prefers the label name recorded at translation time, falling
// back to the raw numeric address when no label was carried (e.g. a record
// decoded from a .code file rather than freshly assembled).
func targetText(rec isa.Record) string {
	if rec.Term.RelatedLabel != "" {
		return rec.Term.RelatedLabel
	}
	return fmt.Sprintf("%d", rec.Op)
}

// Program renders every record of a translated program, one line each.
func Program(program []isa.Record) []string {
	lines := make([]string, len(program))
	for i, rec := range program {
		lines[i] = One(i, rec)
	}
	return lines
}
