/*
Package code serializes and deserializes riskvm machine-code records — the
wire contract between the translator and the simulator.

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
package code

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"riskvm/isa"
)

// wireRecord mirrors the tagged-map shape the original source writes with
// json.dumps: only the keys relevant to a record's Kind are populated. Keys
// outside this set are ignored by Read and are not written back by Write.
type wireRecord struct {
	Opcode   *string         `json:"opcode,omitempty"`
	Term     *[2]any         `json:"term,omitempty"`
	AddrType *int            `json:"addrType,omitempty"`
	Reg      *int            `json:"reg,omitempty"`
	Op       *int            `json:"op,omitempty"`
	Op1      *int            `json:"op1,omitempty"`
	Op2      *int            `json:"op2,omitempty"`
	Op3      *int            `json:"op3,omitempty"`
	Data     *int            `json:"data,omitempty"`
	Int1     json.RawMessage `json:"int1,omitempty"`
}

// Write serializes a program to the on-disk machine-code format: a JSON
// array, one record per line, records separated by ",\n ".
func Write(path string, program []isa.Record) error {
	lines := make([]string, 0, len(program))
	for _, r := range program {
		b, err := json.Marshal(toWire(r))
		if err != nil {
			return fmt.Errorf("code: marshal record: %w", err)
		}
		lines = append(lines, string(b))
	}
	buf := "[" + strings.Join(lines, ",\n ") + "]"
	return os.WriteFile(path, []byte(buf), 0o644)
}

// Read deserializes a program written by Write, converting each record back
// into its tagged Go shape.
func Read(path string) ([]isa.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("code: read %s: %w", path, err)
	}

	var wire []wireRecord
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("code: parse %s: %w", path, err)
	}

	program := make([]isa.Record, 0, len(wire))
	for i, w := range wire {
		rec, err := fromWire(w)
		if err != nil {
			return nil, fmt.Errorf("code: record %d: %w", i, err)
		}
		program = append(program, rec)
	}
	return program, nil
}

func toWire(r isa.Record) wireRecord {
	var w wireRecord
	switch r.Kind {
	case isa.KindData:
		d := r.Data
		w.Data = &d
		t := [2]any{r.Term.Index, r.Term.RelatedLabel}
		w.Term = &t
	case isa.KindIntVec:
		if r.Resolved {
			w.Int1 = json.RawMessage(fmt.Sprintf("%d", r.IntVec))
		} else {
			w.Int1 = json.RawMessage(`"-"`)
		}
	default: // KindInstruction
		op := string(r.Opcode)
		w.Opcode = &op
		at := int(r.AddrType)
		w.AddrType = &at
		t := [2]any{r.Term.Index, r.Term.RelatedLabel}
		w.Term = &t
		switch r.Opcode {
		case isa.LOAD, isa.STORE, isa.IN, isa.OUT, isa.MOVE:
			reg, op := r.Reg, r.Op
			w.Reg, w.Op = &reg, &op
		case isa.ADD, isa.SUB, isa.MOD:
			o1, o2, o3 := r.Op1, r.Op2, r.Op3
			w.Op1, w.Op2, w.Op3 = &o1, &o2, &o3
		case isa.CMP:
			o1, o2 := r.Op1, r.Op2
			w.Op1, w.Op2 = &o1, &o2
		case isa.INC, isa.JZ, isa.JNZ, isa.JMP:
			o := r.Op
			w.Op = &o
		}
	}
	return w
}

func fromWire(w wireRecord) (isa.Record, error) {
	if w.Int1 != nil {
		rec := isa.Record{Kind: isa.KindIntVec}
		var n int
		if err := json.Unmarshal(w.Int1, &n); err == nil {
			rec.IntVec = n
			rec.Resolved = true
		}
		return rec, nil
	}
	if w.Opcode == nil {
		rec := isa.Record{Kind: isa.KindData}
		if w.Data != nil {
			rec.Data = *w.Data
		}
		if w.Term != nil {
			rec.Term = termFromWire(*w.Term)
		}
		return rec, nil
	}

	op, ok := isa.LookupOpcode(*w.Opcode)
	if !ok {
		return isa.Record{}, fmt.Errorf("%w: unknown opcode %q", isa.ErrUnknownOpcode, *w.Opcode)
	}
	rec := isa.Record{Kind: isa.KindInstruction, Opcode: op}
	if w.AddrType != nil {
		rec.AddrType = isa.AddrMode(*w.AddrType)
	}
	if w.Term != nil {
		rec.Term = termFromWire(*w.Term)
	}
	if w.Reg != nil {
		rec.Reg = *w.Reg
	}
	if w.Op != nil {
		rec.Op = *w.Op
	}
	if w.Op1 != nil {
		rec.Op1 = *w.Op1
	}
	if w.Op2 != nil {
		rec.Op2 = *w.Op2
	}
	if w.Op3 != nil {
		rec.Op3 = *w.Op3
	}
	return rec, nil
}

func termFromWire(t [2]any) isa.Term {
	var term isa.Term
	if idx, ok := t[0].(float64); ok {
		term.Index = int(idx)
	}
	if label, ok := t[1].(string); ok {
		term.RelatedLabel = label
	}
	return term
}
