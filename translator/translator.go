/*
Package translator implements the riskvm two-pass assembler: source text to
an ordered sequence of machine-code records.

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
package translator

import (
	"fmt"
	"strconv"
	"strings"

	"riskvm/isa"
)

// Translate runs the two-pass assembler over source text and returns an
// ordered program: preprocessed lines, expanded data, labels collected,
// instructions encoded, trailer appended.
func Translate(text string) ([]isa.Record, error) {
	lines := removeCommentsAndBlankLines(text)
	lines = expandDataSection(lines)
	labels, lines := collectLabels(lines)
	return encode(lines, labels)
}

// removeCommentsAndBlankLines prepends the synthetic entry jump, then for
// each line strips an `@`-comment, trims whitespace, drops empties, and
// unwraps a `section ` prefix.
func removeCommentsAndBlankLines(text string) []string {
	cleaned := []string{"jmp .text"}
	for _, line := range strings.Split(text, "\n") {
		if at := strings.IndexByte(line, '@'); at >= 0 {
			line = line[:at]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "section ") {
			line = line[8:]
		}
		cleaned = append(cleaned, line)
	}
	return cleaned
}

// expandDataSection walks the `.data:` section (ended by any other line
// starting with `.`) and expands each `name: value` line into one or more
// lines, preserving label-to-first-byte alignment. Lines outside `.data:`
// pass through unchanged.
func expandDataSection(lines []string) []string {
	out := make([]string, 0, len(lines))
	inData := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == ".data:" {
			inData = true
			out = append(out, line)
			continue
		}
		if inData && strings.HasPrefix(trimmed, ".") {
			inData = false
		}
		if inData && strings.Contains(trimmed, ":") {
			key, value, _ := strings.Cut(trimmed, ":")
			out = append(out, expandDataLine(strings.TrimSpace(key), strings.TrimSpace(value))...)
			continue
		}
		out = append(out, line)
	}
	return out
}

// expandDataLine implements the three data-directive shapes: `resb N`,
// quoted string spans, and a raw literal value.
func expandDataLine(key, value string) []string {
	switch {
	case strings.Contains(value, "resb"):
		return expandResb(key, value)
	case strings.Contains(value, `"`):
		return expandString(key, value)
	default:
		return []string{key + ":", value}
	}
}

func expandResb(key, value string) []string {
	fields := strings.Fields(value)
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		n = 0
	}
	lines := make([]string, 0, n+1)
	lines = append(lines, key+":")
	for i := 0; i < n; i++ {
		lines = append(lines, "0")
	}
	return lines
}

// expandString toggles an "inside-string" flag on each `"`; outside, a
// space or comma is skipped, inside, each character becomes str(ord(ch)).
func expandString(key, value string) []string {
	lines := []string{key + ":"}
	inStr := false
	for _, ch := range value {
		switch {
		case ch == '"':
			inStr = !inStr
		case inStr:
			lines = append(lines, strconv.Itoa(int(ch)))
		case ch == ' ' || ch == ',':
			// skipped outside a quoted span
		default:
			lines = append(lines, string(ch))
		}
	}
	return lines
}

// collectLabels walks the expanded line list; any line of the form
// `name:` or `.name:` (the colon at top level, not inside an operand) is a
// label: `labels[name] = currentIndex`, and the line is removed so
// subsequent indices shift — labels point at the line that follows them.
func collectLabels(lines []string) (map[string]int, []string) {
	labels := map[string]int{}
	out := make([]string, 0, len(lines))
	i := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isLabelLine(trimmed) {
			name := strings.TrimSpace(strings.SplitN(trimmed, ":", 2)[0])
			labels[name] = i
			continue
		}
		out = append(out, line)
		i++
	}
	return labels, out
}

// isLabelLine reports whether a (trimmed) line is a bare label of the form
// `name:` or `.name:` — a colon with nothing but whitespace after it and no
// whitespace in the name itself. After comment-stripping and data-section
// expansion, these are the only colon-bearing lines in the stream.
func isLabelLine(line string) bool {
	head, rest, found := strings.Cut(line, ":")
	if !found || head == "" || strings.TrimSpace(rest) != "" {
		return false
	}
	return !strings.ContainsAny(head, " \t")
}

// encode runs pass 2: for each remaining line, tokenize on spaces and
// dispatch on the opcode family.
func encode(lines []string, labels map[string]int) ([]isa.Record, error) {
	program := make([]isa.Record, 0, len(lines)+1)
	for pc, line := range lines {
		rec, err := encodeLine(pc, line, labels)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", isa.ErrTranslation, pc, err)
		}
		program = append(program, rec)
	}
	program = append(program, trailer(labels))
	return program, nil
}

func trailer(labels map[string]int) isa.Record {
	if addr, ok := labels[".int1"]; ok {
		return isa.Record{Kind: isa.KindIntVec, IntVec: addr, Resolved: true}
	}
	return isa.Record{Kind: isa.KindIntVec, Resolved: false}
}

func encodeLine(pc int, line string, labels map[string]int) (isa.Record, error) {
	fields := strings.Split(line, " ")
	op := fields[0]

	if mnemonic, ok := isa.LookupOpcode(op); ok {
		return encodeOpcode(pc, mnemonic, fields, labels)
	}
	return encodeData(pc, op, labels)
}

func encodeData(pc int, op string, labels map[string]int) (isa.Record, error) {
	if n, err := strconv.Atoi(op); err == nil {
		return isa.Record{Kind: isa.KindData, Data: n, Term: isa.Term{Index: pc}}, nil
	}
	addr, ok := labels[op]
	if !ok {
		return isa.Record{}, fmt.Errorf("data: undefined label %q", op)
	}
	return isa.Record{Kind: isa.KindData, Data: addr, Term: isa.Term{Index: pc, RelatedLabel: op}}, nil
}

func encodeOpcode(pc int, op isa.Opcode, fields []string, labels map[string]int) (isa.Record, error) {
	switch op {
	case isa.LOAD, isa.STORE:
		return encodeLoadStore(pc, op, fields, labels)
	case isa.ADD, isa.SUB, isa.MOD, isa.INC, isa.CMP:
		return encodeArithmetic(pc, op, fields)
	case isa.DI, isa.EI, isa.IN, isa.OUT, isa.IRET, isa.HALT:
		return encodeSingleOp(pc, op, fields)
	case isa.JZ, isa.JNZ, isa.JMP:
		return encodeJump(pc, op, fields, labels)
	case isa.MOVE:
		return encodeMove(pc, op, fields)
	}
	return isa.Record{}, fmt.Errorf("unhandled opcode %s", op)
}

func encodeLoadStore(pc int, op isa.Opcode, fields []string, labels map[string]int) (isa.Record, error) {
	if len(fields) < 3 {
		return isa.Record{}, fmt.Errorf("%s: expected `%s rD, X`", op, op)
	}
	reg, err := regToken(fields[1])
	if err != nil {
		return isa.Record{}, err
	}
	target := fields[2]
	if strings.HasPrefix(target, "(") && strings.HasSuffix(target, ")") {
		label := target[1 : len(target)-1]
		addr, ok := labels[label]
		if !ok {
			return isa.Record{}, fmt.Errorf("%s: undefined label %q", op, label)
		}
		return isa.Record{
			Kind: isa.KindInstruction, Opcode: op, AddrType: isa.INDIRECT,
			Reg: reg, Op: addr, Term: isa.Term{Index: pc, RelatedLabel: label},
		}, nil
	}
	addr, ok := labels[target]
	if !ok {
		return isa.Record{}, fmt.Errorf("%s: undefined label %q", op, target)
	}
	return isa.Record{
		Kind: isa.KindInstruction, Opcode: op, AddrType: isa.DIRECT,
		Reg: reg, Op: addr, Term: isa.Term{Index: pc, RelatedLabel: target},
	}, nil
}

func encodeArithmetic(pc int, op isa.Opcode, fields []string) (isa.Record, error) {
	switch len(fields) {
	case 2: // inc rX
		r, err := regToken(fields[1])
		if err != nil {
			return isa.Record{}, err
		}
		return isa.Record{Kind: isa.KindInstruction, Opcode: op, Op: r, AddrType: isa.REGISTER, Term: isa.Term{Index: pc}}, nil
	case 3: // cmp rA, rB
		a, err := regToken(strings.TrimSuffix(fields[1], ","))
		if err != nil {
			return isa.Record{}, err
		}
		b, err := regToken(fields[2])
		if err != nil {
			return isa.Record{}, err
		}
		return isa.Record{Kind: isa.KindInstruction, Opcode: op, Op1: a, Op2: b, AddrType: isa.REGISTER, Term: isa.Term{Index: pc}}, nil
	case 4: // add/sub/mod rD, rA, rB
		d, err := regToken(strings.TrimSuffix(fields[1], ","))
		if err != nil {
			return isa.Record{}, err
		}
		a, err := regToken(strings.TrimSuffix(fields[2], ","))
		if err != nil {
			return isa.Record{}, err
		}
		b, err := regToken(fields[3])
		if err != nil {
			return isa.Record{}, err
		}
		return isa.Record{Kind: isa.KindInstruction, Opcode: op, Op1: d, Op2: a, Op3: b, AddrType: isa.REGISTER, Term: isa.Term{Index: pc}}, nil
	}
	return isa.Record{}, fmt.Errorf("%s: wrong operand count", op)
}

func encodeSingleOp(pc int, op isa.Opcode, fields []string) (isa.Record, error) {
	switch len(fields) {
	case 1: // di/ei/halt/iret
		return isa.Record{Kind: isa.KindInstruction, Opcode: op, AddrType: isa.NONE, Term: isa.Term{Index: pc}}, nil
	case 3: // in rD, P / out rS, P
		reg, err := regToken(strings.TrimSuffix(fields[1], ","))
		if err != nil {
			return isa.Record{}, err
		}
		port, err := strconv.Atoi(fields[2])
		if err != nil {
			return isa.Record{}, fmt.Errorf("%s: invalid port %q", op, fields[2])
		}
		return isa.Record{Kind: isa.KindInstruction, Opcode: op, Reg: reg, Op: port, AddrType: isa.PORT, Term: isa.Term{Index: pc}}, nil
	}
	return isa.Record{}, fmt.Errorf("%s: wrong operand count", op)
}

func encodeJump(pc int, op isa.Opcode, fields []string, labels map[string]int) (isa.Record, error) {
	if len(fields) < 2 {
		return isa.Record{}, fmt.Errorf("%s: expected a target label", op)
	}
	addr, ok := labels[fields[1]]
	if !ok {
		return isa.Record{}, fmt.Errorf("%s: undefined label %q", op, fields[1])
	}
	return isa.Record{
		Kind: isa.KindInstruction, Opcode: op, Op: addr, AddrType: isa.DIRECT,
		Term: isa.Term{Index: pc, RelatedLabel: fields[1]},
	}, nil
}

func encodeMove(pc int, op isa.Opcode, fields []string) (isa.Record, error) {
	if len(fields) < 3 {
		return isa.Record{}, fmt.Errorf("%s: expected `move rD, rS` or `move rD, #N`", op)
	}
	reg, err := regToken(strings.TrimSuffix(fields[1], ","))
	if err != nil {
		return isa.Record{}, err
	}
	src := fields[2]
	switch {
	case strings.HasPrefix(src, "r"):
		s, err := regToken(src)
		if err != nil {
			return isa.Record{}, err
		}
		return isa.Record{Kind: isa.KindInstruction, Opcode: op, Reg: reg, Op: s, AddrType: isa.REGISTER, Term: isa.Term{Index: pc}}, nil
	case strings.HasPrefix(src, "#"):
		n, err := strconv.Atoi(src[1:])
		if err != nil {
			return isa.Record{}, fmt.Errorf("%s: invalid immediate %q", op, src)
		}
		return isa.Record{Kind: isa.KindInstruction, Opcode: op, Reg: reg, Op: n, AddrType: isa.DIRECT, Term: isa.Term{Index: pc}}, nil
	}
	return isa.Record{}, fmt.Errorf("%s: operand must be rN or #N, got %q", op, src)
}

// regToken parses a register operand like "r3" or "r3," into its index.
func regToken(tok string) (int, error) {
	tok = strings.TrimSuffix(tok, ",")
	if !strings.HasPrefix(tok, "r") {
		return 0, fmt.Errorf("expected register token, got %q", tok)
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil {
		return 0, fmt.Errorf("invalid register token %q", tok)
	}
	return n, nil
}
