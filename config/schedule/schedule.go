/*
Package schedule parses the simulator's input-schedule file: a Python
literal list of `(tick, char)` pairs, read with the same cursor-based
hand-rolled technique as the rest of this codebase's config parsing — this
is a closed, tiny grammar, not a job for a general parser-combinator
library or a real Python-eval dependency.

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
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"riskvm/vm/simulator"
)

// line is the current position in the text being parsed, mirroring
// configparser's optionLine cursor.
type line struct {
	text string
	pos  int
}

// Parse reads the input-schedule grammar: `[]` or a comma-separated list of
// `(tick, "ch")` / `(tick, None)` tuples. Empty (whitespace-only) text
// yields an empty schedule, matching the driver treating a blank input file
// as `input_tokens = []`.
func Parse(text string) ([]simulator.ScheduleEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	l := &line{text: text}
	l.skipSpace()
	if !l.consume('[') {
		return nil, fmt.Errorf("schedule: expected '[' at start of %q", text)
	}

	var entries []simulator.ScheduleEntry
	l.skipSpace()
	if l.consume(']') {
		return entries, nil
	}
	for {
		entry, err := parseTuple(l)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)

		l.skipSpace()
		if l.consume(',') {
			l.skipSpace()
			if l.consume(']') {
				return entries, nil
			}
			continue
		}
		if l.consume(']') {
			return entries, nil
		}
		return nil, fmt.Errorf("schedule: expected ',' or ']' at %q", l.remainder())
	}
}

func parseTuple(l *line) (simulator.ScheduleEntry, error) {
	l.skipSpace()
	if !l.consume('(') {
		return simulator.ScheduleEntry{}, fmt.Errorf("schedule: expected '(' at %q", l.remainder())
	}
	l.skipSpace()
	tick, err := l.parseInt()
	if err != nil {
		return simulator.ScheduleEntry{}, err
	}
	l.skipSpace()
	if !l.consume(',') {
		return simulator.ScheduleEntry{}, fmt.Errorf("schedule: expected ',' at %q", l.remainder())
	}
	l.skipSpace()
	ch, err := l.parseCharOrNone()
	if err != nil {
		return simulator.ScheduleEntry{}, err
	}
	l.skipSpace()
	if !l.consume(')') {
		return simulator.ScheduleEntry{}, fmt.Errorf("schedule: expected ')' at %q", l.remainder())
	}
	return simulator.ScheduleEntry{AtTick: tick, Char: ch}, nil
}

func (l *line) remainder() string {
	return l.text[l.pos:]
}

func (l *line) skipSpace() {
	for l.pos < len(l.text) && unicode.IsSpace(rune(l.text[l.pos])) {
		l.pos++
	}
}

func (l *line) consume(b byte) bool {
	if l.pos < len(l.text) && l.text[l.pos] == b {
		l.pos++
		return true
	}
	return false
}

func (l *line) parseInt() (int, error) {
	start := l.pos
	if l.pos < len(l.text) && (l.text[l.pos] == '-' || l.text[l.pos] == '+') {
		l.pos++
	}
	for l.pos < len(l.text) && unicode.IsDigit(rune(l.text[l.pos])) {
		l.pos++
	}
	if l.pos == start {
		return 0, fmt.Errorf("schedule: expected integer at %q", l.text[start:])
	}
	return strconv.Atoi(l.text[start:l.pos])
}

// parseCharOrNone reads either Python's `None` or a one-character quoted
// string (single or double quotes).
func (l *line) parseCharOrNone() (*rune, error) {
	if strings.HasPrefix(l.remainder(), "None") {
		l.pos += len("None")
		return nil, nil
	}
	if l.pos >= len(l.text) {
		return nil, fmt.Errorf("schedule: expected quoted char or None")
	}
	quote := l.text[l.pos]
	if quote != '\'' && quote != '"' {
		return nil, fmt.Errorf("schedule: expected quote at %q", l.remainder())
	}
	l.pos++
	start := l.pos
	for l.pos < len(l.text) && l.text[l.pos] != quote {
		l.pos++
	}
	if l.pos >= len(l.text) {
		return nil, fmt.Errorf("schedule: unterminated quoted string")
	}
	runes := []rune(l.text[start:l.pos])
	l.pos++ // closing quote
	if len(runes) != 1 {
		return nil, fmt.Errorf("schedule: expected exactly one character, got %q", string(runes))
	}
	return &runes[0], nil
}
