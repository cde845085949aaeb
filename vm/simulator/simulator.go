/*
Package simulator implements the riskvm top-level simulation loop: interrupt
injection from a time-stamped input schedule, and termination on HALT or the
instruction limit.

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
package simulator

import (
	"errors"
	"log/slog"

	"riskvm/isa"
	"riskvm/vm/control"
	"riskvm/vm/datapath"
)

// ScheduleEntry is one (tick, char) entry of the input schedule. Char is
// nil to represent Python's `None` — deliver code point 0.
type ScheduleEntry struct {
	AtTick int
	Char   *rune
}

// Result is what a simulation run hands back to its caller: the
// concatenated output buffer and the two counters tests assert on.
type Result struct {
	Output           string
	InstructionCount int
	Ticks            int
}

// Simulator wraps one data path and control unit for a single run, plus the
// input schedule the driver injects from between instructions. It is not
// reused across runs — construct a fresh Simulator per simulation, matching
// the "no shared global" design note.
type Simulator struct {
	Path     *datapath.DataPath
	Control  *control.Unit
	schedule []ScheduleEntry
}

// New constructs a Simulator over a translated program and an input
// schedule sorted by tick.
func New(program []isa.Record, schedule []ScheduleEntry) *Simulator {
	path := datapath.New(program)
	return &Simulator{
		Path:     path,
		Control:  control.New(path),
		schedule: schedule,
	}
}

// Run executes the initialization cycle and then the main loop: run one
// instruction, inject any due schedule entry and service a pending
// interrupt, repeat until HALT or isa.InstructionLimit instructions have
// executed.
func (s *Simulator) Run() (Result, error) {
	if err := s.Control.InitializationCycle(); err != nil {
		return Result{}, err
	}

	count := 0
	for count < isa.InstructionLimit {
		halted, err := s.StepOnce()
		count++
		if err != nil {
			return Result{}, err
		}
		if halted {
			break
		}
	}

	if count == isa.InstructionLimit {
		slog.Warn("instruction limit reached")
	}

	return Result{
		Output:           s.Path.Port.Output(),
		InstructionCount: count,
		Ticks:            s.Control.Ticks(),
	}, nil
}

// StepOnce runs exactly one iteration of the main loop's body: fetch,
// decode and execute one instruction, then inject any due schedule entry
// and run the interrupt prologue if one is now pending. It is exported for
// the interactive debugger, which needs to stop between instructions rather
// than run to completion.
func (s *Simulator) StepOnce() (halted bool, err error) {
	if err := s.Control.Step(); err != nil {
		if errors.Is(err, control.Halted) {
			return true, nil
		}
		return false, err
	}

	s.injectInterrupt()
	if err := s.Control.CheckInterrupt(); err != nil {
		return false, err
	}
	return false, nil
}

// injectInterrupt raises an interrupt and deposits the scheduled character
// (or 0) into port 0 once the schedule's next entry is due, then advances
// past it.
func (s *Simulator) injectInterrupt() {
	if len(s.schedule) == 0 {
		return
	}
	next := s.schedule[0]
	if s.Control.Ticks() < next.AtTick {
		return
	}
	s.Path.Interrupt.Raise(s.Path.LastMemoryIndex())
	if next.Char != nil {
		s.Path.Port.SetInput(int64(*next.Char))
	} else {
		s.Path.Port.SetInput(0)
	}
	s.schedule = s.schedule[1:]
}
