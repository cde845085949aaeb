/*
Package repl implements the riskvm interactive debugger: a liner-backed
console reader dispatching abbreviation-matched commands, in the style of
command/reader's ConsoleReader and command/parser's min-match cmdList
(adapted here to single-stepping one Simulator instead of driving a
multi-device core.Core).

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
package repl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"riskvm/isa"
	"riskvm/translator/disasm"
	"riskvm/vm/simulator"
)

type debugCmd struct {
	name    string
	min     int
	process func(*Debugger, []string) (bool, error)
}

var cmdList = []debugCmd{
	{name: "step", min: 1, process: (*Debugger).step},
	{name: "regs", min: 1, process: (*Debugger).regs},
	{name: "mem", min: 1, process: (*Debugger).mem},
	{name: "break", min: 2, process: (*Debugger).setBreak},
	{name: "continue", min: 1, process: (*Debugger).cont},
	{name: "quit", min: 1, process: (*Debugger).quit},
}

// Debugger steps one Simulator under operator control, stopping on
// breakpoints and at HALT.
type Debugger struct {
	sim     *simulator.Simulator
	breaks  map[int64]bool
	stopped bool
}

// New wraps a Simulator for interactive debugging. The simulator's
// initialization cycle must not have run yet; Run performs it once.
func New(sim *simulator.Simulator) *Debugger {
	return &Debugger{sim: sim, breaks: map[int64]bool{}}
}

// Run starts the initialization cycle and then the command loop, reading
// lines from stdin until `quit` or end of input.
func (d *Debugger) Run() error {
	if err := d.sim.Control.InitializationCycle(); err != nil {
		return err
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for !d.stopped {
		text, err := line.Prompt("riskvm> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, liner.ErrNotTerminalOutput) {
				return nil
			}
			return err
		}
		line.AppendHistory(text)

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		match := matchCommand(fields[0])
		if match == nil {
			fmt.Println("unknown command: " + fields[0])
			continue
		}
		quit, err := match.process(d, fields[1:])
		if err != nil {
			fmt.Println("error: " + err.Error())
			continue
		}
		if quit {
			return nil
		}
	}
	return nil
}

func matchCommand(name string) *debugCmd {
	var found *debugCmd
	for i := range cmdList {
		c := &cmdList[i]
		if len(name) < c.min || len(name) > len(c.name) {
			continue
		}
		if c.name[:len(name)] == name {
			if found != nil {
				return nil // ambiguous
			}
			found = c
		}
	}
	return found
}

// step executes N instructions (default 1), printing each disassembled
// before it runs.
func (d *Debugger) step(args []string) (bool, error) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("step: invalid count %q", args[0])
		}
		n = v
	}

	for i := 0; i < n; i++ {
		pc := d.sim.Path.PC
		if rec, err := d.sim.Path.ReadMemory(pc); err == nil {
			fmt.Println(disasm.One(int(pc), rec))
		}
		halted, err := d.sim.StepOnce()
		if err != nil {
			return false, err
		}
		if halted {
			fmt.Println("halted")
			return false, nil
		}
		if d.breaks[d.sim.Path.PC] {
			fmt.Printf("breakpoint hit at %d\n", d.sim.Path.PC)
			return false, nil
		}
	}
	return false, nil
}

// regs prints the program counter, AR, IPC, the tick count and the 13
// general-purpose registers.
func (d *Debugger) regs(_ []string) (bool, error) {
	fmt.Printf("pc=%d ar=%d ipc=%d ticks=%d\n", d.sim.Path.PC, d.sim.Path.Registers.AR(), d.sim.Path.Registers.IPC(), d.sim.Control.Ticks())
	for i := 0; i < 13; i++ {
		v, _ := d.sim.Path.Registers.Get(i)
		fmt.Printf("r%-2d = %d\n", i, v)
	}
	return false, nil
}

// mem prints the record stored at a single address.
func (d *Debugger) mem(args []string) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("mem: expected an address")
	}
	addr, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return false, fmt.Errorf("mem: invalid address %q", args[0])
	}
	rec, err := d.sim.Path.ReadMemory(addr)
	if err != nil {
		return false, err
	}
	fmt.Println(disasm.One(int(addr), rec))
	return false, nil
}

// setBreak installs a breakpoint at a PC value.
func (d *Debugger) setBreak(args []string) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("break: expected a pc")
	}
	pc, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return false, fmt.Errorf("break: invalid pc %q", args[0])
	}
	d.breaks[pc] = true
	return false, nil
}

// cont runs until HALT or a breakpoint, or the instruction limit.
func (d *Debugger) cont(_ []string) (bool, error) {
	for i := 0; i < isa.InstructionLimit; i++ {
		halted, err := d.sim.StepOnce()
		if err != nil {
			return false, err
		}
		if halted {
			fmt.Println("halted")
			return false, nil
		}
		if d.breaks[d.sim.Path.PC] {
			fmt.Printf("breakpoint hit at %d\n", d.sim.Path.PC)
			return false, nil
		}
	}
	fmt.Println("instruction limit reached")
	return false, nil
}

func (d *Debugger) quit(_ []string) (bool, error) {
	d.stopped = true
	return true, nil
}
