/*
 * riskvm - Simulator command.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"riskvm/config/schedule"
	"riskvm/internal/repl"
	"riskvm/isa"
	"riskvm/isa/code"
	"riskvm/util/logger"
	"riskvm/vm/simulator"
)

// slogTracer adapts control.Tracer to slog, one debug line per microtick.
type slogTracer struct{}

func (slogTracer) Tick(tick int, pc int64, opcode isa.Opcode, note string) {
	slog.Debug("tick", "tick", tick, "pc", pc, "opcode", opcode, "note", note)
}

func main() {
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optTrace := getopt.BoolLong("trace", 't', "Trace every tick to the log")
	optREPL := getopt.BoolLong("repl", 0, "Run under the interactive debugger")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("<code_file> <input_file>")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) != 2 {
		getopt.Usage()
		os.Exit(1)
	}

	logFile, err := logger.Setup(*optLogFile, *optTrace)
	if err != nil {
		fmt.Fprintln(os.Stderr, "riskvm-simulate: "+err.Error())
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	codePath, inputPath := args[0], args[1]
	program, err := code.Read(codePath)
	if err != nil {
		slog.Error("reading code file", "path", codePath, "err", err)
		os.Exit(1)
	}

	inputText, err := os.ReadFile(inputPath)
	if err != nil {
		slog.Error("reading input file", "path", inputPath, "err", err)
		os.Exit(1)
	}
	entries, err := schedule.Parse(string(inputText))
	if err != nil {
		slog.Error("parsing input schedule", "path", inputPath, "err", err)
		os.Exit(1)
	}

	sim := simulator.New(program, entries)
	if *optTrace {
		sim.Control.Tracer = slogTracer{}
	}

	if *optREPL {
		if err := repl.New(sim).Run(); err != nil {
			slog.Error("debugger session failed", "err", err)
			os.Exit(1)
		}
		return
	}

	runSimulation(sim)
}

// runSimulation drives a batch (non-REPL) run, printing partial output and
// counters early if SIGINT/SIGTERM arrives mid-run instead of at HALT.
func runSimulation(sim *simulator.Simulator) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	type outcome struct {
		result simulator.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := sim.Run()
		done <- outcome{result, err}
	}()

	select {
	case <-sigChan:
		fmt.Print(sim.Path.Port.Output())
		fmt.Printf("ticks: %d (interrupted)\n", sim.Control.Ticks())
		os.Exit(1)
	case o := <-done:
		if o.err != nil {
			slog.Error("simulation failed", "err", o.err)
			os.Exit(1)
		}
		fmt.Print(o.result.Output)
		fmt.Printf("instr_counter: %d ticks: %d\n", o.result.InstructionCount, o.result.Ticks)
	}
}
