/*
 * riskvm - Translator command.
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
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"riskvm/isa"
	"riskvm/isa/code"
	"riskvm/translator"
	"riskvm/util/logger"
)

func main() {
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("<input_asm> <output_code>")
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

	logFile, err := logger.Setup(*optLogFile, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, "riskvm-translate: "+err.Error())
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	sourcePath, codePath := args[0], args[1]
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		slog.Error("reading source", "path", sourcePath, "err", err)
		os.Exit(1)
	}

	program, err := translator.Translate(string(source))
	if err != nil {
		slog.Error("translation failed", "err", err)
		os.Exit(1)
	}

	if err := code.Write(codePath, program); err != nil {
		slog.Error("writing code file", "path", codePath, "err", err)
		os.Exit(1)
	}

	sourceLines := len(strings.Split(string(source), "\n"))
	instructions := 0
	for _, rec := range program {
		if rec.Kind == isa.KindInstruction {
			instructions++
		}
	}
	fmt.Printf("source LoC: %d code instr: %d\n", sourceLines, instructions)
}
