/*
Package port implements the riskvm port controller: two scalar I/O ports
bridging the input schedule and the output buffer.

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
package port

import (
	"fmt"

	"riskvm/isa"
)

// Controller owns port 0 (input) and port 1 (output), plus the ordered
// output buffer OUT appends to.
type Controller struct {
	input  int64
	output int64
	buffer []rune
}

// SetInput deposits a code point on port 0, as driven by the simulator's
// schedule.
func (c *Controller) SetInput(codePoint int64) {
	c.input = codePoint
}

// Read returns the value of the given port; only port 0 (input) may be
// read.
func (c *Controller) Read(p int) (int64, error) {
	if p != isa.InputPortAddress {
		return 0, fmt.Errorf("%w: read port %d", isa.ErrInvalidPort, p)
	}
	return c.input, nil
}

// Write copies value to the given port and, for port 1 (output), appends
// its rune to the output buffer; only port 1 may be written.
func (c *Controller) Write(p int, value int64) error {
	if p != isa.OutputPortAddress {
		return fmt.Errorf("%w: write port %d", isa.ErrInvalidPort, p)
	}
	c.output = value
	c.buffer = append(c.buffer, rune(c.output))
	return nil
}

// Output returns the accumulated output buffer as a string.
func (c *Controller) Output() string {
	return string(c.buffer)
}

// OutputLen reports how many characters have been written so far — equal
// to the number of executed OUT instructions.
func (c *Controller) OutputLen() int {
	return len(c.buffer)
}
