/*
Package interrupt implements the riskvm interrupt controller and its
explicit state machine.

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
package interrupt

// State is the interrupt controller's explicit state machine: Normal,
// PendingUnhandled (raised but not yet serviced) and Handling (prologue ran,
// IRET hasn't executed yet). Making this a type prevents the nesting bug
// class the source guarded with a bare bool.
type State int

const (
	Normal State = iota
	PendingUnhandled
	Handling
)

// Controller latches a pending interrupt and its vector address.
type Controller struct {
	state      State
	vectorAddr int64
}

// Raise transitions Normal -> PendingUnhandled and records the vector
// address the prologue should jump to.
func (c *Controller) Raise(vectorAddr int64) {
	if c.state == Normal {
		c.state = PendingUnhandled
	}
	c.vectorAddr = vectorAddr
}

// Pending reports whether an interrupt is latched and not yet being
// serviced.
func (c *Controller) Pending() bool {
	return c.state == PendingUnhandled
}

// Handling reports whether the prologue has run and IRET hasn't fired yet.
func (c *Controller) Handling() bool {
	return c.state == Handling
}

// VectorAddr returns the address latched by the most recent Raise.
func (c *Controller) VectorAddr() int64 {
	return c.vectorAddr
}

// BeginHandling transitions PendingUnhandled -> Handling, run once by the
// prologue immediately before it saves PC and jumps to the vector.
func (c *Controller) BeginHandling() {
	c.state = Handling
}

// Clear transitions back to Normal, run by IRET.
func (c *Controller) Clear() {
	c.state = Normal
}
