package interrupt

import "testing"

func TestStateMachine(t *testing.T) {
	var c Controller

	if c.Pending() || c.Handling() {
		t.Fatal("fresh Controller should be Normal")
	}

	c.Raise(100)
	if !c.Pending() {
		t.Error("Raise should move to PendingUnhandled")
	}
	if c.VectorAddr() != 100 {
		t.Errorf("VectorAddr got: %d wanted: %d", c.VectorAddr(), 100)
	}

	c.BeginHandling()
	if c.Pending() {
		t.Error("BeginHandling should leave PendingUnhandled")
	}
	if !c.Handling() {
		t.Error("BeginHandling should move to Handling")
	}

	c.Clear()
	if c.Handling() || c.Pending() {
		t.Error("Clear should return to Normal")
	}
}

func TestRaiseWhileHandlingDoesNotRegress(t *testing.T) {
	var c Controller
	c.Raise(5)
	c.BeginHandling()

	// A second Raise while already handling must not regress the state
	// back to PendingUnhandled, only update the vector.
	c.Raise(6)
	if c.Pending() {
		t.Error("Raise during Handling should not set Pending")
	}
	if !c.Handling() {
		t.Error("Raise during Handling should leave state at Handling")
	}
	if c.VectorAddr() != 6 {
		t.Errorf("VectorAddr got: %d wanted: %d", c.VectorAddr(), 6)
	}
}
