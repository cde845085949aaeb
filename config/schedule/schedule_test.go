package schedule

import "testing"

func TestParseEmpty(t *testing.T) {
	entries, err := Parse("[]")
	if err != nil {
		t.Fatalf("Parse(\"[]\") returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Parse(\"[]\") got %d entries wanted 0", len(entries))
	}

	entries, err = Parse("   ")
	if err != nil {
		t.Fatalf("Parse(blank) returned error: %v", err)
	}
	if entries != nil {
		t.Errorf("Parse(blank) got %v wanted nil", entries)
	}
}

func TestParseSingleTuple(t *testing.T) {
	entries, err := Parse(`[(5, 'a')]`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse got %d entries wanted 1", len(entries))
	}
	if entries[0].AtTick != 5 {
		t.Errorf("AtTick got: %d wanted: %d", entries[0].AtTick, 5)
	}
	if entries[0].Char == nil || *entries[0].Char != 'a' {
		t.Errorf("Char got: %v wanted: 'a'", entries[0].Char)
	}
}

func TestParseMultipleTuplesAndNone(t *testing.T) {
	entries, err := Parse(`[(0, "x"), (10, None), (20, 'z')]`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Parse got %d entries wanted 3", len(entries))
	}
	if entries[1].Char != nil {
		t.Errorf("entries[1].Char got: %v wanted: nil", *entries[1].Char)
	}
	if entries[2].AtTick != 20 || *entries[2].Char != 'z' {
		t.Errorf("entries[2] got tick=%d char=%v", entries[2].AtTick, entries[2].Char)
	}
}

func TestParseNegativeTick(t *testing.T) {
	// Not a realistic schedule, but the grammar's integer parser accepts a
	// leading sign; reject-on-negative is the caller's business, not the
	// parser's.
	entries, err := Parse(`[(-1, 'q')]`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if entries[0].AtTick != -1 {
		t.Errorf("AtTick got: %d wanted: %d", entries[0].AtTick, -1)
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []string{
		"(1, 'a')",
		"[1, 'a']",
		"[(1 'a')]",
		"[(1, 'ab')]",
		"[(1, 'a')",
	}
	for _, c := range cases {
		if _, err := Parse(c); err == nil {
			t.Errorf("Parse(%q) expected an error, got none", c)
		}
	}
}
