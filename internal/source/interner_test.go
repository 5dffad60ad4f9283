package source

import "testing"

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("point")
	b := in.Intern("point")
	c := in.Intern("x")
	if a != b {
		t.Fatalf("expected equal ids, got %d and %d", a, b)
	}
	if a == c || a == NoStringID {
		t.Fatalf("unexpected ids: %d %d", a, c)
	}
	if in.MustLookup(c) != "x" {
		t.Fatal("lookup mismatch")
	}
	if _, ok := in.Lookup(999); ok {
		t.Fatal("unknown id must not resolve")
	}
	if in.Len() != 3 {
		t.Fatalf("expected len 3, got %d", in.Len())
	}
}
