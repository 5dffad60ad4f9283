package diag

import "testing"

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnexpectedInput:    "LEX::0000",
		LexUnterminatedString: "LEX::0001",
		SynUnexpectedEOF:      "SYN::0001",
		SynUnrecognizedToken:  "SYN::0002",
		SynExpectedType:       "SYN::0003",
		SemUnknownStruct:      "SEM::0001",
		SemMainSignature:      "SEM::0010",
		SemReservedName:       "SEM::0011",
		UnknownCode:           "E::0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if SynUnexpectedEOF.Title() != "unrecognized EOF" {
		t.Fatalf("unexpected title %q", SynUnexpectedEOF.Title())
	}
	if Code(9999).Title() != "unknown error" {
		t.Fatal("unknown codes must fall back to the generic title")
	}
}

func TestBagSortDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(Diagnostic{Severity: SevWarning, Code: SynUnrecognizedToken, Primary: spanAt(5)})
	b.Add(Diagnostic{Severity: SevError, Code: LexUnexpectedInput, Primary: spanAt(1)})
	b.Add(Diagnostic{Severity: SevError, Code: LexUnexpectedInput, Primary: spanAt(1)})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnrecognizedToken, Primary: spanAt(5)})

	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Code != LexUnexpectedInput {
		t.Fatalf("expected lexer diagnostic first, got %v", items[0].Code)
	}
	if items[1].Severity != SevError {
		t.Fatal("errors must sort before warnings at the same span")
	}
	if !b.HasErrors() {
		t.Fatal("expected errors")
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(Diagnostic{}) {
		t.Fatal("first add must succeed")
	}
	if b.Add(Diagnostic{}) {
		t.Fatal("second add must hit the limit")
	}
}
