package diag

import (
	"sync"
	"testing"

	"pine/internal/source"
)

func spanAt(off uint32) source.Span {
	return source.Span{Start: off, End: off + 1}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, SynExpectedType, spanAt(3), "expected type").
		WithNote(spanAt(3), "found: `(`")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Msg != "found: `(`" {
		t.Fatalf("unexpected notes %+v", d.Notes)
	}
	if d.Error() != "SYN::0003: expected type" {
		t.Fatalf("unexpected error text %q", d.Error())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		r.Report(LexUnexpectedInput, SevError, spanAt(0), "unexpected input", nil)
	}
	r.Report(LexUnexpectedInput, SevError, spanAt(2), "unexpected input", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestStreamCollectsInOrder(t *testing.T) {
	s := NewStream(1)
	for i := range 50 {
		s.Report(LexUnexpectedInput, SevError, spanAt(uint32(i)), "x", nil)
	}
	got := s.Close()
	if len(got) != 50 {
		t.Fatalf("expected 50 diagnostics, got %d", len(got))
	}
	for i, d := range got {
		if d.Primary.Start != uint32(i) {
			t.Fatalf("diagnostic %d out of order: %v", i, d.Primary)
		}
	}

	// после Close всё отбрасывается, повторный Close безопасен
	s.Report(LexUnexpectedInput, SevError, spanAt(0), "late", nil)
	if rest := s.Close(); len(rest) != 0 {
		t.Fatalf("expected nothing after close, got %d", len(rest))
	}
}

func TestStreamDrainWhileRunning(t *testing.T) {
	s := NewStream(0)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 10 {
			s.Report(SynUnexpectedEOF, SevError, spanAt(0), "eof", nil)
		}
	}()
	wg.Wait()
	total := len(s.Drain())
	total += len(s.Close())
	if total != 10 {
		t.Fatalf("expected 10 diagnostics overall, got %d", total)
	}
}

func TestStreamReportRacingClose(t *testing.T) {
	for range 20 {
		s := NewStream(0)
		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 100 {
					s.Report(LexUnexpectedInput, SevError, spanAt(uint32(i)), "x", nil)
				}
			}()
		}
		got := len(s.Close())
		wg.Wait()
		if got > 400 {
			t.Fatalf("collected %d diagnostics from 400 reports", got)
		}
		if rest := s.Close(); len(rest) != 0 {
			t.Fatalf("reports after close were kept: %d", len(rest))
		}
	}
}
