package diag

import (
	"sync"

	"pine/internal/source"
)

// Stream is a Reporter that hands diagnostics to a background collector.
// Producers report, one goroutine drains the channel into a
// mutex-guarded buffer; Close waits for the drain to finish.
// Report and Close may be called from different goroutines.
type Stream struct {
	ch   chan Diagnostic
	done chan struct{}
	mu   sync.Mutex
	buf  []Diagnostic

	// sendMu is held for reading across every send and for writing while
	// the channel is closed.
	sendMu sync.RWMutex
	closed bool
}

// NewStream starts the collector. size is the channel buffer.
func NewStream(size int) *Stream {
	if size < 0 {
		size = 0
	}
	s := &Stream{
		ch:   make(chan Diagnostic, size),
		done: make(chan struct{}),
	}
	go s.collect()
	return s
}

func (s *Stream) collect() {
	defer close(s.done)
	for d := range s.ch {
		s.mu.Lock()
		s.buf = append(s.buf, d)
		s.mu.Unlock()
	}
}

// Report implements Reporter. Reports after Close are dropped.
func (s *Stream) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	s.sendMu.RLock()
	defer s.sendMu.RUnlock()
	if s.closed {
		return
	}
	s.ch <- Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes}
}

// Drain removes and returns what has been collected so far.
func (s *Stream) Drain() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.buf
	s.buf = nil
	return out
}

// Close stops the collector and returns every remaining diagnostic.
// Reports in flight complete before the channel closes.
func (s *Stream) Close() []Diagnostic {
	s.sendMu.Lock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	s.sendMu.Unlock()
	<-s.done
	return s.Drain()
}
