// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form namespaced by stage: LEX::nnnn, SYN::nnnn, SEM::nnnn.
//   - Message – one human oriented line.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional free-text notes, optionally anchored to a span.
//
// # Producers and consumers
//
// Phases emit through the Reporter interface and never format anything.
// BagReporter stores into a Bag, DedupReporter filters repeats, and Stream
// decouples emission from consumption with a channel drained by a single
// background goroutine. Rendering lives in internal/diagfmt.
package diag
