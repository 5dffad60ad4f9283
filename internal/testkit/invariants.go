package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pine/internal/ast"
	"pine/internal/source"
)

// CheckSpanInvariants runs the span invariants on a parsed file:
// 1) every node span has Start <= End and points to sf
// 2) spans stay within the file content
// 3) item spans lie inside file.Span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var firstErr error
	ast.WalkSpans(b, fileID, func(kind ast.NodeKind, sp source.Span) bool {
		switch {
		case sp.Start > sp.End:
			firstErr = fmt.Errorf("reversed %s span: %v", kind, sp)
		case sp.File != sf.ID:
			firstErr = fmt.Errorf("%s span file mismatch: got=%d want=%d", kind, sp.File, sf.ID)
		case sp.End > lenContent:
			firstErr = fmt.Errorf("%s span end beyond content: %d > %d", kind, sp.End, lenContent)
		case kind == ast.NodeItem && !f.Span.Contains(sp):
			firstErr = fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		return firstErr == nil
	})
	return firstErr
}

// CountNodes returns how many nodes of each kind WalkSpans reaches.
func CountNodes(b *ast.Builder, fileID ast.FileID) map[ast.NodeKind]int {
	counts := make(map[ast.NodeKind]int)
	ast.WalkSpans(b, fileID, func(kind ast.NodeKind, _ source.Span) bool {
		counts[kind]++
		return true
	})
	return counts
}
