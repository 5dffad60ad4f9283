// Package token defines lexical token kinds for the pine compiler.
// Invariants:
//   - Token.Text is the exact source slice for the token (decoded value for strings).
//   - Token.Span matches the source range; layout tokens (Indent, Dedent) carry
//     empty spans positioned where the indentation change is observed.
//   - Primitive type names (i32, bool, str, ...) are keywords, not identifiers.
package token
