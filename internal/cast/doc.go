// Package cast holds the C abstract syntax tree produced by lowering.
//
// Nodes are plain owned values without source positions. Declarations,
// statements and expressions are closed interfaces implemented only by the
// types of this package.
package cast
