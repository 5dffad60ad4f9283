// Package format re-prints a parsed pine file in canonical layout: four-space
// indentation, every block in multi-line form, one blank line between
// top-level declarations. Comments are not part of the AST and are dropped.
package format
