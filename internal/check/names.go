package check

import (
	"strings"

	"pine/internal/ast"
	"pine/internal/diag"
	"pine/internal/source"
)

// Pine identifiers reach the generated C unchanged, so they must not collide
// with C keywords, the types the headers bring in, or runtime symbols.
var reservedNames = setOf(
	// C11
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while",
	"_Alignas", "_Alignof", "_Atomic", "_Bool", "_Complex", "_Generic",
	"_Imaginary", "_Noreturn", "_Static_assert", "_Thread_local",
	// stdint.h, stddef.h, stdbool.h
	"int8_t", "int16_t", "int32_t", "int64_t",
	"uint8_t", "uint16_t", "uint32_t", "uint64_t",
	"intptr_t", "uintptr_t", "size_t", "ptrdiff_t", "NULL",
	"bool", "true", "false",
	// runtime
	"gc", "main", "PineGc", "PineGcFlag", "PineAllocation", "PineAllocationMap",
)

var reservedPrefixes = []string{"gc_", "print_", "pine_", "PINE_", "__"}

const ctorSymbolSuffix = "__internal__new_gc"

func setOf(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// reservedReason returns why name cannot be used in C, or "".
func reservedReason(name string) string {
	if reservedNames[name] {
		return "it is a C keyword or a name the runtime defines"
	}
	for _, p := range reservedPrefixes {
		if strings.HasPrefix(name, p) {
			return "the `" + p + "` prefix belongs to the runtime"
		}
	}
	if strings.HasSuffix(name, ctorSymbolSuffix) {
		return "it clashes with generated struct constructors"
	}
	return ""
}

// checkName reports a declaration whose name the generated C cannot carry.
// `main` is allowed only as the entry function.
func (c *checker) checkName(id source.StringID, sp source.Span, what string) {
	name := c.name(id)
	if name == "main" && what == "function" {
		return
	}
	reason := reservedReason(name)
	if reason == "" {
		return
	}
	c.errorf(diag.SemReservedName, sp, "%s name `%s` is reserved", what, name).
		WithNote(sp, reason).
		Emit()
}

// checkMainSignature reports a main that the generated entry point cannot call.
func (c *checker) checkMainSignature(fn *ast.FnItem) {
	if c.name(fn.Name) != "main" || fn.ParamsCount == 0 {
		return
	}
	params := c.builder.Items.FnParams(fn)
	c.errorf(diag.SemMainSignature, params[0].Span, "`main` must not take parameters").
		WithNote(fn.NameSpan, "declare it as `fun main() -> _:`").
		Emit()
}
