// Package check validates the structural rules lowering relies on: every
// referenced struct exists, struct literals appear only as let initializers
// of the matching type, and their fields are known, unique and complete.
// Declared names must also be usable as C identifiers.
package check

import (
	"errors"
	"fmt"

	"pine/internal/ast"
	"pine/internal/diag"
	"pine/internal/source"
)

// ErrInvalidProgram is returned when at least one error was reported.
var ErrInvalidProgram = errors.New("program failed structural checks")

// Options configure a check over a file.
type Options struct {
	Reporter diag.Reporter
	// RequireMain reports a missing `main` function; set when building an executable.
	RequireMain bool
}

// StructInfo describes one declared struct.
type StructInfo struct {
	Name   source.StringID
	Decl   *ast.TypeItem
	Fields []ast.Param
}

// Result stores what the check learned about the file.
type Result struct {
	Structs map[source.StringID]*StructInfo
	Funcs   map[source.StringID]*ast.FnItem
	Errors  int
}

// Err returns nil when no errors were reported.
func (r Result) Err() error {
	if r.Errors == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d error(s)", ErrInvalidProgram, r.Errors)
}

// Check runs the structural checks and reports every violation it finds.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{
		Structs: make(map[source.StringID]*StructInfo),
		Funcs:   make(map[source.StringID]*ast.FnItem),
	}
	if builder == nil || fileID == ast.NoFileID {
		return res
	}
	c := checker{
		builder:  builder,
		fileID:   fileID,
		reporter: opts.Reporter,
		result:   &res,
	}
	c.run(opts.RequireMain)
	return res
}

type checker struct {
	builder  *ast.Builder
	fileID   ast.FileID
	reporter diag.Reporter
	result   *Result
	declared map[source.StringID]source.Span
}

func (c *checker) run(requireMain bool) {
	file := c.builder.Files.Get(c.fileID)
	if file == nil {
		return
	}
	c.declared = make(map[source.StringID]source.Span, len(file.Items))

	// 1) регистрируем все объявления, чтобы ссылки вперёд работали
	for _, id := range file.Items {
		c.declare(id)
	}
	// 2) проверяем объявления и тела
	for _, id := range file.Items {
		switch item := c.builder.Items.Get(id); item.Kind {
		case ast.ItemType:
			decl, _ := c.builder.Items.Type(id)
			c.checkStructDecl(decl)
		case ast.ItemFn:
			fn, _ := c.builder.Items.Fn(id)
			c.checkFn(fn)
		}
	}

	if requireMain {
		mainID := c.builder.StringsInterner.Intern("main")
		if _, ok := c.result.Funcs[mainID]; !ok {
			c.errorf(diag.SemMissingMain, file.Span, "no `main` function declared").
				WithNote(file.Span, "declare `fun main() -> _:` as the program entry point").
				Emit()
		}
	}
}

func (c *checker) declare(id ast.ItemID) {
	var (
		name source.StringID
		span source.Span
	)
	switch item := c.builder.Items.Get(id); item.Kind {
	case ast.ItemType:
		decl, _ := c.builder.Items.Type(id)
		name, span = decl.Name, decl.NameSpan
		c.checkName(name, span, "struct")
		if _, dup := c.declared[name]; !dup {
			c.result.Structs[name] = &StructInfo{
				Name:   name,
				Decl:   decl,
				Fields: c.builder.Items.TypeFields(decl),
			}
		}
	case ast.ItemFn:
		fn, _ := c.builder.Items.Fn(id)
		name, span = fn.Name, fn.NameSpan
		c.checkName(name, span, "function")
		if _, dup := c.declared[name]; !dup {
			c.result.Funcs[name] = fn
		}
	}

	if prev, dup := c.declared[name]; dup {
		c.errorf(diag.SemDuplicateDeclaration, span, "`%s` is declared more than once", c.name(name)).
			WithNote(prev, "previous declaration is here").
			Emit()
		return
	}
	c.declared[name] = span
}

func (c *checker) checkStructDecl(decl *ast.TypeItem) {
	fields := c.builder.Items.TypeFields(decl)
	seen := make(map[source.StringID]source.Span, len(fields))
	for _, f := range fields {
		if prev, dup := seen[f.Name]; dup {
			c.errorf(diag.SemDuplicateField, f.Span, "field `%s` is declared more than once", c.name(f.Name)).
				WithNote(prev, "previous declaration is here").
				Emit()
			continue
		}
		seen[f.Name] = f.Span
		c.checkName(f.Name, f.Span, "field")
		c.checkType(f.Type)
	}
}

func (c *checker) checkFn(fn *ast.FnItem) {
	c.checkMainSignature(fn)
	for _, p := range c.builder.Items.FnParams(fn) {
		c.checkName(p.Name, p.Span, "parameter")
		c.checkType(p.Type)
	}
	c.checkType(fn.Return)
	c.checkStmt(fn.Body)
}

// checkType reports references to undeclared structs.
func (c *checker) checkType(ty ast.Type) {
	if ty.Kind != ast.TypeStruct {
		return
	}
	if _, ok := c.result.Structs[ty.Name]; ok {
		return
	}
	c.unknownStruct(ty.Name, ty.Span)
}

func (c *checker) unknownStruct(name source.StringID, sp source.Span) {
	b := c.errorf(diag.SemUnknownStruct, sp, "unknown struct `%s`", c.name(name))
	if hint, ok := suggest(c.name(name), c.structNames()); ok {
		b.WithNote(sp, fmt.Sprintf("did you mean `%s`?", hint))
	}
	b.Emit()
}

func (c *checker) structNames() []string {
	names := make([]string, 0, len(c.result.Structs))
	for id := range c.result.Structs {
		names = append(names, c.name(id))
	}
	return names
}

func (c *checker) errorf(code diag.Code, sp source.Span, format string, args ...any) *diag.ReportBuilder {
	c.result.Errors++
	return diag.ReportError(c.reporter, code, sp, fmt.Sprintf(format, args...))
}

func (c *checker) name(id source.StringID) string {
	return c.builder.Name(id)
}
