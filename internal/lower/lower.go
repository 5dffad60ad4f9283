// Package lower translates a checked pine AST into a C translation unit.
package lower

import (
	"errors"
	"fmt"

	"pine/internal/ast"
	"pine/internal/cast"
)

// ErrMalformedAST wraps violations of the invariants established by the
// parser and the check package. It signals a bug upstream, not a user error.
var ErrMalformedAST = errors.New("malformed AST")

const (
	// InternalMain replaces the source-level `main`; the synthesized C main calls it.
	InternalMain = "pine_lang_main"
	// GCName is the global collector handle defined by the runtime.
	GCName = "gc"

	gcMalloc   = "gc_malloc"
	ctorPrefix = "_"
	ctorSuffix = "__internal__new_gc"
)

// ConstructorName returns the symbol of the GC constructor of a struct.
func ConstructorName(structName string) string {
	return ctorPrefix + structName + ctorSuffix
}

// Includes lists the headers every lowered unit starts with.
func Includes() []cast.Include {
	return []cast.Include{
		{Name: "stdint.h", System: true},
		{Name: "pine_gc.h"},
		{Name: "pine_io.h"},
	}
}

// malformed is the panic payload used inside the lowerer.
type malformed string

// Transform lowers file into a translation unit named unitName. It never
// returns partial output: on an invariant violation the error wraps
// ErrMalformedAST and the unit is nil.
func Transform(b *ast.Builder, file ast.FileID, unitName string) (unit *cast.TranslationUnit, err error) {
	f := b.Files.Get(file)
	if f == nil {
		return nil, fmt.Errorf("%w: file %d not found", ErrMalformedAST, file)
	}

	defer func() {
		if r := recover(); r != nil {
			m, ok := r.(malformed)
			if !ok {
				panic(r)
			}
			unit, err = nil, fmt.Errorf("%w: %s", ErrMalformedAST, string(m))
		}
	}()

	l := newLowerer(b)
	l.registerStructs(f.Items)

	decls := make([]cast.Decl, 0, len(f.Items)+len(l.order))
	for _, id := range f.Items {
		decls = append(decls, l.lowerItem(id))
	}
	for _, sd := range l.order {
		decls = append(decls, l.constructor(sd))
	}

	return &cast.TranslationUnit{
		Name:     unitName,
		Includes: Includes(),
		Decls:    decls,
	}, nil
}

// lowerer holds the per-call struct table; nothing survives between calls.
type lowerer struct {
	b       *ast.Builder
	structs map[string]*cast.StructDecl
	order   []*cast.StructDecl
}

func newLowerer(b *ast.Builder) *lowerer {
	return &lowerer{
		b:       b,
		structs: make(map[string]*cast.StructDecl),
	}
}

func (l *lowerer) failf(format string, args ...any) {
	panic(malformed(fmt.Sprintf(format, args...)))
}

// registerStructs is the pre-pass: struct types resolve regardless of declaration order.
func (l *lowerer) registerStructs(items []ast.ItemID) {
	for _, id := range items {
		decl, ok := l.b.Items.Type(id)
		if !ok {
			continue
		}
		sd := l.structDecl(decl)
		if _, dup := l.structs[sd.Name]; dup {
			l.failf("struct %s declared twice", sd.Name)
		}
		l.structs[sd.Name] = sd
		l.order = append(l.order, sd)
	}
}

func (l *lowerer) structDecl(decl *ast.TypeItem) *cast.StructDecl {
	fields := l.b.Items.TypeFields(decl)
	members := make([]cast.Param, len(fields))
	for i, f := range fields {
		members[i] = cast.Param{Name: l.b.Name(f.Name), Type: l.lowerType(f.Type)}
	}
	return &cast.StructDecl{Name: l.b.Name(decl.Name), Members: members}
}

func (l *lowerer) lowerItem(id ast.ItemID) cast.Decl {
	item := l.b.Items.Get(id)
	if item == nil {
		l.failf("item %d not found", id)
	}
	switch item.Kind {
	case ast.ItemFn:
		fn, _ := l.b.Items.Fn(id)
		return l.lowerFn(fn)
	case ast.ItemType:
		decl, _ := l.b.Items.Type(id)
		return l.structs[l.b.Name(decl.Name)]
	}
	l.failf("unknown item kind %d", item.Kind)
	return nil
}

func (l *lowerer) lowerFn(fn *ast.FnItem) *cast.FuncDecl {
	name := l.b.Name(fn.Name)
	if name == "main" {
		name = InternalMain
	}
	params := l.b.Items.FnParams(fn)
	cparams := make([]cast.Param, len(params))
	for i, p := range params {
		cparams[i] = cast.Param{Name: l.b.Name(p.Name), Type: l.lowerType(p.Type)}
	}
	return &cast.FuncDecl{
		Name:   name,
		Params: cparams,
		Ret:    l.lowerType(fn.Return),
		Body:   l.lowerBlock(fn.Body),
	}
}

// constructor synthesizes
//
//	Point* _Point__internal__new_gc(int32_t x, int32_t y) {
//	    Point* n;
//	    n = (Point*)gc_malloc(&gc, sizeof(Point));
//	    n->x = x;
//	    n->y = y;
//	    return n;
//	}
func (l *lowerer) constructor(sd *cast.StructDecl) *cast.FuncDecl {
	ptr := cast.PointerTo(cast.StructType(sd.Name))
	params := ctorParams(sd.Members)
	obj := allocName(sd.Members, params)

	alloc := &cast.CastExpr{
		Type: ptr,
		X: cast.Call(gcMalloc,
			&cast.UnaryExpr{Op: cast.UnaryAddress, X: cast.Id(GCName)},
			&cast.SizeOf{Type: cast.StructType(sd.Name)},
		),
	}

	stmts := make([]cast.Stmt, 0, len(sd.Members)+3)
	stmts = append(stmts,
		&cast.VarDecl{Name: obj, Type: ptr},
		cast.Set(cast.Id(obj), alloc),
	)
	for i, m := range sd.Members {
		member := &cast.MemberExpr{X: cast.Id(obj), Op: cast.MemberIndirect, Field: m.Name}
		stmts = append(stmts, cast.Set(member, cast.Id(params[i].Name)))
	}
	stmts = append(stmts, &cast.ReturnStmt{Value: cast.Id(obj)})

	return &cast.FuncDecl{
		Name:   ConstructorName(sd.Name),
		Params: params,
		Ret:    ptr,
		Body:   &cast.Block{Stmts: stmts},
	}
}

// ctorParams names the constructor parameters after the fields, except where
// a field would hide an identifier the constructor body refers to.
func ctorParams(members []cast.Param) []cast.Param {
	taken := make(map[string]bool, len(members)+2)
	for _, m := range members {
		taken[m.Name] = true
	}
	taken[GCName], taken[gcMalloc] = true, true

	params := make([]cast.Param, len(members))
	for i, m := range members {
		params[i] = m
		if m.Name != GCName && m.Name != gcMalloc {
			continue
		}
		name := m.Name + "_"
		for taken[name] {
			name += "_"
		}
		taken[name] = true
		params[i].Name = name
	}
	return params
}

// allocName picks the local holding the new object: "n" unless a field or
// parameter already uses it.
func allocName(members, params []cast.Param) string {
	taken := make(map[string]bool, len(members)+len(params))
	for _, m := range members {
		taken[m.Name] = true
	}
	for _, p := range params {
		taken[p.Name] = true
	}
	name := "n"
	for i := 1; taken[name]; i++ {
		name = fmt.Sprintf("n%d", i)
	}
	return name
}

func (l *lowerer) lowerType(ty ast.Type) cast.Type {
	switch ty.Kind {
	case ast.TypeUnit:
		return cast.Prim(cast.TypeVoid)
	case ast.TypeBool, ast.TypeU8:
		return cast.Prim(cast.TypeU8)
	case ast.TypeI8:
		return cast.Prim(cast.TypeI8)
	case ast.TypeI32:
		return cast.Prim(cast.TypeI32)
	case ast.TypeI64:
		return cast.Prim(cast.TypeI64)
	case ast.TypeU32:
		return cast.Prim(cast.TypeU32)
	case ast.TypeU64:
		return cast.Prim(cast.TypeU64)
	case ast.TypeF32:
		return cast.Prim(cast.TypeF32)
	case ast.TypeF64:
		return cast.Prim(cast.TypeF64)
	case ast.TypeString:
		return cast.Prim(cast.TypeString)
	case ast.TypeStruct:
		// структуры всегда передаются по указателю
		return cast.PointerTo(cast.StructType(l.b.Name(ty.Name)))
	}
	l.failf("unknown type kind %d", ty.Kind)
	return cast.Type{}
}
