package cast

// TranslationUnit is one .c or .h file.
type TranslationUnit struct {
	Name     string
	IsHeader bool
	Includes []Include
	Decls    []Decl
}

// FileName returns "<name>.h" or "<name>.c".
func (u *TranslationUnit) FileName() string {
	if u.IsHeader {
		return u.Name + ".h"
	}
	return u.Name + ".c"
}

// Include is `#include <Name>` when System, `#include "Name"` otherwise.
type Include struct {
	Name   string
	System bool
}

type Decl interface {
	declNode()
}

// Param is a typed name: function parameter or struct member.
type Param struct {
	Name string
	Type Type
}

// FuncDecl is a function definition, or a prototype when Body is nil.
type FuncDecl struct {
	Name   string
	Params []Param
	Ret    Type
	Body   *Block
}

// GlobalVar is a file-scope variable; Init may be nil.
type GlobalVar struct {
	Name string
	Type Type
	Init Expr
}

type StructDecl struct {
	Name    string
	Members []Param
}

func (*FuncDecl) declNode()   {}
func (*GlobalVar) declNode()  {}
func (*StructDecl) declNode() {}

// Prototype returns a copy of the declaration without a body.
func (f *FuncDecl) Prototype() *FuncDecl {
	return &FuncDecl{Name: f.Name, Params: f.Params, Ret: f.Ret}
}
