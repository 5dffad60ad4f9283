// Package header splits a lowered unit into a header/source pair and
// synthesizes the program entry point.
package header

import (
	"pine/internal/cast"
	"pine/internal/lower"
)

// MainFile is the name of the synthesized entry unit.
const MainFile = "main"

// Extract moves every struct and a prototype of every function into a header
// named after unit. The returned source keeps the function definitions and
// includes only that header.
func Extract(unit *cast.TranslationUnit) (hdr, src *cast.TranslationUnit) {
	hdr = &cast.TranslationUnit{
		Name:     unit.Name,
		IsHeader: true,
		Includes: append([]cast.Include(nil), unit.Includes...),
	}
	src = &cast.TranslationUnit{
		Name:     unit.Name,
		Includes: []cast.Include{{Name: unit.Name + ".h"}},
	}

	var protos []cast.Decl
	for _, d := range unit.Decls {
		switch d := d.(type) {
		case *cast.StructDecl, *cast.GlobalVar:
			hdr.Decls = append(hdr.Decls, d)
		case *cast.FuncDecl:
			protos = append(protos, d.Prototype())
			if d.Body != nil {
				src.Decls = append(src.Decls, d)
			}
		}
	}
	// прототипы после структур: сигнатуры ссылаются на typedef-ы
	hdr.Decls = append(hdr.Decls, protos...)
	return hdr, src
}

// MainUnit synthesizes
//
//	int32_t main(int32_t argc, char** argv) {
//	    gc_start(&gc, &argc);
//	    pine_lang_main();
//	    gc_stop(&gc);
//	    return 0;
//	}
func MainUnit(name string) *cast.TranslationUnit {
	gc := &cast.UnaryExpr{Op: cast.UnaryAddress, X: cast.Id(lower.GCName)}
	body := &cast.Block{Stmts: []cast.Stmt{
		&cast.ExprStmt{X: cast.Call("gc_start", gc, &cast.UnaryExpr{Op: cast.UnaryAddress, X: cast.Id("argc")})},
		&cast.ExprStmt{X: cast.Call(lower.InternalMain)},
		&cast.ExprStmt{X: cast.Call("gc_stop", gc)},
		&cast.ReturnStmt{Value: cast.IntConst(0)},
	}}

	return &cast.TranslationUnit{
		Name: MainFile,
		Includes: []cast.Include{
			{Name: "pine_gc.h"},
			{Name: "stdint.h", System: true},
			{Name: name + ".h"},
		},
		Decls: []cast.Decl{&cast.FuncDecl{
			Name: "main",
			Params: []cast.Param{
				{Name: "argc", Type: cast.Prim(cast.TypeI32)},
				{Name: "argv", Type: cast.PointerTo(cast.Prim(cast.TypeString))},
			},
			Ret:  cast.Prim(cast.TypeI32),
			Body: body,
		}},
	}
}
