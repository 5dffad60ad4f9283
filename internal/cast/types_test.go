package cast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		ty   Type
		want string
	}{
		{Prim(TypeVoid), "void"},
		{Prim(TypeU8), "uint8_t"},
		{Prim(TypeI32), "int32_t"},
		{Prim(TypeI64), "int64_t"},
		{Prim(TypeUSize), "size_t"},
		{Prim(TypeF32), "float"},
		{Prim(TypeF64), "double"},
		{Prim(TypeString), "char*"},
		{StructType("Point"), "Point"},
		{PointerTo(StructType("Point")), "Point*"},
		{PointerTo(PointerTo(Prim(TypeI8))), "int8_t**"},
		{Type{Kind: TypePointer}, "void*"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ty.String())
	}
}

func TestPointsToStruct(t *testing.T) {
	assert.True(t, PointerTo(StructType("Point")).PointsToStruct())
	assert.False(t, PointerTo(Prim(TypeI32)).PointsToStruct())
	assert.False(t, StructType("Point").PointsToStruct())
}

func TestOperatorSpelling(t *testing.T) {
	assert.Equal(t, "!", UnaryNot.String())
	assert.Equal(t, "-", UnaryMinus.String())
	assert.Equal(t, "&", UnaryAddress.String())
	assert.True(t, UnaryPostInc.IsPostfix())
	assert.False(t, UnaryPreInc.IsPostfix())
	assert.Equal(t, "&&", BinaryLogicalAnd.String())
	assert.Equal(t, "!=", BinaryNotEq.String())
	assert.Equal(t, "<<=", AssignShl.String())
	assert.Equal(t, "->", MemberIndirect.String())
	assert.Equal(t, ".", MemberDirect.String())
}

func TestPrototypeDropsBody(t *testing.T) {
	fn := &FuncDecl{
		Name:   "add",
		Params: []Param{{Name: "a", Type: Prim(TypeI32)}},
		Ret:    Prim(TypeI32),
		Body:   &Block{Stmts: []Stmt{&ReturnStmt{Value: Id("a")}}},
	}
	proto := fn.Prototype()
	assert.Nil(t, proto.Body)
	assert.Equal(t, fn.Params, proto.Params)
	assert.NotNil(t, fn.Body)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "hello.h", (&TranslationUnit{Name: "hello", IsHeader: true}).FileName())
	assert.Equal(t, "hello.c", (&TranslationUnit{Name: "hello"}).FileName())
}
