package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/hir"
	"github.com/corvid-lang/corvid/internal/types"
)

func intTy() *ast.BaseTy { return &ast.BaseTy{Name: "Int"} }

func TestLowerASTMainNotFound(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "helper", Result: intTy(), Body: &ast.Literal{Kind: ast.LitInt, Bits: 1}},
	}}
	_, err := LowerAST(types.NewContext(), prog)
	require.Error(t, err)
	rErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, MainNotFoundError, rErr.Kind)
}

func TestLowerASTUnboundIdent(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Result: intTy(), Body: &ast.Ident{Name: "nope"}},
	}}
	_, err := LowerAST(types.NewContext(), prog)
	require.Error(t, err)
	rErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, UnboundIdentError, rErr.Kind)
	assert.Equal(t, "nope", rErr.Name)
}

func TestLowerASTMainIsAlwaysFuncIdZero(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "helper", Result: intTy(), Body: &ast.Literal{Kind: ast.LitInt, Bits: 7}},
		{Name: "main", Result: intTy(), Body: &ast.Call{Func: "helper"}},
	}}
	out, err := LowerAST(types.NewContext(), prog)
	require.NoError(t, err)
	assert.Equal(t, "main", out.Funcs[0].Name)
	call, ok := out.Funcs[0].Body.(*hir.Call)
	require.True(t, ok)
	assert.Equal(t, hir.FuncId(1), call.Func, "main's call to helper must point at helper's new index")
}

func TestLowerASTForwardReference(t *testing.T) {
	// main calls later, declared after main: two-phase global binding
	// must make this resolve regardless of declaration order.
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Result: intTy(), Body: &ast.Call{Func: "later"}},
		{Name: "later", Result: intTy(), Body: &ast.Literal{Kind: ast.LitInt, Bits: 9}},
	}}
	out, err := LowerAST(types.NewContext(), prog)
	require.NoError(t, err)
	call, ok := out.Funcs[0].Body.(*hir.Call)
	require.True(t, ok)
	assert.Equal(t, "later", out.Funcs[call.Func].Name)
}

func TestLetResolvesRhsBeforeBindingName(t *testing.T) {
	// let x = x in x — the inner `x` in Rhs must be unbound, since Rhs
	// is resolved in the scope BEFORE Name is bound (spec.md §4.3).
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Result: intTy(), Body: &ast.Let{
			Name: "x",
			Rhs:  &ast.Ident{Name: "x"},
			Body: &ast.Ident{Name: "x"},
		}},
	}}
	_, err := LowerAST(types.NewContext(), prog)
	require.Error(t, err)
	rErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, UnboundIdentError, rErr.Kind)
}

func TestUnicodeNFCIdentifiersCollide(t *testing.T) {
	nfc := "café"   // é as a single composed code point
	nfd := "café" // e + combining acute accent
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Params: []*ast.Param{{Name: nfc, Type: intTy()}}, Result: intTy(),
			Body: &ast.Ident{Name: nfd}},
	}}
	out, err := LowerAST(types.NewContext(), prog)
	require.NoError(t, err)
	v, ok := out.Funcs[0].Body.(*hir.Var)
	require.True(t, ok)
	assert.False(t, v.Name.IsFunc)
	assert.Equal(t, hir.Local(0), v.Name.Local, "NFC and NFD spellings of the same identifier must resolve to the same local")
}

func TestTupleTypeLowersToClosedRow(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Params: []*ast.Param{
			{Name: "p", Type: &ast.TupleTy{Elems: []ast.Ty{intTy(), intTy()}}},
		}, Result: intTy(), Body: &ast.Literal{Kind: ast.LitInt, Bits: 0}},
	}}
	out, err := LowerAST(types.NewContext(), prog)
	require.NoError(t, err)
	rec, ok := out.Funcs[0].ParamTypes[0].(*types.RecordType)
	require.True(t, ok)
	assert.False(t, rec.Row.IsOpen())
	_, has0 := rec.Row.Lookup("0")
	_, has1 := rec.Row.Lookup("1")
	assert.True(t, has0)
	assert.True(t, has1)
}
