package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/pipelinecfg"
	"github.com/corvid-lang/corvid/internal/resolve"
	"github.com/corvid-lang/corvid/internal/types"
)

func intTy() *ast.BaseTy  { return &ast.BaseTy{Name: "Int"} }
func boolTy() *ast.BaseTy { return &ast.BaseTy{Name: "Bool"} }

// scenario 1: a single function returning a literal typechecks end to end.
func TestCompileLiteralReturn(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Result: intTy(), Body: &ast.Literal{Kind: ast.LitInt, Bits: 42}},
	}}
	mirProg, _, err := Compile(types.NewContext(), prog)
	require.NoError(t, err)
	assert.Equal(t, "main", mirProg.Main().Name)
}

// scenario 2: mutual recursion across two functions regardless of
// declaration order, exercising two-phase global binding end to end.
func TestCompileMutualRecursion(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "isEven", Params: []*ast.Param{{Name: "n", Type: intTy()}}, Result: boolTy(),
			Body: &ast.Cond{
				Cond: &ast.BinaryOp{Op: ast.Eq, Left: &ast.Ident{Name: "n"}, Right: &ast.Literal{Kind: ast.LitInt, Bits: 0}},
				Then: &ast.Literal{Kind: ast.LitBool, Bits: 1},
				Else: &ast.Call{Func: "isOdd", Args: []ast.Expr{
					&ast.BinaryOp{Op: ast.Sub, Left: &ast.Ident{Name: "n"}, Right: &ast.Literal{Kind: ast.LitInt, Bits: 1}},
				}},
			}},
		{Name: "isOdd", Params: []*ast.Param{{Name: "n", Type: intTy()}}, Result: boolTy(),
			Body: &ast.Cond{
				Cond: &ast.BinaryOp{Op: ast.Eq, Left: &ast.Ident{Name: "n"}, Right: &ast.Literal{Kind: ast.LitInt, Bits: 0}},
				Then: &ast.Literal{Kind: ast.LitBool, Bits: 0},
				Else: &ast.Call{Func: "isEven", Args: []ast.Expr{
					&ast.BinaryOp{Op: ast.Sub, Left: &ast.Ident{Name: "n"}, Right: &ast.Literal{Kind: ast.LitInt, Bits: 1}},
				}},
			}},
		{Name: "main", Result: boolTy(), Body: &ast.Call{Func: "isEven", Args: []ast.Expr{
			&ast.Literal{Kind: ast.LitInt, Bits: 10},
		}}},
	}}
	mirProg, _, err := Compile(types.NewContext(), prog)
	require.NoError(t, err)
	assert.Equal(t, "main", mirProg.Main().Name)
}

// scenario: a function calling a sibling declared AFTER it in source
// order must still resolve, and main ends up at FuncId(0) even though
// it is declared last.
func TestCompileMainReorderedToFuncIdZero(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "helper", Result: intTy(), Body: &ast.Literal{Kind: ast.LitInt, Bits: 7}},
		{Name: "main", Result: intTy(), Body: &ast.Call{Func: "helper"}},
	}}
	mirProg, _, err := Compile(types.NewContext(), prog)
	require.NoError(t, err)
	assert.Equal(t, "main", mirProg.Funcs[0].Name)
}

// scenario: nested arithmetic A-normalizes and typechecks together.
func TestCompileNestedArithmetic(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Result: intTy(), Body: &ast.BinaryOp{
			Op:   ast.Mul,
			Left: &ast.BinaryOp{Op: ast.Add, Left: &ast.Literal{Kind: ast.LitInt, Bits: 1}, Right: &ast.Literal{Kind: ast.LitInt, Bits: 2}},
			Right: &ast.Literal{Kind: ast.LitInt, Bits: 3},
		}},
	}}
	mirProg, _, err := Compile(types.NewContext(), prog)
	require.NoError(t, err)
	assert.NotNil(t, mirProg.Main().Body)
}

// scenario: tuple construction and projection round-trip through the
// whole pipeline.
func TestCompileTupleProjection(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Result: intTy(), Body: &ast.Projection{
			Record: &ast.Tuple{Elems: []ast.Expr{
				&ast.Literal{Kind: ast.LitInt, Bits: 10},
				&ast.Literal{Kind: ast.LitInt, Bits: 20},
			}},
			Label: "1",
		}},
	}}
	mirProg, _, err := Compile(types.NewContext(), prog)
	require.NoError(t, err)
	assert.NotNil(t, mirProg.Main().Body)
}

// scenario 9: open-row projection polymorphism — get1 accepts any
// record/tuple with a "1" field, regardless of the rest of its shape.
func TestCompileOpenRowProjectionPolymorphism(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "get1", Params: []*ast.Param{{Name: "p", Type: nil}}, Result: intTy(),
			Body: &ast.Projection{Record: &ast.Ident{Name: "p"}, Label: "1"}},
		{Name: "main", Result: intTy(), Body: &ast.Call{
			Func: "get1",
			Args: []ast.Expr{&ast.Tuple{Elems: []ast.Expr{
				&ast.Literal{Kind: ast.LitBool, Bits: 1},
				&ast.Literal{Kind: ast.LitInt, Bits: 99},
			}}},
		}},
	}}
	_, _, err := Compile(types.NewContext(), prog)
	require.NoError(t, err)
}

// Unicode NFC/NFD spellings of the same identifier must resolve to the
// same binding end to end, not just at the resolver layer.
func TestCompileUnicodeIdentifierNormalization(t *testing.T) {
	nfc := "café"
	nfd := "café"
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Params: []*ast.Param{{Name: nfc, Type: intTy()}}, Result: intTy(),
			Body: &ast.Ident{Name: nfd}},
	}}
	_, _, err := Compile(types.NewContext(), prog)
	require.NoError(t, err)
}

// Resolution errors propagate through Compile unchanged.
func TestCompilePropagatesResolveError(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Result: intTy(), Body: &ast.Ident{Name: "ghost"}},
	}}
	_, _, err := Compile(types.NewContext(), prog)
	require.Error(t, err)
	_, ok := err.(*resolve.Error)
	assert.True(t, ok)
}

// Type errors propagate through Compile unchanged.
func TestCompilePropagatesTypeError(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Result: boolTy(), Body: &ast.Literal{Kind: ast.LitInt, Bits: 1}},
	}}
	_, _, err := Compile(types.NewContext(), prog)
	require.Error(t, err)
	_, ok := err.(*types.TypeCheckError)
	assert.True(t, ok)
}

// With AllowOpenRows disabled, a stricter embedding host rejects the
// same open-row projection that TestCompileOpenRowProjectionPolymorphism
// accepts under the default config: the parameter's row is pinned
// closed to exactly the projected field, so a two-field tuple no
// longer unifies with it.
func TestCompileWithConfigAllowOpenRowsFalseRejectsExtraFields(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "get1", Params: []*ast.Param{{Name: "p", Type: nil}}, Result: intTy(),
			Body: &ast.Projection{Record: &ast.Ident{Name: "p"}, Label: "1"}},
		{Name: "main", Result: intTy(), Body: &ast.Call{
			Func: "get1",
			Args: []ast.Expr{&ast.Tuple{Elems: []ast.Expr{
				&ast.Literal{Kind: ast.LitBool, Bits: 1},
				&ast.Literal{Kind: ast.LitInt, Bits: 99},
			}}},
		}},
	}}
	cfg := pipelinecfg.Config{AllowOpenRows: false}
	_, _, err := CompileWithConfig(types.NewContext(), prog, cfg)
	require.Error(t, err)
	tErr, ok := err.(*types.TypeCheckError)
	require.True(t, ok)
	assert.Equal(t, types.RecordMismatchError, tErr.Kind)
}

// MaxConstraintIterations bounds how many constraints Solve will drain
// before giving up, independent of whether the program would otherwise
// typecheck.
func TestCompileWithConfigMaxConstraintIterationsExceeded(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDef{
		{Name: "main", Result: intTy(), Body: &ast.BinaryOp{
			Op:    ast.Add,
			Left:  &ast.Literal{Kind: ast.LitInt, Bits: 1},
			Right: &ast.Literal{Kind: ast.LitInt, Bits: 2},
		}},
	}}
	cfg := pipelinecfg.Config{MaxConstraintIterations: 1, AllowOpenRows: true}
	_, _, err := CompileWithConfig(types.NewContext(), prog, cfg)
	require.Error(t, err)
	tErr, ok := err.(*types.TypeCheckError)
	require.True(t, ok)
	assert.Equal(t, types.ConstraintLimitError, tErr.Kind)
}
