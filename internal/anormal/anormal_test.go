package anormal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-lang/corvid/internal/hir"
	"github.com/corvid-lang/corvid/internal/mir"
	"github.com/corvid-lang/corvid/internal/types"
)

func lit(tcx *types.Context, n int64) *hir.Lit {
	return hir.NewLit(tcx.FreshExprID(), hir.LitInt, n)
}

// countLets walks a chain of nested mir.Let nodes and returns how deep it
// goes before reaching a non-Let body.
func countLets(e mir.Expr) int {
	n := 0
	for {
		l, ok := e.(*mir.Let)
		if !ok {
			return n
		}
		n++
		e = l.Body
	}
}

func TestLowerHIRHoistsNestedBinaryOpIntoLet(t *testing.T) {
	tcx := types.NewContext()
	// (1 + 2) * 3: the nested Add must be hoisted into a Let before
	// Mul can use it as an atomic operand.
	inner := hir.NewBinaryOp(tcx.FreshExprID(), hir.Add, lit(tcx, 1), lit(tcx, 2))
	outer := hir.NewBinaryOp(tcx.FreshExprID(), hir.Mul, inner, lit(tcx, 3))

	prog := &hir.Program{Funcs: []*hir.Func{
		{Name: "main", Arity: 0, NumLocals: 0, Result: types.NewBase(types.Int), Body: outer},
	}}
	tbl := types.NewTableBuilder(0)
	finished, err := tbl.Finish(types.NewUnifier(tcx))
	require.NoError(t, err)

	mirProg, _, err := LowerHIR(types.NewUnifier(tcx), finished, prog)
	require.NoError(t, err)

	body := mirProg.Main().Body
	require.Equal(t, 1, countLets(body), "one Let hoisting the nested Add")
	let := body.(*mir.Let)
	binop, ok := let.Rhs.(*mir.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, hir.Add, binop.Op)

	outerBinop, ok := let.Body.(*mir.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, hir.Mul, outerBinop.Op)
	assert.IsType(t, &mir.Var{}, outerBinop.Left, "the hoisted Add's result must be referenced as a Var")
}

func TestLowerHIRCondBranchesHoistIndependently(t *testing.T) {
	tcx := types.NewContext()
	condAtom := lit(tcx, 1)
	thenExpr := hir.NewBinaryOp(tcx.FreshExprID(), hir.Mul,
		hir.NewBinaryOp(tcx.FreshExprID(), hir.Add, lit(tcx, 1), lit(tcx, 1)), lit(tcx, 2))
	elseExpr := lit(tcx, 0)
	cond := hir.NewCond(tcx.FreshExprID(), condAtom, thenExpr, elseExpr)

	prog := &hir.Program{Funcs: []*hir.Func{
		{Name: "main", Arity: 0, NumLocals: 0, Result: types.NewBase(types.Int), Body: cond},
	}}
	tbl := types.NewTableBuilder(0)
	finished, err := tbl.Finish(types.NewUnifier(tcx))
	require.NoError(t, err)

	mirProg, _, err := LowerHIR(types.NewUnifier(tcx), finished, prog)
	require.NoError(t, err)

	body, ok := mirProg.Main().Body.(*mir.Cond)
	require.True(t, ok)
	// Then hoists its own Add into a Let local to the branch; Else,
	// being already atomic, needs no Let at all.
	assert.Equal(t, 1, countLets(body.Then))
	assert.Equal(t, 0, countLets(body.Else))
}

func TestLowerHIRAppendsFreshLocalsAfterResolverCount(t *testing.T) {
	tcx := types.NewContext()
	inner := hir.NewBinaryOp(tcx.FreshExprID(), hir.Add, lit(tcx, 1), lit(tcx, 2))
	outer := hir.NewBinaryOp(tcx.FreshExprID(), hir.Mul, inner, lit(tcx, 3))
	prog := &hir.Program{Funcs: []*hir.Func{
		{Name: "main", Arity: 0, NumLocals: 2, Result: types.NewBase(types.Int), Body: outer},
	}}
	tbl := types.NewTableBuilder(0)
	finished, err := tbl.Finish(types.NewUnifier(tcx))
	require.NoError(t, err)

	mirProg, _, err := LowerHIR(types.NewUnifier(tcx), finished, prog)
	require.NoError(t, err)

	let, ok := mirProg.Main().Body.(*mir.Let)
	require.True(t, ok)
	assert.Equal(t, hir.Local(2), let.Bound, "the hoisted local must be numbered after the resolver's existing locals")
	assert.Equal(t, 3, mirProg.Main().NumLocals)
}
