// Package check is the constraint generator: it walks a resolved
// hir.Program, assigns every expression an inference Type (fresh where
// not yet known), emits equality constraints between them, and records
// each assignment in a types.TableBuilder for later resolution by the
// unifier (spec.md §4.4).
package check

import (
	"github.com/corvid-lang/corvid/internal/hir"
	"github.com/corvid-lang/corvid/internal/pipelinecfg"
	"github.com/corvid-lang/corvid/internal/types"
)

// checker holds per-program state: the typing context (for fresh
// vars/rows), the function table (for call-site signatures), the
// unifier (constraint sink), and the table builder (ExprId -> Type).
type checker struct {
	tcx     *types.Context
	funcs   []*hir.Func
	unifier *types.Unifier
	builder *types.TableBuilder
	cfg     pipelinecfg.Config

	locals []types.Type // indexed by hir.Local, valid for the function currently being checked
}

func newChecker(tcx *types.Context, prog *hir.Program, cfg pipelinecfg.Config) *checker {
	unifier := types.NewUnifier(tcx)
	unifier.SetMaxIterations(cfg.MaxConstraintIterations)
	return &checker{
		tcx:     tcx,
		funcs:   prog.Funcs,
		unifier: unifier,
		builder: types.NewTableBuilder(tcx.CountExprIDs()),
		cfg:     cfg,
	}
}

func (c *checker) funcType(id hir.FuncId) *types.FuncType {
	f := c.funcs[id]
	return &types.FuncType{Params: f.ParamTypes, Result: f.Result}
}

// checkFunc generates constraints for one function body and enqueues the
// `body-type ≡ declared-result-type` constraint (spec.md §4.4).
func (c *checker) checkFunc(f *hir.Func) error {
	c.locals = make([]types.Type, f.NumLocals)
	for i, pt := range f.ParamTypes {
		c.locals[i] = pt
	}
	bodyTy, err := c.infer(f.Body)
	if err != nil {
		return err
	}
	c.unifier.Enqueue(bodyTy, f.Result)
	return nil
}

func (c *checker) record(id types.ExprId, ty types.Type) types.Type {
	c.builder.Record(id, ty)
	return ty
}

func (c *checker) infer(e hir.Expr) (types.Type, error) {
	switch n := e.(type) {
	case *hir.Lit:
		kind := types.Int
		if n.Kind == hir.LitBool {
			kind = types.Bool
		}
		return c.record(n.ID(), types.NewBase(kind)), nil

	case *hir.Var:
		var ty types.Type
		if n.Name.IsFunc {
			ty = c.funcType(n.Name.Func)
		} else {
			ty = c.locals[int(n.Name.Local)]
		}
		return c.record(n.ID(), ty), nil

	case *hir.Let:
		rhsTy, err := c.infer(n.Rhs)
		if err != nil {
			return nil, err
		}
		c.locals[int(n.Bound)] = rhsTy
		bodyTy, err := c.infer(n.Body)
		if err != nil {
			return nil, err
		}
		return c.record(n.ID(), bodyTy), nil

	case *hir.Call:
		fn := c.funcs[n.Func]
		if len(n.Args) != fn.Arity {
			return nil, types.NewArityMismatchError(fn.Arity, len(n.Args))
		}
		sig := c.funcType(n.Func)
		for i, arg := range n.Args {
			argTy, err := c.infer(arg)
			if err != nil {
				return nil, err
			}
			c.unifier.Enqueue(argTy, sig.Params[i])
		}
		return c.record(n.ID(), sig.Result), nil

	case *hir.UnaryOp:
		operandTy, err := c.infer(n.Operand)
		if err != nil {
			return nil, err
		}
		var result types.Type
		switch n.Op {
		case hir.Neg:
			c.unifier.Enqueue(operandTy, types.NewBase(types.Int))
			result = types.NewBase(types.Int)
		case hir.Not:
			c.unifier.Enqueue(operandTy, types.NewBase(types.Bool))
			result = types.NewBase(types.Bool)
		}
		return c.record(n.ID(), result), nil

	case *hir.BinaryOp:
		leftTy, err := c.infer(n.Left)
		if err != nil {
			return nil, err
		}
		rightTy, err := c.infer(n.Right)
		if err != nil {
			return nil, err
		}
		var result types.Type
		switch n.Op {
		case hir.Add, hir.Sub, hir.Mul:
			c.unifier.Enqueue(leftTy, types.NewBase(types.Int))
			c.unifier.Enqueue(rightTy, types.NewBase(types.Int))
			result = types.NewBase(types.Int)
		case hir.Lt:
			c.unifier.Enqueue(leftTy, types.NewBase(types.Int))
			c.unifier.Enqueue(rightTy, types.NewBase(types.Int))
			result = types.NewBase(types.Bool)
		case hir.And, hir.Or:
			c.unifier.Enqueue(leftTy, types.NewBase(types.Bool))
			c.unifier.Enqueue(rightTy, types.NewBase(types.Bool))
			result = types.NewBase(types.Bool)
		case hir.Eq, hir.Ne:
			// `=`/`≠` are polymorphic over any type (SPEC_FULL.md §3):
			// the only requirement is that both sides agree.
			c.unifier.Enqueue(leftTy, rightTy)
			result = types.NewBase(types.Bool)
		}
		return c.record(n.ID(), result), nil

	case *hir.Cond:
		condTy, err := c.infer(n.Cond)
		if err != nil {
			return nil, err
		}
		c.unifier.Enqueue(condTy, types.NewBase(types.Bool))
		thenTy, err := c.infer(n.Then)
		if err != nil {
			return nil, err
		}
		elseTy, err := c.infer(n.Else)
		if err != nil {
			return nil, err
		}
		c.unifier.Enqueue(thenTy, elseTy)
		return c.record(n.ID(), thenTy), nil

	case *hir.Tuple:
		fields := make([]types.Field, len(n.Elems))
		for i, el := range n.Elems {
			elTy, err := c.infer(el)
			if err != nil {
				return nil, err
			}
			fields[i] = types.Field{Label: types.IntLabel(i), Type: elTy}
		}
		return c.record(n.ID(), &types.RecordType{Row: types.ClosedRow(fields...)}), nil

	case *hir.Projection:
		recTy, err := c.infer(n.Record)
		if err != nil {
			return nil, err
		}
		fieldTy := c.tcx.FreshTy()
		field := types.Field{Label: types.Label(n.Label), Type: fieldTy}
		var recShape types.Row
		if c.cfg.AllowOpenRows {
			recShape = types.OpenRow(c.tcx.FreshRow(), field)
		} else {
			// A stricter embedding host (pipelinecfg.Config.AllowOpenRows
			// = false) pins the projected record to a closed row holding
			// only this one field, so a record with any other field, or
			// one projected at two different labels, is a RecordMismatch.
			recShape = types.ClosedRow(field)
		}
		c.unifier.Enqueue(recTy, &types.RecordType{Row: recShape})
		return c.record(n.ID(), fieldTy), nil

	default:
		return nil, types.NewTypeMismatchError(nil, nil)
	}
}
