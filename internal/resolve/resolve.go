package resolve

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/hir"
	"github.com/corvid-lang/corvid/internal/types"
)

// resolver carries the state needed to lower one ast.Program to hir.Program:
// the two-phase global function table, and per-function local state
// (spec.md §4.3).
type resolver struct {
	tcx     *types.Context
	globals map[string]hir.FuncId
	funcs   []*ast.FuncDef

	scope     *scopeStack
	numLocals int
}

// LowerAST resolves prog's identifiers and surface type annotations,
// producing an hir.Program. Function names are bound in a single global
// pass before any body is lowered (two-phase global binding), so mutual
// recursion and forward references both work regardless of declaration
// order (spec.md §4.3).
func LowerAST(tcx *types.Context, prog *ast.Program) (*hir.Program, error) {
	r := &resolver{tcx: tcx, globals: map[string]hir.FuncId{}}

	// Phase 1: bind every function name to its FuncId before lowering
	// any body, so forward references resolve.
	for i, f := range prog.Funcs {
		r.globals[normalize(f.Name)] = hir.FuncId(i)
		r.funcs = append(r.funcs, f)
	}
	if _, ok := r.globals[normalize("main")]; !ok {
		return nil, errMainNotFound()
	}

	out := &hir.Program{Funcs: make([]*hir.Func, len(r.funcs))}
	for i, f := range r.funcs {
		lowered, err := r.lowerFunc(f)
		if err != nil {
			return nil, err
		}
		out.Funcs[i] = lowered
	}

	// FuncId(0) must be main (spec.md §3): swap it into position if the
	// source didn't declare it first.
	mainIdx := int(r.globals[normalize("main")])
	if mainIdx != 0 {
		out.Funcs[0], out.Funcs[mainIdx] = out.Funcs[mainIdx], out.Funcs[0]
		remapMain(out, 0, mainIdx)
	}
	return out, nil
}

// remapMain fixes up every Call site referencing the two swapped FuncIds
// so Call.Func still points at the right function after main is moved
// to index 0.
func remapMain(prog *hir.Program, a, b int) {
	for _, f := range prog.Funcs {
		remapExpr(f.Body, hir.FuncId(a), hir.FuncId(b))
	}
}

func remapExpr(e hir.Expr, a, b hir.FuncId) {
	switch n := e.(type) {
	case *hir.Let:
		remapExpr(n.Rhs, a, b)
		remapExpr(n.Body, a, b)
	case *hir.Call:
		if n.Func == a {
			n.Func = b
		} else if n.Func == b {
			n.Func = a
		}
		for _, arg := range n.Args {
			remapExpr(arg, a, b)
		}
	case *hir.UnaryOp:
		remapExpr(n.Operand, a, b)
	case *hir.BinaryOp:
		remapExpr(n.Left, a, b)
		remapExpr(n.Right, a, b)
	case *hir.Cond:
		remapExpr(n.Cond, a, b)
		remapExpr(n.Then, a, b)
		remapExpr(n.Else, a, b)
	case *hir.Tuple:
		for _, el := range n.Elems {
			remapExpr(el, a, b)
		}
	case *hir.Projection:
		remapExpr(n.Record, a, b)
	}
}

func (r *resolver) lowerFunc(f *ast.FuncDef) (*hir.Func, error) {
	r.scope = newScopeStack()
	r.numLocals = 0
	r.scope.push()
	defer r.scope.pop()

	paramTypes := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		var ty types.Type
		if p.Type == nil {
			// Unannotated parameter: its type is inferred from usage,
			// which is how a row-polymorphic parameter arises
			// (SPEC_FULL.md §8 scenario 9).
			ty = r.tcx.FreshTy()
		} else {
			var err error
			ty, err = r.resolveTy(p.Type)
			if err != nil {
				return nil, err
			}
		}
		paramTypes[i] = ty
		r.scope.bind(p.Name, r.freshLocal())
	}

	result, err := r.resolveTy(f.Result)
	if err != nil {
		return nil, err
	}

	body, err := r.lowerExpr(f.Body)
	if err != nil {
		return nil, err
	}

	return &hir.Func{
		Name:       f.Name,
		Arity:      len(f.Params),
		NumLocals:  r.numLocals,
		ParamTypes: paramTypes,
		Result:     result,
		Body:       body,
	}, nil
}

func (r *resolver) freshLocal() hir.Local {
	l := hir.Local(r.numLocals)
	r.numLocals++
	return l
}

// resolveTy resolves a surface type annotation to a concrete types.Type.
// Tuple types lower to closed integer-labeled rows (spec.md §4.3).
func (r *resolver) resolveTy(t ast.Ty) (types.Type, error) {
	switch n := t.(type) {
	case *ast.BaseTy:
		switch n.Name {
		case "Bool":
			return types.NewBase(types.Bool), nil
		case "Int":
			return types.NewBase(types.Int), nil
		default:
			return nil, errUnboundIdent(n.Name)
		}
	case *ast.FuncTy:
		params := make([]types.Type, len(n.Params))
		for i, p := range n.Params {
			ty, err := r.resolveTy(p)
			if err != nil {
				return nil, err
			}
			params[i] = ty
		}
		result, err := r.resolveTy(n.Result)
		if err != nil {
			return nil, err
		}
		return &types.FuncType{Params: params, Result: result}, nil
	case *ast.TupleTy:
		fields := make([]types.Field, len(n.Elems))
		for i, e := range n.Elems {
			ty, err := r.resolveTy(e)
			if err != nil {
				return nil, err
			}
			fields[i] = types.Field{Label: types.IntLabel(i), Type: ty}
		}
		return &types.RecordType{Row: types.ClosedRow(fields...)}, nil
	default:
		return nil, errUnboundIdent("<unknown type>")
	}
}

func (r *resolver) lowerExpr(e ast.Expr) (hir.Expr, error) {
	id := r.tcx.FreshExprID()
	switch n := e.(type) {
	case *ast.Literal:
		kind := hir.LitInt
		if n.Kind == ast.LitBool {
			kind = hir.LitBool
		}
		return hir.NewLit(id, kind, n.Bits), nil

	case *ast.Ident:
		if local, ok := r.scope.lookup(n.Name); ok {
			return hir.NewVar(id, hir.LocalName(local)), nil
		}
		if fn, ok := r.globals[normalize(n.Name)]; ok {
			return hir.NewVar(id, hir.FuncName(fn)), nil
		}
		return nil, errUnboundIdent(n.Name)

	case *ast.Let:
		// Rhs is resolved in the outer scope, before Name is bound
		// (spec.md §4.3): `let x = x in ...` never sees its own binding.
		rhs, err := r.lowerExpr(n.Rhs)
		if err != nil {
			return nil, err
		}
		r.scope.push()
		local := r.freshLocal()
		r.scope.bind(n.Name, local)
		body, err := r.lowerExpr(n.Body)
		r.scope.pop()
		if err != nil {
			return nil, err
		}
		return hir.NewLet(id, local, rhs, body), nil

	case *ast.Call:
		fn, ok := r.globals[normalize(n.Func)]
		if !ok {
			return nil, errUnboundIdent(n.Func)
		}
		args := make([]hir.Expr, len(n.Args))
		for i, a := range n.Args {
			arg, err := r.lowerExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return hir.NewCall(id, fn, args), nil

	case *ast.UnaryOp:
		operand, err := r.lowerExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		return hir.NewUnaryOp(id, hir.UnaryOpKind(n.Op), operand), nil

	case *ast.BinaryOp:
		left, err := r.lowerExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.lowerExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return hir.NewBinaryOp(id, hir.BinaryOpKind(n.Op), left, right), nil

	case *ast.Cond:
		cond, err := r.lowerExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := r.lowerExpr(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := r.lowerExpr(n.Else)
		if err != nil {
			return nil, err
		}
		return hir.NewCond(id, cond, then, els), nil

	case *ast.Tuple:
		elems := make([]hir.Expr, len(n.Elems))
		for i, e := range n.Elems {
			el, err := r.lowerExpr(e)
			if err != nil {
				return nil, err
			}
			elems[i] = el
		}
		return hir.NewTuple(id, elems), nil

	case *ast.Projection:
		rec, err := r.lowerExpr(n.Record)
		if err != nil {
			return nil, err
		}
		return hir.NewProjection(id, rec, n.Label), nil

	default:
		return nil, errUnboundIdent("<unknown expr>")
	}
}
