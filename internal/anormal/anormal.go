// Package anormal lowers a resolved, type-checked hir.Program to
// A-normal form (internal/mir): every operand of a compound node is
// reduced to an Atom, hoisting anything non-atomic into a fresh Let
// binding immediately enclosing it (spec.md §4.6).
package anormal

import (
	"github.com/corvid-lang/corvid/internal/hir"
	"github.com/corvid-lang/corvid/internal/mir"
	"github.com/corvid-lang/corvid/internal/types"
)

// LowerHIR A-normalizes every function in prog. Every Let synthesized
// while hoisting a non-atomic operand is minted a fresh ExprId, mapped
// to the type of the expression that triggered the hoist; the returned
// Table extends tbl with those entries (spec.md §4.6 point 3, §6).
func LowerHIR(u *types.Unifier, tbl *types.Table, prog *hir.Program) (*mir.Program, *types.Table, error) {
	out := &mir.Program{Funcs: make([]*mir.Func, len(prog.Funcs))}
	newEntries := map[types.ExprId]types.Type{}
	for i, f := range prog.Funcs {
		nz := &normalizer{numLocals: f.NumLocals, tcx: u.Context(), tbl: tbl, newEntries: newEntries}
		body := nz.normalize(f.Body)
		out.Funcs[i] = &mir.Func{
			Name:      f.Name,
			Arity:     f.Arity,
			NumLocals: nz.numLocals,
			Body:      body,
		}
	}
	return out, tbl.Extend(newEntries), nil
}

// binding is one pending `(local, value)` pair waiting to be wrapped
// into an enclosing Let, innermost-pop-order (spec.md §4.6).
type binding struct {
	bound hir.Local
	value mir.Expr
}

// normalizer is scoped to a single function body: it owns the running
// count of locals, starting from the resolver's count and growing by
// one for every atom hoisted (spec.md §4.6: "locals ordered
// params-then-resolver-then-anormalizer"), plus the typing context
// (fresh ExprIds for synthesized Lets) and the concrete Table (looking
// up the type each synthesized Let should be recorded under) it is
// extending into newEntries.
type normalizer struct {
	numLocals int

	tcx        *types.Context
	tbl        *types.Table
	newEntries map[types.ExprId]types.Type
}

func (nz *normalizer) freshLocal() hir.Local {
	l := hir.Local(nz.numLocals)
	nz.numLocals++
	return l
}

// toAtom normalizes e and, if the result isn't already atomic, hoists
// it into a fresh local, returning a Var reference to that local plus
// the binding still waiting to be wrapped around the enclosing
// expression.
func (nz *normalizer) toAtom(e hir.Expr) (mir.Atom, []binding) {
	normalized := nz.normalize(e)
	if atom, ok := normalized.(mir.Atom); ok {
		return atom, nil
	}
	fresh := nz.freshLocal()
	return &mir.Var{Name: hir.LocalName(fresh)}, []binding{{bound: fresh, value: normalized}}
}

// wrap nests expr inside a Let for each pending binding, popped in
// reverse order so the first-hoisted binding ends up outermost. Each
// synthesized Let is minted a fresh ExprId and recorded in newEntries
// under the type of origID — the HIR node whose normalization produced
// expr — since every Let in the chain takes the type of its body, all
// the way down to expr itself (spec.md §4.6 point 3).
func (nz *normalizer) wrap(origID types.ExprId, expr mir.Expr, binds []binding) mir.Expr {
	ty, hasTy := nz.tbl.Lookup(origID)
	result := expr
	for i := len(binds) - 1; i >= 0; i-- {
		b := binds[i]
		letID := nz.tcx.FreshExprID()
		if hasTy {
			nz.newEntries[letID] = ty
		}
		result = &mir.Let{Id: letID, Bound: b.bound, Rhs: b.value, Body: result}
	}
	return result
}

func (nz *normalizer) normalize(e hir.Expr) mir.Expr {
	switch n := e.(type) {
	case *hir.Lit:
		return &mir.Lit{Kind: mir.LitKind(n.Kind), Bits: n.Bits}

	case *hir.Var:
		return &mir.Var{Name: n.Name}

	case *hir.Let:
		// A user-written let already has its own ExprId and table
		// entry from resolution/checking; carry it over rather than
		// minting a new one.
		rhs := nz.normalize(n.Rhs)
		body := nz.normalize(n.Body)
		return &mir.Let{Id: n.ID(), Bound: n.Bound, Rhs: rhs, Body: body}

	case *hir.Call:
		args := make([]mir.Atom, len(n.Args))
		var binds []binding
		for i, a := range n.Args {
			atom, bs := nz.toAtom(a)
			args[i] = atom
			binds = append(binds, bs...)
		}
		return nz.wrap(n.ID(), &mir.Call{Func: n.Func, Args: args}, binds)

	case *hir.UnaryOp:
		operand, binds := nz.toAtom(n.Operand)
		return nz.wrap(n.ID(), &mir.UnaryOp{Op: n.Op, Operand: operand}, binds)

	case *hir.BinaryOp:
		left, lb := nz.toAtom(n.Left)
		right, rb := nz.toAtom(n.Right)
		return nz.wrap(n.ID(), &mir.BinaryOp{Op: n.Op, Left: left, Right: right}, append(lb, rb...))

	case *hir.Cond:
		condAtom, binds := nz.toAtom(n.Cond)
		// Then/Else are normalized independently: any bindings they
		// hoist stay local to their own branch (spec.md §4.6).
		then := nz.normalize(n.Then)
		els := nz.normalize(n.Else)
		return nz.wrap(n.ID(), &mir.Cond{Cond: condAtom, Then: then, Else: els}, binds)

	case *hir.Tuple:
		elems := make([]mir.Atom, len(n.Elems))
		var binds []binding
		for i, el := range n.Elems {
			atom, bs := nz.toAtom(el)
			elems[i] = atom
			binds = append(binds, bs...)
		}
		return nz.wrap(n.ID(), &mir.Tuple{Elems: elems}, binds)

	case *hir.Projection:
		rec, binds := nz.toAtom(n.Record)
		return nz.wrap(n.ID(), &mir.Projection{Record: rec, Label: n.Label}, binds)

	default:
		panic("anormal: unhandled hir.Expr")
	}
}
