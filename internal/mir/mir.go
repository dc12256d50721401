// Package mir is the A-normal-form IR produced by internal/anormal: every
// operand of a Call, UnaryOp, BinaryOp, Cond, Tuple, or Projection is an
// Atom (a Var or a Lit), never a compound expression. Anything compound
// has already been hoisted into an enclosing Let (spec.md §4.6).
package mir

import (
	"fmt"

	"github.com/corvid-lang/corvid/internal/hir"
	"github.com/corvid-lang/corvid/internal/types"
)

// Local and FuncId are carried over unchanged from hir: the A-normalizer
// renumbers neither locals nor functions, it only restructures
// expressions (spec.md §4.6: "locals ordered params-then-resolver-then-
// anormalizer" — new locals the anormalizer introduces are appended
// after the ones the resolver already assigned).
type Local = hir.Local
type FuncId = hir.FuncId
type Name = hir.Name
type ExprId = types.ExprId

// Atom is an operand that requires no further evaluation: a Var or a
// Lit. Every non-atomic subexpression is hoisted into a Let before it
// can appear as an operand (spec.md §4.6).
type Atom interface {
	Expr
	atomNode()
}

// Expr is an MIR expression node.
type Expr interface {
	exprNode()
	String() string
}

// Lit is a constant Bool or Int value.
type Lit struct {
	Kind LitKind
	Bits int64
}

type LitKind int

const (
	LitBool LitKind = iota
	LitInt
)

func (*Lit) exprNode()    {}
func (*Lit) atomNode()    {}
func (l *Lit) String() string {
	if l.Kind == LitBool {
		return fmt.Sprintf("%v", l.Bits != 0)
	}
	return fmt.Sprintf("%d", l.Bits)
}

// Var references a resolved Name.
type Var struct {
	Name Name
}

func (*Var) exprNode()        {}
func (*Var) atomNode()        {}
func (v *Var) String() string { return v.Name.String() }

// Let evaluates Rhs, binds it to Bound, then evaluates Body. In ANF,
// Rhs is the only place a compound expression may appear; every other
// position in the tree holds an Atom.
//
// Id is the ExprId this Let's body is recorded under in the extended
// Table LowerHIR returns: for a Let that already existed in the HIR
// (a user-written `let`), Id carries over its original ExprId; for a
// Let synthesized by hoisting a non-atomic operand, Id is a fresh one
// minted during A-normalization and mapped to the type of the
// expression that triggered the hoist (spec.md §4.6 point 3).
type Let struct {
	Id    ExprId
	Bound Local
	Rhs   Expr
	Body  Expr
}

func (*Let) exprNode()      {}
func (l *Let) ID() ExprId   { return l.Id }
func (l *Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", l.Bound, l.Rhs, l.Body)
}

// Call applies Func to Args, all of which are Atoms.
type Call struct {
	Func FuncId
	Args []Atom
}

func (*Call) exprNode() {}
func (c *Call) String() string {
	return fmt.Sprintf("%s(%v)", c.Func, c.Args)
}

// UnaryOpKind mirrors hir.UnaryOpKind at the MIR level.
type UnaryOpKind = hir.UnaryOpKind

// UnaryOp applies a unary operator to an atomic Operand.
type UnaryOp struct {
	Op      UnaryOpKind
	Operand Atom
}

func (*UnaryOp) exprNode() {}
func (u *UnaryOp) String() string {
	return fmt.Sprintf("unop(%v)", u.Operand)
}

// BinaryOpKind mirrors hir.BinaryOpKind at the MIR level.
type BinaryOpKind = hir.BinaryOpKind

// BinaryOp applies a binary operator to two atomic operands.
type BinaryOp struct {
	Op    BinaryOpKind
	Left  Atom
	Right Atom
}

func (*BinaryOp) exprNode() {}
func (b *BinaryOp) String() string {
	return fmt.Sprintf("binop(%v, %v)", b.Left, b.Right)
}

// Cond is a three-armed conditional with an atomic condition; Then and
// Else are independently normalized subexpressions (spec.md §4.6).
type Cond struct {
	Cond Atom
	Then Expr
	Else Expr
}

func (*Cond) exprNode() {}
func (c *Cond) String() string {
	return fmt.Sprintf("if %v then %s else %s", c.Cond, c.Then, c.Else)
}

// Tuple constructs a fixed-arity tuple from atomic elements.
type Tuple struct {
	Elems []Atom
}

func (*Tuple) exprNode() {}
func (t *Tuple) String() string { return fmt.Sprintf("tuple%v", t.Elems) }

// Projection accesses field/position Label of an atomic Record.
type Projection struct {
	Record Atom
	Label  string
}

func (*Projection) exprNode() {}
func (p *Projection) String() string {
	return fmt.Sprintf("%v.%s", p.Record, p.Label)
}

// Func is a normalized function: its locals count may exceed the
// resolver's count, since the A-normalizer appends fresh locals for
// every hoisted binding.
type Func struct {
	Name      string
	Arity     int
	NumLocals int
	Body      Expr
}

// Program is a normalized program, indexed by FuncId with FuncId(0) =
// main, matching hir.Program's indexing (spec.md §3).
type Program struct {
	Funcs []*Func
}

func (p *Program) Main() *Func { return p.Funcs[0] }

// IsAtomic reports whether e is already an Atom (a Var or a Lit).
func IsAtomic(e Expr) bool {
	switch e.(type) {
	case *Var, *Lit:
		return true
	default:
		return false
	}
}
