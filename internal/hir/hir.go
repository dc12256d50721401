// Package hir is the named, scope-resolved intermediate form produced by
// the resolver: every Ident has become a Local or a FuncPtr, every
// surface type annotation has been resolved to a concrete types.Type,
// and every expression carries the types.ExprId the constraint generator
// will key its inferred type on (spec.md §3/§4.3).
package hir

import (
	"fmt"

	"github.com/corvid-lang/corvid/internal/types"
)

// Local is a de Bruijn-free local-variable index: the position of a
// parameter or let-binding within its enclosing Func's locals list.
type Local int

func (l Local) String() string { return fmt.Sprintf("%%%d", int(l)) }

// FuncId indexes a Program's Funcs slice. FuncId(0) is always main
// (spec.md §3).
type FuncId int

func (f FuncId) String() string { return fmt.Sprintf("@%d", int(f)) }

// Name is a resolved reference: either a Local or a global FuncPtr. This
// is the HIR replacement for ast.Ident (spec.md §4.3).
type Name struct {
	IsFunc bool
	Local  Local
	Func   FuncId
}

func LocalName(l Local) Name  { return Name{Local: l} }
func FuncName(f FuncId) Name { return Name{IsFunc: true, Func: f} }

func (n Name) String() string {
	if n.IsFunc {
		return n.Func.String()
	}
	return n.Local.String()
}

// Func is a resolved function: its parameter types and declared result
// type (annotations resolved to types.Type by the resolver; an
// unannotated parameter's type is a fresh type variable), its total
// local-slot count, and its body.
type Func struct {
	Name       string
	Arity      int
	NumLocals  int
	ParamTypes []types.Type
	Result     types.Type
	Body       Expr
}

// Program is a resolved program, indexed by FuncId with FuncId(0) = main.
type Program struct {
	Funcs []*Func
}

func (p *Program) Main() *Func { return p.Funcs[0] }

// Expr is a resolved HIR expression. Every variant carries the ExprId
// the constraint generator will record its inferred type under.
type Expr interface {
	ID() types.ExprId
	exprNode()
}

type base struct{ Id types.ExprId }

func (b base) ID() types.ExprId { return b.Id }

// Lit is a constant Bool or Int value.
type Lit struct {
	base
	Kind LitKind
	Bits int64
}

type LitKind int

const (
	LitBool LitKind = iota
	LitInt
)

func (*Lit) exprNode() {}

// Var references a resolved Name.
type Var struct {
	base
	Name Name
}

func (*Var) exprNode() {}

// Let evaluates Rhs, binds it to the local Bound, then evaluates Body.
type Let struct {
	base
	Bound Local
	Rhs   Expr
	Body  Expr
}

func (*Let) exprNode() {}

// Call applies the global function Func to Args.
type Call struct {
	base
	Func FuncId
	Args []Expr
}

func (*Call) exprNode() {}

// UnaryOpKind mirrors ast.UnaryOpKind at the HIR level.
type UnaryOpKind int

const (
	Neg UnaryOpKind = iota
	Not
)

// UnaryOp applies a unary operator to Operand.
type UnaryOp struct {
	base
	Op      UnaryOpKind
	Operand Expr
}

func (*UnaryOp) exprNode() {}

// BinaryOpKind mirrors ast.BinaryOpKind at the HIR level.
type BinaryOpKind int

const (
	Add BinaryOpKind = iota
	Sub
	Mul
	Eq
	Ne
	Lt
	And
	Or
)

// BinaryOp applies a binary operator to Left and Right.
type BinaryOp struct {
	base
	Op    BinaryOpKind
	Left  Expr
	Right Expr
}

func (*BinaryOp) exprNode() {}

// Cond is a three-armed conditional.
type Cond struct {
	base
	Cond Expr
	Then Expr
	Else Expr
}

func (*Cond) exprNode() {}

// Tuple constructs a fixed-arity tuple value.
type Tuple struct {
	base
	Elems []Expr
}

func (*Tuple) exprNode() {}

// Projection accesses field/position Label of Record.
type Projection struct {
	base
	Record Expr
	Label  string
}

func (*Projection) exprNode() {}

// NewLit, NewVar, ... construct Expr nodes tagging them with id, one
// constructor per surface ast expression node type (spec.md §4.3).
func NewLit(id types.ExprId, kind LitKind, bits int64) *Lit {
	return &Lit{base: base{id}, Kind: kind, Bits: bits}
}
func NewVar(id types.ExprId, name Name) *Var { return &Var{base: base{id}, Name: name} }
func NewLet(id types.ExprId, bound Local, rhs, body Expr) *Let {
	return &Let{base: base{id}, Bound: bound, Rhs: rhs, Body: body}
}
func NewCall(id types.ExprId, fn FuncId, args []Expr) *Call {
	return &Call{base: base{id}, Func: fn, Args: args}
}
func NewUnaryOp(id types.ExprId, op UnaryOpKind, operand Expr) *UnaryOp {
	return &UnaryOp{base: base{id}, Op: op, Operand: operand}
}
func NewBinaryOp(id types.ExprId, op BinaryOpKind, left, right Expr) *BinaryOp {
	return &BinaryOp{base: base{id}, Op: op, Left: left, Right: right}
}
func NewCond(id types.ExprId, cond, then, els Expr) *Cond {
	return &Cond{base: base{id}, Cond: cond, Then: then, Else: els}
}
func NewTuple(id types.ExprId, elems []Expr) *Tuple {
	return &Tuple{base: base{id}, Elems: elems}
}
func NewProjection(id types.ExprId, record Expr, label string) *Projection {
	return &Projection{base: base{id}, Record: record, Label: label}
}
