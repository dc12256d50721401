// Package ast defines the surface syntax the resolver consumes: a
// Program of mutually-visible function definitions built from a small,
// first-order expression language (spec.md §3).
package ast

import "fmt"

// Pos is a source position. Lexing/parsing are out of scope (spec.md
// Non-goals); Pos exists purely so the AST shape matches what a real
// front-end would hand the resolver, and is otherwise unused.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Node is the base interface implemented by every AST node.
type Node interface {
	String() string
	Position() Pos
}

// Program is a set of function definitions. Name resolution treats every
// function as mutually visible regardless of declaration order
// (spec.md §4.3's two-phase global binding).
type Program struct {
	Funcs []*FuncDef
	Pos   Pos
}

func (p *Program) String() string {
	s := ""
	for i, f := range p.Funcs {
		if i > 0 {
			s += "\n"
		}
		s += f.String()
	}
	return s
}
func (p *Program) Position() Pos { return p.Pos }

// FuncDef is a top-level function definition.
type FuncDef struct {
	Name   string
	Params []*Param
	Result Ty
	Body   Expr
	Pos    Pos
}

func (f *FuncDef) String() string {
	s := "fn " + f.Name + "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") do " + f.Body.String() + " end"
}
func (f *FuncDef) Position() Pos { return f.Pos }

// Param is one formal parameter of a FuncDef. Type is nil when the
// parameter is left unannotated: its type is then inferred from how the
// body uses it and from the arguments passed at call sites, which is how
// a row-polymorphic parameter arises (SPEC_FULL.md §8 scenario 9) — a
// parameter the body only projects on is constrained to an open row
// holding the projected field, and a call site closes that row.
type Param struct {
	Name string
	Type Ty // nil: infer
	Pos  Pos
}

func (p *Param) String() string {
	if p.Type == nil {
		return p.Name
	}
	return p.Name + ": " + p.Type.String()
}
func (p *Param) Position() Pos { return p.Pos }

// Ty is a surface type annotation: a base-type name, a function type, or
// a tuple type. Tuple types lower to closed integer-labeled rows during
// resolution (spec.md §4.3).
type Ty interface {
	Node
	tyNode()
}

// BaseTy names a primitive type by its surface spelling ("Bool", "Int").
type BaseTy struct {
	Name string
	Pos  Pos
}

func (t *BaseTy) String() string { return t.Name }
func (t *BaseTy) Position() Pos  { return t.Pos }
func (*BaseTy) tyNode()          {}

// FuncTy is a surface function type annotation.
type FuncTy struct {
	Params []Ty
	Result Ty
	Pos    Pos
}

func (t *FuncTy) String() string {
	s := "("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") -> " + t.Result.String()
}
func (t *FuncTy) Position() Pos { return t.Pos }
func (*FuncTy) tyNode()         {}

// TupleTy is a surface tuple type annotation.
type TupleTy struct {
	Elems []Ty
	Pos   Pos
}

func (t *TupleTy) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}
func (t *TupleTy) Position() Pos { return t.Pos }
func (*TupleTy) tyNode()         {}

// Expr is a surface expression node.
type Expr interface {
	Node
	exprNode()
}

// LitKind distinguishes the base type of a Literal.
type LitKind int

const (
	LitBool LitKind = iota
	LitInt
)

// Literal is a constant Bool or Int value.
type Literal struct {
	Kind LitKind
	Bits int64
	Pos  Pos
}

func (l *Literal) String() string {
	if l.Kind == LitBool {
		return fmt.Sprintf("%v", l.Bits != 0)
	}
	return fmt.Sprintf("%d", l.Bits)
}
func (l *Literal) Position() Pos { return l.Pos }
func (*Literal) exprNode()       {}

// Ident references a local variable or a global function by its surface
// name.
type Ident struct {
	Name string
	Pos  Pos
}

func (i *Ident) String() string { return i.Name }
func (i *Ident) Position() Pos  { return i.Pos }
func (*Ident) exprNode()        {}

// Let binds the value of Rhs to Name within Body. Rhs is resolved before
// Name is brought into scope (spec.md §4.3), so Let is never implicitly
// recursive.
type Let struct {
	Name string
	Rhs  Expr
	Body Expr
	Pos  Pos
}

func (l *Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", l.Name, l.Rhs.String(), l.Body.String())
}
func (l *Let) Position() Pos { return l.Pos }
func (*Let) exprNode()       {}

// Call applies Func to Args. There are no closures or partial
// application (spec.md Non-goals): Func names a top-level function.
type Call struct {
	Func string
	Args []Expr
	Pos  Pos
}

func (c *Call) String() string {
	s := c.Func + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}
func (c *Call) Position() Pos { return c.Pos }
func (*Call) exprNode()       {}

// UnaryOpKind is a surface unary operator.
type UnaryOpKind int

const (
	Neg UnaryOpKind = iota
	Not
)

func (k UnaryOpKind) String() string {
	if k == Not {
		return "!"
	}
	return "-"
}

// UnaryOp applies a unary operator to Operand.
type UnaryOp struct {
	Op      UnaryOpKind
	Operand Expr
	Pos     Pos
}

func (u *UnaryOp) String() string { return u.Op.String() + u.Operand.String() }
func (u *UnaryOp) Position() Pos  { return u.Pos }
func (*UnaryOp) exprNode()        {}

// BinaryOpKind is a surface binary operator.
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

func (k BinaryOpKind) String() string {
	switch k {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case And:
		return "&&"
	case Or:
		return "||"
	default:
		return "?"
	}
}

// BinaryOp applies a binary operator to Left and Right.
type BinaryOp struct {
	Op    BinaryOpKind
	Left  Expr
	Right Expr
	Pos   Pos
}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op.String(), b.Right.String())
}
func (b *BinaryOp) Position() Pos { return b.Pos }
func (*BinaryOp) exprNode()       {}

// Cond is a three-armed conditional: `if Cond then Then else Else`.
type Cond struct {
	Cond Expr
	Then Expr
	Else Expr
	Pos  Pos
}

func (c *Cond) String() string {
	return fmt.Sprintf("if %s then %s else %s", c.Cond.String(), c.Then.String(), c.Else.String())
}
func (c *Cond) Position() Pos { return c.Pos }
func (*Cond) exprNode()       {}

// Tuple constructs a fixed-arity tuple value.
type Tuple struct {
	Elems []Expr
	Pos   Pos
}

func (t *Tuple) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}
func (t *Tuple) Position() Pos { return t.Pos }
func (*Tuple) exprNode()       {}

// Projection accesses field/position Label of Record (the Open Question
// resolution in SPEC_FULL.md §3): `record.label`.
type Projection struct {
	Record Expr
	Label  string
	Pos    Pos
}

func (p *Projection) String() string { return p.Record.String() + "." + p.Label }
func (p *Projection) Position() Pos  { return p.Pos }
func (*Projection) exprNode()        {}
