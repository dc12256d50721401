// Package types implements the inference type universe, the typing
// context, and the unifier that together drive constraint-based type
// checking over Hindley-Milner style types extended with row-polymorphic
// records.
package types

import "fmt"

// TyVar is an inference type-variable index, minted by a Context.
type TyVar uint64

func (v TyVar) String() string { return fmt.Sprintf("t%d", uint64(v)) }

// RowVar is an inference row-variable index, minted by a Context.
type RowVar uint64

func (v RowVar) String() string { return fmt.Sprintf("r%d", uint64(v)) }

// ExprId uniquely identifies an expression node across every stage of the
// pipeline. It is assigned once, at AST-lowering time, and never reused.
type ExprId uint64

// Context is the monotonic generator of fresh type variables, row
// variables, and expression identifiers. It carries no other state: the
// constraint FIFO, the scope stacks, and the TableBuilder each belong to
// the stage that created them, not to the Context (see spec.md §5).
type Context struct {
	nextTyVar  uint64
	nextRowVar uint64
	nextExprID uint64
}

// NewContext returns an empty typing context.
func NewContext() *Context {
	return &Context{}
}

// FreshTy mints a new, globally-unique type variable.
func (c *Context) FreshTy() *Var {
	id := TyVar(c.nextTyVar)
	c.nextTyVar++
	return &Var{ID: id}
}

// FreshRow mints a new, globally-unique row variable.
func (c *Context) FreshRow() RowVar {
	id := RowVar(c.nextRowVar)
	c.nextRowVar++
	return id
}

// FreshExprID mints a new, globally-unique expression identifier.
func (c *Context) FreshExprID() ExprId {
	id := ExprId(c.nextExprID)
	c.nextExprID++
	return id
}

// CountExprIDs reports how many expression identifiers have been minted so
// far. Used to pre-size a TableBuilder (spec.md §4.2).
func (c *Context) CountExprIDs() int {
	return int(c.nextExprID)
}
