package types

import (
	"fmt"
	"sort"
	"strings"
)

// Base is one of the two primitive inference types. There is no Unit base
// type; see DESIGN.md for the Open Question resolution.
type Base int

const (
	Bool Base = iota
	Int
)

func (b Base) String() string {
	switch b {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	default:
		return fmt.Sprintf("Base(%d)", int(b))
	}
}

// Type is the inference type universe: Base, Var, Func, or Record(Row).
type Type interface {
	isType()
	String() string
}

// BaseType wraps one of the primitive Base constants.
type BaseType struct {
	Kind Base
}

func (*BaseType) isType()          {}
func (t *BaseType) String() string { return t.Kind.String() }

// NewBase constructs the inference type for a primitive base type.
func NewBase(b Base) *BaseType { return &BaseType{Kind: b} }

// Var is an unresolved inference type variable.
type Var struct {
	ID TyVar
}

func (*Var) isType()          {}
func (t *Var) String() string { return t.ID.String() }

// FuncType is a first-order function type: a fixed argument list and a
// single result type. There are no type schemes or generalization; every
// Func here is monomorphic at the point it's unified (spec.md Non-goals).
type FuncType struct {
	Params []Type
	Result Type
}

func (*FuncType) isType() {}
func (t *FuncType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Result.String())
}

// RecordType wraps a Row: a record/tuple inference type.
type RecordType struct {
	Row Row
}

func (*RecordType) isType()          {}
func (t *RecordType) String() string { return t.Row.String() }

// Label identifies a record/tuple field. Tuple positions lower to integer
// labels (spec.md §4.3); record field names are string labels.
type Label string

// IntLabel renders a zero-based tuple position as its integer Label.
func IntLabel(i int) Label { return Label(fmt.Sprintf("%d", i)) }

// Field is one (Label, Type) entry of a Row.
type Field struct {
	Label Label
	Type  Type
}

// Row is a record's field list plus an optional open tail. A Row with
// Tail == nil is closed: exactly these fields, no others. A Row with a
// non-nil Tail is open: these fields, plus whatever the row variable
// eventually resolves to.
type Row struct {
	Fields []Field
	Tail   *RowVar
}

// ClosedRow builds a closed row from the given fields, sorted by label so
// that two rows with the same field set always compare structurally equal.
func ClosedRow(fields ...Field) Row {
	r := Row{Fields: append([]Field(nil), fields...)}
	r.sortFields()
	return r
}

// OpenRow builds a row with the given fields and an open tail.
func OpenRow(tail RowVar, fields ...Field) Row {
	r := Row{Fields: append([]Field(nil), fields...), Tail: &tail}
	r.sortFields()
	return r
}

func (r *Row) sortFields() {
	sort.Slice(r.Fields, func(i, j int) bool { return r.Fields[i].Label < r.Fields[j].Label })
}

// IsOpen reports whether the row has a tail row-variable.
func (r Row) IsOpen() bool { return r.Tail != nil }

// Lookup returns the type bound to label and whether it was found.
func (r Row) Lookup(l Label) (Type, bool) {
	for _, f := range r.Fields {
		if f.Label == l {
			return f.Type, true
		}
	}
	return nil, false
}

func (r Row) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Label, f.Type.String())
	}
	body := strings.Join(parts, ", ")
	if r.Tail != nil {
		if body != "" {
			body += " | " + r.Tail.String()
		} else {
			body = r.Tail.String()
		}
	}
	return "{" + body + "}"
}

// OccursTy reports whether v occurs free in t, the check that prevents
// constructing infinite types during unification (spec.md §4.1/§4.5).
func OccursTy(v TyVar, t Type) bool {
	switch n := t.(type) {
	case *BaseType:
		return false
	case *Var:
		return n.ID == v
	case *FuncType:
		for _, p := range n.Params {
			if OccursTy(v, p) {
				return true
			}
		}
		return OccursTy(v, n.Result)
	case *RecordType:
		return occursTyRow(v, n.Row)
	default:
		return false
	}
}

func occursTyRow(v TyVar, r Row) bool {
	for _, f := range r.Fields {
		if OccursTy(v, f.Type) {
			return true
		}
	}
	return false
}

// OccursRow reports whether the row variable v occurs in t: directly as a
// row tail, or transitively through a nested Record field.
func OccursRow(v RowVar, t Type) bool {
	switch n := t.(type) {
	case *RecordType:
		if n.Row.Tail != nil && *n.Row.Tail == v {
			return true
		}
		for _, f := range n.Row.Fields {
			if OccursRow(v, f.Type) {
				return true
			}
		}
		return false
	case *FuncType:
		for _, p := range n.Params {
			if OccursRow(v, p) {
				return true
			}
		}
		return OccursRow(v, n.Result)
	default:
		return false
	}
}
