package types

// Table maps every ExprId minted during resolution to its fully-resolved
// inference type (spec.md §3/§4.2). It is built once, by a TableBuilder,
// during constraint generation, and then finalized by applying the
// unifier's substitution to every entry.
type Table struct {
	byID map[ExprId]Type
}

// Lookup returns the type recorded for id.
func (t *Table) Lookup(id ExprId) (Type, bool) {
	ty, ok := t.byID[id]
	return ty, ok
}

// Extend returns a new Table holding every entry of t plus additions,
// the `Table'` of spec.md §6's `lower_hir(...) -> (MIR Program, Table')`:
// A-normalization doesn't re-run unification, it just mints a fresh
// ExprId per synthesized Let and records the already-resolved type of
// the expression that triggered the hoist (spec.md §4.6 point 3), so no
// further substitution pass is needed here.
func (t *Table) Extend(additions map[ExprId]Type) *Table {
	merged := make(map[ExprId]Type, len(t.byID)+len(additions))
	for id, ty := range t.byID {
		merged[id] = ty
	}
	for id, ty := range additions {
		merged[id] = ty
	}
	return &Table{byID: merged}
}

// TableBuilder accumulates ExprId -> Type entries during constraint
// generation; call Finish with the solved Unifier to resolve every
// recorded type through the final substitution (spec.md §4.4/§4.2).
type TableBuilder struct {
	byID map[ExprId]Type
}

// NewTableBuilder returns an empty builder, optionally pre-sized for n
// expression identifiers (see Context.CountExprIDs).
func NewTableBuilder(n int) *TableBuilder {
	return &TableBuilder{byID: make(map[ExprId]Type, n)}
}

// Record associates id with ty, the inference type assigned to it at
// constraint-generation time (typically still containing Vars).
func (b *TableBuilder) Record(id ExprId, ty Type) {
	b.byID[id] = ty
}

// Finish resolves every recorded type through u's substitution and
// returns the finished Table. An unresolved Var or RowVar surviving the
// resolve becomes an UnresolvedTypeVariableError.
func (b *TableBuilder) Finish(u *Unifier) (*Table, error) {
	resolved := make(map[ExprId]Type, len(b.byID))
	for id, ty := range b.byID {
		final := u.Resolve(ty)
		if v, ok := findUnresolvedVar(final); ok {
			return nil, NewUnresolvedTypeVariableError(v)
		}
		resolved[id] = final
	}
	return &Table{byID: resolved}, nil
}

// findUnresolvedVar looks for a hole left over after solving: a bare
// type variable, or a Row whose tail RowVar is still free. Every entry
// of a finished Table is therefore variable-free and closed.
func findUnresolvedVar(t Type) (interface{ String() string }, bool) {
	switch n := t.(type) {
	case *Var:
		return n.ID, true
	case *FuncType:
		for _, p := range n.Params {
			if v, ok := findUnresolvedVar(p); ok {
				return v, true
			}
		}
		return findUnresolvedVar(n.Result)
	case *RecordType:
		for _, f := range n.Row.Fields {
			if v, ok := findUnresolvedVar(f.Type); ok {
				return v, true
			}
		}
		if n.Row.Tail != nil {
			return *n.Row.Tail, true
		}
		return nil, false
	default:
		return nil, false
	}
}
