package types

// Constraint is one `type(lhs) ≡ type(rhs)` equation emitted by the
// constraint generator (spec.md §4.4).
type Constraint struct {
	LHS Type
	RHS Type
}

// Unifier drives constraint solving to a substitution. Constraints are
// processed in FIFO order (spec.md §4.5): Enqueue appends, Solve drains
// front to back, applying the substitution accumulated so far to each
// constraint before dispatching on its shape.
type Unifier struct {
	tcx     *Context
	pending []Constraint
	subst   *Substitution

	maxIterations int // 0: unlimited (pipelinecfg.Config.MaxConstraintIterations)
}

// NewUnifier returns a unifier with no constraints and the identity
// substitution. tcx supplies fresh row variables for the open/open row
// unification case (spec.md §4.5).
func NewUnifier(tcx *Context) *Unifier {
	return &Unifier{tcx: tcx, subst: NewSubstitution()}
}

// SetMaxIterations caps how many constraints Solve will drain before
// giving up with a ConstraintLimitError. 0 (the default) means
// unlimited.
func (u *Unifier) SetMaxIterations(n int) { u.maxIterations = n }

// Enqueue adds a constraint to be solved.
func (u *Unifier) Enqueue(lhs, rhs Type) {
	u.pending = append(u.pending, Constraint{LHS: lhs, RHS: rhs})
}

// Substitution returns the substitution accumulated so far.
func (u *Unifier) Substitution() *Substitution { return u.subst }

// Context returns the typing context u was built from, the source of
// fresh ExprIds for any later stage — A-normalization mints one per
// synthesized Let (spec.md §4.6 point 3) — that still needs to mint
// names from the same counters constraint generation used.
func (u *Unifier) Context() *Context { return u.tcx }

// Resolve fully applies the accumulated substitution to t.
func (u *Unifier) Resolve(t Type) Type { return u.subst.Apply(t) }

// Solve drains the constraint queue, unifying each pair in turn. It
// returns the first error encountered; spec.md §7 mandates first-error-
// wins with no accumulation.
func (u *Unifier) Solve() error {
	iterations := 0
	for len(u.pending) > 0 {
		if u.maxIterations > 0 && iterations >= u.maxIterations {
			return NewConstraintLimitError(u.maxIterations)
		}
		iterations++
		c := u.pending[0]
		u.pending = u.pending[1:]
		if err := u.unify(u.subst.Apply(c.LHS), u.subst.Apply(c.RHS)); err != nil {
			return err
		}
	}
	return nil
}

func (u *Unifier) unify(lhs, rhs Type) error {
	lhs = u.subst.Apply(lhs)
	rhs = u.subst.Apply(rhs)

	if lv, ok := lhs.(*Var); ok {
		if rv, ok := rhs.(*Var); ok && rv.ID == lv.ID {
			return nil
		}
		return u.bindTy(lv.ID, rhs)
	}
	if rv, ok := rhs.(*Var); ok {
		return u.bindTy(rv.ID, lhs)
	}

	switch l := lhs.(type) {
	case *BaseType:
		r, ok := rhs.(*BaseType)
		if !ok || r.Kind != l.Kind {
			return NewTypeMismatchError(lhs, rhs)
		}
		return nil

	case *FuncType:
		r, ok := rhs.(*FuncType)
		if !ok {
			return NewTypeMismatchError(lhs, rhs)
		}
		if len(l.Params) != len(r.Params) {
			return NewArityMismatchError(len(l.Params), len(r.Params))
		}
		for i := range l.Params {
			if err := u.unify(u.subst.Apply(l.Params[i]), u.subst.Apply(r.Params[i])); err != nil {
				return err
			}
		}
		return u.unify(u.subst.Apply(l.Result), u.subst.Apply(r.Result))

	case *RecordType:
		r, ok := rhs.(*RecordType)
		if !ok {
			return NewTypeMismatchError(lhs, rhs)
		}
		return u.unifyRows(l.Row, r.Row)

	default:
		return NewTypeMismatchError(lhs, rhs)
	}
}

func (u *Unifier) bindTy(v TyVar, t Type) error {
	if same, ok := t.(*Var); ok && same.ID == v {
		return nil
	}
	if OccursTy(v, t) {
		return NewInfiniteTypeError(v, t)
	}
	u.subst.BindTy(v, t)
	return nil
}
