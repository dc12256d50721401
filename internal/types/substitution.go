package types

// Substitution is an idempotent mapping from type variables and row
// variables to the concrete types/rows they've been solved to. The
// unifier builds this map incrementally, applying each new binding to
// the outputs of every binding already recorded, so that looking up any
// variable never requires chasing through another variable first
// (spec.md §4.5: "substitution composition").
type Substitution struct {
	ty  map[TyVar]Type
	row map[RowVar]Row
}

// NewSubstitution returns an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{ty: map[TyVar]Type{}, row: map[RowVar]Row{}}
}

// BindTy records v := t, applying the new binding to every type already
// recorded and applying every type already recorded to t itself.
func (s *Substitution) BindTy(v TyVar, t Type) {
	t = s.Apply(t)
	for k, existing := range s.ty {
		s.ty[k] = substituteTy(v, t, existing)
	}
	for k, existing := range s.row {
		s.row[k] = substituteRow(v, t, existing)
	}
	s.ty[v] = t
}

// BindRow records v := r the same way BindTy does for type variables.
func (s *Substitution) BindRow(v RowVar, r Row) {
	r = s.ApplyRow(r)
	for k, existing := range s.ty {
		s.ty[k] = substituteRowInTy(v, r, existing)
	}
	for k, existing := range s.row {
		s.row[k] = substituteRowInRow(v, r, existing)
	}
	s.row[v] = r
}

// Apply fully resolves t through the substitution.
func (s *Substitution) Apply(t Type) Type {
	switch n := t.(type) {
	case *Var:
		if bound, ok := s.ty[n.ID]; ok {
			return s.Apply(bound)
		}
		return n
	case *FuncType:
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = s.Apply(p)
		}
		return &FuncType{Params: params, Result: s.Apply(n.Result)}
	case *RecordType:
		return &RecordType{Row: s.ApplyRow(n.Row)}
	default:
		return t
	}
}

// ApplyRow fully resolves r through the substitution, merging in any
// fields contributed by a resolved tail row-variable.
func (s *Substitution) ApplyRow(r Row) Row {
	fields := make([]Field, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = Field{Label: f.Label, Type: s.Apply(f.Type)}
	}
	if r.Tail == nil {
		return ClosedRow(fields...)
	}
	bound, ok := s.row[*r.Tail]
	if !ok {
		return OpenRow(*r.Tail, fields...)
	}
	resolved := s.ApplyRow(bound)
	fields = append(fields, resolved.Fields...)
	if resolved.Tail == nil {
		return ClosedRow(fields...)
	}
	return OpenRow(*resolved.Tail, fields...)
}

func substituteTy(v TyVar, with Type, in Type) Type {
	switch n := in.(type) {
	case *Var:
		if n.ID == v {
			return with
		}
		return n
	case *FuncType:
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = substituteTy(v, with, p)
		}
		return &FuncType{Params: params, Result: substituteTy(v, with, n.Result)}
	case *RecordType:
		fields := make([]Field, len(n.Row.Fields))
		for i, f := range n.Row.Fields {
			fields[i] = Field{Label: f.Label, Type: substituteTy(v, with, f.Type)}
		}
		if n.Row.Tail == nil {
			return &RecordType{Row: ClosedRow(fields...)}
		}
		return &RecordType{Row: OpenRow(*n.Row.Tail, fields...)}
	default:
		return in
	}
}

func substituteRow(v TyVar, with Type, in Row) Row {
	fields := make([]Field, len(in.Fields))
	for i, f := range in.Fields {
		fields[i] = Field{Label: f.Label, Type: substituteTy(v, with, f.Type)}
	}
	if in.Tail == nil {
		return ClosedRow(fields...)
	}
	return OpenRow(*in.Tail, fields...)
}

func substituteRowInTy(v RowVar, with Row, in Type) Type {
	switch n := in.(type) {
	case *FuncType:
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = substituteRowInTy(v, with, p)
		}
		return &FuncType{Params: params, Result: substituteRowInTy(v, with, n.Result)}
	case *RecordType:
		return &RecordType{Row: substituteRowInRow(v, with, n.Row)}
	default:
		return in
	}
}

func substituteRowInRow(v RowVar, with Row, in Row) Row {
	fields := make([]Field, len(in.Fields))
	for i, f := range in.Fields {
		fields[i] = Field{Label: f.Label, Type: substituteRowInTy(v, with, f.Type)}
	}
	if in.Tail == nil || *in.Tail != v {
		if in.Tail == nil {
			return ClosedRow(fields...)
		}
		return OpenRow(*in.Tail, fields...)
	}
	fields = append(fields, with.Fields...)
	if with.Tail == nil {
		return ClosedRow(fields...)
	}
	return OpenRow(*with.Tail, fields...)
}
