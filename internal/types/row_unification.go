package types

// unifyRows implements the four-way record unification case split from
// spec.md §4.5: closed/closed requires exact label equality; closed/open
// lets the open side's tail absorb the closed side's unique labels
// (never the other way around — swapping which side's labels feed which
// tail was a real bug class in earlier row-unification code this is
// grounded on); open/open introduces a fresh row variable for the
// "rest" shared by both tails, after unifying the labels common to both.
func (u *Unifier) unifyRows(r1, r2 Row) error {
	r1 = u.subst.ApplyRow(r1)
	r2 = u.subst.ApplyRow(r2)

	common, only1, only2 := splitFields(r1, r2)

	for label, pair := range common {
		if err := u.unify(u.subst.Apply(pair[0]), u.subst.Apply(pair[1])); err != nil {
			return err
		}
		_ = label
	}

	switch {
	case r1.Tail == nil && r2.Tail == nil:
		if len(only1) > 0 || len(only2) > 0 {
			return NewRecordMismatchError(&RecordType{Row: r1}, &RecordType{Row: r2})
		}
		return nil

	case r1.Tail != nil && r2.Tail == nil:
		// r1 is open: its tail absorbs r2's unique labels. But r1's own
		// unique labels have nowhere to go — r2 is closed, so any field
		// r1 requires that r2 doesn't have is a mismatch, not something
		// the closed side can absorb (spec.md §4.5).
		if len(only1) > 0 {
			return NewRecordMismatchError(&RecordType{Row: r1}, &RecordType{Row: r2})
		}
		return u.bindRow(*r1.Tail, ClosedRow(only2...))

	case r1.Tail == nil && r2.Tail != nil:
		// r2 is open: its tail absorbs r1's unique labels. Symmetric
		// check: r2's own unique labels can't be satisfied by closed r1.
		if len(only2) > 0 {
			return NewRecordMismatchError(&RecordType{Row: r1}, &RecordType{Row: r2})
		}
		return u.bindRow(*r2.Tail, ClosedRow(only1...))

	default:
		// Both open. If it's the same row variable, the unique sets must
		// already agree (nothing more to absorb).
		if *r1.Tail == *r2.Tail {
			if len(only1) > 0 || len(only2) > 0 {
				return NewRecordMismatchError(&RecordType{Row: r1}, &RecordType{Row: r2})
			}
			return nil
		}
		fresh := u.tcx.FreshRow()
		if err := u.bindRow(*r1.Tail, OpenRow(fresh, only2...)); err != nil {
			return err
		}
		return u.bindRow(*r2.Tail, OpenRow(fresh, only1...))
	}
}

func splitFields(r1, r2 Row) (common map[Label][2]Type, only1, only2 []Field) {
	common = map[Label][2]Type{}
	seen := map[Label]bool{}
	for _, f := range r1.Fields {
		if t2, ok := r2.Lookup(f.Label); ok {
			common[f.Label] = [2]Type{f.Type, t2}
		} else {
			only1 = append(only1, f)
		}
		seen[f.Label] = true
	}
	for _, f := range r2.Fields {
		if !seen[f.Label] {
			only2 = append(only2, f)
		}
	}
	return common, only1, only2
}

func (u *Unifier) bindRow(v RowVar, r Row) error {
	if OccursRow(v, &RecordType{Row: r}) {
		return NewInfiniteTypeError(v, &RecordType{Row: r})
	}
	u.subst.BindRow(v, r)
	return nil
}
