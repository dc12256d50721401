package types

import "fmt"

// TypeErrorKind is one of the typing-error kinds in spec.md §7.
type TypeErrorKind string

const (
	ArityMismatchError          TypeErrorKind = "arity_mismatch"
	TypeMismatchError           TypeErrorKind = "type_mismatch"
	RecordMismatchError         TypeErrorKind = "record_mismatch"
	InfiniteTypeError           TypeErrorKind = "infinite_type"
	UnresolvedTypeVariableError TypeErrorKind = "unresolved_type_variable"
	ConstraintLimitError        TypeErrorKind = "constraint_limit_exceeded"
)

// TypeCheckError is the single error type raised by the constraint
// generator and the unifier. The first error encountered wins; there is
// no accumulation (spec.md §7).
type TypeCheckError struct {
	Kind     TypeErrorKind
	Message  string
	Expected Type
	Actual   Type
}

func (e *TypeCheckError) Error() string {
	if e.Expected != nil && e.Actual != nil {
		return fmt.Sprintf("%s: expected %s, found %s", e.Message, e.Expected, e.Actual)
	}
	return e.Message
}

// NewArityMismatchError reports a call or function definition whose
// argument count does not match its declared/inferred arity.
func NewArityMismatchError(expected, actual int) *TypeCheckError {
	return &TypeCheckError{
		Kind:    ArityMismatchError,
		Message: fmt.Sprintf("function expects %d argument(s), but %d provided", expected, actual),
	}
}

// NewTypeMismatchError reports two types that fail to unify at the top
// level (different Base kinds, Base vs Func, Func vs Record, and so on).
func NewTypeMismatchError(expected, actual Type) *TypeCheckError {
	return &TypeCheckError{
		Kind:     TypeMismatchError,
		Message:  "type mismatch",
		Expected: expected,
		Actual:   actual,
	}
}

// NewRecordMismatchError reports two closed rows with different label
// sets, or a closed row lacking a label required by the other side.
func NewRecordMismatchError(expected, actual Type) *TypeCheckError {
	return &TypeCheckError{
		Kind:     RecordMismatchError,
		Message:  "record shape mismatch",
		Expected: expected,
		Actual:   actual,
	}
}

// NewInfiniteTypeError reports an occurs-check failure: binding a type or
// row variable would construct an infinite type.
func NewInfiniteTypeError(v fmt.Stringer, in Type) *TypeCheckError {
	return &TypeCheckError{
		Kind:    InfiniteTypeError,
		Message: fmt.Sprintf("infinite type: %s occurs in %s", v, in),
	}
}

// NewUnresolvedTypeVariableError reports a type variable left unresolved
// after the constraint queue has been fully drained.
func NewUnresolvedTypeVariableError(v fmt.Stringer) *TypeCheckError {
	return &TypeCheckError{
		Kind:    UnresolvedTypeVariableError,
		Message: fmt.Sprintf("unresolved type variable: %s", v),
	}
}

// NewConstraintLimitError reports that Solve was asked to drain more
// constraints than a host-configured ceiling allows (pipelinecfg.Config's
// MaxConstraintIterations), guarding an embedding host against a
// malformed or adversarially large constraint set.
func NewConstraintLimitError(limit int) *TypeCheckError {
	return &TypeCheckError{
		Kind:    ConstraintLimitError,
		Message: fmt.Sprintf("constraint solving exceeded the configured limit of %d iterations", limit),
	}
}
