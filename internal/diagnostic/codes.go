// Package diagnostic attaches a stable error code to every resolution
// and typing error and renders it as a colorized, human-readable string.
// Rendering is pure: Render never writes to a stream, keeping the core
// pipeline free of I/O (spec.md §1/§5).
package diagnostic

import (
	"github.com/corvid-lang/corvid/internal/resolve"
	"github.com/corvid-lang/corvid/internal/types"
)

// Code is a stable error-code identifier, independent of the error
// message text, suitable for documentation links or machine matching.
type Code string

const (
	RSV001 Code = "RSV001" // UnboundIdent
	RSV002 Code = "RSV002" // MainNotFound
	TYP001 Code = "TYP001" // ArityMismatch
	TYP002 Code = "TYP002" // TypeMismatch
	TYP003 Code = "TYP003" // RecordMismatch
	TYP004 Code = "TYP004" // InfiniteType
	TYP005 Code = "TYP005" // UnresolvedTypeVariable
	TYP006 Code = "TYP006" // ConstraintLimitExceeded
	UNK000 Code = "UNK000" // not one of the taxonomy's error types
)

// CodeOf classifies err into its stable diagnostic code (spec.md §7).
func CodeOf(err error) Code {
	switch e := err.(type) {
	case *resolve.Error:
		switch e.Kind {
		case resolve.UnboundIdentError:
			return RSV001
		case resolve.MainNotFoundError:
			return RSV002
		}
	case *types.TypeCheckError:
		switch e.Kind {
		case types.ArityMismatchError:
			return TYP001
		case types.TypeMismatchError:
			return TYP002
		case types.RecordMismatchError:
			return TYP003
		case types.InfiniteTypeError:
			return TYP004
		case types.UnresolvedTypeVariableError:
			return TYP005
		case types.ConstraintLimitError:
			return TYP006
		}
	}
	return UNK000
}
