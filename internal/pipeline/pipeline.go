// Package pipeline composes the three pure stages — resolve, check,
// anormal — into a single entry point the way the teacher's own
// internal/pipeline package wires its stages together (there:
// parse→elaborate→typecheck→eval; here: lower→check→lower). Compile
// does no I/O and holds no state of its own (spec.md §1/§5/§6).
package pipeline

import (
	"github.com/corvid-lang/corvid/internal/anormal"
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/check"
	"github.com/corvid-lang/corvid/internal/mir"
	"github.com/corvid-lang/corvid/internal/pipelinecfg"
	"github.com/corvid-lang/corvid/internal/resolve"
	"github.com/corvid-lang/corvid/internal/types"
)

// Compile runs a surface ast.Program through name resolution, constraint
// generation and unification, and A-normalization under the default
// pipelinecfg.Config (see CompileWithConfig).
func Compile(tcx *types.Context, prog *ast.Program) (*mir.Program, *types.Table, error) {
	return CompileWithConfig(tcx, prog, pipelinecfg.Default())
}

// CompileWithConfig runs prog through the same three stages as Compile,
// but under cfg, returning the finished mir.Program and its
// ExprId -> Type table.
func CompileWithConfig(tcx *types.Context, prog *ast.Program, cfg pipelinecfg.Config) (*mir.Program, *types.Table, error) {
	hirProg, err := resolve.LowerAST(tcx, prog)
	if err != nil {
		return nil, nil, err
	}
	unifier, table, err := check.CheckProgramWithConfig(tcx, hirProg, cfg)
	if err != nil {
		return nil, nil, err
	}
	mirProg, table, err := anormal.LowerHIR(unifier, table, hirProg)
	if err != nil {
		return nil, nil, err
	}
	return mirProg, table, nil
}
