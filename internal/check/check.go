package check

import (
	"github.com/corvid-lang/corvid/internal/hir"
	"github.com/corvid-lang/corvid/internal/pipelinecfg"
	"github.com/corvid-lang/corvid/internal/types"
)

// CheckProgram generates and solves the constraints for every function
// in prog under the default pipelinecfg.Config (see CheckProgramWithConfig).
func CheckProgram(tcx *types.Context, prog *hir.Program) (*types.Unifier, *types.Table, error) {
	return CheckProgramWithConfig(tcx, prog, pipelinecfg.Default())
}

// CheckProgramWithConfig generates and solves the constraints for every
// function in prog, returning the solved Unifier (for resolving any
// Type still carrying unresolved vars) and the finished ExprId -> Type
// Table (spec.md §4.4/§6). The first error encountered — during
// constraint generation or during solving — is returned immediately,
// with no accumulation (spec.md §7). cfg can only restrict which
// programs are accepted (SPEC_FULL.md §2 AMBIENT STACK).
func CheckProgramWithConfig(tcx *types.Context, prog *hir.Program, cfg pipelinecfg.Config) (*types.Unifier, *types.Table, error) {
	c := newChecker(tcx, prog, cfg)
	for _, f := range prog.Funcs {
		if err := c.checkFunc(f); err != nil {
			return nil, nil, err
		}
	}
	if err := c.unifier.Solve(); err != nil {
		return nil, nil, err
	}
	table, err := c.builder.Finish(c.unifier)
	if err != nil {
		return nil, nil, err
	}
	return c.unifier, table, nil
}
