// SPDX-License-Identifier: MIT

package engine

import (
	"context"

	"github.com/katalvlaran/lvlopt/expr"
)

// Status is the terminal state of one solve.
type Status string

const (
	// StatusUnset marks a problem that has not been solved.
	StatusUnset Status = ""
	// StatusOptimal means an optimal solution was written to the decision cells.
	StatusOptimal Status = "optimal"
	// StatusInfeasible means no point satisfies the constraints.
	StatusInfeasible Status = "infeasible"
	// StatusUnbounded means the objective can improve without limit.
	StatusUnbounded Status = "unbounded"
	// StatusSolverError means the engine failed numerically.
	StatusSolverError Status = "solver_error"
)

// Statuses lists the terminal statuses in vocabulary order.
func Statuses() []Status {
	return []Status{StatusOptimal, StatusInfeasible, StatusUnbounded, StatusSolverError}
}

// Options configure one Solve call.
type Options struct {
	// Solver selects the algorithm; empty selects the engine default.
	Solver string
	// Verbose raises per-solve log output.
	Verbose bool
	// Settings are engine specific; unknown keys are rejected.
	Settings map[string]any
}

// Result is the outcome of one Solve call.
type Result struct {
	Status Status
	// Objective is the objective value; meaningful only for StatusOptimal.
	Objective float64
}

// Engine solves one assembled problem.
type Engine interface {
	Solve(ctx context.Context, p *expr.Problem, opts Options) (Result, error)
}

// Func adapts a function to Engine.
type Func func(ctx context.Context, p *expr.Problem, opts Options) (Result, error)

// Solve calls f.
func (f Func) Solve(ctx context.Context, p *expr.Problem, opts Options) (Result, error) {
	return f(ctx, p, opts)
}
