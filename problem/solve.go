// SPDX-License-Identifier: MIT

package problem

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/lvlopt/engine"
	"github.com/katalvlaran/lvlopt/expr"
)

// SolveOptions are passed to the engine for every Record.
type SolveOptions = engine.Options

// Solve hands each Record to the engine in partition order.
//
// A prior successful run needs force or confirmation; a decline returns
// false. The run flag is cleared when the pass starts and set only after the
// last Record. The first engine error marks its Record solver_error and
// aborts; later Records stay unset. Every exogenous value a Record
// references must be bound, otherwise Solve fails with ErrMissingData
// before any Record reaches the engine.
func (m *Model) Solve(ctx context.Context, opts SolveOptions, force bool) (bool, error) {
	const op = "Solve"
	assembled := false
	for _, r := range m.records {
		if r.Problem != nil {
			assembled = true
			break
		}
	}
	if !assembled {
		return false, newError(ErrOperational, op, errors.New("no numerical problem assembled"))
	}
	for _, r := range m.records {
		if r.Problem == nil {
			continue
		}
		if p := unboundData(r.Problem); p != nil {
			return false, newError(ErrMissingData, op, expr.ErrParameterUnset).
				withVariable(p.Name()).withPartition(r.Partition)
		}
	}
	if m.run && !m.confirm(force, "Numerical model already solved. Solve again?") {
		m.log.Info("solve skipped", "reason", "re-run declined")

		return false, nil
	}

	m.run = false
	for _, r := range m.records {
		r.Status = engine.StatusUnset
		r.Value = 0
	}

	for _, r := range m.records {
		if r.Problem == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return false, newError(ErrOperational, op, err).withPartition(r.Partition)
		}
		start := time.Now()
		res, err := m.opts.Engine.Solve(ctx, r.Problem, opts)
		elapsed := time.Since(start)
		if err != nil {
			r.Status = engine.StatusSolverError
			m.opts.Observer.ObserveSolve(string(r.Status), elapsed)
			m.log.Error(err, "solve failed", "partition", r.Name())

			return false, newError(ErrOperational, op, fmt.Errorf("engine: %w", err)).withPartition(r.Partition)
		}
		r.Status = res.Status
		r.Value = res.Objective
		m.opts.Observer.ObserveSolve(string(r.Status), elapsed)
		m.log.Info("problem solved", "partition", r.Name(), "status", string(r.Status),
			"objective", r.Value, "elapsed", elapsed.String())
	}
	m.run = true

	return true, nil
}

// unboundData returns the first unset Parameter referenced by p, or nil.
func unboundData(p *expr.Problem) *expr.Parameter {
	exprs := []expr.Expression{p.Objective().Expression()}
	for _, c := range p.Constraints() {
		exprs = append(exprs, c.Lhs(), c.Rhs())
	}
	for _, e := range exprs {
		for _, prm := range expr.Parameters(e) {
			if !prm.IsSet() {
				return prm
			}
		}
	}

	return nil
}
