// SPDX-License-Identifier: MIT

package engine

import "errors"

var (
	// ErrUnknownSolver is returned for a solver id the engine does not provide.
	ErrUnknownSolver = errors.New("engine: unknown solver")

	// ErrBadSetting is returned for an unknown or mistyped solver setting.
	ErrBadSetting = errors.New("engine: bad solver setting")

	// ErrNilProblem is returned when Solve receives a nil problem.
	ErrNilProblem = errors.New("engine: nil problem")

	// ErrSolverFailure wraps numeric failures of the underlying algorithm.
	ErrSolverFailure = errors.New("engine: solver failure")
)
