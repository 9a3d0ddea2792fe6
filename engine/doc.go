// SPDX-License-Identifier: MIT

// Package engine defines the optimization-engine collaborator and ships a
// reference linear-programming engine.
//
// An Engine receives one expr.Problem plus Options (solver id, verbosity,
// free-form solver settings) and returns a Result whose Status is one of
// the fixed vocabulary: optimal, infeasible, unbounded or solver_error. On
// optimal it writes the solution into the problem's decision cells, so every
// expr.Variable slicing them observes the solved values.
//
// LP lowers the problem to general form
//
//	minimize cᵀx  s.t.  Gx <= h,  Ax = b
//
// with free x, converts it to standard form with gonum's lp.Convert and
// solves it with lp.Simplex. Columns are the decision cells referenced by at
// least one constraint, ordered by arena name and offset. Constraint rows
// without variable terms are checked for constant feasibility and dropped.
// Infeasible and unbounded outcomes are statuses, not errors; numeric
// failures return solver_error together with an error.
package engine
