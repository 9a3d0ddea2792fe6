// SPDX-License-Identifier: MIT

// Package problem turns a Coordinate Index plus a symbolic problem document
// into solvable numeric problems and drives their solution.
//
// Pipeline (all stages are methods of *Model):
//
//	Materialize  – per Variable, enumerate the cartesian product of its
//	               hierarchy and attach one decision object per row: a shared
//	               Constant, a fresh Parameter, or a slice of the table's
//	               shared decision Arena. Each row also carries the Filter
//	               that selected it. The Index is sealed afterwards.
//	BindData     – fill exogenous Parameters from their table values.
//	LoadSymbolic – register the objective/constraint expression strings.
//	Assemble     – one Record per split-problem partition; constraints and
//	               objectives compiled by Compile.
//	Solve        – hand each Record to the engine in partition order.
//
// Compile resolves the identifiers of one expression against the instance
// tables restricted to a partition. When the non-constant variables share an
// intra Set, the expression is evaluated once per allowed member of that Set.
// Evaluation is performed by package lang against a closed environment that
// holds nothing but the resolved decision objects.
//
// Lifecycle guards:
//
//   - LoadSymbolic, Assemble and Solve ask the Confirmer before replacing
//     prior state unless force is set. A decline is a no-op, not an error.
//   - Records are replaced only when a whole assembly pass succeeds.
//   - Solve is fail-fast: the first engine error marks that Record
//     solver_error, leaves later Records untouched and keeps the model
//     un-run.
//
// Errors:
//
//	ErrConfiguration    – malformed or missing Variable metadata.
//	ErrMissingData      – empty or ambiguous instance data, undefined tables.
//	ErrConceptualModel  – inconsistent intra Sets, non-unique lookups.
//	ErrNumericalProblem – syntax errors, unknown names, degenerate expansion.
//	ErrOperational      – lifecycle misuse and engine failures.
//
// Every error is a *ModelError wrapping one of the kinds and its cause, so
// errors.Is matches both.
package problem
