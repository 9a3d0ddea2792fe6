// SPDX-License-Identifier: MIT

// Package expr defines the decision objects and the affine algebra that
// compiled model expressions are built from.
//
// Decision objects:
//
//   - Arena: one shared decision tensor (a flat block of cells). An arena is
//     owned by the model, one per related coordinate table.
//   - Variable: a shaped slice of an arena: a list of cell indices read in
//     row-major order. Writing a Variable writes through into its arena, so
//     every slice over the same cells observes the same solved values.
//   - Parameter: an exogenous value holder; its data is bound before solving.
//   - Constant: a fixed matrix.Dense.
//
// Expressions are immutable trees (Add, Sub, Neg, Mul, MatMul, Multiply,
// Divide, Sum, Transpose) whose shapes are validated at construction.
// Canonicalize lowers a tree into an Affine value: one Linear form
// (coefficients over arena cells plus a constant) per element. Products of
// two non-constant operands are rejected with ErrNonAffine.
//
// Constraint pairs two expressions with a Sense (<=, >=, ==) and lowers to
// one Row per broadcast element. Objective wraps a scalar expression with a
// Minimize/Maximize sense. Problem bundles an objective with its constraints
// and is the unit handed to an optimization engine.
package expr
