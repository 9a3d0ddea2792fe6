// SPDX-License-Identifier: MIT

// Package matrix provides the numeric storage used by lvlopt decision objects.
//
// What & Why:
//
//	Every value that flows through a model (constant tensors, exogenous
//	parameter data, solved decision values) is a two-dimensional, row-major
//	array of float64. Dense keeps those values in one flat slice so that the
//	row-major reshape required by tensor slicing is a pure re-labelling of
//	the same buffer.
//
// The package provides:
//
//   - Dense with bounds-checked At/Set, Reshape (row-major) and Clone.
//   - Element-wise kernels with scalar broadcasting (Add, Sub, Hadamard, Scale).
//   - Mul (matrix product), Transpose and SumAll.
//   - Constant generators (Identity, Ones, Fill, LowerTriangular, UpperTriangular).
//
// Errors:
//
//	All functions return sentinel errors from errors.go wrapped with the
//	operation name; callers branch with errors.Is. No function panics on
//	user input.
//
// Complexity:
//
//	At/Set/Reshape are O(1) (Reshape copies the buffer: O(r*c)),
//	element-wise kernels are O(r*c), Mul is O(r*n*c).
package matrix
