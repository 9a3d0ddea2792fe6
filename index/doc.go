// SPDX-License-Identifier: MIT

// Package index is the Coordinate Index: the read-mostly registry of
// coordinate Sets, Variable metadata and coordinate DataTables that the
// rest of the compiler consults.
//
// A Set is an ordered domain of members addressed in tables by its Header.
// Sets flagged SplitProblem partition the model into independent
// subproblems.
//
// A Variable declares a tensor quantity:
//
//   - Kind: endogenous (decision), exogenous (bound data) or constant.
//   - Shape: one or two axes; each is a fixed size or a Set symbol whose
//     (possibly restricted) member list gives the size.
//   - Hierarchy: ordered Set symbols whose cartesian product enumerates the
//     variable's instances.
//   - Intra: an optional hierarchy Set along which expressions expand.
//   - Coordinates: optional per-Set restriction of members.
//
// A DataTable holds coordinate rows. Query selects rows with an ordered
// Filter and returns them sorted by criterion order, then by the position
// of each row's value in the criterion's value list. For a filter built
// from hierarchy columns followed by shape-axis headers this yields exactly
// the row-major order of the declared shape.
//
// The Index owns one decision Arena per DataTable (Tensor), created on first
// use and shared by every endogenous variable slicing that table.
//
// Seal freezes the Index and its tables; later mutations fail with
// ErrSealed.
package index
