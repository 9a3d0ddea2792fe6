// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    branch with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil.
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
func ValidateSameShape(a, b *Dense) error {
	if a.r != b.r {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.c != b.c {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBroadcast ensures a and b either share a shape or one of them is 1×1.
// It returns the resulting shape.
func ValidateBroadcast(a, b *Dense) (rows, cols int, err error) {
	if ValidateSameShape(a, b) == nil {
		return a.r, a.c, nil
	}
	switch {
	case a.IsScalar():
		return b.r, b.c, nil
	case b.IsScalar():
		return a.r, a.c, nil
	}

	return 0, 0, validatorErrorf("ValidateBroadcast", ErrDimensionMismatch)
}

// ValidateFinite rejects NaN/±Inf anywhere in m.
// Complexity: O(r*c).
func ValidateFinite(m *Dense) error {
	for _, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf("ValidateFinite", ErrNaNInf)
		}
	}

	return nil
}
