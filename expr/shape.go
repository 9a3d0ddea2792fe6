// SPDX-License-Identifier: MIT

package expr

import "fmt"

// Shape is the two-dimensional extent of a decision object or expression.
// One-axis declarations (n,) are represented as n×1 columns.
type Shape struct {
	Rows int
	Cols int
}

// ScalarShape is the 1×1 shape.
var ScalarShape = Shape{Rows: 1, Cols: 1}

// Size returns Rows*Cols.
func (s Shape) Size() int { return s.Rows * s.Cols }

// IsScalar reports whether s is 1×1.
func (s Shape) IsScalar() bool { return s.Rows == 1 && s.Cols == 1 }

// Valid reports whether both dimensions are positive.
func (s Shape) Valid() bool { return s.Rows > 0 && s.Cols > 0 }

// String renders the shape as "(rows, cols)".
func (s Shape) String() string { return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols) }

// broadcastShape returns the common shape of a and b: equal shapes, or the
// non-scalar one when the other is 1×1.
func broadcastShape(a, b Shape) (Shape, error) {
	switch {
	case a == b:
		return a, nil
	case a.IsScalar():
		return b, nil
	case b.IsScalar():
		return a, nil
	}

	return Shape{}, fmt.Errorf("%s vs %s: %w", a, b, ErrShapeMismatch)
}
