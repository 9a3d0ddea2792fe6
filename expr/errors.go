// SPDX-License-Identifier: MIT

package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape is returned for non-positive dimensions.
	ErrInvalidShape = errors.New("expr: invalid shape")

	// ErrShapeMismatch indicates operands whose shapes neither match nor broadcast.
	ErrShapeMismatch = errors.New("expr: shape mismatch")

	// ErrNonAffine is returned when both operands of a product depend on decision variables.
	ErrNonAffine = errors.New("expr: product of two non-constant expressions")

	// ErrNotConstant is returned when an operand required to be constant (divisor) is not.
	ErrNotConstant = errors.New("expr: operand must be constant")

	// ErrNotScalar is returned when a 1×1 expression is required (objectives, divisors).
	ErrNotScalar = errors.New("expr: expression must be scalar")

	// ErrParameterUnset is returned when a parameter without bound data is evaluated.
	ErrParameterUnset = errors.New("expr: parameter value not set")

	// ErrObjectiveSense is returned when summing Minimize and Maximize objectives.
	ErrObjectiveSense = errors.New("expr: objective senses differ")

	// ErrIndexOutOfRange indicates an arena cell index outside the arena.
	ErrIndexOutOfRange = errors.New("expr: index out of range")

	// ErrNilExpression indicates a nil operand.
	ErrNilExpression = errors.New("expr: nil expression")

	// ErrDivideByZero is returned when dividing by a constant zero.
	ErrDivideByZero = errors.New("expr: division by zero")
)

// exprErrorf wraps err with the operation tag.
func exprErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
