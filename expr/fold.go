// SPDX-License-Identifier: MIT

package expr

import (
	"fmt"

	"github.com/katalvlaran/lvlopt/matrix"
)

// foldBinary evaluates op over two constant operands with the matrix
// kernels. The divisor has already been checked for zero.
func foldBinary(op binaryOp, x, y *Affine) (*Affine, error) {
	a, err := x.Eval()
	if err != nil {
		return nil, err
	}
	b, err := y.Eval()
	if err != nil {
		return nil, err
	}
	var d *matrix.Dense
	switch op {
	case opAdd:
		d, err = matrix.Add(a, b)
	case opSub:
		d, err = matrix.Sub(a, b)
	case opMatMul:
		d, err = matrix.Mul(a, b)
	case opMultiply:
		d, err = matrix.Hadamard(a, b)
	default:
		d, err = matrix.Divide(a, b.Flat(0))
	}
	if err != nil {
		return nil, fmt.Errorf("fold: %w", err)
	}

	return constAffine(d), nil
}

// foldUnary evaluates op over a constant operand.
func foldUnary(op unaryOp, x *Affine) (*Affine, error) {
	a, err := x.Eval()
	if err != nil {
		return nil, err
	}
	var d *matrix.Dense
	switch op {
	case opNeg:
		d, err = matrix.Scale(a, -1)
	case opSum:
		var s float64
		s, err = matrix.SumAll(a)
		d = matrix.NewScalar(s)
	default:
		d, err = matrix.Transpose(a)
	}
	if err != nil {
		return nil, fmt.Errorf("fold: %w", err)
	}

	return constAffine(d), nil
}
