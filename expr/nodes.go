// SPDX-License-Identifier: MIT

package expr

import (
	"fmt"
)

// Expression is a node of an affine expression tree.
type Expression interface {
	// Shape returns the result shape.
	Shape() Shape
	// String renders the expression.
	String() string

	affine() (*Affine, error)
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMatMul
	opMultiply
	opDivide
)

type unaryOp int

const (
	opNeg unaryOp = iota
	opSum
	opTranspose
)

type binary struct {
	op    binaryOp
	x, y  Expression
	shape Shape
}

type unary struct {
	op    unaryOp
	x     Expression
	shape Shape
}

func checkOperands(op string, xs ...Expression) error {
	for _, x := range xs {
		if x == nil {
			return exprErrorf(op, ErrNilExpression)
		}
	}

	return nil
}

// Add returns x + y with scalar broadcasting.
func Add(x, y Expression) (Expression, error) {
	return elementwise("Add", opAdd, x, y)
}

// Sub returns x - y with scalar broadcasting.
func Sub(x, y Expression) (Expression, error) {
	return elementwise("Sub", opSub, x, y)
}

// Multiply returns the elementwise product of x and y. At most one side may
// reference decision variables.
func Multiply(x, y Expression) (Expression, error) {
	if err := checkOperands("Multiply", x, y); err != nil {
		return nil, err
	}
	if !IsConstant(x) && !IsConstant(y) {
		return nil, exprErrorf("Multiply", fmt.Errorf("%s, %s: %w", x, y, ErrNonAffine))
	}

	return elementwise("Multiply", opMultiply, x, y)
}

func elementwise(op string, kind binaryOp, x, y Expression) (Expression, error) {
	if err := checkOperands(op, x, y); err != nil {
		return nil, err
	}
	s, err := broadcastShape(x.Shape(), y.Shape())
	if err != nil {
		return nil, exprErrorf(op, err)
	}

	return &binary{op: kind, x: x, y: y, shape: s}, nil
}

// MatMul returns the matrix product x @ y.
func MatMul(x, y Expression) (Expression, error) {
	if err := checkOperands("MatMul", x, y); err != nil {
		return nil, err
	}
	xs, ys := x.Shape(), y.Shape()
	if xs.Cols != ys.Rows {
		return nil, exprErrorf("MatMul", fmt.Errorf("%s @ %s: %w", xs, ys, ErrShapeMismatch))
	}
	if !IsConstant(x) && !IsConstant(y) {
		return nil, exprErrorf("MatMul", fmt.Errorf("%s @ %s: %w", x, y, ErrNonAffine))
	}

	return &binary{op: opMatMul, x: x, y: y, shape: Shape{Rows: xs.Rows, Cols: ys.Cols}}, nil
}

// Mul implements the "*" operator: scaling when either side is 1×1, the
// matrix product otherwise.
func Mul(x, y Expression) (Expression, error) {
	if err := checkOperands("Mul", x, y); err != nil {
		return nil, err
	}
	if x.Shape().IsScalar() || y.Shape().IsScalar() {
		return Multiply(x, y)
	}

	return MatMul(x, y)
}

// Divide returns x / y for a constant 1×1 divisor.
func Divide(x, y Expression) (Expression, error) {
	if err := checkOperands("Divide", x, y); err != nil {
		return nil, err
	}
	if !y.Shape().IsScalar() {
		return nil, exprErrorf("Divide", fmt.Errorf("divisor %s: %w", y.Shape(), ErrNotScalar))
	}
	if !IsConstant(y) {
		return nil, exprErrorf("Divide", fmt.Errorf("divisor %s: %w", y, ErrNotConstant))
	}

	return &binary{op: opDivide, x: x, y: y, shape: x.Shape()}, nil
}

// Neg returns -x.
func Neg(x Expression) (Expression, error) {
	if err := checkOperands("Neg", x); err != nil {
		return nil, err
	}

	return &unary{op: opNeg, x: x, shape: x.Shape()}, nil
}

// Sum returns the 1×1 sum of all elements of x.
func Sum(x Expression) (Expression, error) {
	if err := checkOperands("Sum", x); err != nil {
		return nil, err
	}

	return &unary{op: opSum, x: x, shape: ScalarShape}, nil
}

// Transpose returns xᵀ.
func Transpose(x Expression) (Expression, error) {
	if err := checkOperands("Transpose", x); err != nil {
		return nil, err
	}
	s := x.Shape()

	return &unary{op: opTranspose, x: x, shape: Shape{Rows: s.Cols, Cols: s.Rows}}, nil
}

func (b *binary) Shape() Shape { return b.shape }

func (b *binary) String() string {
	switch b.op {
	case opAdd:
		return fmt.Sprintf("(%s + %s)", b.x, b.y)
	case opSub:
		return fmt.Sprintf("(%s - %s)", b.x, b.y)
	case opMatMul:
		return fmt.Sprintf("(%s @ %s)", b.x, b.y)
	case opMultiply:
		return fmt.Sprintf("multiply(%s, %s)", b.x, b.y)
	default:
		return fmt.Sprintf("(%s / %s)", b.x, b.y)
	}
}

func (b *binary) affine() (*Affine, error) {
	x, err := b.x.affine()
	if err != nil {
		return nil, err
	}
	y, err := b.y.affine()
	if err != nil {
		return nil, err
	}
	if b.op == opDivide && y.cells[0].Const == 0 {
		return nil, fmt.Errorf("%s: %w", b, ErrDivideByZero)
	}
	if x.IsConstant() && y.IsConstant() {
		return foldBinary(b.op, x, y)
	}
	switch b.op {
	case opAdd:
		return addAffine(x, y, 1)
	case opSub:
		return addAffine(x, y, -1)
	case opMatMul:
		return matmulAffine(x, y)
	case opMultiply:
		return multiplyAffine(x, y)
	default:
		return scaleAffine(x, 1/y.cells[0].Const), nil
	}
}

func (u *unary) Shape() Shape { return u.shape }

func (u *unary) String() string {
	switch u.op {
	case opNeg:
		return fmt.Sprintf("-%s", u.x)
	case opSum:
		return fmt.Sprintf("sum(%s)", u.x)
	default:
		return fmt.Sprintf("transpose(%s)", u.x)
	}
}

func (u *unary) affine() (*Affine, error) {
	x, err := u.x.affine()
	if err != nil {
		return nil, err
	}
	if x.IsConstant() {
		return foldUnary(u.op, x)
	}
	switch u.op {
	case opNeg:
		return scaleAffine(x, -1), nil
	case opSum:
		return sumAffine(x), nil
	default:
		return transposeAffine(x), nil
	}
}

// IsConstant reports whether e references no decision variable.
// Parameters count as constant.
func IsConstant(e Expression) bool {
	switch n := e.(type) {
	case *Variable:
		return false
	case *binary:
		return IsConstant(n.x) && IsConstant(n.y)
	case *unary:
		return IsConstant(n.x)
	default:
		return true
	}
}

// Variables returns the distinct Variables referenced by e in first-seen
// order.
func Variables(e Expression) []*Variable {
	var out []*Variable
	seen := make(map[*Variable]struct{})
	var walk func(Expression)
	walk = func(e Expression) {
		switch n := e.(type) {
		case *Variable:
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		case *binary:
			walk(n.x)
			walk(n.y)
		case *unary:
			walk(n.x)
		}
	}
	walk(e)

	return out
}

// Parameters returns the distinct Parameters referenced by e in first-seen
// order.
func Parameters(e Expression) []*Parameter {
	var out []*Parameter
	seen := make(map[*Parameter]struct{})
	var walk func(Expression)
	walk = func(e Expression) {
		switch n := e.(type) {
		case *Parameter:
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		case *binary:
			walk(n.x)
			walk(n.y)
		case *unary:
			walk(n.x)
		}
	}
	walk(e)

	return out
}
