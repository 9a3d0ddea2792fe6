// SPDX-License-Identifier: MIT

package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlopt/expr"
	"github.com/katalvlaran/lvlopt/matrix"
)

func dense(t *testing.T, r, c int, data ...float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(t, err)

	return d
}

func constant(t *testing.T, r, c int, data ...float64) *expr.Constant {
	t.Helper()
	k, err := expr.NewConstant("", dense(t, r, c, data...))
	require.NoError(t, err)

	return k
}

func TestArena_SliceWritesThrough(t *testing.T) {
	t.Parallel()
	a, err := expr.NewArena("flows", 4)
	require.NoError(t, err)

	x, err := a.Slice("x", []int{2, 0}, expr.Shape{Rows: 2, Cols: 1})
	require.NoError(t, err)
	y, err := a.Slice("y", []int{0}, expr.ScalarShape)
	require.NoError(t, err)

	require.NoError(t, x.SetValue(dense(t, 2, 1, 5, 7)))
	assert.Equal(t, []float64{7, 0, 5, 0}, a.Values())

	got, err := y.Value()
	require.NoError(t, err)
	assert.Equal(t, 7.0, got.Flat(0), "overlapping slices observe the same cell")
}

func TestArena_SliceErrors(t *testing.T) {
	t.Parallel()
	a, err := expr.NewArena("t", 3)
	require.NoError(t, err)

	_, err = a.Slice("x", []int{0, 1}, expr.Shape{Rows: 3, Cols: 1})
	require.ErrorIs(t, err, expr.ErrShapeMismatch)
	_, err = a.Slice("x", []int{3}, expr.ScalarShape)
	require.ErrorIs(t, err, expr.ErrIndexOutOfRange)
	_, err = a.Slice("x", nil, expr.Shape{})
	require.ErrorIs(t, err, expr.ErrInvalidShape)
	_, err = expr.NewArena("empty", 0)
	require.ErrorIs(t, err, expr.ErrInvalidShape)
}

func TestCanonicalize_AffineCombination(t *testing.T) {
	t.Parallel()
	a, _ := expr.NewArena("v", 2)
	x, err := a.Slice("x", []int{0, 1}, expr.Shape{Rows: 2, Cols: 1})
	require.NoError(t, err)

	// [1 2] @ x + 3
	row := constant(t, 1, 2, 1, 2)
	prod, err := expr.MatMul(row, x)
	require.NoError(t, err)
	e, err := expr.Add(prod, expr.Scalar(3))
	require.NoError(t, err)
	assert.Equal(t, expr.ScalarShape, e.Shape())

	aff, err := expr.Canonicalize(e)
	require.NoError(t, err)
	l := aff.Flat(0)
	assert.Equal(t, 3.0, l.Const)
	assert.Equal(t, 1.0, l.Coef[a.Cell(0)])
	assert.Equal(t, 2.0, l.Coef[a.Cell(1)])

	require.NoError(t, x.SetValue(dense(t, 2, 1, 10, 20)))
	v, err := expr.Value(e)
	require.NoError(t, err)
	assert.Equal(t, 53.0, v.Flat(0))
}

func TestCanonicalize_CancelledTermsDropped(t *testing.T) {
	t.Parallel()
	a, _ := expr.NewArena("v", 1)
	x, _ := a.Slice("x", []int{0}, expr.ScalarShape)

	e, err := expr.Sub(x, x)
	require.NoError(t, err)
	aff, err := expr.Canonicalize(e)
	require.NoError(t, err)
	assert.True(t, aff.IsConstant())
}

func TestProducts_RejectNonAffine(t *testing.T) {
	t.Parallel()
	a, _ := expr.NewArena("v", 2)
	x, _ := a.Slice("x", []int{0}, expr.ScalarShape)
	y, _ := a.Slice("y", []int{1}, expr.ScalarShape)

	_, err := expr.Mul(x, y)
	require.ErrorIs(t, err, expr.ErrNonAffine)
	_, err = expr.Divide(x, y)
	require.ErrorIs(t, err, expr.ErrNotConstant)

	_, err = expr.Divide(x, constant(t, 1, 2, 1, 1))
	require.ErrorIs(t, err, expr.ErrNotScalar)

	q, err := expr.Divide(x, expr.Scalar(0))
	require.NoError(t, err)
	_, err = expr.Canonicalize(q)
	require.ErrorIs(t, err, expr.ErrDivideByZero)
}

func TestMul_ScalarScalesMatrixMultiplies(t *testing.T) {
	t.Parallel()
	a, _ := expr.NewArena("v", 2)
	x, _ := a.Slice("x", []int{0, 1}, expr.Shape{Rows: 2, Cols: 1})

	scaled, err := expr.Mul(expr.Scalar(2), x)
	require.NoError(t, err)
	assert.Equal(t, expr.Shape{Rows: 2, Cols: 1}, scaled.Shape())

	m := constant(t, 2, 2, 1, 0, 0, 1)
	prod, err := expr.Mul(m, x)
	require.NoError(t, err)
	assert.Equal(t, expr.Shape{Rows: 2, Cols: 1}, prod.Shape())

	_, err = expr.Mul(x, m)
	require.ErrorIs(t, err, expr.ErrShapeMismatch)
}

func TestSumTransposeShapes(t *testing.T) {
	t.Parallel()
	a, _ := expr.NewArena("v", 6)
	x, _ := a.Slice("x", []int{0, 1, 2, 3, 4, 5}, expr.Shape{Rows: 2, Cols: 3})

	tr, err := expr.Transpose(x)
	require.NoError(t, err)
	assert.Equal(t, expr.Shape{Rows: 3, Cols: 2}, tr.Shape())

	aff, err := expr.Canonicalize(tr)
	require.NoError(t, err)
	assert.Equal(t, 1.0, aff.At(0, 1).Coef[a.Cell(3)], "xᵀ[0,1] is x[1,0]")

	s, err := expr.Sum(x)
	require.NoError(t, err)
	aff, err = expr.Canonicalize(s)
	require.NoError(t, err)
	assert.Len(t, aff.Flat(0).Coef, 6)
}

func TestCanonicalize_FoldsConstantSubtrees(t *testing.T) {
	t.Parallel()
	m := constant(t, 2, 2, 1, 2, 3, 4)
	v := constant(t, 2, 1, 1, 1)

	// sum(-(2 * (m @ v)ᵀ - 1)) / 4
	e, err := expr.MatMul(m, v)
	require.NoError(t, err)
	e, err = expr.Transpose(e)
	require.NoError(t, err)
	e, err = expr.Multiply(expr.Scalar(2), e)
	require.NoError(t, err)
	e, err = expr.Sub(e, expr.Scalar(1))
	require.NoError(t, err)
	e, err = expr.Neg(e)
	require.NoError(t, err)
	e, err = expr.Sum(e)
	require.NoError(t, err)
	e, err = expr.Divide(e, expr.Scalar(4))
	require.NoError(t, err)

	aff, err := expr.Canonicalize(e)
	require.NoError(t, err)
	require.True(t, aff.IsConstant())
	assert.InDelta(t, -4.5, aff.Flat(0).Const, 1e-12)

	a, _ := expr.NewArena("v", 2)
	x, _ := a.Slice("x", []int{0, 1}, expr.Shape{Rows: 1, Cols: 2})
	k, err := expr.Add(constant(t, 1, 2, 1, 2), expr.Scalar(10))
	require.NoError(t, err)
	e, err = expr.Add(x, k)
	require.NoError(t, err)
	aff, err = expr.Canonicalize(e)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, aff.Flat(1).Const, 0)
	assert.Equal(t, 1.0, aff.Flat(1).Coef[a.Cell(1)])

	q, err := expr.Divide(constant(t, 1, 1, 3), expr.Scalar(0))
	require.NoError(t, err)
	_, err = expr.Canonicalize(q)
	require.ErrorIs(t, err, expr.ErrDivideByZero)
}

func TestParameter_UnsetAndBound(t *testing.T) {
	t.Parallel()
	p, err := expr.NewParameter("c", expr.Shape{Rows: 1, Cols: 2})
	require.NoError(t, err)
	assert.False(t, p.IsSet())

	_, err = expr.Canonicalize(p)
	require.ErrorIs(t, err, expr.ErrParameterUnset)

	require.ErrorIs(t, p.SetValue(dense(t, 2, 1, 1, 2)), expr.ErrShapeMismatch)
	require.NoError(t, p.SetValue(dense(t, 1, 2, 4, 5)))
	v, err := expr.Value(p)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5}, v.Data())
}

func TestConstraint_RowsAndViolation(t *testing.T) {
	t.Parallel()
	a, _ := expr.NewArena("v", 2)
	x, _ := a.Slice("x", []int{0, 1}, expr.Shape{Rows: 2, Cols: 1})

	c, err := expr.NewConstraint(x, expr.LessEqual, expr.Scalar(4))
	require.NoError(t, err)
	assert.Equal(t, "x <= 4", c.String())

	rows, err := c.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 4.0, rows[1].RHS)
	assert.Equal(t, 1.0, rows[1].Coef[a.Cell(1)])

	require.NoError(t, x.SetValue(dense(t, 2, 1, 3, 6)))
	v, err := c.Violation()
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	_, err = expr.NewConstraint(x, expr.Equal, constant(t, 1, 2, 1, 1))
	require.ErrorIs(t, err, expr.ErrShapeMismatch)
}

func TestObjectives(t *testing.T) {
	t.Parallel()
	a, _ := expr.NewArena("v", 2)
	x, _ := a.Slice("x", []int{0, 1}, expr.Shape{Rows: 2, Cols: 1})

	_, err := expr.NewObjective(expr.Minimize, x)
	require.ErrorIs(t, err, expr.ErrNotScalar)

	s, _ := expr.Sum(x)
	o1, err := expr.NewObjective(expr.Minimize, s)
	require.NoError(t, err)
	o2, err := expr.NewObjective(expr.Minimize, expr.Scalar(1))
	require.NoError(t, err)
	sum, err := expr.SumObjectives(o1, o2)
	require.NoError(t, err)
	assert.Equal(t, "Minimize((sum(x) + 1))", sum.String())

	o3, _ := expr.NewObjective(expr.Maximize, s)
	_, err = expr.SumObjectives(o1, o3)
	require.ErrorIs(t, err, expr.ErrObjectiveSense)

	f := expr.Feasibility()
	v, err := f.Value()
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestProblem_Variables(t *testing.T) {
	t.Parallel()
	a, _ := expr.NewArena("v", 2)
	x, _ := a.Slice("x", []int{0}, expr.ScalarShape)
	y, _ := a.Slice("y", []int{1}, expr.ScalarShape)

	c1, _ := expr.NewConstraint(x, expr.GreaterEqual, expr.Scalar(1))
	c2, _ := expr.NewConstraint(y, expr.Equal, x)
	p, err := expr.NewProblem(nil, []*expr.Constraint{c1, c2})
	require.NoError(t, err)

	vars := p.Variables()
	require.Len(t, vars, 2)
	assert.Equal(t, "x", vars[0].Name())
	assert.Equal(t, "y", vars[1].Name())
	assert.Equal(t, expr.Minimize, p.Objective().Sense())
}
