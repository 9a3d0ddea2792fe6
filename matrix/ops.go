// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Element-wise kernels with scalar broadcasting (Add, Sub, Hadamard),
//     plus Scale, Mul, Transpose and SumAll.
//
// Determinism & Performance:
//   - Fixed loop orders (flat 0..n-1 or i→k→j for Mul).
//   - Operands are never mutated; every kernel allocates its output.

package matrix

// operation tags used in error wrappers
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opHadamard  = "Hadamard"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opDivide    = "Divide"
	opSumAll    = "SumAll"
)

// broadcast applies f cell-wise over a and b, expanding a 1×1 operand
// to the shape of the other one.
func broadcast(tag string, a, b *Dense, f func(x, y float64) float64) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	rows, cols, err := ValidateBroadcast(a, b)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	aStep, bStep := 1, 1
	if a.IsScalar() {
		aStep = 0
	}
	if b.IsScalar() {
		bStep = 0
	}
	for k := range res.data {
		res.data[k] = f(a.data[k*aStep], b.data[k*bStep])
	}

	return res, nil
}

// Add returns a + b with scalar broadcasting.
// Complexity: O(r·c).
func Add(a, b *Dense) (*Dense, error) {
	return broadcast(opAdd, a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b with scalar broadcasting.
// Complexity: O(r·c).
func Sub(a, b *Dense) (*Dense, error) {
	return broadcast(opSub, a, b, func(x, y float64) float64 { return x - y })
}

// Hadamard returns the element-wise product a ∘ b with scalar broadcasting.
// Complexity: O(r·c).
func Hadamard(a, b *Dense) (*Dense, error) {
	return broadcast(opHadamard, a, b, func(x, y float64) float64 { return x * y })
}

// Scale returns alpha·m.
func Scale(m *Dense, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res := m.Clone()
	for k := range res.data {
		res.data[k] *= alpha
	}

	return res, nil
}

// Divide returns m / d for a non-zero scalar d.
func Divide(m *Dense, d float64) (*Dense, error) {
	if d == 0 {
		return nil, matrixErrorf(opDivide, ErrDivideByZero)
	}
	res, err := Scale(m, 1/d)
	if err != nil {
		return nil, matrixErrorf(opDivide, err)
	}

	return res, nil
}

// Mul performs standard matrix multiplication a × b.
// Complexity: O(r*n*c) time and O(r*c) memory.
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	res, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, j, k int
	var av float64
	for i = 0; i < a.r; i++ {
		for k = 0; k < a.c; k++ {
			av = a.data[i*a.c+k]
			if av == 0 {
				continue // skip zero for performance
			}
			for j = 0; j < b.c; j++ {
				res.data[i*b.c+j] += av * b.data[k*b.c+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns of m swapped.
// Complexity: O(r·c).
func Transpose(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(m.c, m.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			res.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return res, nil
}

// SumAll returns the sum of every element of m.
func SumAll(m *Dense) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opSumAll, err)
	}
	var s float64
	for _, v := range m.data {
		s += v
	}

	return s, nil
}
