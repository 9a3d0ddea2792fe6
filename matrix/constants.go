// SPDX-License-Identifier: MIT

package matrix

// Constant generators used by constant-kind model variables.

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf("Identity", err)
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Fill returns a rows×cols matrix with every element equal to v.
func Fill(rows, cols int, v float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf("Fill", err)
	}
	for k := range m.data {
		m.data[k] = v
	}

	return m, nil
}

// Ones returns a rows×cols matrix of ones (a summation vector when one axis is 1).
func Ones(rows, cols int) (*Dense, error) {
	return Fill(rows, cols, 1)
}

// LowerTriangular returns the n×n matrix with ones on and below the diagonal.
// Multiplying a column vector by it yields cumulative sums.
func LowerTriangular(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf("LowerTriangular", err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			m.data[i*n+j] = 1
		}
	}

	return m, nil
}

// UpperTriangular returns the n×n matrix with ones on and above the diagonal.
func UpperTriangular(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf("UpperTriangular", err)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			m.data[i*n+j] = 1
		}
	}

	return m, nil
}
