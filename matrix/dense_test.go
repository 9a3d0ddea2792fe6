// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlopt/matrix"
)

// NewFilledDense builds a rows×cols Dense from row-major data or fails the test.
func NewFilledDense(t *testing.T, rows, cols int, data []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows, cols, data)
	require.NoError(t, err)

	return m
}

func TestNewDense_InvalidDimensions(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct{ r, c int }{{0, 1}, {1, 0}, {-1, 2}} {
		_, err := matrix.NewDense(tc.r, tc.c)
		require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
}

func TestNewDenseFrom_LengthMismatch(t *testing.T) {
	t.Parallel()
	_, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 3, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
}

func TestDense_ReshapeRowMajor(t *testing.T) {
	t.Parallel()
	m := NewFilledDense(t, 1, 6, []float64{1, 2, 3, 4, 5, 6})

	r, err := m.Reshape(2, 3)
	require.NoError(t, err)
	v, _ := r.At(1, 0)
	assert.Equal(t, 4.0, v, "row-major: second row starts at flat offset 3")

	_, err = m.Reshape(4, 2)
	require.True(t, errors.Is(err, matrix.ErrDimensionMismatch))
}

func TestDense_CloneIsIndependent(t *testing.T) {
	t.Parallel()
	m := NewFilledDense(t, 1, 2, []float64{1, 2})
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 9))
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
	assert.False(t, m.Equal(c, 0))
}

func TestConstants(t *testing.T) {
	t.Parallel()
	id, err := matrix.Identity(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 1}, id.Data())

	lt, err := matrix.LowerTriangular(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 1, 1, 0, 1, 1, 1}, lt.Data())

	ut, err := matrix.UpperTriangular(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 0, 1}, ut.Data())

	ones, err := matrix.Ones(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, ones.Data())

	_, err = matrix.Identity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
