// SPDX-License-Identifier: MIT

package problem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlopt/expr"
	"github.com/katalvlaran/lvlopt/matrix"
)

// Constant literals recognized for constant-kind variables. Any other
// literal must parse as a number, which fills the declared shape.
const (
	LiteralIdentity        = "identity"
	LiteralOnes            = "ones"
	LiteralSumVector       = "sum_vector"
	LiteralLowerTriangular = "lower_triangular"
	LiteralUpperTriangular = "upper_triangular"
)

func constantValue(literal string, s expr.Shape) (*matrix.Dense, error) {
	square := func(gen func(int) (*matrix.Dense, error)) (*matrix.Dense, error) {
		if s.Rows != s.Cols {
			return nil, fmt.Errorf("%q requires a square shape, got %s", literal, s)
		}

		return gen(s.Rows)
	}

	switch strings.ToLower(strings.TrimSpace(literal)) {
	case LiteralIdentity:
		return square(matrix.Identity)
	case LiteralLowerTriangular:
		return square(matrix.LowerTriangular)
	case LiteralUpperTriangular:
		return square(matrix.UpperTriangular)
	case LiteralOnes, LiteralSumVector:
		return matrix.Ones(s.Rows, s.Cols)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(literal), 64)
	if err != nil {
		return nil, fmt.Errorf("unknown constant literal %q", literal)
	}

	return matrix.Fill(s.Rows, s.Cols, v)
}
