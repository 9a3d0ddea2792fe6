// SPDX-License-Identifier: MIT

package expr

import (
	"fmt"
)

// Sense is a constraint relation.
type Sense int

const (
	// LessEqual is lhs <= rhs.
	LessEqual Sense = iota
	// GreaterEqual is lhs >= rhs.
	GreaterEqual
	// Equal is lhs == rhs.
	Equal
)

// String renders the relation operator.
func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "=="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Constraint is an elementwise relation between two broadcast-compatible
// expressions.
type Constraint struct {
	lhs   Expression
	rhs   Expression
	sense Sense
	shape Shape
}

// NewConstraint builds lhs <sense> rhs.
func NewConstraint(lhs Expression, sense Sense, rhs Expression) (*Constraint, error) {
	if err := checkOperands("NewConstraint", lhs, rhs); err != nil {
		return nil, err
	}
	s, err := broadcastShape(lhs.Shape(), rhs.Shape())
	if err != nil {
		return nil, exprErrorf("NewConstraint", err)
	}

	return &Constraint{lhs: lhs, rhs: rhs, sense: sense, shape: s}, nil
}

// Lhs returns the left operand.
func (c *Constraint) Lhs() Expression { return c.lhs }

// Rhs returns the right operand.
func (c *Constraint) Rhs() Expression { return c.rhs }

// Sense returns the relation.
func (c *Constraint) Sense() Sense { return c.sense }

// Shape returns the broadcast shape; one row per element.
func (c *Constraint) Shape() Shape { return c.shape }

// String renders "lhs <sense> rhs".
func (c *Constraint) String() string {
	return fmt.Sprintf("%s %s %s", c.lhs, c.sense, c.rhs)
}

// Row is one scalar relation Σ Coef[cell]·cell <sense> RHS.
type Row struct {
	Coef  map[Cell]float64
	Sense Sense
	RHS   float64
}

// Rows canonicalizes lhs - rhs and returns one Row per element in
// row-major order.
func (c *Constraint) Rows() ([]Row, error) {
	diff, err := Sub(c.lhs, c.rhs)
	if err != nil {
		return nil, err
	}
	a, err := Canonicalize(diff)
	if err != nil {
		return nil, exprErrorf("Constraint.Rows", err)
	}
	rows := make([]Row, a.Len())
	for k := range rows {
		l := a.Flat(k)
		rows[k] = Row{Coef: l.Coef, Sense: c.sense, RHS: -l.Const}
	}

	return rows, nil
}

// Violation returns the largest amount by which the current cell values
// break the constraint; 0 when satisfied.
func (c *Constraint) Violation() (float64, error) {
	rows, err := c.Rows()
	if err != nil {
		return 0, err
	}
	worst := 0.0
	for _, r := range rows {
		lhs := Linear{Coef: r.Coef}.Eval()
		var v float64
		switch r.Sense {
		case LessEqual:
			v = lhs - r.RHS
		case GreaterEqual:
			v = r.RHS - lhs
		default:
			v = lhs - r.RHS
			if v < 0 {
				v = -v
			}
		}
		if v > worst {
			worst = v
		}
	}

	return worst, nil
}
