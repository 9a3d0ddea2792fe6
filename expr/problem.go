// SPDX-License-Identifier: MIT

package expr

import (
	"fmt"
	"strings"
)

// ObjectiveSense is the optimization direction.
type ObjectiveSense int

const (
	// Minimize seeks the smallest objective value.
	Minimize ObjectiveSense = iota
	// Maximize seeks the largest objective value.
	Maximize
)

// String renders the sense as the builtin name.
func (s ObjectiveSense) String() string {
	if s == Maximize {
		return "Maximize"
	}

	return "Minimize"
}

// Objective is a scalar expression with a direction.
type Objective struct {
	sense ObjectiveSense
	expr  Expression
}

// NewObjective returns an objective; e must be 1×1.
func NewObjective(sense ObjectiveSense, e Expression) (*Objective, error) {
	if err := checkOperands("NewObjective", e); err != nil {
		return nil, err
	}
	if !e.Shape().IsScalar() {
		return nil, exprErrorf("NewObjective", fmt.Errorf("%s %s: %w", e, e.Shape(), ErrNotScalar))
	}

	return &Objective{sense: sense, expr: e}, nil
}

// Feasibility returns the constant objective Minimize(0), used when a
// problem declares no objective.
func Feasibility() *Objective {
	return &Objective{sense: Minimize, expr: Scalar(0)}
}

// SumObjectives adds objectives sharing one sense.
func SumObjectives(objs ...*Objective) (*Objective, error) {
	if len(objs) == 0 {
		return Feasibility(), nil
	}
	if objs[0] == nil {
		return nil, exprErrorf("SumObjectives", ErrNilExpression)
	}
	acc := objs[0].expr
	for _, o := range objs[1:] {
		if o == nil {
			return nil, exprErrorf("SumObjectives", ErrNilExpression)
		}
		if o.sense != objs[0].sense {
			return nil, exprErrorf("SumObjectives",
				fmt.Errorf("%s vs %s: %w", objs[0].sense, o.sense, ErrObjectiveSense))
		}
		var err error
		if acc, err = Add(acc, o.expr); err != nil {
			return nil, err
		}
	}

	return &Objective{sense: objs[0].sense, expr: acc}, nil
}

// Sense returns the direction.
func (o *Objective) Sense() ObjectiveSense { return o.sense }

// Expression returns the scalar objective expression.
func (o *Objective) Expression() Expression { return o.expr }

// String renders "Minimize(expr)".
func (o *Objective) String() string { return fmt.Sprintf("%s(%s)", o.sense, o.expr) }

// Value evaluates the objective at the current cell values.
func (o *Objective) Value() (float64, error) {
	d, err := Value(o.expr)
	if err != nil {
		return 0, err
	}

	return d.Flat(0), nil
}

// Problem is one solvable unit: an objective and its constraints.
type Problem struct {
	objective   *Objective
	constraints []*Constraint
}

// NewProblem bundles obj with cons. A nil objective is replaced by
// Feasibility.
func NewProblem(obj *Objective, cons []*Constraint) (*Problem, error) {
	if obj == nil {
		obj = Feasibility()
	}
	for i, c := range cons {
		if c == nil {
			return nil, exprErrorf("NewProblem", fmt.Errorf("constraint %d: %w", i, ErrNilExpression))
		}
	}
	cc := make([]*Constraint, len(cons))
	copy(cc, cons)

	return &Problem{objective: obj, constraints: cc}, nil
}

// Objective returns the problem objective.
func (p *Problem) Objective() *Objective { return p.objective }

// Constraints returns a copy of the constraint list.
func (p *Problem) Constraints() []*Constraint {
	out := make([]*Constraint, len(p.constraints))
	copy(out, p.constraints)

	return out
}

// Variables returns the distinct decision slices referenced anywhere in p.
func (p *Problem) Variables() []*Variable {
	var out []*Variable
	seen := make(map[*Variable]struct{})
	add := func(e Expression) {
		for _, v := range Variables(e) {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	add(p.objective.expr)
	for _, c := range p.constraints {
		add(c.lhs)
		add(c.rhs)
	}

	return out
}

// String renders the objective followed by one constraint per line.
func (p *Problem) String() string {
	var b strings.Builder
	b.WriteString(p.objective.String())
	for _, c := range p.constraints {
		b.WriteString("\n  s.t. ")
		b.WriteString(c.String())
	}

	return b.String()
}
