// SPDX-License-Identifier: MIT

package lang

import (
	"fmt"
	"maps"
	"slices"

	"github.com/katalvlaran/lvlopt/expr"
)

// Value is an evaluation result: expr.Expression, *expr.Constraint or
// *expr.Objective.
type Value any

// Env maps identifiers to decision objects for one evaluation.
type Env map[string]expr.Expression

type builtin struct {
	arity int
	call  func(args []expr.Expression) (Value, error)
}

var builtins = map[string]builtin{
	"sum": {1, func(a []expr.Expression) (Value, error) { return expr.Sum(a[0]) }},
	"multiply": {2, func(a []expr.Expression) (Value, error) {
		return expr.Multiply(a[0], a[1])
	}},
	"transpose": {1, func(a []expr.Expression) (Value, error) { return expr.Transpose(a[0]) }},
	"Minimize": {1, func(a []expr.Expression) (Value, error) {
		return expr.NewObjective(expr.Minimize, a[0])
	}},
	"Maximize": {1, func(a []expr.Expression) (Value, error) {
		return expr.NewObjective(expr.Maximize, a[0])
	}},
}

// IsReserved reports whether name is a builtin and cannot be a symbol.
func IsReserved(name string) bool {
	_, ok := builtins[name]

	return ok
}

// Reserved returns the builtin names in sorted order.
func Reserved() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// Eval evaluates n against env.
func Eval(n Node, env Env) (Value, error) {
	switch n := n.(type) {
	case *Number:
		return expr.Scalar(n.Value), nil

	case *Ident:
		e, ok := env[n.Name]
		if !ok || e == nil {
			return nil, fmt.Errorf("%q at %d: %w", n.Name, n.At, ErrUnknownName)
		}

		return e, nil

	case *Unary:
		x, err := evalOperand(n.X, env)
		if err != nil {
			return nil, err
		}
		if n.Op == PLUS {
			return x, nil
		}

		return expr.Neg(x)

	case *Binary:
		return evalBinary(n, env)

	case *Call:
		b, ok := builtins[n.Fn]
		if !ok {
			return nil, fmt.Errorf("%q at %d: %w", n.Fn, n.At, ErrNotCallable)
		}
		if len(n.Args) != b.arity {
			return nil, fmt.Errorf("%s takes %d, got %d: %w", n.Fn, b.arity, len(n.Args), ErrArity)
		}
		args := make([]expr.Expression, len(n.Args))
		for i, a := range n.Args {
			v, err := evalOperand(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}

		return b.call(args)
	}

	return nil, fmt.Errorf("node %T: %w", n, ErrType)
}

// EvalString parses and evaluates src.
func EvalString(src string, env Env) (Value, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}

	return Eval(n, env)
}

// evalOperand evaluates n and requires an arithmetic result.
func evalOperand(n Node, env Env) (expr.Expression, error) {
	v, err := Eval(n, env)
	if err != nil {
		return nil, err
	}
	e, ok := v.(expr.Expression)
	if !ok {
		return nil, fmt.Errorf("%s is %T, not an expression: %w", n, v, ErrType)
	}

	return e, nil
}

func evalBinary(n *Binary, env Env) (Value, error) {
	x, err := evalOperand(n.X, env)
	if err != nil {
		return nil, err
	}
	y, err := evalOperand(n.Y, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case PLUS:
		return expr.Add(x, y)
	case MINUS:
		return expr.Sub(x, y)
	case STAR:
		return expr.Mul(x, y)
	case SLASH:
		return expr.Divide(x, y)
	case AT:
		return expr.MatMul(x, y)
	case LESS_EQ:
		return expr.NewConstraint(x, expr.LessEqual, y)
	case GREATER_EQ:
		return expr.NewConstraint(x, expr.GreaterEqual, y)
	case EQ:
		return expr.NewConstraint(x, expr.Equal, y)
	}

	return nil, fmt.Errorf("operator %s: %w", n.Op, ErrType)
}
