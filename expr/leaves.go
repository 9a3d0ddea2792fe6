// SPDX-License-Identifier: MIT

package expr

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvlopt/matrix"
)

// Parameter holds exogenous data bound after materialization.
type Parameter struct {
	name  string
	shape Shape
	value *matrix.Dense
}

// NewParameter returns an unset parameter of the given shape.
func NewParameter(name string, shape Shape) (*Parameter, error) {
	if !shape.Valid() {
		return nil, exprErrorf("NewParameter", fmt.Errorf("%s %s: %w", name, shape, ErrInvalidShape))
	}

	return &Parameter{name: name, shape: shape}, nil
}

// Name returns the parameter symbol.
func (p *Parameter) Name() string { return p.name }

// Shape returns the declared shape.
func (p *Parameter) Shape() Shape { return p.shape }

// String returns the parameter name.
func (p *Parameter) String() string { return p.name }

// IsSet reports whether data has been bound.
func (p *Parameter) IsSet() bool { return p.value != nil }

// Value returns a copy of the bound data.
func (p *Parameter) Value() (*matrix.Dense, error) {
	if p.value == nil {
		return nil, exprErrorf("Parameter.Value", fmt.Errorf("%s: %w", p.name, ErrParameterUnset))
	}

	return p.value.Clone(), nil
}

// SetValue binds d, which must match the declared shape and be finite.
func (p *Parameter) SetValue(d *matrix.Dense) error {
	if d == nil {
		return exprErrorf("Parameter.SetValue", matrix.ErrNilMatrix)
	}
	if d.Rows() != p.shape.Rows || d.Cols() != p.shape.Cols {
		return exprErrorf("Parameter.SetValue",
			fmt.Errorf("%s %s vs %dx%d: %w", p.name, p.shape, d.Rows(), d.Cols(), ErrShapeMismatch))
	}
	if err := matrix.ValidateFinite(d); err != nil {
		return exprErrorf("Parameter.SetValue", fmt.Errorf("%s: %w", p.name, err))
	}
	p.value = d.Clone()

	return nil
}

func (p *Parameter) affine() (*Affine, error) {
	if p.value == nil {
		return nil, fmt.Errorf("%s: %w", p.name, ErrParameterUnset)
	}

	return constAffine(p.value), nil
}

// Constant is a fixed numeric value.
type Constant struct {
	name  string
	value *matrix.Dense
}

// NewConstant wraps a copy of d. The name is used for rendering; an empty
// name renders the value itself.
func NewConstant(name string, d *matrix.Dense) (*Constant, error) {
	if d == nil {
		return nil, exprErrorf("NewConstant", matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateFinite(d); err != nil {
		return nil, exprErrorf("NewConstant", err)
	}

	return &Constant{name: name, value: d.Clone()}, nil
}

// Scalar returns an unnamed 1×1 constant.
func Scalar(v float64) *Constant {
	return &Constant{value: matrix.NewScalar(v)}
}

// Shape returns the constant shape.
func (c *Constant) Shape() Shape { return Shape{Rows: c.value.Rows(), Cols: c.value.Cols()} }

// Value returns a copy of the data.
func (c *Constant) Value() *matrix.Dense { return c.value.Clone() }

// String renders the name, or the number for unnamed scalars.
func (c *Constant) String() string {
	if c.name != "" {
		return c.name
	}
	if c.value.IsScalar() {
		return strconv.FormatFloat(c.value.Flat(0), 'g', -1, 64)
	}

	return c.value.String()
}

func (c *Constant) affine() (*Affine, error) { return constAffine(c.value), nil }
