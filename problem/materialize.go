// SPDX-License-Identifier: MIT

package problem

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlopt/expr"
	"github.com/katalvlaran/lvlopt/index"
	"github.com/katalvlaran/lvlopt/lang"
	"github.com/katalvlaran/lvlopt/matrix"
)

// Instance is one row of an instance table.
type Instance struct {
	// Coords holds one member per hierarchy Set, in hierarchy order.
	Coords []string
	// Object is the decision object: *expr.Variable, *expr.Parameter or
	// *expr.Constant.
	Object expr.Expression
	// Filter selects this instance's rows in the related table: hierarchy
	// headers to their single member, then symbolic shape axes to their
	// member lists.
	Filter index.Filter
}

// InstanceTable is the materialized form of one Variable.
type InstanceTable struct {
	Variable *index.Variable
	Shape    expr.Shape
	// Headers are the hierarchy Set headers, aligned with Instance.Coords.
	Headers []string
	Rows    []Instance
}

// Materialize builds the instance table of v. Endogenous variables slice
// the shared arena of their table, allocated through ix.Tensor.
func Materialize(ix *index.Index, v *index.Variable) (*InstanceTable, error) {
	const op = "Materialize"
	fail := func(kind error, err error) *ModelError {
		return newError(kind, op, err).withVariable(v.Symbol)
	}
	if lang.IsReserved(v.Symbol) {
		return nil, fail(ErrConfiguration, fmt.Errorf("symbol is a builtin, reserved: %v", lang.Reserved()))
	}

	shape, err := ix.Shape(v)
	if err != nil {
		return nil, fail(ErrConfiguration, err)
	}
	out := &InstanceTable{Variable: v, Shape: shape}

	levels := make([][]string, len(v.Hierarchy))
	for i, sym := range v.Hierarchy {
		s, ok := ix.Set(sym)
		if !ok {
			return nil, fail(ErrConfiguration, fmt.Errorf("hierarchy set %s: %w", sym, index.ErrUnknownSet))
		}
		out.Headers = append(out.Headers, s.Header)
		if levels[i], err = ix.Members(v, sym); err != nil {
			return nil, fail(ErrConfiguration, err)
		}
	}
	var axes index.Filter
	for _, a := range v.Shape {
		if a.Set == "" {
			continue
		}
		s, _ := ix.Set(a.Set)
		members, err := ix.Members(v, a.Set)
		if err != nil {
			return nil, fail(ErrConfiguration, err)
		}
		axes = append(axes, index.Criterion{Column: s.Header, Values: members})
	}

	var shared *expr.Constant
	var arena *expr.Arena
	var table *index.DataTable
	switch v.Kind {
	case index.Constant:
		if v.Value == "" {
			return nil, fail(ErrConfiguration, errors.New("constant without value"))
		}
		d, err := constantValue(v.Value, shape)
		if err != nil {
			return nil, fail(ErrConfiguration, err)
		}
		if shared, err = expr.NewConstant(v.Symbol, d); err != nil {
			return nil, fail(ErrConfiguration, err)
		}
	case index.Endogenous:
		var ok bool
		if table, ok = ix.Table(v.Table); !ok {
			return nil, fail(ErrMissingData, fmt.Errorf("source table %q: %w", v.Table, index.ErrUnknownTable))
		}
		if arena, err = ix.Tensor(v.Table); err != nil {
			return nil, fail(ErrMissingData, err)
		}
	case index.Exogenous:
	default:
		return nil, fail(ErrConfiguration, fmt.Errorf("kind %s", v.Kind))
	}

	for _, coords := range cartesian(levels) {
		f := make(index.Filter, 0, len(coords)+len(axes))
		for i, c := range coords {
			f = append(f, index.Criterion{Column: out.Headers[i], Values: []string{c}})
		}
		f = append(f, axes.Clone()...)

		row := Instance{Coords: coords, Filter: f}
		switch v.Kind {
		case index.Constant:
			row.Object = shared
		case index.Exogenous:
			p, err := expr.NewParameter(v.Symbol, shape)
			if err != nil {
				return nil, fail(ErrConfiguration, err)
			}
			row.Object = p
		case index.Endogenous:
			rows, err := table.Query(f)
			if err != nil {
				return nil, fail(ErrMissingData, err).withPartition(f)
			}
			switch {
			case len(rows) == 0:
				return nil, fail(ErrMissingData, errors.New("no table rows match")).withPartition(f)
			case len(rows) != shape.Size():
				return nil, fail(ErrMissingData,
					fmt.Errorf("%d table rows for shape %s", len(rows), shape)).withPartition(f)
			}
			slice, err := arena.Slice(v.Symbol, rows, shape)
			if err != nil {
				return nil, fail(ErrMissingData, err)
			}
			row.Object = slice
		}
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}

// Materialize builds every instance table in declaration order and seals
// the Index. It is a no-op once materialized; a failure leaves the model
// unmaterialized.
func (m *Model) Materialize() error {
	if m.tables != nil {
		return nil
	}
	tables := make(map[string]*InstanceTable)
	for _, v := range m.ix.Variables() {
		t, err := Materialize(m.ix, v)
		if err != nil {
			return err
		}
		tables[v.Symbol] = t
		m.log.V(1).Info("materialized", "variable", v.Symbol, "kind", v.Kind.String(),
			"rows", len(t.Rows), "shape", t.Shape.String())
	}
	m.ix.Seal()
	m.tables = tables

	return nil
}

// BindData assigns table values to every Parameter of the exogenous
// variable symbol. Values are read in the instance filter order, which is
// row-major for the declared shape.
func (m *Model) BindData(symbol string) error {
	const op = "BindData"
	if m.tables == nil {
		return newError(ErrMissingData, op, errors.New("model not materialized")).withVariable(symbol)
	}
	t, ok := m.tables[symbol]
	if !ok {
		return newError(ErrConfiguration, op, index.ErrUnknownVariable).withVariable(symbol)
	}
	v := t.Variable
	if v.Kind != index.Exogenous {
		return newError(ErrConceptualModel, op, fmt.Errorf("%s variable cannot be bound", v.Kind)).withVariable(symbol)
	}
	table, ok := m.ix.Table(v.Table)
	if !ok {
		return newError(ErrMissingData, op, fmt.Errorf("data table %q: %w", v.Table, index.ErrUnknownTable)).withVariable(symbol)
	}

	for _, row := range t.Rows {
		fail := func(err error) error {
			return newError(ErrMissingData, op, err).withVariable(symbol).withPartition(row.Filter)
		}
		idx, err := table.Query(row.Filter)
		if err != nil {
			return fail(err)
		}
		if len(idx) != t.Shape.Size() {
			return fail(fmt.Errorf("%d table rows for shape %s", len(idx), t.Shape))
		}
		data := make([]float64, len(idx))
		for k, i := range idx {
			val, has := table.Value(i)
			if !has {
				return fail(fmt.Errorf("row %v has no value", table.Row(i)))
			}
			data[k] = val
		}
		col, err := matrix.NewDenseFrom(len(data), 1, data)
		if err != nil {
			return fail(err)
		}
		d, err := col.Reshape(t.Shape.Rows, t.Shape.Cols)
		if err != nil {
			return fail(err)
		}
		if err := row.Object.(*expr.Parameter).SetValue(d); err != nil {
			return fail(err)
		}
	}
	m.log.V(1).Info("data bound", "variable", symbol, "instances", len(t.Rows))

	return nil
}

// BindAllData binds every exogenous variable in declaration order.
func (m *Model) BindAllData() error {
	for _, v := range m.ix.Variables() {
		if v.Kind != index.Exogenous {
			continue
		}
		if err := m.BindData(v.Symbol); err != nil {
			return err
		}
	}

	return nil
}

// cartesian returns the product of levels in row-major order. No levels
// yields one empty tuple.
func cartesian(levels [][]string) [][]string {
	out := [][]string{{}}
	for _, level := range levels {
		next := make([][]string, 0, len(out)*len(level))
		for _, prefix := range out {
			for _, m := range level {
				t := make([]string, len(prefix), len(prefix)+1)
				copy(t, prefix)
				next = append(next, append(t, m))
			}
		}
		out = next
	}

	return out
}
