// SPDX-License-Identifier: MIT

package problem

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/lvlopt/expr"
	"github.com/katalvlaran/lvlopt/index"
	"github.com/katalvlaran/lvlopt/lang"
)

// Compile evaluates src once, or once per allowed member of the common
// intra Set of its non-constant variables, with identifiers resolved to the
// decision objects selected by partition.
//
// Stages:
//  1. Parse and collect identifiers; builtins are excluded.
//  2. Look up each identifier's instance table and split constants from
//     non-constant variables.
//  3. Determine the common intra Set; differing designations fail.
//  4. Without an intra Set resolve one object per identifier and evaluate
//     once. With one, check the carriers restrict the same members and
//     evaluate per member.
func (m *Model) Compile(src string, partition index.Filter) ([]lang.Value, error) {
	const op = "Compile"
	fail := func(kind error, err error) error {
		return newError(kind, op, err).withExpression(src).withPartition(partition)
	}
	if m.tables == nil {
		return nil, fail(ErrMissingData, errors.New("model not materialized"))
	}

	// 1. parse
	node, err := lang.Parse(src)
	if err != nil {
		return nil, fail(ErrNumericalProblem, err)
	}
	symbols := lang.Identifiers(node)

	// 2. resolve tables
	tables := make([]*InstanceTable, 0, len(symbols))
	var dynamic []*InstanceTable
	for _, sym := range symbols {
		t, ok := m.tables[sym]
		if !ok {
			return nil, fail(ErrNumericalProblem, fmt.Errorf("%q: %w", sym, lang.ErrUnknownName))
		}
		tables = append(tables, t)
		if !t.Variable.IsConstant() {
			dynamic = append(dynamic, t)
		}
	}

	// 3. common intra set
	intra, err := commonIntra(dynamic)
	if err != nil {
		return nil, fail(ErrConceptualModel, err)
	}

	eval := func(extra *index.Criterion) (lang.Value, error) {
		env := make(lang.Env, len(tables))
		for _, t := range tables {
			obj, err := resolve(t, partition, extra)
			if err != nil {
				return nil, newError(ErrConceptualModel, op, err).
					withVariable(t.Variable.Symbol).withExpression(src).withPartition(partition)
			}
			env[t.Variable.Symbol] = obj
		}
		v, err := lang.Eval(node, env)
		if err != nil {
			return nil, fail(ErrNumericalProblem, err)
		}

		return v, nil
	}

	// 4. evaluate
	var results []lang.Value
	if intra == "" {
		v, err := eval(nil)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	} else {
		set, _ := m.ix.Set(intra)
		members, err := m.intraMembers(dynamic, intra)
		if err != nil {
			return nil, fail(ErrConfiguration, err)
		}
		for _, member := range members {
			v, err := eval(&index.Criterion{Column: set.Header, Values: []string{member}})
			if err != nil {
				return nil, err
			}
			results = append(results, v)
		}
	}
	if len(results) == 0 {
		return nil, fail(ErrNumericalProblem, errors.New("expression produced no results"))
	}
	m.opts.Observer.ObserveCompile(len(results))
	m.log.V(2).Info("compiled", "expression", src, "partition", partition.String(),
		"intra", intra, "results", len(results))

	return results, nil
}

// commonIntra returns the single intra Set designated among tables, or ""
// when none is.
func commonIntra(tables []*InstanceTable) (string, error) {
	intra, owner := "", ""
	for _, t := range tables {
		v := t.Variable
		if v.Intra == "" {
			continue
		}
		if intra == "" {
			intra, owner = v.Intra, v.Symbol
			continue
		}
		if v.Intra != intra {
			return "", fmt.Errorf("intra sets differ: %s uses %s, %s uses %s", owner, intra, v.Symbol, v.Intra)
		}
	}

	return intra, nil
}

// intraMembers returns the members of intra shared by every variable that
// designates it. The lists must be equal as sets; the result follows Set
// order.
func (m *Model) intraMembers(tables []*InstanceTable, intra string) ([]string, error) {
	var want []string
	owner := ""
	for _, t := range tables {
		v := t.Variable
		if v.Intra != intra {
			continue
		}
		got, err := m.ix.Members(v, intra)
		if err != nil {
			return nil, err
		}
		if owner == "" {
			want, owner = got, v.Symbol
			continue
		}
		if !sameMembers(want, got) {
			return nil, fmt.Errorf("coordinates of %s differ: %s has %v, %s has %v", intra, owner, want, v.Symbol, got)
		}
	}

	return want, nil
}

func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)

	return slices.Equal(x, y)
}

// resolve returns the single decision object of t matching partition and,
// when given, extra. Criteria on columns t does not carry are ignored, so
// variables not indexed by a partition Set are shared across partitions.
func resolve(t *InstanceTable, partition index.Filter, extra *index.Criterion) (expr.Expression, error) {
	type check struct {
		col    int
		values []string
	}
	var checks []check
	for col, header := range t.Headers {
		if values, ok := partition.Lookup(header); ok {
			checks = append(checks, check{col: col, values: values})
		}
		if extra != nil && extra.Column == header {
			checks = append(checks, check{col: col, values: extra.Values})
		}
	}

	var found *Instance
	count := 0
rows:
	for i := range t.Rows {
		for _, c := range checks {
			if !slices.Contains(c.values, t.Rows[i].Coords[c.col]) {
				continue rows
			}
		}
		if found == nil {
			found = &t.Rows[i]
		}
		count++
	}
	switch {
	case count == 0:
		return nil, errors.New("no instance matches")
	case count > 1:
		return nil, fmt.Errorf("%d instances match, expected one", count)
	}

	return found.Object, nil
}

func checkSyntax(src string) error {
	_, err := lang.Parse(src)

	return err
}
