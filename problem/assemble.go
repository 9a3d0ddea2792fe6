// SPDX-License-Identifier: MIT

package problem

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvlopt/engine"
	"github.com/katalvlaran/lvlopt/expr"
	"github.com/katalvlaran/lvlopt/index"
)

// Symbolic is the symbolic problem document. Objective expressions are
// optional and summed; Constraints may be empty.
type Symbolic struct {
	Objective   []string
	Constraints []string
}

func (s Symbolic) clone() Symbolic {
	return Symbolic{Objective: slices.Clone(s.Objective), Constraints: slices.Clone(s.Constraints)}
}

// Record is one independent subproblem.
type Record struct {
	// Key holds the partition members in split-Set declaration order.
	Key         []string
	Partition   index.Filter
	Constraints []*expr.Constraint
	Objective   *expr.Objective
	Problem     *expr.Problem
	Status      engine.Status
	// Value is the objective value after an optimal solve.
	Value float64
	// Revision identifies the assembly pass that produced the record.
	Revision string
}

// Name renders the partition key, or "-" for an unpartitioned model.
func (r *Record) Name() string {
	if len(r.Key) == 0 {
		return "-"
	}

	return strings.Join(r.Key, "/")
}

// LoadSymbolic registers doc after checking every expression parses.
// Replacing a loaded document needs force or confirmation; a decline
// returns false and keeps the previous document.
func (m *Model) LoadSymbolic(doc Symbolic, force bool) (bool, error) {
	const op = "LoadSymbolic"
	for _, src := range slices.Concat(doc.Objective, doc.Constraints) {
		if err := checkSyntax(src); err != nil {
			return false, newError(ErrNumericalProblem, op, err).withExpression(src)
		}
	}
	if m.symbolic != nil && !m.confirm(force, "Symbolic problem already loaded. Overwrite?") {
		m.log.Info("symbolic problem kept", "reason", "overwrite declined")

		return false, nil
	}
	c := doc.clone()
	m.symbolic = &c
	m.log.V(1).Info("symbolic problem loaded", "objectives", len(doc.Objective), "constraints", len(doc.Constraints))

	return true, nil
}

// Assemble builds one Record per split-problem partition. Existing
// Records are replaced only with force or confirmation; a decline returns
// false and leaves them untouched. Records are swapped in only when every
// partition compiles.
func (m *Model) Assemble(force bool) (bool, error) {
	const op = "Assemble"
	if m.symbolic == nil {
		return false, newError(ErrMissingData, op, fmt.Errorf("no symbolic problem loaded"))
	}
	if len(m.records) > 0 && !m.confirm(force, "Numerical problems already assembled. Overwrite?") {
		m.log.Info("numerical problems kept", "reason", "overwrite declined")

		return false, nil
	}
	if err := m.Materialize(); err != nil {
		return false, err
	}

	start := time.Now()
	revision := uuid.NewString()
	var records []*Record
	for _, key := range m.partitions() {
		rec, err := m.assemblePartition(key)
		if err != nil {
			return false, err
		}
		rec.Revision = revision
		records = append(records, rec)
	}

	m.records = records
	m.revision = revision
	m.run = false
	m.opts.Observer.ObserveAssembly(len(records), time.Since(start))
	m.log.Info("numerical problems assembled", "records", len(records), "revision", revision)

	return true, nil
}

type partitionKey struct {
	members []string
	filter  index.Filter
}

// partitions enumerates split-Set members in declaration order. Without
// split Sets there is a single empty partition.
func (m *Model) partitions() []partitionKey {
	split := m.ix.SplitProblemSets()
	levels := make([][]string, len(split))
	for i, s := range split {
		levels[i] = s.Members
	}
	var out []partitionKey
	for _, tuple := range cartesian(levels) {
		f := make(index.Filter, len(tuple))
		for i, member := range tuple {
			f[i] = index.Criterion{Column: split[i].Header, Values: []string{member}}
		}
		out = append(out, partitionKey{members: tuple, filter: f})
	}

	return out
}

func (m *Model) assemblePartition(key partitionKey) (*Record, error) {
	const op = "Assemble"
	rec := &Record{Key: key.members, Partition: key.filter, Status: engine.StatusUnset}

	for _, src := range m.symbolic.Constraints {
		values, err := m.Compile(src, key.filter)
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			c, ok := v.(*expr.Constraint)
			if !ok {
				return nil, newError(ErrNumericalProblem, op, fmt.Errorf("constraint evaluates to %T", v)).
					withExpression(src).withPartition(key.filter)
			}
			rec.Constraints = append(rec.Constraints, c)
		}
	}

	var objectives []*expr.Objective
	for _, src := range m.symbolic.Objective {
		values, err := m.Compile(src, key.filter)
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			o, ok := v.(*expr.Objective)
			if !ok {
				return nil, newError(ErrNumericalProblem, op, fmt.Errorf("objective evaluates to %T", v)).
					withExpression(src).withPartition(key.filter)
			}
			objectives = append(objectives, o)
		}
	}
	obj, err := expr.SumObjectives(objectives...)
	if err != nil {
		return nil, newError(ErrNumericalProblem, op, err).
			withExpression(strings.Join(m.symbolic.Objective, "; ")).withPartition(key.filter)
	}
	rec.Objective = obj

	p, err := expr.NewProblem(obj, rec.Constraints)
	if err != nil {
		return nil, newError(ErrNumericalProblem, op, err).withPartition(key.filter)
	}
	rec.Problem = p

	return rec, nil
}
