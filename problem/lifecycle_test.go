// SPDX-License-Identifier: MIT

package problem_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvlopt/engine"
	"github.com/katalvlaran/lvlopt/expr"
	"github.com/katalvlaran/lvlopt/index"
	"github.com/katalvlaran/lvlopt/problem"
)

// countingObserver records every lifecycle measurement.
type countingObserver struct {
	mu       sync.Mutex
	records  int
	compiles int
	statuses []string
}

func (o *countingObserver) ObserveAssembly(records int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = records
}

func (o *countingObserver) ObserveCompile(int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.compiles++
}

func (o *countingObserver) ObserveSolve(status string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = append(o.statuses, status)
}

// LifecycleSuite drives load, assemble and solve over a two-period
// covering model: minimize x subject to x >= d, with d = 3 then 5.
type LifecycleSuite struct {
	suite.Suite
	ix  *index.Index
	obs *countingObserver
	doc problem.Symbolic
}

func (s *LifecycleSuite) SetupTest() {
	t := s.T()
	s.ix = newIndex(t)
	addTable(t, s.ix, "flows", []string{"time"}, product([]string{"t1", "t2"}), nil)
	addTable(t, s.ix, "demand", []string{"time"}, product([]string{"t1", "t2"}), []float64{3, 5})
	one := []index.Axis{{Size: 1}}
	addVariable(t, s.ix, index.Variable{Symbol: "x", Kind: index.Endogenous, Table: "flows", Shape: one, Hierarchy: []string{"T"}})
	addVariable(t, s.ix, index.Variable{Symbol: "d", Kind: index.Exogenous, Table: "demand", Shape: one, Hierarchy: []string{"T"}})
	s.obs = &countingObserver{}
	s.doc = problem.Symbolic{
		Objective:   []string{"Minimize(sum(x))"},
		Constraints: []string{"x >= d"},
	}
}

func (s *LifecycleSuite) model(opts ...problem.Option) *problem.Model {
	m, err := problem.NewModel(s.ix, append([]problem.Option{problem.WithObserver(s.obs)}, opts...)...)
	s.Require().NoError(err)

	return m
}

func (s *LifecycleSuite) assembled(opts ...problem.Option) *problem.Model {
	m := s.model(opts...)
	s.Require().NoError(m.Materialize())
	s.Require().NoError(m.BindAllData())
	ok, err := m.LoadSymbolic(s.doc, false)
	s.Require().NoError(err)
	s.Require().True(ok)
	ok, err = m.Assemble(false)
	s.Require().NoError(err)
	s.Require().True(ok)

	return m
}

func (s *LifecycleSuite) TestAssemble_RecordsPerPartition() {
	m := s.assembled()

	recs := m.Records()
	s.Require().Len(recs, 2)
	s.Equal([]string{"t1"}, recs[0].Key)
	s.Equal("t2", recs[1].Name())
	for _, r := range recs {
		s.Len(r.Constraints, 1)
		s.Equal(expr.Minimize, r.Objective.Sense())
		s.Equal(engine.StatusUnset, r.Status)
		s.Equal(m.Revision(), r.Revision)
	}
	s.Equal(2, s.obs.records)
	s.Equal(4, s.obs.compiles)
	s.False(m.IsRun())
}

func (s *LifecycleSuite) TestAssemble_DeclinedKeepsRecords() {
	m := s.assembled()
	before, revision := m.Records(), m.Revision()

	ok, err := m.Assemble(false)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal(revision, m.Revision())
	after := m.Records()
	s.Require().Len(after, len(before))
	for i := range before {
		s.Same(before[i], after[i])
	}

	ok, err = m.Assemble(true)
	s.Require().NoError(err)
	s.True(ok)
	s.NotEqual(revision, m.Revision())
}

func (s *LifecycleSuite) TestAssemble_ConfirmerConsulted() {
	var prompts []string
	m := s.assembled(problem.WithConfirmer(problem.ConfirmFunc(func(p string) bool {
		prompts = append(prompts, p)

		return true
	})))

	ok, err := m.Assemble(false)
	s.Require().NoError(err)
	s.True(ok)
	s.Len(prompts, 1)
}

func (s *LifecycleSuite) TestAssemble_WithoutSymbolic() {
	m := s.model()
	_, err := m.Assemble(true)
	s.ErrorIs(err, problem.ErrMissingData)
}

func (s *LifecycleSuite) TestAssemble_TypeChecks() {
	tests := []struct {
		name string
		doc  problem.Symbolic
	}{
		{name: "constraint is not a comparison", doc: problem.Symbolic{Constraints: []string{"x + d"}}},
		{name: "objective is a constraint", doc: problem.Symbolic{Objective: []string{"x <= 1"}}},
		{name: "mixed senses", doc: problem.Symbolic{Objective: []string{"Minimize(sum(x))", "Maximize(sum(x))"}}},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			m := s.model()
			_, err := m.LoadSymbolic(tc.doc, false)
			s.Require().NoError(err)
			ok, err := m.Assemble(false)
			s.False(ok)
			s.ErrorIs(err, problem.ErrNumericalProblem)
			s.Empty(m.Records())
		})
	}
}

func (s *LifecycleSuite) TestLoadSymbolic() {
	m := s.model()

	_, err := m.LoadSymbolic(problem.Symbolic{Constraints: []string{"x >= "}}, false)
	s.ErrorIs(err, problem.ErrNumericalProblem)
	_, loaded := m.Symbolic()
	s.False(loaded, "a rejected document is not registered")

	ok, err := m.LoadSymbolic(s.doc, false)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = m.LoadSymbolic(problem.Symbolic{Constraints: []string{"x <= 1"}}, false)
	s.Require().NoError(err)
	s.False(ok)
	doc, _ := m.Symbolic()
	s.Equal(s.doc, doc)

	ok, err = m.LoadSymbolic(problem.Symbolic{Constraints: []string{"x <= 1"}}, true)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *LifecycleSuite) TestSolve_Optimal() {
	m := s.assembled()

	ok, err := m.Solve(context.Background(), problem.SolveOptions{}, false)
	s.Require().NoError(err)
	s.True(ok)
	s.True(m.IsRun())

	want := []float64{3, 5}
	for i, r := range m.Records() {
		s.Equal(engine.StatusOptimal, r.Status)
		s.InDelta(want[i], r.Value, 1e-9)
	}
	sols, err := m.Values("x")
	s.Require().NoError(err)
	s.Require().Len(sols, 2)
	s.Equal([]string{"t2"}, sols[1].Coords)
	s.InDelta(5, sols[1].Value.Flat(0), 1e-9)
	s.Equal([]string{"optimal", "optimal"}, s.obs.statuses)

	_, err = m.Values("d")
	s.ErrorIs(err, problem.ErrConceptualModel)
}

func (s *LifecycleSuite) TestSolve_EmptyConstraintList() {
	for _, objective := range [][]string{nil, {"Minimize(0)"}} {
		m := s.model()
		ok, err := m.LoadSymbolic(problem.Symbolic{Objective: objective, Constraints: []string{}}, true)
		s.Require().NoError(err)
		s.Require().True(ok)
		ok, err = m.Assemble(true)
		s.Require().NoError(err)
		s.Require().True(ok)

		recs := m.Records()
		s.Require().Len(recs, 2)
		for _, r := range recs {
			s.Empty(r.Constraints)
			s.Equal(expr.Minimize, r.Objective.Sense())
		}

		ok, err = m.Solve(context.Background(), problem.SolveOptions{}, true)
		s.Require().NoError(err)
		s.True(ok)
		for _, r := range m.Records() {
			s.Equal(engine.StatusOptimal, r.Status)
			s.InDelta(0, r.Value, 0)
		}
	}
}

func (s *LifecycleSuite) TestSolve_RerunNeedsConfirmation() {
	calls := 0
	eng := engine.Func(func(context.Context, *expr.Problem, engine.Options) (engine.Result, error) {
		calls++

		return engine.Result{Status: engine.StatusInfeasible}, nil
	})
	m := s.assembled(problem.WithEngine(eng))

	ok, err := m.Solve(context.Background(), problem.SolveOptions{}, false)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(2, calls)

	ok, err = m.Solve(context.Background(), problem.SolveOptions{}, false)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal(2, calls)
	s.True(m.IsRun())
	s.Equal(engine.StatusInfeasible, m.Records()[0].Status)

	ok, err = m.Solve(context.Background(), problem.SolveOptions{}, true)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(4, calls)
}

func (s *LifecycleSuite) TestSolve_FailFast() {
	boom := errors.New("license expired")
	calls := 0
	eng := engine.Func(func(context.Context, *expr.Problem, engine.Options) (engine.Result, error) {
		calls++

		return engine.Result{}, boom
	})
	m := s.assembled(problem.WithEngine(eng))

	ok, err := m.Solve(context.Background(), problem.SolveOptions{}, false)
	s.False(ok)
	s.ErrorIs(err, problem.ErrOperational)
	s.ErrorIs(err, boom)
	var me *problem.ModelError
	s.Require().ErrorAs(err, &me)
	s.Equal(index.Filter{{Column: "time", Values: []string{"t1"}}}, me.Partition)

	s.Equal(1, calls)
	recs := m.Records()
	s.Equal(engine.StatusSolverError, recs[0].Status)
	s.Equal(engine.StatusUnset, recs[1].Status)
	s.False(m.IsRun())
}

func (s *LifecycleSuite) TestSolve_UnboundParameter() {
	m := s.model()
	ok, err := m.LoadSymbolic(s.doc, false)
	s.Require().NoError(err)
	s.Require().True(ok)
	ok, err = m.Assemble(false)
	s.Require().NoError(err)
	s.Require().True(ok)

	ok, err = m.Solve(context.Background(), problem.SolveOptions{}, false)
	s.False(ok)
	s.ErrorIs(err, problem.ErrMissingData)
	s.ErrorIs(err, expr.ErrParameterUnset)
	var me *problem.ModelError
	s.Require().ErrorAs(err, &me)
	s.Equal("d", me.Variable)
	s.Equal("t1", me.Partition[0].Values[0])
	s.Empty(s.obs.statuses, "no record reaches the engine")
	for _, r := range m.Records() {
		s.Equal(engine.StatusUnset, r.Status)
	}
}

func (s *LifecycleSuite) TestSolve_Preconditions() {
	m := s.model()
	_, err := m.Solve(context.Background(), problem.SolveOptions{}, true)
	s.ErrorIs(err, problem.ErrOperational)

	m = s.assembled()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err := m.Solve(ctx, problem.SolveOptions{}, true)
	s.False(ok)
	s.ErrorIs(err, problem.ErrOperational)
	s.ErrorIs(err, context.Canceled)
}

func (s *LifecycleSuite) TestWriteReport() {
	m := s.assembled()

	var buf bytes.Buffer
	s.Require().NoError(problem.WriteReport(&buf, m))
	out := buf.String()
	s.Contains(out, "PARTITION")
	s.Contains(out, "unset")
	s.NotContains(out, "\nx\n")

	_, err := m.Solve(context.Background(), problem.SolveOptions{}, false)
	s.Require().NoError(err)
	buf.Reset()
	s.Require().NoError(problem.WriteReport(&buf, m))
	out = buf.String()
	s.Contains(out, "optimal")
	s.Contains(out, "Minimize(sum(x))")
	s.Contains(out, "\nx\n  t1: [")
}

func TestLifecycleSuite(t *testing.T) {
	suite.Run(t, new(LifecycleSuite))
}

// Two periods share a variable indexed by the split Set itself, so every
// partition compiles the same single constraint.
func TestAssemble_SharedVariable(t *testing.T) {
	t.Parallel()
	ix := newIndex(t)
	addTable(t, ix, "flows", []string{"time"}, product([]string{"t1", "t2"}), nil)
	addVariable(t, ix, index.Variable{Symbol: "x", Kind: index.Endogenous, Table: "flows", Shape: []index.Axis{{Set: "T"}}})
	m, err := problem.NewModel(ix)
	require.NoError(t, err)

	_, err = m.LoadSymbolic(problem.Symbolic{Constraints: []string{"x <= 10"}}, false)
	require.NoError(t, err)
	ok, err := m.Assemble(false)
	require.NoError(t, err)
	require.True(t, ok)

	recs := m.Records()
	require.Len(t, recs, 2)
	for _, r := range recs {
		require.Len(t, r.Constraints, 1)
		assert.Equal(t, expr.Shape{Rows: 2, Cols: 1}, r.Constraints[0].Shape())
		assert.Equal(t, "Minimize(0)", r.Objective.String())
	}
}

// A constant declared without a value fails materialization.
func TestAssemble_ConstantWithoutValue(t *testing.T) {
	t.Parallel()
	ix := newIndex(t)
	addVariable(t, ix, index.Variable{Symbol: "k", Kind: index.Constant, Shape: []index.Axis{{Size: 1}}})
	m, err := problem.NewModel(ix)
	require.NoError(t, err)
	_, err = m.LoadSymbolic(problem.Symbolic{Constraints: []string{"k <= 1"}}, false)
	require.NoError(t, err)

	_, err = m.Assemble(false)
	require.ErrorIs(t, err, problem.ErrConfiguration)
	var me *problem.ModelError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "k", me.Variable)
	assert.Empty(t, m.Records())
}

func TestPromptConfirmer(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := problem.NewPromptConfirmer(strings.NewReader("y\nno\n YES \n"), &out)

	assert.True(t, c.Confirm("first?"))
	assert.False(t, c.Confirm("second?"))
	assert.True(t, c.Confirm("third?"))
	assert.False(t, c.Confirm("eof?"), "end of input declines")
	assert.Equal(t, "first? [y/N]: second? [y/N]: third? [y/N]: eof? [y/N]: ", out.String())
}

func TestModelError(t *testing.T) {
	t.Parallel()
	_, err := problem.NewModel(nil)
	require.ErrorIs(t, err, problem.ErrConfiguration)
	assert.Equal(t, "NewModel: problem: configuration error: nil index", err.Error())

	assert.Panics(t, func() { problem.WithEngine(nil) })
	assert.Panics(t, func() { problem.WithConfirmer(nil) })
	assert.Panics(t, func() { problem.WithObserver(nil) })
}
