// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/katalvlaran/lvlopt/config"
	"github.com/katalvlaran/lvlopt/engine"
	"github.com/katalvlaran/lvlopt/index"
	"github.com/katalvlaran/lvlopt/problem"
)

const modelYAML = `
sets:
  - {symbol: T, header: time, members: [t1, t2], split_problem: true}
  - {symbol: P, header: plant, members: [a, b]}
tables:
  - name: flows
    columns: [time, plant]
    rows:
      - {coords: [t1, a]}
      - {coords: [t1, b]}
      - {coords: [t2, a]}
      - {coords: [t2, b]}
  - name: demand
    columns: [time]
    rows:
      - {coords: [t1], value: 3}
      - {coords: [t2], value: 5.5}
variables:
  - {symbol: x, kind: endogenous, table: flows, shape: [P], hierarchy: [T]}
  - {symbol: d, kind: exogenous, table: demand, shape: [1], hierarchy: [T]}
  - {symbol: u, kind: constant, shape: [1, P], value: sum_vector}
  - {symbol: k, kind: Constant, shape: [1], value: 2}
problem:
  objective: [Minimize(sum(x))]
  constraints:
    - u @ x >= d
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadModel(t *testing.T) {
	doc, err := config.LoadModel(writeFile(t, "model.yaml", modelYAML))
	require.NoError(t, err)

	require.Len(t, doc.Variables, 4)
	assert.Equal(t, []config.AxisSpec{{Set: "P"}}, doc.Variables[0].Shape)
	assert.Equal(t, []config.AxisSpec{{Size: 1}, {Set: "P"}}, doc.Variables[2].Shape)
	assert.Equal(t, config.Literal("2"), doc.Variables[3].Value)
	require.NotNil(t, doc.Tables[1].Rows[1].Value)
	assert.InDelta(t, 5.5, *doc.Tables[1].Rows[1].Value, 0)
	assert.Nil(t, doc.Tables[0].Rows[0].Value)

	ix, sym, err := doc.Build()
	require.NoError(t, err)
	assert.Equal(t, problem.Symbolic{
		Objective:   []string{"Minimize(sum(x))"},
		Constraints: []string{"u @ x >= d"},
	}, sym)
	k, ok := ix.Variable("k")
	require.True(t, ok)
	assert.Equal(t, index.Constant, k.Kind)
	assert.Len(t, ix.SplitProblemSets(), 1)
	assert.Equal(t, []string{"flows", "demand"}, ix.Tables())
}

func TestLoadModel_BuildsSolvableModel(t *testing.T) {
	doc, err := config.DecodeModel(strings.NewReader(modelYAML))
	require.NoError(t, err)
	ix, sym, err := doc.Build()
	require.NoError(t, err)

	m, err := problem.NewModel(ix)
	require.NoError(t, err)
	require.NoError(t, m.Materialize())
	require.NoError(t, m.BindAllData())
	_, err = m.LoadSymbolic(sym, false)
	require.NoError(t, err)
	ok, err := m.Assemble(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, m.Records(), 2)
}

func TestDecodeModel_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "unknown top-level key", src: "sets: []\nsolver: glpk\nproblem: {constraints: []}\n"},
		{name: "unknown variable key", src: "variables: [{symbol: x, kind: constant, shape: [1], valu: 1}]\nproblem: {constraints: []}\n"},
		{name: "missing constraints", src: "problem: {objective: [Minimize(0)]}\n"},
		{name: "nested shape axis", src: "variables: [{symbol: x, kind: constant, shape: [[1]]}]\nproblem: {constraints: []}\n"},
		{name: "empty document", src: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.DecodeModel(strings.NewReader(tc.src))
			require.ErrorIs(t, err, config.ErrModel)
		})
	}
}

func TestDecodeModel_EmptyConstraints(t *testing.T) {
	src := `
sets:
  - {symbol: T, header: time, members: [t1, t2], split_problem: true}
problem:
  constraints: []
`
	doc, err := config.DecodeModel(strings.NewReader(src))
	require.NoError(t, err)
	require.NotNil(t, doc.Problem.Constraints)
	assert.Empty(t, doc.Problem.Constraints)

	ix, sym, err := doc.Build()
	require.NoError(t, err)
	assert.Empty(t, sym.Objective)
	assert.Empty(t, sym.Constraints)

	m, err := problem.NewModel(ix)
	require.NoError(t, err)
	_, err = m.LoadSymbolic(sym, false)
	require.NoError(t, err)
	ok, err := m.Assemble(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, m.Records(), 2)
}

func TestBuild_ReportsEveryError(t *testing.T) {
	src := `
sets:
  - {symbol: T, header: time, members: [t1, t1]}
tables:
  - name: flows
    columns: [time]
    rows:
      - {coords: [t1, extra]}
variables:
  - {symbol: x, kind: decision, shape: [1]}
  - {symbol: y, kind: endogenous, shape: [Q], table: flows}
problem:
  constraints: []
`
	doc, err := config.DecodeModel(strings.NewReader(src))
	require.NoError(t, err)

	_, _, err = doc.Build()
	require.ErrorIs(t, err, config.ErrModel)
	assert.ErrorIs(t, err, index.ErrDuplicate)
	assert.ErrorIs(t, err, index.ErrRowLength)
	assert.ErrorIs(t, err, index.ErrInvalidVariable)
	assert.ErrorIs(t, err, index.ErrUnknownSet)

	wrapped, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, multierr.Errors(wrapped.Unwrap()[1]), 4)
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := config.LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, engine.SolverSimplex, s.Solver.Name)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "standard", s.Log.Format)
	assert.Empty(t, s.Metrics.File)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	path := writeFile(t, "settings.yaml", `
model:
  name: planning
  path: model.yaml
solver:
  verbose: true
  settings:
    tolerance: 1e-9
log:
  format: json
`)
	t.Setenv("LVLOPT_LOG_LEVEL", "debug")

	s, err := config.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "planning", s.Model.Name)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "model.yaml"), s.Model.Path)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)

	opts := s.SolveOptions()
	assert.True(t, opts.Verbose)
	assert.Equal(t, engine.SolverSimplex, opts.Solver)
	assert.Contains(t, opts.Settings, engine.SettingTolerance)
}

func TestLoadSettings_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "unknown key", src: "solver:\n  name: simplex\n  threads: 4\n"},
		{name: "unknown section", src: "cache:\n  dir: /tmp\n"},
		{name: "bad level", src: "log:\n  level: loud\n"},
		{name: "bad format", src: "log:\n  format: xml\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadSettings(writeFile(t, "settings.yaml", tc.src))
			require.ErrorIs(t, err, config.ErrSettings)
		})
	}

	_, err := config.LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, config.ErrSettings)
}
