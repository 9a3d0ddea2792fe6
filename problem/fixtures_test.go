// SPDX-License-Identifier: MIT

package problem_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlopt/index"
)

// newIndex returns an Index with three Sets:
//
//	T = {t1, t2}     header "time", split-problem
//	H = {h1, h2, h3} header "hour"
//	P = {a, b, c}    header "plant"
func newIndex(t *testing.T) *index.Index {
	t.Helper()
	ix := index.New()
	require.NoError(t, ix.AddSet(index.Set{Symbol: "T", Header: "time", Members: []string{"t1", "t2"}, SplitProblem: true}))
	require.NoError(t, ix.AddSet(index.Set{Symbol: "H", Header: "hour", Members: []string{"h1", "h2", "h3"}}))
	require.NoError(t, ix.AddSet(index.Set{Symbol: "P", Header: "plant", Members: []string{"a", "b", "c"}}))

	return ix
}

// addTable registers a table whose rows are the given coordinate tuples.
// values, when non-nil, are aligned with rows.
func addTable(t *testing.T, ix *index.Index, name string, columns []string, rows [][]string, values []float64) *index.DataTable {
	t.Helper()
	tbl, err := index.NewDataTable(name, columns)
	require.NoError(t, err)
	for i, r := range rows {
		if values != nil {
			require.NoError(t, tbl.AddRowValue(r, values[i]))
		} else {
			require.NoError(t, tbl.AddRow(r))
		}
	}
	require.NoError(t, ix.AddTable(tbl))

	return tbl
}

func addVariable(t *testing.T, ix *index.Index, v index.Variable) {
	t.Helper()
	require.NoError(t, ix.AddVariable(v))
}

// product returns the cartesian product of the given member lists.
func product(levels ...[]string) [][]string {
	out := [][]string{{}}
	for _, level := range levels {
		var next [][]string
		for _, p := range out {
			for _, m := range level {
				next = append(next, append(append([]string(nil), p...), m))
			}
		}
		out = next
	}

	return out
}
