// SPDX-License-Identifier: MIT

package index

import (
	"fmt"
	"slices"
	"strings"
)

// DataTable is a named coordinate table. Each row holds one value per
// column and an optional numeric value used for exogenous data binding.
type DataTable struct {
	name    string
	columns []string
	colPos  map[string]int
	rows    [][]string
	values  []float64
	hasVal  []bool
	keys    map[string]struct{}
	sealed  bool
}

// NewDataTable returns an empty table with the given coordinate columns.
func NewDataTable(name string, columns []string) (*DataTable, error) {
	if name == "" || len(columns) == 0 {
		return nil, indexErrorf("NewDataTable", fmt.Errorf("table %q needs a name and columns: %w", name, ErrUnknownColumn))
	}
	pos := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := pos[c]; dup {
			return nil, indexErrorf("NewDataTable", fmt.Errorf("%s column %q: %w", name, c, ErrDuplicate))
		}
		pos[c] = i
	}

	return &DataTable{
		name:    name,
		columns: append([]string(nil), columns...),
		colPos:  pos,
		keys:    make(map[string]struct{}),
	}, nil
}

// Name returns the table name.
func (t *DataTable) Name() string { return t.name }

// Columns returns a copy of the column names.
func (t *DataTable) Columns() []string { return append([]string(nil), t.columns...) }

// Len returns the row count.
func (t *DataTable) Len() int { return len(t.rows) }

// Row returns a copy of row i's coordinates.
func (t *DataTable) Row(i int) []string { return append([]string(nil), t.rows[i]...) }

// Value returns row i's numeric value and whether one was given.
func (t *DataTable) Value(i int) (float64, bool) { return t.values[i], t.hasVal[i] }

// AddRow appends a coordinate row without a value.
func (t *DataTable) AddRow(coords []string) error {
	return t.addRow("AddRow", coords, 0, false)
}

// AddRowValue appends a coordinate row carrying v.
func (t *DataTable) AddRowValue(coords []string, v float64) error {
	return t.addRow("AddRowValue", coords, v, true)
}

func (t *DataTable) addRow(tag string, coords []string, v float64, has bool) error {
	if t.sealed {
		return indexErrorf(tag, fmt.Errorf("table %s: %w", t.name, ErrSealed))
	}
	if len(coords) != len(t.columns) {
		return indexErrorf(tag, fmt.Errorf("table %s: %d values for %d columns: %w",
			t.name, len(coords), len(t.columns), ErrRowLength))
	}
	key := strings.Join(coords, "\x00")
	if _, dup := t.keys[key]; dup {
		return indexErrorf(tag, fmt.Errorf("table %s row %v: %w", t.name, coords, ErrDuplicateRow))
	}
	t.keys[key] = struct{}{}
	t.rows = append(t.rows, append([]string(nil), coords...))
	t.values = append(t.values, v)
	t.hasVal = append(t.hasVal, has)

	return nil
}

// Query returns the indices of rows matching every criterion of f.
// Matches are ordered by criterion order, then by the position of the
// row's value in that criterion's value list. Unknown columns fail.
func (t *DataTable) Query(f Filter) ([]int, error) {
	cols := make([]int, len(f))
	rank := make([]map[string]int, len(f))
	for k, c := range f {
		p, ok := t.colPos[c.Column]
		if !ok {
			return nil, indexErrorf("Query", fmt.Errorf("table %s column %q: %w", t.name, c.Column, ErrUnknownColumn))
		}
		cols[k] = p
		rank[k] = make(map[string]int, len(c.Values))
		for i, v := range c.Values {
			if _, seen := rank[k][v]; !seen {
				rank[k][v] = i
			}
		}
	}

	var out []int
rows:
	for i, row := range t.rows {
		for k := range f {
			if _, ok := rank[k][row[cols[k]]]; !ok {
				continue rows
			}
		}
		out = append(out, i)
	}

	slices.SortStableFunc(out, func(a, b int) int {
		for k := range f {
			ra, rb := rank[k][t.rows[a][cols[k]]], rank[k][t.rows[b][cols[k]]]
			if ra != rb {
				return ra - rb
			}
		}

		return 0
	})

	return out, nil
}
