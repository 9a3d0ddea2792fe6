// SPDX-License-Identifier: MIT

package index

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvlopt/expr"
)

// Index registers Sets, Variables and DataTables in declaration order.
type Index struct {
	sets      []*Set
	setBySym  map[string]*Set
	headers   map[string]string
	vars      []*Variable
	varBySym  map[string]*Variable
	tables    map[string]*DataTable
	tableList []string
	tensors   map[string]*expr.Arena
	sealed    bool
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		setBySym: make(map[string]*Set),
		headers:  make(map[string]string),
		varBySym: make(map[string]*Variable),
		tables:   make(map[string]*DataTable),
		tensors:  make(map[string]*expr.Arena),
	}
}

// AddSet registers s. Symbols and headers are unique; members are
// non-empty and unique.
func (ix *Index) AddSet(s Set) error {
	if ix.sealed {
		return indexErrorf("AddSet", ErrSealed)
	}
	if s.Symbol == "" || s.Header == "" || len(s.Members) == 0 {
		return indexErrorf("AddSet", fmt.Errorf("set %q needs symbol, header and members: %w", s.Symbol, ErrInvalidSet))
	}
	if _, dup := ix.setBySym[s.Symbol]; dup {
		return indexErrorf("AddSet", fmt.Errorf("set %s: %w", s.Symbol, ErrDuplicate))
	}
	if owner, dup := ix.headers[s.Header]; dup {
		return indexErrorf("AddSet", fmt.Errorf("header %s of %s already used by %s: %w", s.Header, s.Symbol, owner, ErrDuplicate))
	}
	seen := make(map[string]struct{}, len(s.Members))
	for _, m := range s.Members {
		if _, dup := seen[m]; dup {
			return indexErrorf("AddSet", fmt.Errorf("set %s member %q: %w", s.Symbol, m, ErrDuplicate))
		}
		seen[m] = struct{}{}
	}
	c := s
	c.Members = append([]string(nil), s.Members...)
	ix.sets = append(ix.sets, &c)
	ix.setBySym[c.Symbol] = &c
	ix.headers[c.Header] = c.Symbol

	return nil
}

// AddVariable validates the structural references of v and registers it.
// Constant literals and table existence are checked at materialization.
func (ix *Index) AddVariable(v Variable) error {
	if ix.sealed {
		return indexErrorf("AddVariable", ErrSealed)
	}
	fail := func(format string, args ...any) error {
		return indexErrorf("AddVariable", fmt.Errorf("variable %s: "+format, append([]any{v.Symbol}, args...)...))
	}
	if v.Symbol == "" {
		return fail("empty symbol: %w", ErrInvalidVariable)
	}
	if _, dup := ix.varBySym[v.Symbol]; dup {
		return fail("%w", ErrDuplicate)
	}
	if _, ok := kindNames[v.Kind]; !ok {
		return fail("kind %d: %w", int(v.Kind), ErrInvalidVariable)
	}
	if len(v.Shape) == 0 || len(v.Shape) > 2 {
		return fail("%d shape axes: %w", len(v.Shape), ErrInvalidVariable)
	}

	inHierarchy := make(map[string]struct{}, len(v.Hierarchy))
	for _, sym := range v.Hierarchy {
		if _, ok := ix.setBySym[sym]; !ok {
			return fail("hierarchy set %s: %w", sym, ErrUnknownSet)
		}
		if _, dup := inHierarchy[sym]; dup {
			return fail("hierarchy set %s repeated: %w", sym, ErrInvalidVariable)
		}
		inHierarchy[sym] = struct{}{}
	}
	for _, a := range v.Shape {
		switch {
		case a.Set != "":
			if _, ok := ix.setBySym[a.Set]; !ok {
				return fail("shape set %s: %w", a.Set, ErrUnknownSet)
			}
			if _, clash := inHierarchy[a.Set]; clash {
				return fail("set %s is both a shape axis and a hierarchy level: %w", a.Set, ErrInvalidVariable)
			}
		case a.Size <= 0:
			return fail("axis size %d: %w", a.Size, ErrInvalidVariable)
		}
	}
	if len(v.Shape) == 2 && v.Shape[0].Set != "" && v.Shape[0].Set == v.Shape[1].Set {
		return fail("both axes use set %s: %w", v.Shape[0].Set, ErrInvalidVariable)
	}
	if v.Intra != "" {
		if _, ok := inHierarchy[v.Intra]; !ok {
			return fail("intra set %s not in hierarchy: %w", v.Intra, ErrInvalidVariable)
		}
	}
	if v.Kind == Endogenous && v.Table == "" {
		return fail("endogenous variable without table: %w", ErrInvalidVariable)
	}

	coords := make(map[string][]string, len(v.Coordinates))
	for sym, restrict := range v.Coordinates {
		s, ok := ix.setBySym[sym]
		if !ok {
			return fail("coordinates for %s: %w", sym, ErrUnknownSet)
		}
		want := make(map[string]struct{}, len(restrict))
		for _, m := range restrict {
			if !slices.Contains(s.Members, m) {
				return fail("coordinate %q of %s: %w", m, sym, ErrUnknownMember)
			}
			want[m] = struct{}{}
		}
		if len(want) == 0 {
			return fail("empty restriction for %s: %w", sym, ErrInvalidVariable)
		}
		ordered := make([]string, 0, len(want))
		for _, m := range s.Members {
			if _, ok := want[m]; ok {
				ordered = append(ordered, m)
			}
		}
		coords[sym] = ordered
	}

	c := v
	c.Shape = append([]Axis(nil), v.Shape...)
	c.Hierarchy = append([]string(nil), v.Hierarchy...)
	c.Coordinates = coords
	ix.vars = append(ix.vars, &c)
	ix.varBySym[c.Symbol] = &c

	return nil
}

// AddTable registers t under its name.
func (ix *Index) AddTable(t *DataTable) error {
	if ix.sealed {
		return indexErrorf("AddTable", ErrSealed)
	}
	if t == nil {
		return indexErrorf("AddTable", ErrUnknownTable)
	}
	if _, dup := ix.tables[t.name]; dup {
		return indexErrorf("AddTable", fmt.Errorf("table %s: %w", t.name, ErrDuplicate))
	}
	ix.tables[t.name] = t
	ix.tableList = append(ix.tableList, t.name)

	return nil
}

// Set returns the Set with the given symbol.
func (ix *Index) Set(symbol string) (*Set, bool) {
	s, ok := ix.setBySym[symbol]

	return s, ok
}

// Sets returns all Sets in declaration order.
func (ix *Index) Sets() []*Set { return slices.Clone(ix.sets) }

// SplitProblemSets returns the split-problem Sets in declaration order.
func (ix *Index) SplitProblemSets() []*Set {
	var out []*Set
	for _, s := range ix.sets {
		if s.SplitProblem {
			out = append(out, s)
		}
	}

	return out
}

// Variable returns the Variable with the given symbol.
func (ix *Index) Variable(symbol string) (*Variable, bool) {
	v, ok := ix.varBySym[symbol]

	return v, ok
}

// Variables returns all Variables in declaration order.
func (ix *Index) Variables() []*Variable { return slices.Clone(ix.vars) }

// Table returns the DataTable with the given name.
func (ix *Index) Table(name string) (*DataTable, bool) {
	t, ok := ix.tables[name]

	return t, ok
}

// Tables returns the table names in registration order.
func (ix *Index) Tables() []string { return slices.Clone(ix.tableList) }

// Members returns the members of Set symbol available to v: its
// restriction if present, otherwise every member.
func (ix *Index) Members(v *Variable, symbol string) ([]string, error) {
	if r, ok := v.Coordinates[symbol]; ok {
		return slices.Clone(r), nil
	}
	s, ok := ix.setBySym[symbol]
	if !ok {
		return nil, indexErrorf("Members", fmt.Errorf("%s: %w", symbol, ErrUnknownSet))
	}

	return slices.Clone(s.Members), nil
}

// Shape resolves v's declared axes to a concrete shape. A single axis
// (n,) becomes n×1.
func (ix *Index) Shape(v *Variable) (expr.Shape, error) {
	dims := [2]int{1, 1}
	for i, a := range v.Shape {
		if a.Set == "" {
			dims[i] = a.Size
			continue
		}
		m, err := ix.Members(v, a.Set)
		if err != nil {
			return expr.Shape{}, err
		}
		dims[i] = len(m)
	}

	return expr.Shape{Rows: dims[0], Cols: dims[1]}, nil
}

// Tensor returns the shared decision arena of table name, allocating it
// with one cell per table row on first use.
func (ix *Index) Tensor(name string) (*expr.Arena, error) {
	if a, ok := ix.tensors[name]; ok {
		return a, nil
	}
	t, ok := ix.tables[name]
	if !ok {
		return nil, indexErrorf("Tensor", fmt.Errorf("%s: %w", name, ErrUnknownTable))
	}
	a, err := expr.NewArena(name, t.Len())
	if err != nil {
		return nil, indexErrorf("Tensor", err)
	}
	ix.tensors[name] = a

	return a, nil
}

// Seal freezes the Index and all registered tables.
func (ix *Index) Seal() {
	ix.sealed = true
	for _, t := range ix.tables {
		t.sealed = true
	}
}

// Sealed reports whether Seal was called.
func (ix *Index) Sealed() bool { return ix.sealed }
