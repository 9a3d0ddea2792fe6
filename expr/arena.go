// SPDX-License-Identifier: MIT

package expr

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvlopt/matrix"
)

// Arena is a flat block of decision cells shared by every Variable sliced
// from it. Solved values are written into the arena once and observed by all
// slices.
type Arena struct {
	name   string
	values []float64
}

// NewArena allocates an arena of size cells initialised to zero.
func NewArena(name string, size int) (*Arena, error) {
	if size <= 0 {
		return nil, exprErrorf("NewArena", fmt.Errorf("%s size %d: %w", name, size, ErrInvalidShape))
	}

	return &Arena{name: name, values: make([]float64, size)}, nil
}

// Name returns the arena identifier.
func (a *Arena) Name() string { return a.name }

// Len returns the number of cells.
func (a *Arena) Len() int { return len(a.values) }

// At returns the value of cell i.
func (a *Arena) At(i int) (float64, error) {
	if i < 0 || i >= len(a.values) {
		return 0, exprErrorf("Arena.At", fmt.Errorf("%s[%d]: %w", a.name, i, ErrIndexOutOfRange))
	}

	return a.values[i], nil
}

// Set stores v into cell i.
func (a *Arena) Set(i int, v float64) error {
	if i < 0 || i >= len(a.values) {
		return exprErrorf("Arena.Set", fmt.Errorf("%s[%d]: %w", a.name, i, ErrIndexOutOfRange))
	}
	a.values[i] = v

	return nil
}

// Values returns a copy of all cell values.
func (a *Arena) Values() []float64 {
	out := make([]float64, len(a.values))
	copy(out, a.values)

	return out
}

// Cell returns the handle of cell i. The index is not validated.
func (a *Arena) Cell(i int) Cell { return Cell{arena: a, index: i} }

// Slice returns a Variable of the given shape viewing the listed cells in
// row-major order. len(indices) must equal shape.Size().
func (a *Arena) Slice(name string, indices []int, shape Shape) (*Variable, error) {
	if !shape.Valid() {
		return nil, exprErrorf("Arena.Slice", fmt.Errorf("%s %s: %w", name, shape, ErrInvalidShape))
	}
	if len(indices) != shape.Size() {
		return nil, exprErrorf("Arena.Slice",
			fmt.Errorf("%s: %d cells for shape %s: %w", name, len(indices), shape, ErrShapeMismatch))
	}
	for _, i := range indices {
		if i < 0 || i >= len(a.values) {
			return nil, exprErrorf("Arena.Slice", fmt.Errorf("%s[%d]: %w", a.name, i, ErrIndexOutOfRange))
		}
	}
	idx := make([]int, len(indices))
	copy(idx, indices)

	return &Variable{name: name, arena: a, indices: idx, shape: shape}, nil
}

// Cell identifies one arena cell. Cells are comparable and serve as LP
// column keys.
type Cell struct {
	arena *Arena
	index int
}

// Arena returns the owning arena.
func (c Cell) Arena() *Arena { return c.arena }

// Index returns the cell offset within its arena.
func (c Cell) Index() int { return c.index }

// Value returns the current cell value.
func (c Cell) Value() float64 { return c.arena.values[c.index] }

// SetValue writes v into the cell.
func (c Cell) SetValue(v float64) { c.arena.values[c.index] = v }

// String renders the cell as name[index].
func (c Cell) String() string { return fmt.Sprintf("%s[%d]", c.arena.name, c.index) }

// CompareCells orders cells by arena name, then by index.
func CompareCells(x, y Cell) int {
	if c := strings.Compare(x.arena.name, y.arena.name); c != 0 {
		return c
	}

	return cmp.Compare(x.index, y.index)
}

// Variable is a shaped view over arena cells.
type Variable struct {
	name    string
	arena   *Arena
	indices []int
	shape   Shape
}

// Name returns the symbol this slice was created for.
func (v *Variable) Name() string { return v.name }

// Shape returns the slice shape.
func (v *Variable) Shape() Shape { return v.shape }

// String returns the variable name.
func (v *Variable) String() string { return v.name }

// Arena returns the arena the slice views.
func (v *Variable) Arena() *Arena { return v.arena }

// Indices returns a copy of the arena offsets in row-major order.
func (v *Variable) Indices() []int {
	out := make([]int, len(v.indices))
	copy(out, v.indices)

	return out
}

// Value reads the current cell values into a Dense of the slice shape.
func (v *Variable) Value() (*matrix.Dense, error) {
	data := make([]float64, len(v.indices))
	for k, i := range v.indices {
		data[k] = v.arena.values[i]
	}

	return matrix.NewDenseFrom(v.shape.Rows, v.shape.Cols, data)
}

// SetValue writes d through into the arena. d must match the slice shape.
func (v *Variable) SetValue(d *matrix.Dense) error {
	if d == nil {
		return exprErrorf("Variable.SetValue", matrix.ErrNilMatrix)
	}
	if d.Rows() != v.shape.Rows || d.Cols() != v.shape.Cols {
		return exprErrorf("Variable.SetValue",
			fmt.Errorf("%s %s vs %dx%d: %w", v.name, v.shape, d.Rows(), d.Cols(), ErrShapeMismatch))
	}
	for k, i := range v.indices {
		v.arena.values[i] = d.Flat(k)
	}

	return nil
}

func (v *Variable) affine() (*Affine, error) {
	out := newAffine(v.shape)
	for k, i := range v.indices {
		out.cells[k] = Linear{Coef: map[Cell]float64{{arena: v.arena, index: i}: 1}}
	}

	return out, nil
}
