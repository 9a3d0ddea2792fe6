// SPDX-License-Identifier: MIT

package expr

import (
	"slices"

	"github.com/katalvlaran/lvlopt/matrix"
)

// Linear is one affine form: Σ Coef[cell]·cell + Const.
// A nil or empty Coef means the form is constant.
type Linear struct {
	Coef  map[Cell]float64
	Const float64
}

// IsConstant reports whether l has no variable terms.
func (l Linear) IsConstant() bool { return len(l.Coef) == 0 }

// Cells returns the referenced cells in CompareCells order.
func (l Linear) Cells() []Cell {
	out := make([]Cell, 0, len(l.Coef))
	for c := range l.Coef {
		out = append(out, c)
	}
	slices.SortFunc(out, CompareCells)

	return out
}

// Eval returns the form's value at the current cell values.
func (l Linear) Eval() float64 {
	s := l.Const
	for c, k := range l.Coef {
		s += k * c.Value()
	}

	return s
}

func (l Linear) scaled(alpha float64) Linear {
	out := Linear{Const: l.Const * alpha}
	if alpha == 0 || len(l.Coef) == 0 {
		return out
	}
	out.Coef = make(map[Cell]float64, len(l.Coef))
	for c, k := range l.Coef {
		out.Coef[c] = k * alpha
	}

	return out
}

// combine returns x + sign·y; exactly cancelled terms are dropped.
func combine(x, y Linear, sign float64) Linear {
	out := Linear{Const: x.Const + sign*y.Const}
	if len(x.Coef)+len(y.Coef) == 0 {
		return out
	}
	out.Coef = make(map[Cell]float64, len(x.Coef)+len(y.Coef))
	for c, k := range x.Coef {
		out.Coef[c] = k
	}
	for c, k := range y.Coef {
		if v := out.Coef[c] + sign*k; v != 0 {
			out.Coef[c] = v
		} else {
			delete(out.Coef, c)
		}
	}

	return out
}

// Affine is the canonical form of an expression: one Linear per element,
// stored row-major.
type Affine struct {
	shape Shape
	cells []Linear
}

func newAffine(s Shape) *Affine {
	return &Affine{shape: s, cells: make([]Linear, s.Size())}
}

func constAffine(d *matrix.Dense) *Affine {
	out := newAffine(Shape{Rows: d.Rows(), Cols: d.Cols()})
	for k := range out.cells {
		out.cells[k].Const = d.Flat(k)
	}

	return out
}

// Canonicalize lowers e into its affine form. Parameters must be bound.
func Canonicalize(e Expression) (*Affine, error) {
	if e == nil {
		return nil, exprErrorf("Canonicalize", ErrNilExpression)
	}
	a, err := e.affine()
	if err != nil {
		return nil, exprErrorf("Canonicalize", err)
	}

	return a, nil
}

// Shape returns the element grid shape.
func (a *Affine) Shape() Shape { return a.shape }

// Len returns the number of elements.
func (a *Affine) Len() int { return len(a.cells) }

// Flat returns element k in row-major order.
func (a *Affine) Flat(k int) Linear { return a.cells[k] }

// At returns element (i, j).
func (a *Affine) At(i, j int) Linear { return a.cells[i*a.shape.Cols+j] }

// IsConstant reports whether no element references a cell.
func (a *Affine) IsConstant() bool {
	for _, l := range a.cells {
		if !l.IsConstant() {
			return false
		}
	}

	return true
}

// Eval evaluates every element at the current cell values.
func (a *Affine) Eval() (*matrix.Dense, error) {
	data := make([]float64, len(a.cells))
	for k, l := range a.cells {
		data[k] = l.Eval()
	}

	return matrix.NewDenseFrom(a.shape.Rows, a.shape.Cols, data)
}

// Value canonicalizes e and evaluates it at the current cell values.
// After a solve this reads back optimal values of any expression.
func Value(e Expression) (*matrix.Dense, error) {
	a, err := Canonicalize(e)
	if err != nil {
		return nil, err
	}

	return a.Eval()
}

// element returns the broadcast element k of a for output shape s.
func (a *Affine) element(k int) Linear {
	if a.shape.IsScalar() {
		return a.cells[0]
	}

	return a.cells[k]
}

func addAffine(x, y *Affine, sign float64) (*Affine, error) {
	s, err := broadcastShape(x.shape, y.shape)
	if err != nil {
		return nil, err
	}
	out := newAffine(s)
	for k := range out.cells {
		out.cells[k] = combine(x.element(k), y.element(k), sign)
	}

	return out, nil
}

func scaleAffine(x *Affine, alpha float64) *Affine {
	out := newAffine(x.shape)
	for k, l := range x.cells {
		out.cells[k] = l.scaled(alpha)
	}

	return out
}

// multiplyAffine is the elementwise product; one side must be constant.
func multiplyAffine(x, y *Affine) (*Affine, error) {
	s, err := broadcastShape(x.shape, y.shape)
	if err != nil {
		return nil, err
	}
	if !x.IsConstant() && !y.IsConstant() {
		return nil, ErrNonAffine
	}
	if !x.IsConstant() {
		x, y = y, x
	}
	out := newAffine(s)
	for k := range out.cells {
		out.cells[k] = y.element(k).scaled(x.element(k).Const)
	}

	return out, nil
}

// matmulAffine is the matrix product; one side must be constant.
func matmulAffine(x, y *Affine) (*Affine, error) {
	if x.shape.Cols != y.shape.Rows {
		return nil, ErrShapeMismatch
	}
	xc, yc := x.IsConstant(), y.IsConstant()
	if !xc && !yc {
		return nil, ErrNonAffine
	}
	n := x.shape.Cols
	out := newAffine(Shape{Rows: x.shape.Rows, Cols: y.shape.Cols})
	for i := 0; i < x.shape.Rows; i++ {
		for j := 0; j < y.shape.Cols; j++ {
			acc := Linear{}
			for k := 0; k < n; k++ {
				l, r := x.At(i, k), y.At(k, j)
				var term Linear
				if xc {
					term = r.scaled(l.Const)
				} else {
					term = l.scaled(r.Const)
				}
				acc = combine(acc, term, 1)
			}
			out.cells[i*out.shape.Cols+j] = acc
		}
	}

	return out, nil
}

func transposeAffine(x *Affine) *Affine {
	out := newAffine(Shape{Rows: x.shape.Cols, Cols: x.shape.Rows})
	for i := 0; i < x.shape.Rows; i++ {
		for j := 0; j < x.shape.Cols; j++ {
			out.cells[j*out.shape.Cols+i] = x.cells[i*x.shape.Cols+j]
		}
	}

	return out
}

func sumAffine(x *Affine) *Affine {
	out := newAffine(ScalarShape)
	acc := Linear{}
	for _, l := range x.cells {
		acc = combine(acc, l, 1)
	}
	out.cells[0] = acc

	return out
}
