// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-logr/logr"
	"github.com/spf13/cast"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/lvlopt/expr"
)

const (
	// SolverSimplex is the only algorithm LP provides.
	SolverSimplex = "simplex"

	// SettingTolerance is the reduced-cost tolerance passed to lp.Simplex.
	SettingTolerance = "tolerance"

	defaultTolerance = 1e-10

	// feasTol bounds the violation accepted for constant rows.
	feasTol = 1e-9

	// rankEps scales the singular value cutoff of matrixRank.
	rankEps = 1e-12
)

// LP is the reference engine: dense simplex over free decision cells.
type LP struct {
	log logr.Logger
}

// NewLP returns an LP engine logging to log.
func NewLP(log logr.Logger) *LP {
	return &LP{log: log.WithName("lp")}
}

// program is the general-form LP assembled from one problem.
type program struct {
	cols  []expr.Cell
	c     []float64
	g     [][]float64
	h     []float64
	a     [][]float64
	b     []float64
	extra bool // objective references a cell no constraint touches
}

// Solve implements Engine.
func (e *LP) Solve(ctx context.Context, p *expr.Problem, opts Options) (Result, error) {
	if p == nil {
		return Result{Status: StatusSolverError}, ErrNilProblem
	}
	if err := ctx.Err(); err != nil {
		return Result{Status: StatusSolverError}, err
	}
	tol, err := tolerance(opts)
	if err != nil {
		return Result{Status: StatusSolverError}, err
	}
	log := e.log
	if !opts.Verbose {
		log = log.V(1)
	}

	prog, feasible, err := build(p)
	if err != nil {
		return Result{Status: StatusSolverError}, fmt.Errorf("%w: %w", ErrSolverFailure, err)
	}
	if !feasible {
		log.Info("constant constraint violated", "status", StatusInfeasible)

		return Result{Status: StatusInfeasible}, nil
	}
	if prog.extra {
		log.Info("objective depends on unconstrained cells", "status", StatusUnbounded)

		return Result{Status: StatusUnbounded}, nil
	}
	log.Info("solving", "columns", len(prog.cols), "inequalities", len(prog.h), "equalities", len(prog.b))

	x, status, err := prog.solve(tol)
	if err != nil {
		return Result{Status: StatusSolverError}, err
	}
	if status != StatusOptimal {
		log.Info("solve finished", "status", status)

		return Result{Status: status}, nil
	}
	for j, cell := range prog.cols {
		cell.SetValue(x[j])
	}
	obj, err := p.Objective().Value()
	if err != nil {
		return Result{Status: StatusSolverError}, fmt.Errorf("%w: %w", ErrSolverFailure, err)
	}
	log.Info("solve finished", "status", StatusOptimal, "objective", obj)

	return Result{Status: StatusOptimal, Objective: obj}, nil
}

func tolerance(opts Options) (float64, error) {
	if opts.Solver != "" && opts.Solver != SolverSimplex {
		return 0, fmt.Errorf("%q: %w", opts.Solver, ErrUnknownSolver)
	}
	tol := defaultTolerance
	for k, v := range opts.Settings {
		if k != SettingTolerance {
			return 0, fmt.Errorf("%q: %w", k, ErrBadSetting)
		}
		f, err := cast.ToFloat64E(v)
		if err != nil || f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%s=%v: %w", k, v, ErrBadSetting)
		}
		tol = f
	}

	return tol, nil
}

// build lowers p. feasible is false when a constraint without variable
// terms is violated.
func build(p *expr.Problem) (*program, bool, error) {
	type row struct {
		coef map[expr.Cell]float64
		rhs  float64
		eq   bool
	}
	var rows []row
	used := make(map[expr.Cell]struct{})
	for _, c := range p.Constraints() {
		rs, err := c.Rows()
		if err != nil {
			return nil, false, err
		}
		for _, r := range rs {
			if len(r.Coef) == 0 {
				if !constantHolds(r) {
					return nil, false, nil
				}
				continue
			}
			out := row{coef: r.Coef, rhs: r.RHS, eq: r.Sense == expr.Equal}
			if r.Sense == expr.GreaterEqual {
				out.coef = make(map[expr.Cell]float64, len(r.Coef))
				for cell, k := range r.Coef {
					out.coef[cell] = -k
				}
				out.rhs = -r.RHS
			}
			for cell := range out.coef {
				used[cell] = struct{}{}
			}
			rows = append(rows, out)
		}
	}

	prog := &program{}
	for cell := range used {
		prog.cols = append(prog.cols, cell)
	}
	slices.SortFunc(prog.cols, expr.CompareCells)
	col := make(map[expr.Cell]int, len(prog.cols))
	for j, cell := range prog.cols {
		col[cell] = j
	}

	objective, err := expr.Canonicalize(p.Objective().Expression())
	if err != nil {
		return nil, false, err
	}
	sign := 1.0
	if p.Objective().Sense() == expr.Maximize {
		sign = -1
	}
	prog.c = make([]float64, len(prog.cols))
	for cell, k := range objective.Flat(0).Coef {
		j, ok := col[cell]
		if !ok {
			prog.extra = true
			continue
		}
		prog.c[j] = sign * k
	}

	for _, r := range rows {
		dense := make([]float64, len(prog.cols))
		for cell, k := range r.coef {
			dense[col[cell]] = k
		}
		if r.eq {
			prog.a = append(prog.a, dense)
			prog.b = append(prog.b, r.rhs)
		} else {
			prog.g = append(prog.g, dense)
			prog.h = append(prog.h, r.rhs)
		}
	}

	return prog, true, nil
}

func constantHolds(r expr.Row) bool {
	switch r.Sense {
	case expr.LessEqual:
		return 0 <= r.RHS+feasTol
	case expr.GreaterEqual:
		return 0 >= r.RHS-feasTol
	default:
		return math.Abs(r.RHS) <= feasTol
	}
}

func denseOf(rows [][]float64, n int) mat.Matrix {
	if len(rows) == 0 {
		return nil
	}
	data := make([]float64, 0, len(rows)*n)
	for _, r := range rows {
		data = append(data, r...)
	}

	return mat.NewDense(len(rows), n, data)
}

// independentRows keeps the equality rows that raise the rank of a, in
// order. lp.Simplex rejects a singular constraint matrix, so rows that are
// combinations of earlier ones are dropped; consistent is false when such a
// row disagrees on its right-hand side.
func independentRows(a [][]float64, b []float64, n int) (keptA [][]float64, keptB []float64, consistent bool) {
	rank := 0
	for i, row := range a {
		candidate := append(slices.Clone(keptA), row)
		if r := matrixRank(candidate, n); r > rank {
			keptA, keptB, rank = candidate, append(keptB, b[i]), r
			continue
		}
		augmented := make([][]float64, len(candidate))
		for k, c := range candidate {
			rhs := b[i]
			if k < len(keptB) {
				rhs = keptB[k]
			}
			augmented[k] = append(slices.Clone(c), rhs)
		}
		if matrixRank(augmented, n+1) > rank {
			return nil, nil, false
		}
	}

	return keptA, keptB, true
}

// matrixRank counts the singular values above a tolerance relative to the
// largest one.
func matrixRank(rows [][]float64, n int) int {
	var svd mat.SVD
	if !svd.Factorize(denseOf(rows, n), mat.SVDNone) {
		return 0
	}
	values := svd.Values(nil)
	if len(values) == 0 || values[0] == 0 {
		return 0
	}
	tol := values[0] * float64(max(len(rows), n)) * rankEps
	rank := 0
	for _, v := range values {
		if v > tol {
			rank++
		}
	}

	return rank
}

// solve runs the simplex and returns x for the original columns.
func (prog *program) solve(tol float64) (x []float64, status Status, err error) {
	n := len(prog.cols)
	if n == 0 {
		return nil, StatusOptimal, nil
	}
	a, b, consistent := independentRows(prog.a, prog.b, n)
	if !consistent {
		return nil, StatusInfeasible, nil
	}
	defer func() {
		if r := recover(); r != nil {
			x, status, err = nil, StatusSolverError, fmt.Errorf("%w: %v", ErrSolverFailure, r)
		}
	}()

	cNew, aNew, bNew := lp.Convert(prog.c, denseOf(prog.g, n), prog.h, denseOf(a, n), b)
	_, xs, err := lp.Simplex(cNew, aNew, bNew, tol, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return nil, StatusInfeasible, nil
	case errors.Is(err, lp.ErrUnbounded):
		return nil, StatusUnbounded, nil
	case err != nil:
		return nil, StatusSolverError, fmt.Errorf("%w: %w", ErrSolverFailure, err)
	}

	x = make([]float64, n)
	for j := range x {
		x[j] = xs[j] - xs[n+j]
	}

	return x, StatusOptimal, nil
}
