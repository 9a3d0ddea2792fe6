// SPDX-License-Identifier: MIT

package problem

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/lvlopt/engine"
	"github.com/katalvlaran/lvlopt/expr"
	"github.com/katalvlaran/lvlopt/index"
	"github.com/katalvlaran/lvlopt/matrix"
)

// Solution is the solved value of one endogenous instance.
type Solution struct {
	Coords []string
	Value  *matrix.Dense
}

// Values reads the current values of every instance of an endogenous
// variable.
func (m *Model) Values(symbol string) ([]Solution, error) {
	const op = "Values"
	t, ok := m.tables[symbol]
	if !ok {
		return nil, newError(ErrConfiguration, op, index.ErrUnknownVariable).withVariable(symbol)
	}
	if t.Variable.Kind != index.Endogenous {
		return nil, newError(ErrConceptualModel, op,
			fmt.Errorf("%s variable has no solution", t.Variable.Kind)).withVariable(symbol)
	}
	out := make([]Solution, 0, len(t.Rows))
	for _, row := range t.Rows {
		d, err := row.Object.(*expr.Variable).Value()
		if err != nil {
			return nil, newError(ErrOperational, op, err).withVariable(symbol)
		}
		out = append(out, Solution{Coords: row.Coords, Value: d})
	}

	return out, nil
}

// WriteReport prints the Records table followed by the values of every
// endogenous variable once the model has been run.
func WriteReport(w io.Writer, m *Model) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PARTITION\tCONSTRAINTS\tOBJECTIVE\tSTATUS\tVALUE")
	for _, r := range m.records {
		status, value := string(r.Status), ""
		if r.Status == engine.StatusUnset {
			status = "unset"
		}
		if r.Status == engine.StatusOptimal {
			value = strconv.FormatFloat(r.Value, 'g', 6, 64)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", r.Name(), len(r.Constraints), r.Objective, status, value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !m.run {
		return nil
	}

	for _, v := range m.ix.Variables() {
		if v.Kind != index.Endogenous {
			continue
		}
		sols, err := m.Values(v.Symbol)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", v.Symbol); err != nil {
			return err
		}
		for _, s := range sols {
			coords := strings.Join(s.Coords, "/")
			if coords == "" {
				coords = "-"
			}
			if _, err := fmt.Fprintf(w, "  %s: %v\n", coords, s.Value.Data()); err != nil {
				return err
			}
		}
	}

	return nil
}
