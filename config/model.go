// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlopt/index"
	"github.com/katalvlaran/lvlopt/problem"
)

// ModelDocument is the decoded model file.
type ModelDocument struct {
	Sets      []SetSpec      `yaml:"sets"`
	Tables    []TableSpec    `yaml:"tables"`
	Variables []VariableSpec `yaml:"variables"`
	Problem   ProblemSpec    `yaml:"problem"`
}

// SetSpec declares a coordinate Set.
type SetSpec struct {
	Symbol       string   `yaml:"symbol"`
	Header       string   `yaml:"header"`
	Members      []string `yaml:"members"`
	SplitProblem bool     `yaml:"split_problem"`
}

// TableSpec declares a coordinate table.
type TableSpec struct {
	Name    string    `yaml:"name"`
	Columns []string  `yaml:"columns"`
	Rows    []RowSpec `yaml:"rows"`
}

// RowSpec is one coordinate tuple with an optional value.
type RowSpec struct {
	Coords []string `yaml:"coords"`
	Value  *float64 `yaml:"value"`
}

// VariableSpec declares a Variable.
type VariableSpec struct {
	Symbol      string              `yaml:"symbol"`
	Kind        string              `yaml:"kind"`
	Shape       []AxisSpec          `yaml:"shape"`
	Table       string              `yaml:"table"`
	Hierarchy   []string            `yaml:"hierarchy"`
	Intra       string              `yaml:"intra"`
	Coordinates map[string][]string `yaml:"coordinates"`
	Value       Literal             `yaml:"value"`
}

// ProblemSpec is the symbolic problem. Constraints must be present, even
// if empty.
type ProblemSpec struct {
	Objective   []string `yaml:"objective"`
	Constraints []string `yaml:"constraints"`
}

// AxisSpec is a shape axis written as an integer size or a Set symbol.
type AxisSpec index.Axis

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *AxisSpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: shape axis must be a scalar", n.Line)
	}
	if n.Tag == "!!int" {
		size, err := strconv.Atoi(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: shape axis %q: %w", n.Line, n.Value, err)
		}
		*a = AxisSpec{Size: size}

		return nil
	}
	*a = AxisSpec{Set: n.Value}

	return nil
}

// Literal is a constant value written as a number or a generator name.
type Literal string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Literal) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: value must be a scalar", n.Line)
	}
	*l = Literal(n.Value)

	return nil
}

// LoadModel decodes the model document at path.
func LoadModel(path string) (*ModelDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModel, err)
	}
	defer f.Close()

	return DecodeModel(f)
}

// DecodeModel decodes a model document from r. Unknown keys are errors.
func DecodeModel(r io.Reader) (*ModelDocument, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc ModelDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrModel)
		}

		return nil, fmt.Errorf("%w: %w", ErrModel, err)
	}
	if doc.Problem.Constraints == nil {
		return nil, fmt.Errorf("%w: problem.constraints is required", ErrModel)
	}

	return &doc, nil
}

// Symbolic returns the symbolic problem of the document.
func (d *ModelDocument) Symbolic() problem.Symbolic {
	return problem.Symbolic{
		Objective:   append([]string(nil), d.Problem.Objective...),
		Constraints: append([]string(nil), d.Problem.Constraints...),
	}
}

// Build registers every Set, table and Variable in a new Index. All
// invalid declarations are reported together.
func (d *ModelDocument) Build() (*index.Index, problem.Symbolic, error) {
	ix := index.New()
	var errs error
	for _, s := range d.Sets {
		err := ix.AddSet(index.Set{Symbol: s.Symbol, Header: s.Header, Members: s.Members, SplitProblem: s.SplitProblem})
		errs = multierr.Append(errs, err)
	}
	for _, t := range d.Tables {
		errs = multierr.Append(errs, addTable(ix, t))
	}
	for _, v := range d.Variables {
		kind, err := index.ParseKind(v.Kind)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("variable %s: %w", v.Symbol, err))
			continue
		}
		shape := make([]index.Axis, len(v.Shape))
		for i, a := range v.Shape {
			shape[i] = index.Axis(a)
		}
		errs = multierr.Append(errs, ix.AddVariable(index.Variable{
			Symbol:      v.Symbol,
			Kind:        kind,
			Shape:       shape,
			Table:       v.Table,
			Hierarchy:   v.Hierarchy,
			Intra:       v.Intra,
			Coordinates: v.Coordinates,
			Value:       string(v.Value),
		}))
	}
	if errs != nil {
		return nil, problem.Symbolic{}, fmt.Errorf("%w: %w", ErrModel, errs)
	}

	return ix, d.Symbolic(), nil
}

func addTable(ix *index.Index, decl TableSpec) error {
	t, err := index.NewDataTable(decl.Name, decl.Columns)
	if err != nil {
		return err
	}
	var errs error
	for _, r := range decl.Rows {
		if r.Value != nil {
			errs = multierr.Append(errs, t.AddRowValue(r.Coords, *r.Value))
		} else {
			errs = multierr.Append(errs, t.AddRow(r.Coords))
		}
	}
	if errs != nil {
		return errs
	}

	return ix.AddTable(t)
}
