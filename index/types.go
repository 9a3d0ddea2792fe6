// SPDX-License-Identifier: MIT

package index

import (
	"fmt"
	"strings"
)

// Set is an ordered coordinate domain.
type Set struct {
	Symbol       string
	Header       string
	Members      []string
	SplitProblem bool
}

// Kind classifies a Variable.
type Kind int

const (
	// Endogenous variables are decisions sliced from a shared tensor.
	Endogenous Kind = iota + 1
	// Exogenous variables are parameters bound from table data.
	Exogenous
	// Constant variables are generated from a literal value.
	Constant
)

var kindNames = map[Kind]string{
	Endogenous: "endogenous",
	Exogenous:  "exogenous",
	Constant:   "constant",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a kind name to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("kind %q: %w", s, ErrInvalidVariable)
}

// Axis is one shape dimension: a fixed Size, or the members of Set.
type Axis struct {
	Size int
	Set  string
}

// String renders the size or the Set symbol.
func (a Axis) String() string {
	if a.Set != "" {
		return a.Set
	}

	return fmt.Sprint(a.Size)
}

// Variable is the metadata of one model quantity.
type Variable struct {
	Symbol string
	Kind   Kind
	Shape  []Axis

	// Table names the DataTable an endogenous variable slices, or an
	// exogenous variable is bound from.
	Table string

	// Hierarchy lists the Set symbols enumerating instances, outermost first.
	Hierarchy []string

	// Intra is the hierarchy Set the variable expands along, if any.
	Intra string

	// Coordinates restricts members per Set symbol. Absent Sets use all
	// members. Restrictions are normalized to Set order.
	Coordinates map[string][]string

	// Value is the literal of a constant variable.
	Value string
}

// IsConstant reports whether v is of Constant kind.
func (v *Variable) IsConstant() bool { return v.Kind == Constant }

// Criterion selects rows whose Column value is one of Values.
type Criterion struct {
	Column string
	Values []string
}

// Filter is an ordered list of criteria. Order matters: Query sorts by it.
type Filter []Criterion

// Lookup returns the values of the criterion on column.
func (f Filter) Lookup(column string) ([]string, bool) {
	for _, c := range f {
		if c.Column == column {
			return c.Values, true
		}
	}

	return nil, false
}

// Clone returns a deep copy.
func (f Filter) Clone() Filter {
	out := make(Filter, len(f))
	for i, c := range f {
		out[i] = Criterion{Column: c.Column, Values: append([]string(nil), c.Values...)}
	}

	return out
}

// String renders "{col: [v1 v2], ...}".
func (f Filter) String() string {
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = fmt.Sprintf("%s: %v", c.Column, c.Values)
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
