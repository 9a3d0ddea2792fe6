// SPDX-License-Identifier: MIT

package problem

import (
	"errors"
	"strings"

	"github.com/katalvlaran/lvlopt/index"
)

// Error kinds.
var (
	// ErrConfiguration indicates malformed or missing Variable metadata.
	ErrConfiguration = errors.New("problem: configuration error")

	// ErrMissingData indicates empty or ambiguous instance resolution, or an
	// undefined source table.
	ErrMissingData = errors.New("problem: missing data")

	// ErrConceptualModel indicates an inconsistent model: mismatched intra
	// Sets or non-unique lookups.
	ErrConceptualModel = errors.New("problem: conceptual model error")

	// ErrNumericalProblem indicates an expression that cannot be compiled.
	ErrNumericalProblem = errors.New("problem: numerical problem")

	// ErrOperational indicates a lifecycle precondition failure or an engine
	// failure.
	ErrOperational = errors.New("problem: operational error")
)

// ModelError carries the kind, the failing operation and whatever context
// was available at detection.
type ModelError struct {
	Kind       error
	Op         string
	Variable   string
	Expression string
	Partition  index.Filter
	Err        error
}

// Error renders "op: kind: variable x: expression "...": partition {...}: cause".
func (e *ModelError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Variable != "" {
		b.WriteString(": variable ")
		b.WriteString(e.Variable)
	}
	if e.Expression != "" {
		b.WriteString(": expression \"")
		b.WriteString(e.Expression)
		b.WriteString("\"")
	}
	if len(e.Partition) > 0 {
		b.WriteString(": partition ")
		b.WriteString(e.Partition.String())
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap exposes both the kind and the cause.
func (e *ModelError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

func newError(kind error, op string, err error) *ModelError {
	return &ModelError{Kind: kind, Op: op, Err: err}
}

func (e *ModelError) withVariable(sym string) *ModelError {
	e.Variable = sym

	return e
}

func (e *ModelError) withExpression(src string) *ModelError {
	e.Expression = src

	return e
}

func (e *ModelError) withPartition(f index.Filter) *ModelError {
	if len(f) > 0 {
		e.Partition = f.Clone()
	}

	return e
}
