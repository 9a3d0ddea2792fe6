// SPDX-License-Identifier: MIT

package lang

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is the class of lexing and parsing failures.
	ErrSyntax = errors.New("lang: syntax error")

	// ErrUnknownName indicates an identifier absent from the environment.
	ErrUnknownName = errors.New("lang: unknown name")

	// ErrNotCallable indicates a call to something that is not a builtin.
	ErrNotCallable = errors.New("lang: not callable")

	// ErrArity indicates a builtin called with the wrong number of arguments.
	ErrArity = errors.New("lang: wrong number of arguments")

	// ErrType indicates an operand of the wrong kind (e.g. a constraint
	// used in arithmetic).
	ErrType = errors.New("lang: type error")
)

// PosError locates a syntax error at a byte offset in the source.
type PosError struct {
	Pos int
	Msg string
}

// Error implements error.
func (e *PosError) Error() string {
	return fmt.Sprintf("lang: syntax error at %d: %s", e.Pos, e.Msg)
}

// Unwrap ties every PosError to ErrSyntax.
func (e *PosError) Unwrap() error { return ErrSyntax }
