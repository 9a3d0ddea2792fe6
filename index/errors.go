// SPDX-License-Identifier: MIT

package index

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSet indicates a malformed Set declaration.
	ErrInvalidSet = errors.New("index: invalid set")

	// ErrInvalidVariable indicates a malformed Variable declaration.
	ErrInvalidVariable = errors.New("index: invalid variable")

	// ErrDuplicate indicates a symbol, header or table name registered twice.
	ErrDuplicate = errors.New("index: duplicate declaration")

	// ErrUnknownSet indicates a reference to an undeclared Set symbol.
	ErrUnknownSet = errors.New("index: unknown set")

	// ErrUnknownMember indicates a coordinate restriction naming a non-member.
	ErrUnknownMember = errors.New("index: unknown set member")

	// ErrUnknownVariable indicates a lookup of an undeclared Variable.
	ErrUnknownVariable = errors.New("index: unknown variable")

	// ErrUnknownTable indicates a reference to an unregistered DataTable.
	ErrUnknownTable = errors.New("index: unknown table")

	// ErrUnknownColumn indicates a filter criterion on a missing column.
	ErrUnknownColumn = errors.New("index: unknown column")

	// ErrRowLength indicates a row whose width differs from the table's columns.
	ErrRowLength = errors.New("index: row length mismatch")

	// ErrDuplicateRow indicates two rows with the same coordinate tuple.
	ErrDuplicateRow = errors.New("index: duplicate row")

	// ErrSealed is returned by mutations after Seal.
	ErrSealed = errors.New("index: sealed")
)

// indexErrorf wraps err with the method tag.
func indexErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
