// SPDX-License-Identifier: MIT

// Package lang parses and evaluates the expression strings of a symbolic
// problem.
//
// The grammar is deliberately small:
//
//	relation := sum [ ("<=" | ">=" | "==") sum ]
//	sum      := product { ("+" | "-") product }
//	product  := unary { ("*" | "/" | "@") unary }
//	unary    := ("-" | "+") unary | primary
//	primary  := NUMBER | IDENT | IDENT "(" [args] ")" | "(" relation ")"
//
// Comparisons do not chain. Calls are restricted to a fixed builtin set:
// sum, multiply, transpose, Minimize and Maximize.
//
// Evaluation is closed: Eval resolves identifiers only through the Env it is
// given and never consults anything else. A result is an expr.Expression,
// an *expr.Constraint (from a comparison) or an *expr.Objective (from
// Minimize/Maximize).
package lang
