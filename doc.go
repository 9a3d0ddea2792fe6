// SPDX-License-Identifier: MIT

// Package lvlopt compiles algebraic optimization models into independent
// numeric problems and solves them.
//
// A model is declared as coordinate Sets, coordinate tables and Variables
// (decisions, bound data and constants), plus a symbolic problem written in
// a small algebraic language:
//
//	objective:   [Minimize(c @ x)]
//	constraints: [x <= cap, u @ x >= d]
//
// Split-problem Sets partition the model: every partition becomes its own
// Record with compiled constraints and objective, solved in order.
//
// Packages:
//
//	matrix/  row-major Dense values and generators
//	expr/    decision objects, expression trees, affine canonical form
//	lang/    lexer, parser and closed-environment evaluator
//	index/   Sets, Variable metadata, coordinate tables, shared tensors
//	problem/ materializer, compiler, assembler, solve orchestrator
//	engine/  engine interface and the gonum simplex LP engine
//	config/  settings (viper) and model documents (yaml)
//	logging/ zap-backed logr loggers
//	metrics/ prometheus observer
//
// Quick run:
//
//	go run ./cmd/lvlopt --settings examples/planning/settings.yaml
package lvlopt
