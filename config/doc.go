// SPDX-License-Identifier: MIT

// Package config loads the two inputs of a run.
//
// Settings are read with viper from a YAML, TOML or JSON file and from
// LVLOPT_-prefixed environment variables (LVLOPT_SOLVER_NAME overrides
// solver.name). Unknown keys are rejected:
//
//	model:
//	  name: planning
//	  path: model.yaml
//	solver:
//	  name: simplex
//	  verbose: false
//	  settings:
//	    tolerance: 1e-10
//	log:
//	  level: info        # debug | info | warn | error
//	  format: standard   # standard | minimal | json
//	metrics:
//	  file: ""           # prometheus textfile written after the run
//
// The model document is strict YAML describing Sets, coordinate tables,
// Variables and the symbolic problem:
//
//	sets:
//	  - {symbol: T, header: time, members: [t1, t2], split_problem: true}
//	tables:
//	  - name: demand
//	    columns: [time]
//	    rows:
//	      - {coords: [t1], value: 3}
//	      - {coords: [t2], value: 5}
//	variables:
//	  - {symbol: d, kind: exogenous, table: demand, shape: [1], hierarchy: [T]}
//	problem:
//	  objective: []
//	  constraints: [d >= 0]
//
// Shape axes are integers or Set symbols. Build turns a document into an
// index.Index and a problem.Symbolic, reporting every invalid declaration
// at once.
package config
