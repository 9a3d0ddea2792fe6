// SPDX-License-Identifier: MIT

// Package metrics exports compiler activity as prometheus metrics.
//
// Recorder implements problem.Observer:
//
//	lvlopt_assemblies_total                 assembly passes
//	lvlopt_problem_records                  records of the last pass
//	lvlopt_assembly_duration_seconds        assembly pass latency
//	lvlopt_compiled_results_total           compiled expression results
//	lvlopt_solves_total{status}             engine calls by terminal status
//	lvlopt_solve_duration_seconds{status}   engine call latency
//
// A nil *Recorder is a valid no-op observer.
package metrics
