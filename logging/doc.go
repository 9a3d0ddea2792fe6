// SPDX-License-Identifier: MIT

// Package logging builds the logr.Logger threaded through the compiler.
//
// The sink is zap, adapted with zapr. Three formats are available:
//
//	standard  timestamped console lines
//	minimal   console lines without timestamp or caller
//	json      zap production JSON encoding
//
// logr verbosity maps onto zap levels: V(DEBUG) is zap debug and V(TRACE)
// is one level below it, enabled only at level "debug".
package logging
