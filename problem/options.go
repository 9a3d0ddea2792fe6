// SPDX-License-Identifier: MIT

package problem

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/lvlopt/engine"
)

// Observer receives lifecycle measurements. metrics.Recorder implements it.
type Observer interface {
	ObserveAssembly(records int, d time.Duration)
	ObserveCompile(results int)
	ObserveSolve(status string, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveAssembly(int, time.Duration) {}
func (nopObserver) ObserveCompile(int)                 {}
func (nopObserver) ObserveSolve(string, time.Duration) {}

// Options configure a Model.
type Options struct {
	Logger    logr.Logger   // structured logger; logr.Discard() by default
	Engine    engine.Engine // optimization engine; engine.LP by default
	Confirmer Confirmer     // overwrite policy; NeverConfirm by default
	Observer  Observer      // metrics sink; no-op by default
}

// Option represents a functional option for configuring a Model.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithEngine sets the optimization engine. Panics on nil.
func WithEngine(e engine.Engine) Option {
	if e == nil {
		panic("problem: WithEngine(nil)")
	}

	return func(o *Options) {
		o.Engine = e
	}
}

// WithConfirmer sets the overwrite confirmation policy. Panics on nil.
func WithConfirmer(c Confirmer) Option {
	if c == nil {
		panic("problem: WithConfirmer(nil)")
	}

	return func(o *Options) {
		o.Confirmer = c
	}
}

// WithObserver sets the metrics sink. Panics on nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic("problem: WithObserver(nil)")
	}

	return func(o *Options) {
		o.Observer = obs
	}
}

// DefaultOptions returns the defaults: discard logger, no engine (resolved
// to engine.LP by NewModel), NeverConfirm and a no-op observer.
func DefaultOptions() Options {
	return Options{
		Logger:    logr.Discard(),
		Confirmer: NeverConfirm,
		Observer:  nopObserver{},
	}
}
