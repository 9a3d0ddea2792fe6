// SPDX-License-Identifier: MIT

package problem

import (
	"errors"
	"slices"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/lvlopt/engine"
	"github.com/katalvlaran/lvlopt/index"
)

// Model owns the instance tables, the symbolic document, the assembled
// Records and the run flag of one model. It is not safe for concurrent use.
type Model struct {
	ix   *index.Index
	opts Options
	log  logr.Logger

	tables   map[string]*InstanceTable
	symbolic *Symbolic
	records  []*Record
	revision string
	run      bool
}

// NewModel returns a Model over ix. Without WithEngine the model solves
// with engine.LP.
func NewModel(ix *index.Index, opts ...Option) (*Model, error) {
	if ix == nil {
		return nil, newError(ErrConfiguration, "NewModel", errors.New("nil index"))
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Engine == nil {
		o.Engine = engine.NewLP(o.Logger)
	}

	return &Model{ix: ix, opts: o, log: o.Logger.WithName("problem")}, nil
}

// Index returns the Coordinate Index.
func (m *Model) Index() *index.Index { return m.ix }

// Materialized reports whether instance tables have been built.
func (m *Model) Materialized() bool { return m.tables != nil }

// Table returns the instance table of symbol.
func (m *Model) Table(symbol string) (*InstanceTable, bool) {
	t, ok := m.tables[symbol]

	return t, ok
}

// Symbolic returns the loaded symbolic document.
func (m *Model) Symbolic() (Symbolic, bool) {
	if m.symbolic == nil {
		return Symbolic{}, false
	}

	return m.symbolic.clone(), true
}

// Records returns the assembled Records in partition order.
func (m *Model) Records() []*Record { return slices.Clone(m.records) }

// Revision returns the id of the last successful assembly pass.
func (m *Model) Revision() string { return m.revision }

// IsRun reports whether every Record was solved by the last Solve pass.
func (m *Model) IsRun() bool { return m.run }

// confirm asks the configured policy unless force is set.
func (m *Model) confirm(force bool, prompt string) bool {
	if force {
		return true
	}

	return m.opts.Confirmer.Confirm(prompt)
}
