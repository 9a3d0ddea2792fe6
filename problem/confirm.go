// SPDX-License-Identifier: MIT

package problem

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Confirmer decides whether prior state may be overwritten.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

var (
	// AlwaysConfirm accepts every overwrite.
	AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

	// NeverConfirm declines every overwrite. It is the default policy.
	NeverConfirm Confirmer = ConfirmFunc(func(string) bool { return false })
)

// PromptConfirmer asks on out and reads a y/[n] answer from in.
// Anything other than "y" or "yes" declines, as does end of input.
type PromptConfirmer struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewPromptConfirmer returns an interactive Confirmer.
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm implements Confirmer.
func (p *PromptConfirmer) Confirm(prompt string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := fmt.Fprintf(p.out, "%s [y/N]: ", prompt); err != nil {
		return false
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}

	return false
}
