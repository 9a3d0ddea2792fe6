// SPDX-License-Identifier: MIT

package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a parsed expression.
type Node interface {
	// Pos is the byte offset of the node's first token.
	Pos() int
	String() string
}

// Number is a numeric literal.
type Number struct {
	Value float64
	At    int
}

// Ident is a bare identifier.
type Ident struct {
	Name string
	At   int
}

// Unary is a prefix "-" or "+".
type Unary struct {
	Op TokenType
	X  Node
	At int
}

// Binary is an infix arithmetic or comparison operation.
type Binary struct {
	Op   TokenType
	X, Y Node
}

// Call is a builtin invocation.
type Call struct {
	Fn   string
	Args []Node
	At   int
}

func (n *Number) Pos() int { return n.At }
func (n *Ident) Pos() int  { return n.At }
func (n *Unary) Pos() int  { return n.At }
func (n *Binary) Pos() int { return n.X.Pos() }
func (n *Call) Pos() int   { return n.At }

func (n *Number) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (n *Ident) String() string  { return n.Name }
func (n *Unary) String() string  { return n.Op.String() + n.X.String() }
func (n *Binary) String() string { return fmt.Sprintf("(%s %s %s)", n.X, n.Op, n.Y) }
func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}

	return n.Fn + "(" + strings.Join(args, ", ") + ")"
}

// binding powers
const (
	bpCompare = 10
	bpSum     = 20
	bpProduct = 30
	bpUnary   = 40
)

func lbp(t TokenType) int {
	switch t {
	case LESS_EQ, GREATER_EQ, EQ:
		return bpCompare
	case PLUS, MINUS:
		return bpSum
	case STAR, SLASH, AT:
		return bpProduct
	}

	return 0
}

func isComparison(t TokenType) bool {
	return t == LESS_EQ || t == GREATER_EQ || t == EQ
}

type parser struct {
	toks []Token
	i    int
}

// Parse lexes and parses src into a single expression tree.
func Parse(src string) (Node, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().Type == EOF {
		return nil, &PosError{Pos: 0, Msg: "empty expression"}
	}
	n, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Type != EOF {
		return nil, &PosError{Pos: t.Pos, Msg: fmt.Sprintf("unexpected %s", describe(t))}
	}

	return n, nil
}

func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) advance() Token {
	t := p.toks[p.i]
	if t.Type != EOF {
		p.i++
	}

	return t
}

func (p *parser) need(tt TokenType) (Token, error) {
	t := p.peek()
	if t.Type != tt {
		return Token{}, &PosError{Pos: t.Pos, Msg: fmt.Sprintf("expected %s, found %s", tt, describe(t))}
	}

	return p.advance(), nil
}

func describe(t Token) string {
	if t.Type == EOF {
		return t.Type.String()
	}

	return strconv.Quote(t.Lexeme)
}

func (p *parser) expr(minBP int) (Node, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		bp := lbp(op.Type)
		if bp == 0 || bp <= minBP {
			return left, nil
		}
		p.advance()
		right, err := p.expr(bp)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Type, X: left, Y: right}
		if isComparison(op.Type) && isComparison(p.peek().Type) {
			t := p.peek()

			return nil, &PosError{Pos: t.Pos, Msg: "comparisons cannot be chained"}
		}
	}
}

func (p *parser) prefix() (Node, error) {
	t := p.advance()
	switch t.Type {
	case NUMBER:
		return &Number{Value: t.Number, At: t.Pos}, nil

	case IDENT:
		if p.peek().Type != LPAREN {
			return &Ident{Name: t.Lexeme, At: t.Pos}, nil
		}
		p.advance()
		args, err := p.args()
		if err != nil {
			return nil, err
		}

		return &Call{Fn: t.Lexeme, Args: args, At: t.Pos}, nil

	case MINUS, PLUS:
		x, err := p.expr(bpUnary)
		if err != nil {
			return nil, err
		}

		return &Unary{Op: t.Type, X: x, At: t.Pos}, nil

	case LPAREN:
		inner, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN); err != nil {
			return nil, err
		}

		return inner, nil
	}

	return nil, &PosError{Pos: t.Pos, Msg: fmt.Sprintf("expected expression, found %s", describe(t))}
}

// args parses a call argument list after "(".
func (p *parser) args() ([]Node, error) {
	var out []Node
	if p.peek().Type == RPAREN {
		p.advance()

		return out, nil
	}
	for {
		a, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
		t := p.advance()
		switch t.Type {
		case COMMA:
			continue
		case RPAREN:
			return out, nil
		}

		return nil, &PosError{Pos: t.Pos, Msg: fmt.Sprintf("expected \",\" or \")\", found %s", describe(t))}
	}
}

// Symbols returns the identifiers referenced by src in first-seen order,
// excluding builtin names.
func Symbols(src string) ([]string, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}

	return Identifiers(n), nil
}

// Identifiers returns the non-builtin identifiers of n in first-seen order.
func Identifiers(n Node) []string {
	var out []string
	seen := make(map[string]struct{})
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Ident:
			if IsReserved(n.Name) {
				return
			}
			if _, ok := seen[n.Name]; !ok {
				seen[n.Name] = struct{}{}
				out = append(out, n.Name)
			}
		case *Unary:
			walk(n.X)
		case *Binary:
			walk(n.X)
			walk(n.Y)
		case *Call:
			for _, a := range n.Args {
				walk(a)
			}
		}
	}
	walk(n)

	return out
}
