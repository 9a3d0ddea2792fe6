// SPDX-License-Identifier: MIT

package lang

import (
	"fmt"
	"strconv"
)

// TokenType is the kind of a lexical token.
type TokenType int

const (
	EOF TokenType = iota
	IDENT
	NUMBER

	PLUS   // "+"
	MINUS  // "-"
	STAR   // "*"
	SLASH  // "/"
	AT     // "@"
	LPAREN // "("
	RPAREN // ")"
	COMMA  // ","

	LESS_EQ    // "<="
	GREATER_EQ // ">="
	EQ         // "=="
)

var tokenNames = map[TokenType]string{
	EOF: "end of input", IDENT: "identifier", NUMBER: "number",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", AT: "@",
	LPAREN: "(", RPAREN: ")", COMMA: ",",
	LESS_EQ: "<=", GREATER_EQ: ">=", EQ: "==",
}

// String returns the operator text or token class name.
func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}

	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexeme with its byte offset.
type Token struct {
	Type   TokenType
	Lexeme string
	Number float64 // set for NUMBER
	Pos    int
}

// Lexer splits an expression string into tokens.
type Lexer struct {
	src   string
	cur   int
	start int
}

// NewLexer returns a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Scan tokenizes the whole input. The result always ends with EOF.
func (l *Lexer) Scan() ([]Token, error) {
	var out []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Type == EOF {
			return out, nil
		}
	}
}

func (l *Lexer) err(msg string) error {
	return &PosError{Pos: l.start, Msg: msg}
}

func (l *Lexer) token(tt TokenType) Token {
	return Token{Type: tt, Lexeme: l.src[l.start:l.cur], Pos: l.start}
}

func (l *Lexer) peekIs(c byte) bool {
	return l.cur < len(l.src) && l.src[l.cur] == c
}

func (l *Lexer) next() (Token, error) {
	for l.cur < len(l.src) && isSpace(l.src[l.cur]) {
		l.cur++
	}
	l.start = l.cur
	if l.cur >= len(l.src) {
		return Token{Type: EOF, Pos: l.cur}, nil
	}
	c := l.src[l.cur]
	l.cur++

	switch c {
	case '+':
		return l.token(PLUS), nil
	case '-':
		return l.token(MINUS), nil
	case '*':
		return l.token(STAR), nil
	case '/':
		return l.token(SLASH), nil
	case '@':
		return l.token(AT), nil
	case '(':
		return l.token(LPAREN), nil
	case ')':
		return l.token(RPAREN), nil
	case ',':
		return l.token(COMMA), nil
	case '<', '>', '=':
		if !l.peekIs('=') {
			return Token{}, l.err(fmt.Sprintf("unsupported operator %q", c))
		}
		l.cur++
		switch c {
		case '<':
			return l.token(LESS_EQ), nil
		case '>':
			return l.token(GREATER_EQ), nil
		default:
			return l.token(EQ), nil
		}
	}

	switch {
	case isDigit(c) || (c == '.' && l.cur < len(l.src) && isDigit(l.src[l.cur])):
		return l.scanNumber()
	case isIdentStart(c):
		for l.cur < len(l.src) && isIdentPart(l.src[l.cur]) {
			l.cur++
		}

		return l.token(IDENT), nil
	}

	return Token{}, l.err(fmt.Sprintf("unexpected character %q", c))
}

func (l *Lexer) scanNumber() (Token, error) {
	for l.cur < len(l.src) && (isDigit(l.src[l.cur]) || l.src[l.cur] == '.') {
		l.cur++
	}
	if l.cur < len(l.src) && (l.src[l.cur] == 'e' || l.src[l.cur] == 'E') {
		l.cur++
		if l.cur < len(l.src) && (l.src[l.cur] == '+' || l.src[l.cur] == '-') {
			l.cur++
		}
		for l.cur < len(l.src) && isDigit(l.src[l.cur]) {
			l.cur++
		}
	}
	tok := l.token(NUMBER)
	v, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		return Token{}, l.err(fmt.Sprintf("malformed number %q", tok.Lexeme))
	}
	tok.Number = v

	return tok, nil
}

func isSpace(c byte) bool      { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || (c|0x20 >= 'a' && c|0x20 <= 'z') }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }
