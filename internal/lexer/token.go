package lexer

import (
	"fmt"

	"github.com/mcncl/eqdata/internal/errors"
)

// TokenKind classifies a token.
type TokenKind uint8

const (
	// EOF is the synthetic token returned once the input is exhausted.
	EOF TokenKind = iota
	// Symbol is one of [ ] { } = ,
	Symbol
	Name
	Number
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Symbol:
		return "SYMBOL"
	case Name:
		return "NAME"
	case Number:
		return "NUMBER"
	default:
		return "UNKNOWN"
	}
}

// Token is a classified lexical unit. Text is the matched input and is
// empty for EOF.
type Token struct {
	Kind TokenKind
	Text string
	Pos  errors.Position
}

// IsSymbol reports whether t is the symbol s.
func (t Token) IsSymbol(s string) bool {
	return t.Kind == Symbol && t.Text == s
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Describe renders the token for error messages.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Symbol:
		return fmt.Sprintf("'%s'", t.Text)
	case Name:
		return fmt.Sprintf("name %q", t.Text)
	default:
		return fmt.Sprintf("number %q", t.Text)
	}
}
