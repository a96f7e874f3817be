// Package lexer turns input lines into a forward-only stream of tokens.
package lexer

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"regexp"
	"unicode/utf8"

	"github.com/mcncl/eqdata/internal/errors"
)

var numberLiteral = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// LineSource supplies input one line at a time. Each line keeps its line
// ending. ReadLine returns io.EOF once no lines remain.
type LineSource interface {
	ReadLine() (string, error)
}

// LineReader adapts an io.Reader to a LineSource.
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader returns a LineSource reading lines from r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// ReadLine implements LineSource. A final line without a line ending is
// returned before io.EOF.
func (lr *LineReader) ReadLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if stderrors.Is(err, io.EOF) {
		if line != "" {
			return line, nil
		}
		return "", io.EOF
	}
	return line, err
}

// Lexer produces tokens on demand from a LineSource. The first error stops
// it for good: every later call to Next returns the same error.
type Lexer struct {
	src  LineSource
	buf  string
	line int
	col  int
	done bool
	err  error
}

// New returns a Lexer over src.
func New(src LineSource) *Lexer {
	return &Lexer{src: src}
}

// Line returns the number of input lines fetched so far.
func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) pos() errors.Position {
	return errors.Position{Line: l.line, Column: l.col}
}

// Next returns the next token. Once the source is exhausted it returns an
// EOF token on every call.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	for {
		if l.done {
			return Token{Kind: EOF, Pos: l.pos()}, nil
		}
		if l.buf == "" {
			if err := l.fetch(); err != nil {
				l.err = err
				return Token{}, err
			}
			continue
		}

		l.skipBlanks()
		if l.buf == "" {
			continue
		}

		c := l.buf[0]
		switch {
		case c == '\r' || c == '\n':
			l.buf = ""
		case isSymbol(c):
			return l.take(Symbol, 1), nil
		case c == '+' || c == '-' || isDigit(c):
			return l.scanNumber()
		case isLetter(c) || c == '_':
			n := 1
			for n < len(l.buf) && isNameChar(l.buf[n]) {
				n++
			}
			return l.take(Name, n), nil
		default:
			r, _ := utf8.DecodeRuneInString(l.buf)
			l.err = errors.NewLexError(l.pos(), fmt.Sprintf("unexpected character %q", r))
			return Token{}, l.err
		}
	}
}

func (l *Lexer) fetch() error {
	line, err := l.src.ReadLine()
	if stderrors.Is(err, io.EOF) {
		l.done = true
		return nil
	}
	if err != nil {
		return errors.NewInputError(fmt.Sprintf("failed to read line %d", l.line+1), err)
	}
	l.buf = line
	l.line++
	l.col = 1
	return nil
}

func (l *Lexer) skipBlanks() {
	n := 0
	for n < len(l.buf) && (l.buf[n] == ' ' || l.buf[n] == '\t') {
		n++
	}
	l.buf = l.buf[n:]
	l.col += n
}

func (l *Lexer) take(kind TokenKind, n int) Token {
	tok := Token{Kind: kind, Text: l.buf[:n], Pos: l.pos()}
	l.buf = l.buf[n:]
	l.col += n
	return tok
}

// scanNumber takes the longest run shaped like a number and rejects it
// unless the whole run is a well-formed literal.
func (l *Lexer) scanNumber() (Token, error) {
	s := l.buf
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	i = skipDigits(s, i)
	if i < len(s) && s[i] == '.' {
		i = skipDigits(s, i+1)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		i = skipDigits(s, i)
	}

	if !numberLiteral.MatchString(s[:i]) {
		l.err = errors.NewLexError(l.pos(), fmt.Sprintf("malformed number %q", s[:i]))
		return Token{}, l.err
	}
	return l.take(Number, i), nil
}

// Tokenize drains src and returns every token before EOF.
func Tokenize(src LineSource) ([]Token, error) {
	lex := New(src)
	var tokens []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func skipDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isSymbol(c byte) bool {
	switch c {
	case '[', ']', '{', '}', '=', ',':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

// IsNumberLiteral reports whether s is a well-formed numeric literal.
func IsNumberLiteral(s string) bool {
	return numberLiteral.MatchString(s)
}

// IsName reports whether s is a valid member name.
func IsName(s string) bool {
	if s == "" || isDigit(s[0]) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return false
		}
	}
	return true
}
