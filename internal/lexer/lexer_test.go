package lexer

import (
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/mcncl/eqdata/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource serves fixed lines, then io.EOF.
type sliceSource struct {
	lines []string
	reads int
}

func (s *sliceSource) ReadLine() (string, error) {
	if s.reads >= len(s.lines) {
		return "", io.EOF
	}
	s.reads++
	return s.lines[s.reads-1], nil
}

type failingSource struct{}

func (failingSource) ReadLine() (string, error) {
	return "", stderrors.New("disk on fire")
}

func tokenize(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := Tokenize(NewLineReader(strings.NewReader(input)))
	require.NoError(t, err)
	return tokens
}

func texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.String()
	}
	return out
}

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "symbols",
			input:    "[]{}=,",
			expected: []string{`SYMBOL("[")`, `SYMBOL("]")`, `SYMBOL("{")`, `SYMBOL("}")`, `SYMBOL("=")`, `SYMBOL(",")`},
		},
		{
			name:     "object with blanks and tabs",
			input:    "{ a =\t1 , b_2=2}",
			expected: []string{`SYMBOL("{")`, `NAME("a")`, `SYMBOL("=")`, `NUMBER("1")`, `SYMBOL(",")`, `NAME("b_2")`, `SYMBOL("=")`, `NUMBER("2")`, `SYMBOL("}")`},
		},
		{
			name:     "signed exponent number",
			input:    "-12.5e+3",
			expected: []string{`NUMBER("-12.5e+3")`},
		},
		{
			name:     "number forms",
			input:    "+1 0.25 7E9 3e-2",
			expected: []string{`NUMBER("+1")`, `NUMBER("0.25")`, `NUMBER("7E9")`, `NUMBER("3e-2")`},
		},
		{
			name:     "names",
			input:    "_ _x Abc9 snake_case",
			expected: []string{`NAME("_")`, `NAME("_x")`, `NAME("Abc9")`, `NAME("snake_case")`},
		},
		{
			name:     "number followed by name",
			input:    "12abc",
			expected: []string{`NUMBER("12")`, `NAME("abc")`},
		},
		{
			name:     "multiple lines",
			input:    "{\n  a = [1,\r\n 2]\n}\n",
			expected: []string{`SYMBOL("{")`, `NAME("a")`, `SYMBOL("=")`, `SYMBOL("[")`, `NUMBER("1")`, `SYMBOL(",")`, `NUMBER("2")`, `SYMBOL("]")`, `SYMBOL("}")`},
		},
		{
			name:     "blank lines only",
			input:    "\n\n  \t\n",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, texts(tokenize(t, tt.input)))
		})
	}
}

func TestLexer_LineEndingDiscardsRestOfLine(t *testing.T) {
	// A carriage return ends the line even when more text follows it.
	src := &sliceSource{lines: []string{"1\r;;;\n", "2"}}
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	assert.Equal(t, []string{`NUMBER("1")`, `NUMBER("2")`}, texts(tokens))
}

func TestLexer_Positions(t *testing.T) {
	tokens := tokenize(t, "{\n  ab = -3\n}")
	require.Len(t, tokens, 5)

	assert.Equal(t, errors.Position{Line: 1, Column: 1}, tokens[0].Pos)
	assert.Equal(t, errors.Position{Line: 2, Column: 3}, tokens[1].Pos)
	assert.Equal(t, errors.Position{Line: 2, Column: 6}, tokens[2].Pos)
	assert.Equal(t, errors.Position{Line: 2, Column: 8}, tokens[3].Pos)
	assert.Equal(t, errors.Position{Line: 3, Column: 1}, tokens[4].Pos)
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pos     errors.Position
		message string
	}{
		{
			name:    "unrecognized character",
			input:   "{a=1;}",
			pos:     errors.Position{Line: 1, Column: 5},
			message: `unexpected character ';'`,
		},
		{
			name:    "second decimal point",
			input:   "1.2.3",
			pos:     errors.Position{Line: 1, Column: 4},
			message: `unexpected character '.'`,
		},
		{
			name:    "bare sign",
			input:   "[-]",
			pos:     errors.Position{Line: 1, Column: 2},
			message: `malformed number "-"`,
		},
		{
			name:    "missing fraction digits",
			input:   "1.",
			pos:     errors.Position{Line: 1, Column: 1},
			message: `malformed number "1."`,
		},
		{
			name:    "missing exponent digits",
			input:   "\n 4e+",
			pos:     errors.Position{Line: 2, Column: 2},
			message: `malformed number "4e+"`,
		},
		{
			name:    "string literal",
			input:   `{a="x"}`,
			pos:     errors.Position{Line: 1, Column: 4},
			message: `unexpected character '"'`,
		},
		{
			name:    "non-ascii letter",
			input:   "é",
			pos:     errors.Position{Line: 1, Column: 1},
			message: `unexpected character 'é'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(NewLineReader(strings.NewReader(tt.input)))
			require.Error(t, err)
			assert.True(t, errors.IsLexError(err))

			var appErr *errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, tt.pos, appErr.Pos)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestLexer_StopsAfterError(t *testing.T) {
	lex := New(NewLineReader(strings.NewReader("1 ; 2")))

	tok, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, Number, tok.Kind)

	_, first := lex.Next()
	require.Error(t, first)
	_, second := lex.Next()
	assert.Same(t, first, second)
}

func TestLexer_EOFIsSticky(t *testing.T) {
	lex := New(NewLineReader(strings.NewReader("{}")))
	for range 2 {
		_, err := lex.Next()
		require.NoError(t, err)
	}
	for range 3 {
		tok, err := lex.Next()
		require.NoError(t, err)
		assert.Equal(t, EOF, tok.Kind)
		assert.Equal(t, "EOF", tok.String())
	}
	assert.Equal(t, 1, lex.Line())
}

func TestLexer_IsLazy(t *testing.T) {
	src := &sliceSource{lines: []string{"[1,\n", "2]\n", "garbage ;\n"}}
	lex := New(src)

	tok, err := lex.Next()
	require.NoError(t, err)
	assert.True(t, tok.IsSymbol("["))
	assert.Equal(t, 1, src.reads, "only the first line is read for the first token")
}

func TestLexer_SourceError(t *testing.T) {
	_, err := New(failingSource{}).Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeInput})
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestLineReader_KeepsLineEndings(t *testing.T) {
	lr := NewLineReader(strings.NewReader("a\r\nb\nc"))
	var lines []string
	for {
		line, err := lr.ReadLine()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
	assert.Equal(t, []string{"a\r\n", "b\n", "c"}, lines)
}

func TestToken_Describe(t *testing.T) {
	assert.Equal(t, "end of input", Token{Kind: EOF}.Describe())
	assert.Equal(t, "'='", Token{Kind: Symbol, Text: "="}.Describe())
	assert.Equal(t, `name "abc"`, Token{Kind: Name, Text: "abc"}.Describe())
	assert.Equal(t, `number "1.5"`, Token{Kind: Number, Text: "1.5"}.Describe())
}
