package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/eqdata/internal/errors"
	"github.com/mcncl/eqdata/internal/lexer"
	"github.com/mcncl/eqdata/internal/models"
)

// Parser consumes a token stream with one token of lookahead and builds a
// single value. A Parser is good for one call to Parse.
type Parser struct {
	lex *lexer.Lexer
	tok lexer.Token
}

// New returns a Parser reading from src.
func New(src lexer.LineSource) *Parser {
	return &Parser{lex: lexer.New(src)}
}

// Parse reads exactly one value followed by the end of input.
func (p *Parser) Parse() (models.Value, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.EOF {
		return nil, p.unexpected("end of input")
	}
	return value, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) unexpected(want string) error {
	return errors.NewParseError(p.tok.Pos, fmt.Sprintf("expected %s, found %s", want, p.tok.Describe()))
}

// expect consumes the symbol s or fails.
func (p *Parser) expect(s string) error {
	if !p.tok.IsSymbol(s) {
		return p.unexpected(fmt.Sprintf("'%s'", s))
	}
	return p.advance()
}

func (p *Parser) parseValue() (models.Value, error) {
	switch {
	case p.tok.IsSymbol("{"):
		return p.parseObject()
	case p.tok.IsSymbol("["):
		return p.parseArray()
	case p.tok.Kind == lexer.Number:
		n := models.Number(p.tok.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, p.unexpected("a value")
	}
}

func (p *Parser) parseObject() (models.Value, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	obj := models.NewObject()
	if p.tok.IsSymbol("}") {
		return obj, p.advance()
	}

	for {
		if p.tok.Kind != lexer.Name {
			return nil, p.unexpected("a name")
		}
		name := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect("="); err != nil {
			return nil, err
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj.Set(name, value)

		switch {
		case p.tok.IsSymbol(","):
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.tok.IsSymbol("}"):
			return obj, p.advance()
		default:
			return nil, p.unexpected("',' or '}'")
		}
	}
}

func (p *Parser) parseArray() (models.Value, error) {
	if err := p.expect("["); err != nil {
		return nil, err
	}
	arr := models.Array{}
	if p.tok.IsSymbol("]") {
		return arr, p.advance()
	}

	for {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)

		switch {
		case p.tok.IsSymbol(","):
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.tok.IsSymbol("]"):
			return arr, p.advance()
		default:
			return nil, p.unexpected("',' or ']'")
		}
	}
}

// ParseLines parses one value from a line source.
func ParseLines(src lexer.LineSource) (models.Value, error) {
	return New(src).Parse()
}

// Parse parses one value from an io.Reader.
func Parse(reader io.Reader) (models.Value, error) {
	return ParseLines(lexer.NewLineReader(reader))
}

// ParseString parses one value from a string.
func ParseString(input string) (models.Value, error) {
	return Parse(strings.NewReader(input))
}

// OpenFile opens the input file at filePath. The caller closes it.
func OpenFile(filePath string) (*os.File, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	return file, nil
}

// ParseFile parses one value from the file at filePath.
func ParseFile(filePath string) (models.Value, error) {
	file, err := OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	return Parse(file)
}
