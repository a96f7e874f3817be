package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrLex             = errors.New("unrecognized input")
	ErrParse           = errors.New("invalid syntax")
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrInvalidOption   = errors.New("invalid option value")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeLex     ErrorType = "lex"
	ErrorTypeParse   ErrorType = "parse"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeFormat  ErrorType = "format"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// Position is a 1-based line and column inside the parsed input.
type Position struct {
	Line   int
	Column int
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position points into the input.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Pos     Position
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	prefix := string(e.Type)
	if e.Pos.IsValid() {
		prefix = fmt.Sprintf("%s: %s", e.Type, e.Pos)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to reading input
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewLexError creates an error for a character no token rule accepts,
// or a numeric literal that is not well-formed.
func NewLexError(pos Position, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeLex,
		Message: message,
		Pos:     pos,
		Err:     ErrLex,
	}
}

// NewParseError creates an error for a token the grammar does not allow
// at its position.
func NewParseError(pos Position, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: message,
		Pos:     pos,
		Err:     ErrParse,
	}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewFormatError creates a new error related to rendering a value
func NewFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// IsLexError reports whether err (or anything it wraps) is a lex error.
func IsLexError(err error) bool {
	return errors.Is(err, &AppError{Type: ErrorTypeLex})
}

// IsParseError reports whether err (or anything it wraps) is a parse error.
func IsParseError(err error) bool {
	return errors.Is(err, &AppError{Type: ErrorTypeParse})
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeLex:
			return fmt.Sprintf("Syntax error at line %d, column %d: %s", appErr.Pos.Line, appErr.Pos.Column, appErr.Message)
		case ErrorTypeParse:
			return fmt.Sprintf("Parse error at line %d, column %d: %s", appErr.Pos.Line, appErr.Pos.Column, appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Rendering error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a value."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
