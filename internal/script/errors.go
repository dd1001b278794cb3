package script

import (
	"fmt"

	"ldscript/internal/diag"
	"ldscript/internal/source"
)

// ErrorKind classifies a script failure.
type ErrorKind uint8

const (
	// LexicalError is an unterminated quote or comment.
	LexicalError ErrorKind = iota + 1
	// SyntaxError covers unexpected EOF, expect mismatch, unknown directive
	// and a malformed OUTPUT_FORMAT.
	SyntaxError
	// ResolutionError is an unreadable INCLUDE or an input file that cannot be found.
	ResolutionError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case ResolutionError:
		return "resolution error"
	default:
		return "error"
	}
}

// Error is the first, and only, error recorded while interpreting a script.
type Error struct {
	Kind ErrorKind
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Diagnostic converts the error into a diag record.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}
