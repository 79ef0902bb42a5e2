package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a lexical or syntax error tied to a source line.
type Error struct {
	Line    int
	Where   string // "", " at end" or " at '<lexeme>'"
	Message string

	// Incomplete is set when the error was caused by input ending early.
	Incomplete bool
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

// ErrorHandler receives every diagnostic as soon as it is reported.
type ErrorHandler func(err *Error)

func newLexError(line int, msg string) *Error {
	return &Error{Line: line, Message: msg}
}

func newTokenError(tok Token, msg string) *Error {
	if tok.Type == TokenEOF {
		return &Error{
			Line:       tok.Line,
			Where:      " at end",
			Message:    msg,
			Incomplete: true,
		}
	}
	return &Error{
		Line:    tok.Line,
		Where:   fmt.Sprintf(" at '%s'", tok.Lexeme),
		Message: msg,
	}
}

// ErrorList collects all diagnostics of a single scan and parse.
type ErrorList []*Error

func (l ErrorList) Error() string {
	lines := make([]string, len(l))
	for i, err := range l {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// Err returns nil for an empty list so callers can compare against nil.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// IsIncomplete reports whether every diagnostic in err stems from input ending early.
func IsIncomplete(err error) bool {
	var list ErrorList
	if errors.As(err, &list) {
		if len(list) == 0 {
			return false
		}
		for _, e := range list {
			if !e.Incomplete {
				return false
			}
		}
		return true
	}
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Incomplete
	}
	return false
}
