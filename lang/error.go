package lang

import (
	"fmt"

	"github.com/sergev/glox/parser"
)

// RuntimeError aborts evaluation; Token locates the offending operator or name.
type RuntimeError struct {
	Token   parser.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func newRuntimeError(tok parser.Token, msg string) *RuntimeError {
	return &RuntimeError{
		Token:   tok,
		Message: msg,
	}
}

func undefinedVariableError(name parser.Token) *RuntimeError {
	return newRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}
