package parser

import (
	"fmt"
	"io"
)

// Parse scans and parses Lox source text. Lexical and syntax errors are
// collected, in the order they were found, into the returned ErrorList.
func Parse(src string) (*Program, error) {
	var errs ErrorList
	collect := func(err *Error) {
		errs = append(errs, err)
	}
	tokens := ScanTokens(src, collect)
	prog, _ := ParseTokens(tokens, collect)
	return prog, errs.Err()
}

// ParseReader consumes Lox source from an io.Reader and parses it.
func ParseReader(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Parse(string(data))
}
