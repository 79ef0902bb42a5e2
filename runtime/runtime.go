package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sergev/glox/lang"
	"github.com/sergev/glox/parser"
)

// Exit statuses from sysexits.h.
const (
	ExitOK          = 0
	ExitUsage       = 64
	ExitDataError   = 65
	ExitNoInput     = 66
	ExitSoftwareErr = 70
	ExitConfig      = 78
)

// Result describes the outcome of a single run.
type Result struct {
	HadSyntaxError  bool
	HadRuntimeError bool
}

// ExitCode maps the result to a process exit status.
func (r Result) ExitCode() int {
	switch {
	case r.HadSyntaxError:
		return ExitDataError
	case r.HadRuntimeError:
		return ExitSoftwareErr
	default:
		return ExitOK
	}
}

// Runner feeds source text through the scanner, parser and interpreter.
// One Runner keeps its global scope across runs, as the REPL needs.
type Runner struct {
	Interp *lang.Interpreter
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner constructs a runner printing program output to stdout and
// diagnostics to stderr.
func NewRunner(stdout, stderr io.Writer) *Runner {
	return &Runner{
		Interp: lang.NewInterpreter(stdout),
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Run executes src. Nothing is evaluated when any syntax error was found.
func (r *Runner) Run(src string) Result {
	var res Result
	prog, err := parser.Parse(src)
	if err != nil {
		res.HadSyntaxError = true
		r.reportSyntax(err)
		return res
	}
	if err := r.Interp.Interpret(prog.Stmts); err != nil {
		res.HadRuntimeError = true
		fmt.Fprintln(r.Stderr, err)
	}
	return res
}

func (r *Runner) reportSyntax(err error) {
	var list parser.ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			fmt.Fprintln(r.Stderr, e)
		}
		return
	}
	fmt.Fprintln(r.Stderr, err)
}

// RunReader consumes all source from rd and runs it.
func (r *Runner) RunReader(rd io.Reader) (Result, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return Result{}, fmt.Errorf("read source: %w", err)
	}
	return r.Run(string(data)), nil
}

// RunFile loads and executes a Lox file, allowing a #! first line.
func (r *Runner) RunFile(path string) (Result, error) {
	src, err := ReadScript(path)
	if err != nil {
		return Result{}, err
	}
	return r.Run(src), nil
}

// ReadScript returns the source of the file at path with a leading #! line blanked.
func ReadScript(path string) (string, error) {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		// Keep the newline so line numbers stay correct.
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			return data[idx:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

// Incomplete reports whether src fails to parse only because it ends too
// early, e.g. an unterminated string or an unclosed block.
func Incomplete(src string) bool {
	_, err := parser.Parse(src)
	return err != nil && parser.IsIncomplete(err)
}
