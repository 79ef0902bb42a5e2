package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/sergev/glox/parser"
	"github.com/sergev/glox/runtime"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("glox", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "REPL settings file (default $HOME/"+runtime.DefaultConfigName+")")
	emitTokens := flags.Bool("tokens", false, "print the token stream instead of running")
	emitAST := flags.Bool("ast", false, "print the parsed program instead of running")
	showVersion := flags.Bool("version", false, "print version")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: glox [options] [script]")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return runtime.ExitOK
		}
		return runtime.ExitUsage
	}
	if *showVersion {
		fmt.Fprintf(stdout, "glox version %s\n", version)
		return runtime.ExitOK
	}

	rest := flags.Args()
	if len(rest) > 1 {
		flags.Usage()
		return runtime.ExitUsage
	}

	if *emitTokens || *emitAST {
		src, err := readSource(rest, stdin)
		if err != nil {
			fmt.Fprintf(stderr, "glox: %v\n", err)
			return runtime.ExitNoInput
		}
		if *emitTokens {
			return dumpTokens(src, stdout, stderr)
		}
		return dumpAST(src, stdout, stderr)
	}

	runner := runtime.NewRunner(stdout, stderr)
	if len(rest) == 1 {
		res, err := runner.RunFile(rest[0])
		if err != nil {
			fmt.Fprintf(stderr, "glox: %v\n", err)
			return runtime.ExitNoInput
		}
		return res.ExitCode()
	}

	cfg, err := runtime.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "glox: %v\n", err)
		return runtime.ExitConfig
	}
	if f, ok := stdin.(*os.File); ok && isInteractive(f) {
		runInteractiveREPL(runner, cfg)
	} else {
		runBufferedREPL(runner, bufio.NewReader(stdin))
	}
	return runtime.ExitOK
}

func readSource(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return runtime.ReadScript(args[0])
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func dumpTokens(src string, stdout, stderr io.Writer) int {
	status := runtime.ExitOK
	tokens := parser.ScanTokens(src, func(err *parser.Error) {
		fmt.Fprintln(stderr, err)
		status = runtime.ExitDataError
	})
	for _, tok := range tokens {
		fmt.Fprintln(stdout, tok)
	}
	return status
}

func dumpAST(src string, stdout, stderr io.Writer) int {
	prog, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return runtime.ExitDataError
	}
	fmt.Fprintln(stdout, parser.PrintProgram(prog))
	return runtime.ExitOK
}

func runBufferedREPL(runner *runtime.Runner, reader *bufio.Reader) {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(runner.Stderr, "read error: %v\n", err)
			return
		}
		atEOF := errors.Is(err, io.EOF)
		buffer.WriteString(line)

		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			if atEOF {
				return
			}
			continue
		}
		if runtime.Incomplete(src) && !atEOF {
			continue
		}
		buffer.Reset()
		runner.Run(src)
		if atEOF {
			return
		}
	}
}

func runInteractiveREPL(runner *runtime.Runner, cfg *runtime.Config) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)
	state.SetMultiLineMode(cfg.MultiLine)
	state.SetCompleter(runner.Complete)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	if cfg.Banner != "" {
		fmt.Fprintln(runner.Stdout, cfg.Banner)
	}

	var buffer strings.Builder

	for {
		prompt := cfg.Prompt
		if buffer.Len() > 0 {
			prompt = cfg.ContinuationPrompt
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Fprintln(runner.Stdout)
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(runner.Stdout)
				return
			default:
				fmt.Fprintf(runner.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			continue
		}
		if runtime.Incomplete(src) {
			continue
		}

		buffer.Reset()
		state.AppendHistory(historyEntry(src))
		runner.Run(src)
	}
}

// historyEntry folds a multi-line entry onto one line, since the history
// file stores one entry per line.
func historyEntry(src string) string {
	var parts []string
	for _, line := range strings.Split(src, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

func isInteractive(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
