package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"
)

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	evalExpr   = flag.String("e", "", "Evaluate a single form and print the result")
	configPath = flag.String("config", "", "Config file (default ~/"+configFileName+")")
	envExpr    = flag.String("env", "", "Initial environment as a list of (name value) bindings")
	verbose    = flag.Bool("v", false, "Trace includes and definitions to stderr")
	includes   stringList
)

func init() {
	flag.Var(&includes, "I", "Add a directory to the include path (repeatable)")
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file ...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -e '(+ 1 2)'         # Evaluate a form\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s prelude.lisp main.lisp # Run files in one environment\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s                      # Interactive REPL\n", os.Args[0])
	}
	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Trace {
		logger = log.New(os.Stderr, "lispico: ", 0)
	}
	in := NewInterpreter(cfg.IncludePath, logger)

	env := NewEnv()
	if *envExpr != "" {
		env, err = parseEnv(*envExpr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -env: %v\n", err)
			return 2
		}
	}

	for _, p := range cfg.Preload {
		env, err = in.ExecuteFile(p, env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	switch {
	case *evalExpr != "":
		return evalOne(in, *evalExpr, env, os.Stdout, os.Stderr)
	case flag.NArg() > 0:
		return runFiles(in, flag.Args(), env, os.Stdout, os.Stderr)
	case isRedirected(os.Stdin):
		if _, err := in.ExecuteNamedStream("<stdin>", os.Stdin, env, resultPrinter(os.Stdout)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	default:
		return repl(in, cfg, env)
	}
}

func loadConfig() (*Config, error) {
	path, explicit := *configPath, true
	if path == "" {
		path, explicit = defaultConfigPath(), false
	}
	cfg, err := LoadConfig(path, explicit)
	if err != nil {
		return nil, err
	}
	cfg.IncludePath = append(cfg.IncludePath, includes...)
	if *verbose {
		cfg.Trace = true
	}
	return cfg, nil
}

func parseEnv(src string) (Env, error) {
	form, err := Parse(src)
	if err != nil {
		return Env{}, err
	}
	return EnvFromList(form.(*List))
}

func resultPrinter(out io.Writer) func(Exp) {
	return func(val Exp) {
		fmt.Fprintln(out, Print(val))
	}
}

func evalOne(in *Interpreter, src string, env Env, out, errOut io.Writer) int {
	form, err := Parse(src)
	if err != nil {
		fmt.Fprintf(errOut, "Parse error: %v\n", err)
		return 1
	}
	res, _, err := in.Eval(form, env)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, Print(res))
	return 0
}

// runFiles runs each file in order on one environment, so later files see the
// definitions of earlier ones.
func runFiles(in *Interpreter, paths []string, env Env, out, errOut io.Writer) int {
	emit := resultPrinter(out)
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			fmt.Fprintf(errOut, "Error reading file: %v\n", err)
			return 1
		}
		env, err = in.ExecuteNamedStream(p, f, env, emit)
		f.Close()
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

// lineSource is the part of *liner.State the REPL loop uses
type lineSource interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func repl(in *Interpreter, cfg *Config, env Env) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	return runREPL(in, ln, cfg.Prompt, env, os.Stdout)
}

// runREPL reports errors and moves on to the next form. It stops at end of
// input, on :quit, or when the line source fails.
func runREPL(in *Interpreter, ln lineSource, prompt string, env Env, out io.Writer) int {
	for {
		src, err := readForm(ln, prompt)
		if err == io.EOF {
			fmt.Fprintln(out)
			return 0
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit":
			return 0
		case ":env":
			fmt.Fprintln(out, env)
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		form, err := Parse(src)
		if err != nil {
			fmt.Fprintf(out, "Parse error: %v\n", err)
			continue
		}

		res, next, err := in.Eval(form, env)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		env = next

		if !isFalse(res) {
			fmt.Fprintln(out, Print(res))
		}
	}
}

// readForm keeps prompting while the input so far is an unfinished form. End
// of input and an aborted prompt both come back as io.EOF.
func readForm(ln lineSource, prompt string) (string, error) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = continuationPrompt
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		_, perr := Parse(b.String())
		if perr != nil && errors.Is(perr, io.ErrUnexpectedEOF) && strings.TrimSpace(b.String()) != "" {
			continue
		}
		return b.String(), nil
	}
}

// isRedirected reports whether f is not a terminal. A file that cannot be
// inspected, such as a closed stdin, counts as redirected.
func isRedirected(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil || fi == nil {
		return true
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}
