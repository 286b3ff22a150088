package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const streamName = "<stream>"

// ExecuteStream runs one top-level form per line, threading env from each form
// into the next. Blank and comment-only lines are skipped. emit, when not nil,
// receives every result other than (). The first parse or evaluation error stops
// the run.
func (in *Interpreter) ExecuteStream(r io.Reader, env Env, emit func(Exp)) (Env, error) {
	return in.ExecuteNamedStream(streamName, r, env, emit)
}

// ExecuteNamedStream is ExecuteStream with errors reported as name:line.
func (in *Interpreter) ExecuteNamedStream(name string, r io.Reader, env Env, emit func(Exp)) (Env, error) {
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return Env{}, fmt.Errorf("%s:%d: %w", name, lineNo+1, readErr)
		}
		if readErr == io.EOF && line == "" {
			return env, nil
		}
		lineNo++

		if !isBlank(line) {
			form, err := Parse(line)
			if err != nil {
				return Env{}, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}

			res, next, err := in.Eval(form, env)
			if err != nil {
				return Env{}, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			env = next

			if emit != nil && !isFalse(res) {
				emit(res)
			}
		}

		if readErr == io.EOF {
			return env, nil
		}
	}
}

// ExecuteFile runs the forms of a file on top of env and returns the extended
// environment.
func (in *Interpreter) ExecuteFile(path string, env Env) (Env, error) {
	resolved, err := in.resolve(path)
	if err != nil {
		return Env{}, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		return Env{}, err
	}
	defer f.Close()

	before := env.Len()
	env, err = in.ExecuteNamedStream(resolved, f, env, nil)
	if err != nil {
		return Env{}, err
	}
	in.Log.Printf("included %s (%d -> %d bindings)", resolved, before, env.Len())
	return env, nil
}

// resolve finds a relative path in the working directory first and then in
// each include directory in order.
func (in *Interpreter) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	candidates := append([]string{path}, in.includeCandidates(path)...)
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("include %s: %w", path, os.ErrNotExist)
}

func (in *Interpreter) includeCandidates(path string) []string {
	out := make([]string, 0, len(in.IncludePath))
	for _, dir := range in.IncludePath {
		out = append(out, filepath.Join(dir, path))
	}
	return out
}

func isBlank(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, ";")
}
