package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeRunner records every invocation and delegates behavior to a handler
type fakeRunner struct {
	mu      sync.Mutex
	calls   [][]string
	handler func(name string, args ...string) (string, error)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.handler == nil {
		return "", nil
	}
	return f.handler(name, args...)
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// callsMatching returns recorded invocations whose joined command line
// contains the given substring
func (f *fakeRunner) callsMatching(substr string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out [][]string
	for _, c := range f.calls {
		if strings.Contains(strings.Join(c, " "), substr) {
			out = append(out, c)
		}
	}
	return out
}

// venvHandler simulates a working Python toolchain: version queries answer,
// and "-m venv <dir>" lays down the sandbox executables on disk
func venvHandler(t *testing.T) func(name string, args ...string) (string, error) {
	t.Helper()

	return func(name string, args ...string) (string, error) {
		if len(args) == 1 && args[0] == "--version" {
			return "Python 3.12.1", nil
		}
		if len(args) >= 3 && args[0] == "-m" && args[1] == "venv" {
			dir := args[2]
			binDir := filepath.Join(dir, "bin")
			if err := os.MkdirAll(binDir, 0o755); err != nil {
				return "", err
			}
			for _, exe := range []string{"python", "pip"} {
				if err := os.WriteFile(filepath.Join(binDir, exe), []byte("#!/bin/sh\n"), 0o755); err != nil {
					return "", err
				}
			}
			return "", nil
		}
		return "", nil
	}
}

// failAll is a handler where every invocation fails
func failAll(name string, args ...string) (string, error) {
	return "", fmt.Errorf("exec %s: command not found", name)
}
