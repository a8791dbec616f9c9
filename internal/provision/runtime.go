package provision

import (
	"context"
	"fmt"
	"strings"
)

// RuntimeDescriptor identifies the Python interpreter the workflow will use
type RuntimeDescriptor struct {
	// Interpreter is the binary name or path the runtime answered to
	Interpreter string

	// Version is the trimmed output of the version query
	Version string
}

// String returns a human-readable summary of the runtime
func (rd RuntimeDescriptor) String() string {
	return fmt.Sprintf("%s (%s)", rd.Interpreter, rd.Version)
}

// defaultInterpreters are probed in order when no explicit interpreter is configured
var defaultInterpreters = []string{"python3", "python"}

// DetectRuntime probes for a working Python interpreter by running a version
// query. The candidates slice may be empty, in which case the platform
// defaults are probed. Every candidate failing is classified ErrRuntimeNotFound.
func DetectRuntime(ctx context.Context, runner CommandRunner, candidates ...string) (RuntimeDescriptor, error) {
	if len(candidates) == 0 {
		candidates = defaultInterpreters
	}

	var lastErr error
	for _, bin := range candidates {
		out, err := runner.Run(ctx, bin, "--version")
		if err != nil {
			lastErr = err
			continue
		}
		return RuntimeDescriptor{
			Interpreter: bin,
			Version:     strings.TrimSpace(out),
		}, nil
	}

	return RuntimeDescriptor{}, fmt.Errorf(
		"%w: tried %s (install Python 3 from https://www.python.org/downloads/): %v",
		ErrRuntimeNotFound, strings.Join(candidates, ", "), lastErr)
}
