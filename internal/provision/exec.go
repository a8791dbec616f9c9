package provision

import (
	"context"
	"os/exec"
	"strings"
)

// CommandRunner abstracts subprocess invocation so provisioning steps can be
// exercised in tests without a real Python toolchain on the host.
type CommandRunner interface {
	// Run executes the named program with args and returns its combined
	// stdout and stderr. A non-zero exit is returned as an error alongside
	// whatever output the process produced.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// OSRunner executes commands on the host via os/exec
type OSRunner struct {
	// Dir is the working directory for spawned processes. Empty means the
	// current process working directory.
	Dir string
}

// Run implements the CommandRunner interface
func (r *OSRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
