package provision

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

// Sandbox manages an isolated Python environment rooted at a directory
type Sandbox struct {
	// Dir is the sandbox root, typically ".venv"
	Dir string

	runtime RuntimeDescriptor
	runner  CommandRunner
	logger  *slog.Logger
}

// SandboxOption is a functional option for configuring a Sandbox
type SandboxOption func(*Sandbox)

// WithSandboxLogger sets the logger for sandbox operations
func WithSandboxLogger(logger *slog.Logger) SandboxOption {
	return func(s *Sandbox) {
		s.logger = logger
	}
}

// NewSandbox creates a Sandbox rooted at dir, built with the given runtime
func NewSandbox(dir string, rt RuntimeDescriptor, runner CommandRunner, opts ...SandboxOption) *Sandbox {
	s := &Sandbox{
		Dir:     dir,
		runtime: rt,
		runner:  runner,
		logger:  slog.Default().WithGroup("provision.Sandbox"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provision resets and recreates the sandbox. An existing directory is
// removed first so each run starts from a clean slate instead of layering
// onto a possibly-corrupt prior environment.
func (s *Sandbox) Provision(ctx context.Context) error {
	if _, err := os.Stat(s.Dir); err == nil {
		s.logger.Info("Removing existing sandbox", "dir", s.Dir)
		if err := os.RemoveAll(s.Dir); err != nil {
			return fmt.Errorf("%w: cannot remove %s: %w", ErrProvision, s.Dir, err)
		}
	}

	s.logger.Info("Creating sandbox", "dir", s.Dir, "runtime", s.runtime.Interpreter)
	out, err := s.runner.Run(ctx, s.runtime.Interpreter, "-m", "venv", s.Dir)
	if err != nil {
		return fmt.Errorf("%w: venv creation in %s: %w (output: %s)", ErrProvision, s.Dir, err, out)
	}

	return nil
}

// Activate resolves the sandbox-local interpreter and pip and returns a
// SandboxContext for subsequent dependency operations. The context value
// replaces ambient environment activation: callers thread it through
// explicitly instead of mutating process state.
func (s *Sandbox) Activate() (*SandboxContext, error) {
	sc, err := ActivateExisting(s.Dir)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Sandbox activated", "python", sc.Python, "pip", sc.Pip)
	return sc, nil
}

// ActivateExisting resolves a previously provisioned sandbox at dir without
// rebuilding it. Used by commands that assume setup has already run.
func ActivateExisting(dir string) (*SandboxContext, error) {
	bin := "bin"
	ext := ""
	if runtime.GOOS == "windows" {
		bin = "Scripts"
		ext = ".exe"
	}

	sc := &SandboxContext{
		Dir:    dir,
		Python: filepath.Join(dir, bin, "python"+ext),
		Pip:    filepath.Join(dir, bin, "pip"+ext),
	}

	if _, err := os.Stat(sc.Python); err != nil {
		return nil, fmt.Errorf("%w: interpreter missing at %s: %w", ErrActivation, sc.Python, err)
	}
	if _, err := os.Stat(sc.Pip); err != nil {
		return nil, fmt.Errorf("%w: pip missing at %s: %w", ErrActivation, sc.Pip, err)
	}

	return sc, nil
}

// SandboxContext holds the resolved executable paths inside an activated
// sandbox. All dependency operations resolve through these paths rather
// than anything on the ambient PATH.
type SandboxContext struct {
	Dir    string
	Python string
	Pip    string
}

// String returns the sandbox root directory
func (sc *SandboxContext) String() string {
	return sc.Dir
}
