package provision

import (
	"context"
	"log/slog"
)

// DependencyStatus records, per manifest entry, whether the package resolves
// inside the sandbox. Lookups are by bare name; version constraints are
// ignored. The missing list preserves manifest order.
type DependencyStatus struct {
	Installed map[string]bool

	missing []string
}

// Missing returns the lookup keys that did not resolve, in manifest order
func (ds DependencyStatus) Missing() []string {
	return ds.missing
}

// Clean reports whether every manifest entry resolved
func (ds DependencyStatus) Clean() bool {
	return len(ds.missing) == 0
}

// Verifier checks which manifest entries resolve inside an activated sandbox
type Verifier struct {
	sandbox *SandboxContext
	runner  CommandRunner
	logger  *slog.Logger
}

// VerifierOption is a functional option for configuring a Verifier
type VerifierOption func(*Verifier)

// WithVerifierLogger sets the logger for verification operations
func WithVerifierLogger(logger *slog.Logger) VerifierOption {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// NewVerifier creates a Verifier bound to an activated sandbox
func NewVerifier(sc *SandboxContext, runner CommandRunner, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		sandbox: sc,
		runner:  runner,
		logger:  slog.Default().WithGroup("provision.Verifier"),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify queries each manifest entry by bare package name. The check is
// existence-only: "numpy==1.2.3" passes when any version of numpy resolves.
// Lookup failures mark the entry missing rather than failing the whole pass.
func (v *Verifier) Verify(ctx context.Context, m *Manifest) DependencyStatus {
	status := DependencyStatus{
		Installed: make(map[string]bool, m.Len()),
	}

	for _, name := range m.Names() {
		if _, err := v.runner.Run(ctx, v.sandbox.Pip, "show", "--quiet", name); err != nil {
			v.logger.Warn("Dependency not resolvable in sandbox", "package", name, "error", err)
			status.Installed[name] = false
			status.missing = append(status.missing, name)
			continue
		}
		status.Installed[name] = true
	}

	v.logger.Info("Dependency verification complete",
		"total", m.Len(),
		"missing", len(status.missing))
	return status
}
