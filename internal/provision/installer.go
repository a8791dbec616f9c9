package provision

import (
	"context"
	"fmt"
	"log/slog"
)

// Installer runs pip operations inside an activated sandbox
type Installer struct {
	sandbox *SandboxContext
	runner  CommandRunner
	logger  *slog.Logger
}

// InstallerOption is a functional option for configuring an Installer
type InstallerOption func(*Installer)

// WithInstallerLogger sets the logger for install operations
func WithInstallerLogger(logger *slog.Logger) InstallerOption {
	return func(i *Installer) {
		i.logger = logger
	}
}

// NewInstaller creates an Installer bound to an activated sandbox
func NewInstaller(sc *SandboxContext, runner CommandRunner, opts ...InstallerOption) *Installer {
	inst := &Installer{
		sandbox: sc,
		runner:  runner,
		logger:  slog.Default().WithGroup("provision.Installer"),
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// UpgradePackageManager upgrades pip inside the sandbox. This is best-effort:
// the returned error is classified ErrPipUpgrade and callers surface it as a
// warning rather than aborting.
func (i *Installer) UpgradePackageManager(ctx context.Context) error {
	i.logger.Debug("Upgrading pip", "sandbox", i.sandbox.Dir)
	out, err := i.runner.Run(ctx, i.sandbox.Python, "-m", "pip", "install", "--upgrade", "pip")
	if err != nil {
		return fmt.Errorf("%w: %w (output: %s)", ErrPipUpgrade, err, out)
	}
	return nil
}

// Install performs the bulk install of every manifest entry into the sandbox
func (i *Installer) Install(ctx context.Context, manifestPath string) error {
	i.logger.Info("Installing dependencies", "manifest", manifestPath, "sandbox", i.sandbox.Dir)
	out, err := i.runner.Run(ctx, i.sandbox.Pip, "install", "-r", manifestPath)
	if err != nil {
		return fmt.Errorf("%w: pip install -r %s: %w (output: %s)", ErrInstall, manifestPath, err, out)
	}
	return nil
}
