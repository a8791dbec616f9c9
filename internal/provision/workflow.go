// Package provision implements the environment provisioning workflow for the
// AURA400 quantum emotional system: runtime detection, sandbox reset and
// creation, dependency installation, config materialization, and dependency
// verification with idempotent repair.
package provision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aura400/aurasetup/internal/provision/finitestate"
	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-loglater"
)

// Step names used in abort reporting
const (
	StepRuntime  = "runtime detection"
	StepSandbox  = "sandbox provisioning"
	StepActivate = "sandbox activation"
	StepManifest = "manifest loading"
	StepInstall  = "dependency installation"
	StepConfig   = "config materialization"
)

// Options configures a provisioning workflow run
type Options struct {
	// SandboxDir is the root of the isolated environment, typically ".venv"
	SandboxDir string

	// ManifestPath is the dependency manifest, typically "requirements.txt"
	ManifestPath string

	// ConfigPath is the application config file, typically ".env"
	ConfigPath string

	// Interpreter optionally pins the Python binary instead of probing defaults
	Interpreter string

	// Defaults are the settings written when the config file is materialized
	Defaults ConfigDefaults

	// Runner overrides subprocess execution, mainly for tests
	Runner CommandRunner
}

// Workflow represents a complete lifecycle of one provisioning run. Each step
// is attempted once; fatal steps abort the pipeline, the rest degrade to
// warnings. The whole run is sequential and blocking.
type Workflow struct {
	// ID is the unique identifier for this run
	ID uuid.UUID

	// CreatedAt records when the run was created
	CreatedAt time.Time

	opts Options

	// State management
	fsm finitestate.Machine

	// Logging with history tracking
	logger       *slog.Logger
	logCollector *loglater.LogCollector

	runner CommandRunner

	// Results populated as steps complete
	runtime  RuntimeDescriptor
	sandbox  *SandboxContext
	manifest *Manifest
	status   DependencyStatus
	warnings []error
}

// NewWorkflow creates a provisioning workflow with the given options
func NewWorkflow(opts Options, handler slog.Handler) (*Workflow, error) {
	runID := uuid.Must(uuid.NewV6())

	sm, err := finitestate.New(handler)
	if err != nil {
		return nil, fmt.Errorf("%s failed to create state machine: %w", runID, err)
	}

	// Set up logger with the loglater history collector so the full step
	// transcript can be replayed after the run
	logCollector := loglater.NewLogCollector(handler)
	logger := slog.New(logCollector).With(
		"id", runID,
		"sandbox", opts.SandboxDir,
		"manifest", opts.ManifestPath)

	runner := opts.Runner
	if runner == nil {
		runner = &OSRunner{}
	}

	w := &Workflow{
		ID:           runID,
		CreatedAt:    time.Now(),
		opts:         opts,
		fsm:          sm,
		logger:       logger,
		logCollector: logCollector,
		runner:       runner,
		warnings:     []error{},
	}

	w.logger.Info("Provisioning workflow created")
	return w, nil
}

// Run drives the full pipeline. It returns a *StepError when a fatal step
// aborts the run; non-fatal failures are collected as warnings instead.
// The runtime check runs before any filesystem mutation.
func (w *Workflow) Run(ctx context.Context) error {
	rt, err := DetectRuntime(ctx, w.runner, w.interpreterCandidates()...)
	if err != nil {
		return w.abort(StepRuntime, "no usable interpreter", err)
	}
	w.runtime = rt
	if err := w.transition(finitestate.StateRuntimeChecked); err != nil {
		return err
	}
	w.logger.Info("Runtime detected", "runtime", rt.String())

	sandbox := NewSandbox(w.opts.SandboxDir, rt, w.runner,
		WithSandboxLogger(w.logger.WithGroup("sandbox")))
	if err := sandbox.Provision(ctx); err != nil {
		return w.abort(StepSandbox, "cannot create sandbox", err)
	}
	if err := w.transition(finitestate.StateEnvironmentReady); err != nil {
		return err
	}

	sc, err := sandbox.Activate()
	if err != nil {
		return w.abort(StepActivate, "sandbox is unusable", err)
	}
	w.sandbox = sc
	if err := w.transition(finitestate.StateActivated); err != nil {
		return err
	}

	installer := NewInstaller(sc, w.runner,
		WithInstallerLogger(w.logger.WithGroup("installer")))

	// Best-effort pip upgrade; failure is surfaced as a warning, never fatal
	if err := installer.UpgradePackageManager(ctx); err != nil {
		w.warn(err)
	}

	manifest, err := LoadManifest(w.opts.ManifestPath)
	if err != nil {
		return w.abort(StepManifest, "manifest unreadable", err)
	}
	w.manifest = manifest
	if manifest.Len() == 0 {
		w.warn(fmt.Errorf("%w: %s", ErrManifestEmpty, manifest.Path))
	}

	if err := installer.Install(ctx, manifest.Path); err != nil {
		return w.abort(StepInstall, "bulk install failed", err)
	}
	if err := w.transition(finitestate.StateDependenciesInstalled); err != nil {
		return err
	}

	created, err := MaterializeConfig(w.opts.ConfigPath, w.opts.Defaults,
		w.logger.WithGroup("config"))
	if err != nil {
		return w.abort(StepConfig, "config unusable", err)
	}
	if err := w.transition(finitestate.StateConfigReady); err != nil {
		return err
	}
	w.logger.Info("Config ready", "path", w.opts.ConfigPath, "created", created)

	verifier := NewVerifier(sc, w.runner,
		WithVerifierLogger(w.logger.WithGroup("verifier")))
	w.status = verifier.Verify(ctx, manifest)
	if err := w.transition(finitestate.StateVerified); err != nil {
		return err
	}

	w.repairIfNeeded(ctx, installer, verifier)

	if err := w.transition(finitestate.StateDone); err != nil {
		return err
	}
	w.logger.Info("Provisioning workflow completed",
		"duration", time.Since(w.CreatedAt),
		"warnings", len(w.warnings))
	return nil
}

// repairIfNeeded re-runs the full bulk install when any manifest entry is
// missing. Re-running the whole manifest is idempotent and simpler than
// installing only the missing subset. Repair failures degrade to warnings.
func (w *Workflow) repairIfNeeded(ctx context.Context, installer *Installer, verifier *Verifier) {
	if w.status.Clean() {
		return
	}

	w.logger.Warn("Missing dependencies detected, re-running install",
		"missing", w.status.Missing())

	if err := installer.Install(ctx, w.manifest.Path); err != nil {
		w.warn(fmt.Errorf("%w: repair install: %w", ErrVerification, err))
		if terr := w.fsm.Transition(finitestate.StateRepaired); terr != nil {
			w.logger.Error("Failed to transition to repaired state", "error", terr)
		}
		return
	}

	if err := w.fsm.Transition(finitestate.StateRepaired); err != nil {
		w.logger.Error("Failed to transition to repaired state", "error", err)
		return
	}

	// Refresh the status so callers see the post-repair picture
	w.status = verifier.Verify(ctx, w.manifest)
	if !w.status.Clean() {
		w.warn(fmt.Errorf("%w: still missing after repair: %v",
			ErrVerification, w.status.Missing()))
	}
}

// interpreterCandidates returns the probe list for runtime detection
func (w *Workflow) interpreterCandidates() []string {
	if w.opts.Interpreter != "" {
		return []string{w.opts.Interpreter}
	}
	return nil
}

// transition advances the state machine, logging the new state
func (w *Workflow) transition(state string) error {
	if err := w.fsm.Transition(state); err != nil {
		w.logger.Error("Failed to transition workflow state", "state", state, "error", err)
		return err
	}
	w.logger.Debug("Workflow state changed", "state", state)
	return nil
}

// abort moves the workflow to the aborted state and wraps the failure
func (w *Workflow) abort(step, message string, err error) error {
	if terr := w.fsm.Transition(finitestate.StateAborted); terr != nil {
		w.logger.Error("Failed to transition to aborted state",
			"error", terr,
			"originalError", err)
	}
	w.logger.Error("Provisioning workflow aborted", "step", step, "error", err)
	return NewStepError(w.ID, step, message, err)
}

// warn records a non-fatal failure on the run
func (w *Workflow) warn(err error) {
	w.warnings = append(w.warnings, err)
	w.logger.Warn("Provisioning step degraded", "error", err)
}

// GetState returns the current state of the workflow
func (w *Workflow) GetState() string {
	return w.fsm.GetState()
}

// Runtime returns the detected runtime descriptor
func (w *Workflow) Runtime() RuntimeDescriptor {
	return w.runtime
}

// Sandbox returns the activated sandbox context, or nil before activation
func (w *Workflow) Sandbox() *SandboxContext {
	return w.sandbox
}

// Manifest returns the loaded dependency manifest, or nil before loading
func (w *Workflow) Manifest() *Manifest {
	return w.manifest
}

// Status returns the most recent dependency verification result
func (w *Workflow) Status() DependencyStatus {
	return w.status
}

// Warnings returns all non-fatal failures collected during the run
func (w *Workflow) Warnings() []error {
	return w.warnings
}

// PlaybackLogs plays back the workflow logs to the given handler
func (w *Workflow) PlaybackLogs(handler slog.Handler) error {
	return w.logCollector.PlayLogs(handler)
}

// GetTotalDuration returns the total duration of the run so far
func (w *Workflow) GetTotalDuration() time.Duration {
	return time.Since(w.CreatedAt)
}
