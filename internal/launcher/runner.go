package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/aura400/aurasetup/internal/launcher/finitestate"
	"github.com/robbyt/go-supervisor/supervisor"
)

// Interface guard: ensure Runner implements required interfaces
var (
	_ supervisor.Runnable  = (*Runner)(nil)
	_ supervisor.Stateable = (*Runner)(nil)
)

// Runner runs the dashboard as a supervised child process. Unlike the
// fire-and-forget WebServer, the child's lifetime is bound to the runner:
// stopping the runner terminates the process.
type Runner struct {
	name   string
	args   []string
	logger *slog.Logger
	fsm    finitestate.Machine

	runCancel context.CancelFunc
}

// Option represents a functional option for configuring Runner
type Option func(*Runner)

// WithLogHandler sets a custom slog handler for the Runner instance
func WithLogHandler(handler slog.Handler) Option {
	return func(r *Runner) {
		if handler != nil {
			r.logger = slog.New(handler).WithGroup("launcher.Runner")
		}
	}
}

// WithLogger sets a logger for the Runner instance
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a supervised runner for the given command line
func NewRunner(name string, args []string, opts ...Option) (*Runner, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty command", ErrLaunch)
	}

	r := &Runner{
		name:   name,
		args:   args,
		logger: slog.Default().WithGroup("launcher.Runner"),
	}
	for _, opt := range opts {
		opt(r)
	}

	fsm, err := finitestate.New(r.logger.WithGroup("fsm").Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	r.fsm = fsm

	return r, nil
}

// String implements the supervisor.Runnable interface
func (r *Runner) String() string {
	return fmt.Sprintf("launcher.Runner(%s)", r.name)
}

// Run implements the supervisor.Runnable interface. It starts the child and
// blocks until the context is canceled or the child exits. An exit that was
// not requested is reported as an error.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.fsm.Transition(finitestate.StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	r.runCancel = cancel

	cmd := exec.CommandContext(runCtx, r.name, r.args...)
	if err := cmd.Start(); err != nil {
		if stateErr := r.fsm.Transition(finitestate.StatusError); stateErr != nil {
			r.logger.Error("Failed to transition to error state", "error", stateErr)
		}
		return fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		return fmt.Errorf("failed to transition to running state: %w", err)
	}
	r.logger.Info("Dashboard running under supervision", "pid", cmd.Process.Pid)

	waitCh := make(chan error, 1)
	go func() {
		waitCh <- cmd.Wait()
	}()

	var runErr error
	select {
	case <-runCtx.Done():
		r.logger.Debug("Run context canceled, waiting for child to exit")
		<-waitCh
	case err := <-waitCh:
		// The child exited on its own; that is a failure for a server process
		runErr = fmt.Errorf("%w: process exited unexpectedly: %v", ErrLaunch, err)
	}

	r.logger.Info("Runner shutting down")

	if r.fsm.GetState() != finitestate.StatusStopping {
		if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
			r.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}
	if err := r.fsm.Transition(finitestate.StatusStopped); err != nil {
		return fmt.Errorf("failed to transition to stopped state: %w", err)
	}

	return runErr
}

// Stop implements the supervisor.Runnable interface
func (r *Runner) Stop() {
	r.logger.Debug("Stopping Runner")
	if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
		r.logger.Error("Failed to transition to stopping state", "error", err)
		// Continue with shutdown despite the state transition error
	}
	if r.runCancel != nil {
		r.runCancel()
	}
}
