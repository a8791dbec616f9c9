// Package demo drives the scripted emotion demo against the AURA400 core
// entry point. Each emotion is an independent subprocess invocation; one
// failing never stops the rest.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aura400/aurasetup/internal/provision"
)

// ErrInvocation indicates the core entry point exited non-zero for one emotion
var ErrInvocation = errors.New("demo invocation failed")

// Emotion is one demo invocation: a named emotion and its intensity (0..1)
type Emotion struct {
	Name      string
	Intensity float64
}

// DefaultEmotions returns the stock demo set with the base intensities the
// AURA400 core associates with each emotion
func DefaultEmotions() []Emotion {
	return []Emotion{
		{Name: "alegria", Intensity: 0.9},
		{Name: "tristeza", Intensity: 0.1},
		{Name: "miedo", Intensity: 0.2},
		{Name: "ira", Intensity: 0.3},
		{Name: "sorpresa", Intensity: 0.8},
		{Name: "asco", Intensity: 0.15},
		{Name: "confianza", Intensity: 0.7},
		{Name: "anticipacion", Intensity: 0.6},
	}
}

// Result is the outcome of a single emotion invocation
type Result struct {
	Emotion Emotion
	Output  string
	Err     error
}

// Runner invokes the AURA400 core as a subprocess through the sandbox interpreter
type Runner struct {
	python string
	script string
	shots  int
	runner provision.CommandRunner
	logger *slog.Logger
}

// Option is a functional option for configuring a Runner
type Option func(*Runner)

// WithShots sets the simulation shot count per invocation
func WithShots(shots int) Option {
	return func(r *Runner) {
		r.shots = shots
	}
}

// WithLogger sets the logger for demo operations
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithCommandRunner overrides subprocess execution, mainly for tests
func WithCommandRunner(cr provision.CommandRunner) Option {
	return func(r *Runner) {
		r.runner = cr
	}
}

// NewRunner creates a demo Runner using the sandbox interpreter and the
// given core entry point script
func NewRunner(sc *provision.SandboxContext, script string, opts ...Option) *Runner {
	r := &Runner{
		python: sc.Python,
		script: script,
		shots:  1024,
		runner: &provision.OSRunner{},
		logger: slog.Default().WithGroup("demo.Runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run invokes the core once per emotion and aggregates per-invocation
// outcomes. Every emotion is attempted regardless of earlier failures.
func (r *Runner) Run(ctx context.Context, emotions []Emotion) []Result {
	results := make([]Result, 0, len(emotions))

	for _, e := range emotions {
		r.logger.Info("Running emotion", "emotion", e.Name, "intensity", e.Intensity)

		out, err := r.runner.Run(ctx, r.python, r.script,
			"--emotion", e.Name,
			"--intensity", strconv.FormatFloat(e.Intensity, 'f', -1, 64),
			"--shots", strconv.Itoa(r.shots))
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", ErrInvocation, e.Name, err)
			r.logger.Warn("Emotion invocation failed", "emotion", e.Name, "error", err)
		}

		results = append(results, Result{Emotion: e, Output: out, Err: err})
	}

	return results
}

// List asks the core for its available emotions
func (r *Runner) List(ctx context.Context) (string, error) {
	out, err := r.runner.Run(ctx, r.python, r.script, "--list")
	if err != nil {
		return out, fmt.Errorf("%w: --list: %w", ErrInvocation, err)
	}
	return out, nil
}

// Info asks the core for its circuit and backend description
func (r *Runner) Info(ctx context.Context) (string, error) {
	out, err := r.runner.Run(ctx, r.python, r.script, "--info")
	if err != nil {
		return out, fmt.Errorf("%w: --info: %w", ErrInvocation, err)
	}
	return out, nil
}

// Summarize counts successful and failed invocations
func Summarize(results []Result) (ok, failed int) {
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		ok++
	}
	return ok, failed
}
