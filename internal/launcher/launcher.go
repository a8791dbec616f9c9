// Package launcher starts the AURA400 web dashboard process. The default
// mode is an explicit fire-and-forget contract: the process is started,
// its handle is released, and nothing ever joins or supervises it. The
// attached mode wraps the same process in a supervisor runnable instead.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

var (
	// ErrLaunch indicates the dashboard process could not be started
	ErrLaunch = errors.New("dashboard launch failed")

	// ErrBrowserOpen indicates the local browser could not be opened (non-fatal)
	ErrBrowserOpen = errors.New("browser open failed")
)

// Detached launches a process without retaining a handle. Implementations
// must not wait on, monitor, or otherwise manage the spawned process.
type Detached interface {
	// Launch starts the process and releases it. The context bounds only
	// the spawn itself, never the lifetime of the child.
	Launch(ctx context.Context) error

	fmt.Stringer
}

var _ Detached = (*WebServer)(nil)

// WebServer launches the dashboard entry point through the sandbox interpreter
type WebServer struct {
	python string
	script string
	port   int
	logger *slog.Logger
}

// WebServerOption is a functional option for configuring a WebServer
type WebServerOption func(*WebServer)

// WithWebServerLogger sets the logger for launch operations
func WithWebServerLogger(logger *slog.Logger) WebServerOption {
	return func(w *WebServer) {
		w.logger = logger
	}
}

// NewWebServer creates a dashboard launcher. The script is expected to bind
// localhost on the given port once running.
func NewWebServer(python, script string, port int, opts ...WebServerOption) *WebServer {
	w := &WebServer{
		python: python,
		script: script,
		port:   port,
		logger: slog.Default().WithGroup("launcher.WebServer"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// String implements the Detached interface
func (w *WebServer) String() string {
	return fmt.Sprintf("launcher.WebServer(%s)", w.script)
}

// URL returns the address the dashboard is expected to listen on
func (w *WebServer) URL() string {
	return fmt.Sprintf("http://localhost:%d", w.port)
}

// Launch implements the Detached interface. The child is released
// immediately after a successful start; an interrupted provisioning run
// leaves it running on purpose.
func (w *WebServer) Launch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	cmd := exec.Command(w.python, w.script)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLaunch, w.script, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("%w: release pid %d: %w", ErrLaunch, pid, err)
	}

	w.logger.Info("Dashboard launched", "pid", pid, "url", w.URL())
	return nil
}

// OpenBrowser opens the local browser at url, best-effort. Callers surface
// the error as a warning; the dashboard keeps running either way.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBrowserOpen, url, err)
	}
	return cmd.Process.Release()
}
