package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aura400/aurasetup/internal/fancy"
	"github.com/aura400/aurasetup/internal/launcher"
	"github.com/aura400/aurasetup/internal/profile"
	"github.com/aura400/aurasetup/internal/provision"
	"github.com/robbyt/go-supervisor/supervisor"
	"github.com/urfave/cli/v3"
)

const timeRounding = 10 * time.Millisecond

// browserDelay gives the dashboard time to bind its port before the browser
// tab loads
const browserDelay = 2 * time.Second

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Launch the AURA400 web dashboard from the sandbox",
	Flags: append(commonFlags(),
		&cli.BoolFlag{
			Name:  "attach",
			Usage: "Keep the dashboard attached to this process and supervise it",
		},
		&cli.BoolFlag{
			Name:  "browser",
			Usage: "Open a local browser at the dashboard address",
		},
	),
	Action: serveAction,
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProfile(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	sc, err := provision.ActivateExisting(p.Sandbox.Dir)
	if err != nil {
		return cli.Exit(fmt.Errorf("sandbox not usable, run `aurasetup setup` first: %w", err), 1)
	}

	if cmd.Bool("attach") {
		return serveAttached(ctx, sc, p)
	}
	return serveDetached(ctx, sc, p, cmd.Bool("browser"))
}

// serveDetached starts the dashboard fire-and-forget and returns once the
// child is released. With browser set, a local tab is opened after a short
// startup grace period.
func serveDetached(ctx context.Context, sc *provision.SandboxContext, p *profile.Profile, browser bool) error {
	ws := launcher.NewWebServer(sc.Python, p.App.Web, p.App.Port)
	if err := ws.Launch(ctx); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Printf("%s %s\n", fancy.SummaryText("Dashboard available at"), fancy.PathText(ws.URL()))

	if browser {
		time.Sleep(browserDelay)
		if err := launcher.OpenBrowser(ws.URL()); err != nil {
			slog.Warn("Could not open browser", "url", ws.URL(), "error", err)
		}
	}
	return nil
}

// serveAttached runs the dashboard under supervision. The call blocks until
// the process exits or the supervisor receives a shutdown signal.
func serveAttached(ctx context.Context, sc *provision.SandboxContext, p *profile.Profile) error {
	runner, err := launcher.NewRunner(sc.Python, []string{p.App.Web})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	super, err := supervisor.New(
		supervisor.WithContext(ctx),
		supervisor.WithRunnables(runner),
		supervisor.WithLogHandler(slog.Default().Handler()),
	)
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to create supervisor: %w", err), 1)
	}

	fmt.Printf("%s %s\n",
		fancy.SummaryText("Dashboard supervised at"),
		fancy.PathText(fmt.Sprintf("http://localhost:%d", p.App.Port)))

	if err := super.Run(); err != nil {
		return cli.Exit(fmt.Errorf("dashboard terminated: %w", err), 1)
	}
	return nil
}
