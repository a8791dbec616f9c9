package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aura400/aurasetup/internal/demo"
	"github.com/aura400/aurasetup/internal/fancy"
	"github.com/aura400/aurasetup/internal/profile"
	"github.com/aura400/aurasetup/internal/provision"
	"github.com/urfave/cli/v3"
)

var setupCmd = &cli.Command{
	Name:  "setup",
	Usage: "Provision the AURA400 environment: sandbox, dependencies, config",
	Flags: append(commonFlags(),
		&cli.BoolFlag{
			Name:  "demo",
			Usage: "Run the scripted emotion demo after provisioning",
		},
		&cli.BoolFlag{
			Name:  "serve",
			Usage: "Launch the web dashboard after provisioning",
		},
		&cli.BoolFlag{
			Name:  "browser",
			Usage: "Open a browser at the dashboard address (implies --serve)",
		},
	),
	Action: setupAction,
}

func setupAction(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProfile(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Println(fancy.Banner(cmd.Root().Version))

	wf, err := provision.NewWorkflow(workflowOptions(p), slog.Default().Handler())
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to create workflow: %w", err), 1)
	}

	if err := wf.Run(ctx); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	printSetupReport(wf)

	if cmd.Bool("demo") {
		runSetupDemo(ctx, wf.Sandbox(), p)
	}

	if cmd.Bool("serve") || cmd.Bool("browser") {
		return serveDetached(ctx, wf.Sandbox(), p, cmd.Bool("browser"))
	}

	return nil
}

// workflowOptions maps a setup profile onto provisioning options
func workflowOptions(p *profile.Profile) provision.Options {
	defaults := provision.DefaultConfig()
	defaults.Port = p.App.Port

	return provision.Options{
		SandboxDir:   p.Sandbox.Dir,
		ManifestPath: p.Sandbox.Manifest,
		ConfigPath:   p.App.Config,
		Interpreter:  p.Sandbox.Interpreter,
		Defaults:     defaults,
	}
}

// printSetupReport renders the post-run dependency tree and any warnings
func printSetupReport(wf *provision.Workflow) {
	fmt.Printf("\n%s %s\n", fancy.SummaryText("Runtime:"), wf.Runtime().String())

	if m := wf.Manifest(); m != nil {
		fmt.Println(fancy.DependencyTree(wf.Status().Installed, m.Names()))
	}

	for _, warn := range wf.Warnings() {
		fmt.Println(fancy.WarnText("warning: " + warn.Error()))
	}

	fmt.Printf("%s %s\n",
		fancy.SummaryText("Setup complete in"),
		wf.GetTotalDuration().Round(timeRounding).String())
}

// runSetupDemo runs the demo loop as part of a full bootstrap. Demo failures
// never fail the setup; each result is reported independently.
func runSetupDemo(ctx context.Context, sc *provision.SandboxContext, p *profile.Profile) {
	r := demo.NewRunner(sc, p.App.Core, demo.WithShots(p.Demo.Shots))
	results := r.Run(ctx, profileEmotions(p))
	printDemoResults(results)
}
