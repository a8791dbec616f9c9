package main

import (
	"context"
	"fmt"

	"github.com/aura400/aurasetup/internal/fancy"
	"github.com/aura400/aurasetup/internal/provision"
	"github.com/urfave/cli/v3"
)

var verifyCmd = &cli.Command{
	Name:  "verify",
	Usage: "Check that every manifest dependency resolves inside the sandbox",
	Flags: append(commonFlags(),
		&cli.BoolFlag{
			Name:  "repair",
			Usage: "Re-run the manifest install when dependencies are missing",
		},
	),
	Action: verifyAction,
}

func verifyAction(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProfile(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	sc, err := provision.ActivateExisting(p.Sandbox.Dir)
	if err != nil {
		return cli.Exit(fmt.Errorf("sandbox not usable, run `aurasetup setup` first: %w", err), 1)
	}

	manifest, err := provision.LoadManifest(p.Sandbox.Manifest)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	runner := &provision.OSRunner{}
	verifier := provision.NewVerifier(sc, runner)

	status := verifier.Verify(ctx, manifest)
	if !status.Clean() && cmd.Bool("repair") {
		fmt.Println(fancy.WarnText(fmt.Sprintf(
			"%d dependencies missing, re-running install", len(status.Missing()))))

		installer := provision.NewInstaller(sc, runner)
		if err := installer.Install(ctx, manifest.Path); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		status = verifier.Verify(ctx, manifest)
	}

	fmt.Println(fancy.DependencyTree(status.Installed, manifest.Names()))

	if !status.Clean() {
		return cli.Exit(fmt.Sprintf("%d dependencies still missing", len(status.Missing())), 1)
	}
	return nil
}
