package main

import (
	"github.com/aura400/aurasetup/internal/profile"
	"github.com/urfave/cli/v3"
)

// commonFlags are shared by every command that touches the sandbox
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "Path to TOML setup profile",
			Aliases: []string{"p"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (trace, debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:  "log-output",
			Usage: "Log destination (stderr, stdout, or a file path)",
			Value: "stderr",
		},
	}
}

// loadProfile loads the setup profile and configures logging from it. A
// --log-level flag overrides the profile's level.
func loadProfile(cmd *cli.Command) (*profile.Profile, error) {
	p, err := profile.Load(cmd.String("profile"))
	if err != nil {
		return nil, err
	}

	level := p.LogLevel
	if flagLevel := cmd.String("log-level"); flagLevel != "" {
		level = flagLevel
	}
	if err := SetupLogger(level, cmd.String("log-output")); err != nil {
		return nil, err
	}

	return p, nil
}
