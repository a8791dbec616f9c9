package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:    "aurasetup",
		Version: Version,
		Usage:   "Environment setup tool for the AURA400 quantum emotional system",
		Commands: []*cli.Command{
			versionCmd,
			setupCmd,
			verifyCmd,
			demoCmd,
			serveCmd,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
