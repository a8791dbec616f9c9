package main

import (
	"context"
	"fmt"

	"github.com/aura400/aurasetup/internal/demo"
	"github.com/aura400/aurasetup/internal/fancy"
	"github.com/aura400/aurasetup/internal/profile"
	"github.com/aura400/aurasetup/internal/provision"
	"github.com/urfave/cli/v3"
)

var demoCmd = &cli.Command{
	Name:  "demo",
	Usage: "Run the emotion demo against a provisioned sandbox",
	Flags: append(commonFlags(),
		&cli.BoolFlag{
			Name:  "list",
			Usage: "List the emotions the core supports and exit",
		},
		&cli.BoolFlag{
			Name:  "info",
			Usage: "Print the core's circuit and backend description and exit",
		},
		&cli.StringFlag{
			Name:  "emotion",
			Usage: "Run a single named emotion instead of the full set",
		},
		&cli.FloatFlag{
			Name:  "intensity",
			Usage: "Intensity for --emotion (0..1)",
			Value: 0.5,
		},
		&cli.IntFlag{
			Name:  "shots",
			Usage: "Simulation shots per invocation (overrides the profile)",
		},
	),
	Action: demoAction,
}

func demoAction(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProfile(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	sc, err := provision.ActivateExisting(p.Sandbox.Dir)
	if err != nil {
		return cli.Exit(fmt.Errorf("sandbox not usable, run `aurasetup setup` first: %w", err), 1)
	}

	shots := p.Demo.Shots
	if cmd.Int("shots") > 0 {
		shots = cmd.Int("shots")
	}
	r := demo.NewRunner(sc, p.App.Core, demo.WithShots(shots))

	switch {
	case cmd.Bool("list"):
		out, err := r.List(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Println(out)
		return nil
	case cmd.Bool("info"):
		out, err := r.Info(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Println(out)
		return nil
	}

	emotions := profileEmotions(p)
	if name := cmd.String("emotion"); name != "" {
		emotions = []demo.Emotion{{Name: name, Intensity: cmd.Float("intensity")}}
	}

	results := r.Run(ctx, emotions)
	printDemoResults(results)

	if _, failed := demo.Summarize(results); failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d emotions failed", failed, len(results)), 1)
	}
	return nil
}

// profileEmotions returns the profile's emotion set, or the stock set when
// the profile leaves it empty
func profileEmotions(p *profile.Profile) []demo.Emotion {
	if len(p.Demo.Emotions) == 0 {
		return demo.DefaultEmotions()
	}
	emotions := make([]demo.Emotion, 0, len(p.Demo.Emotions))
	for _, e := range p.Demo.Emotions {
		emotions = append(emotions, demo.Emotion{Name: e.Name, Intensity: e.Intensity})
	}
	return emotions
}

func printDemoResults(results []demo.Result) {
	for _, res := range results {
		label := fmt.Sprintf("%s (%.2f)", res.Emotion.Name, res.Emotion.Intensity)
		if res.Err != nil {
			fmt.Printf("%s %s\n", fancy.MissingText("✗"), fancy.EmotionText(label))
			continue
		}
		fmt.Printf("%s %s\n", fancy.InstalledText("✓"), fancy.EmotionText(label))
		if res.Output != "" {
			fmt.Println(res.Output)
		}
	}

	ok, failed := demo.Summarize(results)
	fmt.Println(fancy.SummaryText(fmt.Sprintf("Demo finished: %d ok, %d failed", ok, failed)))
}
