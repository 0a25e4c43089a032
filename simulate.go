package main

import (
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-agent/config"
	"github.com/beka-birhanu/vinom-agent/game/agent"
	"github.com/beka-birhanu/vinom-agent/game/world"
	"github.com/beka-birhanu/vinom-agent/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// simulate plays a single episode against the local cave simulator.
func simulate(cmd *cobra.Command, args []string) error {
	envs = config.Load()
	initLogger()
	defer func() { _ = appLogger.Sync() }()

	flags := cmd.Flags()
	layout, _ := flags.GetString("world")
	seed, _ := flags.GetInt64("seed")
	size, _ := flags.GetInt("size")
	pits, _ := flags.GetFloat64("pits")
	maxSteps, _ := flags.GetInt("max-steps")
	verbose, _ := flags.GetBool("verbose")

	w, err := loadWorld(layout, seed, size, pits)
	if err != nil {
		return err
	}

	agentLogger, err := logger.New("AGENT", config.ColorBlue, os.Stdout)
	if err != nil {
		return err
	}
	agentLogger.SetDebug(envs.Debug || verbose)

	opts := append(agentOptions(w.Bounds()), agent.WithLogger(agentLogger))
	a := agent.New(w.Start, w.StartHeading(), opts...)
	appLogger.Info(fmt.Sprintf("episode %s in a %dx%d cave\n%s", a.ID(), w.Width, w.Height, w))

	p := w.Percept()
	for w.Outcome() == world.Running {
		if w.Steps() >= maxSteps {
			appLogger.Warning(fmt.Sprintf("giving up after %d steps", maxSteps))
			break
		}

		action, err := a.Step(p)
		if err != nil {
			return fmt.Errorf("agent failed at step %d: %w", w.Steps(), err)
		}
		if p, err = w.Apply(action); err != nil {
			return err
		}
		if verbose {
			appLogger.Info(fmt.Sprintf("%-10s %-16s -> %s\n%s", action, a.Goal(), w.Position(), w))
		}
	}

	appLogger.Zap().Info("episode finished",
		zap.Stringer("episode", a.ID()),
		zap.Stringer("outcome", w.Outcome()),
		zap.Int("steps", w.Steps()),
		zap.Bool("gold", w.HasGold()),
		zap.Int("score", w.Score()),
	)
	return nil
}

func loadWorld(layout string, seed int64, size int, pits float64) (*world.World, error) {
	if layout == "" {
		return world.New(size, size, world.Options{Seed: seed, PitProbability: pits})
	}

	f, err := os.Open(layout)
	if err != nil {
		return nil, fmt.Errorf("opening cave layout: %w", err)
	}
	defer f.Close()
	return world.Load(f)
}
