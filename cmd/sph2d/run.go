package main

import (
	"fmt"

	"diesel.com/sph2d/config"
	F "diesel.com/sph2d/fluid"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type runFlags struct {
	steps         int
	every         int
	cpuProfile    string
	exampleConfig bool
}

func newRunCmd(g *globalFlags) *cobra.Command {
	r := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step the simulation without a viewer and log diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if r.exampleConfig {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.ExampleFile)
				return err
			}
			if r.steps < 0 {
				return errors.Errorf("--steps must be non-negative, got %d", r.steps)
			}

			c, err := g.load()
			if err != nil {
				return err
			}
			sim, err := c.Build()
			if err != nil {
				return err
			}

			if r.cpuProfile != "" {
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(r.cpuProfile), profile.NoShutdownHook).Stop()
			}

			_, err = runHeadless(sim, r.steps, r.every, logrus.WithField("mode", "headless"))
			return err
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&r.steps, "steps", "n", 1000, "number of time steps")
	flags.IntVar(&r.every, "every", 100, "log diagnostics every N steps (0 logs only the end)")
	flags.StringVar(&r.cpuProfile, "cpuprofile", "", "write a CPU profile into this directory")
	flags.BoolVar(&r.exampleConfig, "example-config", false, "print a commented default config and exit")
	return cmd
}

//runHeadless steps sim and logs Stats every `every` steps and at the end. The
//first failed step stops the run.
func runHeadless(sim *F.Simulation, steps int, every int, log *logrus.Entry) (F.Stats, error) {
	log.WithFields(logrus.Fields{"particles": sim.Len(), "steps": steps}).Info("run started")

	for i := 1; i <= steps; i++ {
		if err := sim.Update(); err != nil {
			log.WithError(err).Error("simulation diverged")
			return sim.Stats(), errors.Wrap(err, "headless run")
		}
		if every > 0 && i%every == 0 && i != steps {
			logStats(log, sim.Stats())
		}
	}

	s := sim.Stats()
	logStats(log, s)
	return s, nil
}

func logStats(log *logrus.Entry, s F.Stats) {
	log.WithFields(logrus.Fields{
		"step":    s.Step,
		"t":       fmt.Sprintf("%.5f", s.Time),
		"kinetic": s.KineticEnergy,
		"rho_min": s.MinDensity,
		"rho_max": s.MaxDensity,
		"rho":     s.MeanDensity,
	}).Info("stats")
}
