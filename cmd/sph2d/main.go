//sph2d - 2D SPH fluid in a box. Interactive OpenGL and terminal viewers plus a
//headless runner.
package main

import (
	"os"

	"diesel.com/sph2d/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath string
	logLevel   string
	seed       int64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "sph2d",
		Short:         "2D smoothed particle hydrodynamics fluid",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(g.logLevel)
			if err != nil {
				return errors.Wrap(err, "--log-level")
			}
			logrus.SetLevel(level)
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "run configuration file (gcfg), defaults apply when empty")
	flags.StringVar(&g.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.Int64Var(&g.seed, "seed", 0, "lattice jitter seed, overrides the config (0 keeps it)")

	root.AddCommand(newViewCmd(g), newTermCmd(g), newRunCmd(g))
	return root
}

//load - config file or defaults, with the command line seed applied
func (g *globalFlags) load() (config.Config, error) {
	c := config.Default()
	if g.configPath != "" {
		var err error
		if c, err = config.Read(g.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if g.seed != 0 {
		c.Lattice.Seed = g.seed
	}
	return c, nil
}
