package main

import (
	"diesel.com/sph2d/app"
	"diesel.com/sph2d/console"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newViewCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the OpenGL viewer, drag with the left button to stir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.load()
			if err != nil {
				return err
			}
			v, err := app.NewViewer(c, g.configPath)
			if err != nil {
				return err
			}
			return v.Run()
		},
	}
}

func newTermCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.load()
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return errors.Wrap(err, "terminal")
			}
			if err := screen.Init(); err != nil {
				return errors.Wrap(err, "terminal")
			}

			opts := console.DefaultOptions()
			opts.FPS = c.View.FPS
			opts.ImpulseRadius2 = float32(c.View.ImpulseRadius2)
			opts.ImpulseStrength = float32(c.View.ImpulseStrength)
			term, err := console.New(screen, c.Build, opts)
			if err != nil {
				screen.Fini()
				return err
			}
			return term.Run()
		},
	}
}
