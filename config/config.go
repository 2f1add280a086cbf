package config

import (
	"math/rand"
	"time"

	F "diesel.com/sph2d/fluid"
	V "diesel.com/sph2d/vector"
	"github.com/pkg/errors"
	"gopkg.in/gcfg.v1"
)

//Run configuration. Read fills a struct pre-populated with Default, so a file
//only needs the keys it changes.

type FluidConfig struct {
	GravityX, GravityY float64
	RestDensity        float64
	GasConstant        float64
	KernelRadius       float64
	Mass               float64
	Viscosity          float64
	TimeStep           float64
	Width, Height      float64
}

type LatticeConfig struct {
	Columns, Rows    int
	OriginX, OriginY float64
	Jitter           float64
	Seed             int64 //0 seeds from the clock
}

type ViewConfig struct {
	WindowHeight    int
	FPS             int
	Watch           bool
	ImpulseRadius2  float64
	ImpulseStrength float64
}

type Config struct {
	Fluid   FluidConfig
	Lattice LatticeConfig
	View    ViewConfig
}

//Viewport height in pixels, the width follows the domain aspect ratio
const DefaultWindowHeight = 500

const DefaultFPS = 60

func Default() Config {
	return Config{
		Fluid: FluidConfig{
			GravityX:     0,
			GravityY:     F.DefaultGravityY,
			RestDensity:  F.DefaultRestDensity,
			GasConstant:  F.DefaultGasConstant,
			KernelRadius: F.DefaultKernelRadius,
			Mass:         F.DefaultMass,
			Viscosity:    F.DefaultViscosity,
			TimeStep:     F.DefaultTimeStep,
			Width:        F.DefaultWidth,
			Height:       F.DefaultHeight,
		},
		Lattice: LatticeConfig{
			Columns: F.DefaultColumns,
			Rows:    F.DefaultRows,
			OriginX: F.DefaultOrigin,
			OriginY: F.DefaultOrigin,
			Jitter:  F.DefaultJitter,
		},
		View: ViewConfig{
			WindowHeight:    DefaultWindowHeight,
			FPS:             DefaultFPS,
			ImpulseRadius2:  F.ImpulseRadius2,
			ImpulseStrength: F.ImpulseStrength,
		},
	}
}

//Read loads and validates a config file
func Read(fname string) (Config, error) {
	c := Default()
	if err := gcfg.ReadFileInto(&c, fname); err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", fname)
	}
	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", fname)
	}
	return c, nil
}

//Parse - Read from a string
func Parse(text string) (Config, error) {
	c := Default()
	if err := gcfg.ReadStringInto(&c, text); err != nil {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Lattice.Columns < 0 {
		return errors.Errorf("Lattice.Columns must be non-negative, but is %d", c.Lattice.Columns)
	} else if c.Lattice.Rows < 0 {
		return errors.Errorf("Lattice.Rows must be non-negative, but is %d", c.Lattice.Rows)
	} else if c.Lattice.Jitter < 0 {
		return errors.Errorf("Lattice.Jitter must be non-negative, but is %g", c.Lattice.Jitter)
	}

	if c.View.WindowHeight <= 0 {
		return errors.Errorf("View.WindowHeight must be positive, but is %d", c.View.WindowHeight)
	} else if c.View.FPS <= 0 {
		return errors.Errorf("View.FPS must be positive, but is %d", c.View.FPS)
	} else if c.View.ImpulseRadius2 <= 0 {
		return errors.Errorf("View.ImpulseRadius2 must be positive, but is %g", c.View.ImpulseRadius2)
	} else if c.View.ImpulseStrength < 0 {
		return errors.Errorf("View.ImpulseStrength must be non-negative, but is %g", c.View.ImpulseStrength)
	}

	if err := c.Parameters().Validate(); err != nil {
		return errors.Wrap(err, "[Fluid]")
	}
	return nil
}

//Parameters - the [Fluid] section as a solver parameter set
func (c *Config) Parameters() F.Parameters {
	f := c.Fluid
	return F.Parameters{
		Gravity:      V.Vec2{float32(f.GravityX), float32(f.GravityY)},
		RestDensity:  float32(f.RestDensity),
		GasConstant:  float32(f.GasConstant),
		KernelRadius: float32(f.KernelRadius),
		Mass:         float32(f.Mass),
		Viscosity:    float32(f.Viscosity),
		TimeStep:     float32(f.TimeStep),
		Width:        float32(f.Width),
		Height:       float32(f.Height),
	}
}

//LatticeSpec - the [Lattice] section, spaced one kernel radius apart
func (c *Config) LatticeSpec() F.Lattice {
	l := c.Lattice
	return F.Lattice{
		Columns: l.Columns,
		Rows:    l.Rows,
		Spacing: float32(c.Fluid.KernelRadius),
		Origin:  V.Vec2{float32(l.OriginX), float32(l.OriginY)},
		Jitter:  float32(l.Jitter),
	}
}

//Rand - jitter source for the lattice
func (c *Config) Rand() *rand.Rand {
	seed := c.Lattice.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

//Build - a fresh simulation from the config. Every reset goes through here.
func (c *Config) Build() (*F.Simulation, error) {
	params := c.Parameters()
	sim, err := F.NewSimulation(params, c.LatticeSpec().Place(c.Rand()))
	if err != nil {
		return nil, errors.Wrap(err, "building simulation")
	}
	return sim, nil
}
