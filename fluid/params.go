package fluid

import (
	"math"

	V "diesel.com/sph2d/vector"
	"github.com/pkg/errors"
)

//Default physical configuration. Units are screen units, the constants are tuned
//together for a 500x500 domain and should be changed as a set.
const (
	DefaultGravityY     = -9.8 * 12000
	DefaultRestDensity  = 1000.0
	DefaultGasConstant  = 2000.0
	DefaultKernelRadius = 16.0
	DefaultMass         = 65.0
	DefaultViscosity    = 250.0
	DefaultTimeStep     = 0.0008
	DefaultWidth        = 500.0
	DefaultHeight       = 500.0
)

//Parameters - physical and numerical constants of one run. Owned by the
//Simulation and fixed once it is constructed.
type Parameters struct {
	Gravity      V.Vec2  //World acceleration, any sign
	RestDensity  float32 //Target density of the equation of state
	GasConstant  float32 //Stiffness mapping density deviation to pressure
	KernelRadius float32 //h, interaction cutoff distance
	Mass         float32 //Uniform particle mass
	Viscosity    float32 //Viscous damping coefficient
	TimeStep     float32 //dt
	Width        float32 //Domain bounds, origin bottom-left
	Height       float32
}

func DefaultParameters() Parameters {
	return Parameters{
		Gravity:      V.Vec2{0, DefaultGravityY},
		RestDensity:  DefaultRestDensity,
		GasConstant:  DefaultGasConstant,
		KernelRadius: DefaultKernelRadius,
		Mass:         DefaultMass,
		Viscosity:    DefaultViscosity,
		TimeStep:     DefaultTimeStep,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
	}
}

//Validate checks every field is finite and strictly positive. Gravity may take
//any sign and TimeStep may be zero, which turns integration into a no-op.
func (p Parameters) Validate() error {
	if !V.IsFinite(p.Gravity) {
		return errors.Wrapf(ErrInvalidParameter, "gravity %s is not finite", V.String(p.Gravity))
	}

	positive := []struct {
		name  string
		value float32
	}{
		{"rest density", p.RestDensity},
		{"gas constant", p.GasConstant},
		{"kernel radius", p.KernelRadius},
		{"mass", p.Mass},
		{"viscosity", p.Viscosity},
		{"width", p.Width},
		{"height", p.Height},
	}
	for _, f := range positive {
		if !(f.value > 0) || math.IsInf(float64(f.value), 0) {
			return errors.Wrapf(ErrInvalidParameter, "%s must be positive and finite, got %g", f.name, f.value)
		}
	}

	if !(p.TimeStep >= 0) || math.IsInf(float64(p.TimeStep), 0) {
		return errors.Wrapf(ErrInvalidParameter, "time step must be non-negative and finite, got %g", p.TimeStep)
	}

	return nil
}
