package fluid

import (
	"math/rand"
	"time"

	G "diesel.com/sph2d/geometry"
	V "diesel.com/sph2d/vector"
	"github.com/pkg/errors"
)

//Simulation - 2D SPH fluid. Owns the parameter set, the kernel constants derived
//from it and the particle store. Every Update runs the density, force and
//integration passes in that order over all particle pairs, there is no spatial
//acceleration structure.
//
//A Simulation is not safe for concurrent use. Reads (Particles, Snapshot, Stats)
//and impulses belong between Update calls on the goroutine that steps it.
type Simulation struct {
	Timer     Timer
	params    Parameters
	kernel    Kernel
	domain    G.Domain
	particles []Particle
	internal  []V.Vec2 //Pressure + viscosity force of the current step
}

//Timer - simulated time and step count
type Timer struct {
	T        float64 //Simulated time
	TS       float64 //Time step
	TIMELAST float64 //Time before the last step
	Steps    int
}

func (t *Timer) StepTime() {
	t.TIMELAST = t.T
	t.T = t.T + t.TS
	t.Steps++
}

//Stats - diagnostics of the current particle state
type Stats struct {
	Step          int
	Time          float64
	Particles     int
	KineticEnergy float64 //Sum of 0.5 * mass * |v|²
	MinDensity    float32
	MaxDensity    float32
	MeanDensity   float32
}

//New builds a ready to step simulation with the default parameters and the
//default lattice, jittered from a clock seeded source.
func New() *Simulation {
	return NewSeeded(time.Now().UnixNano())
}

//NewSeeded - New with a fixed jitter seed, reproducible run to run
func NewSeeded(seed int64) *Simulation {
	params := DefaultParameters()
	rng := rand.New(rand.NewSource(seed))
	sim, err := NewSimulation(params, Initialize(params, rng))
	if err != nil {
		//default parameters are valid by construction
		panic(err)
	}
	return sim
}

//NewSimulation validates the parameter set and takes ownership of the
//particle slice.
func NewSimulation(params Parameters, particles []Particle) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "new simulation")
	}

	sim := &Simulation{
		params:    params,
		kernel:    Precompute(params),
		domain:    G.NewDomain(params.Width, params.Height, params.KernelRadius*0.5),
		particles: particles,
		internal:  make([]V.Vec2, len(particles)),
	}
	sim.Timer.TS = float64(params.TimeStep)

	return sim, nil
}

//Update advances the simulation by one time step. The three passes always run
//to completion, afterwards the state is checked and a *StepError wrapping
//ErrNonFinite is returned for the first particle holding NaN or Inf. The state
//is left as computed either way.
func (sim *Simulation) Update() error {
	sim.densityPressure()
	sim.forces()
	sim.integrate()
	sim.Timer.StepTime()

	if i := sim.firstNonFinite(); i >= 0 {
		return &StepError{Step: sim.Timer.Steps, Time: sim.Timer.T, Index: i, Err: ErrNonFinite}
	}
	return nil
}

//densityPressure - poly6 density summation over every particle including the
//particle itself, then the linear equation of state
func (sim *Simulation) densityPressure() {
	mass := sim.params.Mass
	for i := range sim.particles {
		pi := &sim.particles[i]
		rho := float32(0.0)
		for j := range sim.particles {
			r2 := V.LengthSq(sim.particles[j].X.Sub(pi.X))
			if r2 < sim.kernel.H2 {
				rho += mass * sim.kernel.Density(r2)
			}
		}
		pi.Rho = rho
		pi.P = sim.params.GasConstant * (rho - sim.params.RestDensity)
	}
}

//forces - symmetrised pressure and viscosity from neighbours within h
func (sim *Simulation) forces() {
	mass := sim.params.Mass
	for i := range sim.particles {
		pi := &sim.particles[i]
		press := V.Zero
		visc := V.Zero

		for j := range sim.particles {
			if i == j {
				continue
			}
			pj := &sim.particles[j]
			rij := pj.X.Sub(pi.X)
			r := V.Length(rij)
			if !(r < sim.kernel.H) {
				continue
			}

			//pressure pushes along x_i - x_j
			press = press.Sub(V.Normalize(rij).Mul(mass * (pi.P + pj.P) / (2 * pj.Rho) * sim.kernel.PressureGrad(r)))
			visc = visc.Add(pj.V.Sub(pi.V).Mul(sim.params.Viscosity * mass / pj.Rho * sim.kernel.ViscosityLap(r)))
		}

		sim.internal[i] = press.Add(visc)
		pi.F = sim.internal[i].Add(sim.params.Gravity.Mul(pi.Rho))
	}
}

//integrate - semi-implicit Euler then inset boundary containment. Gravity enters
//as a plain acceleration, the rho scale in F cancels against the division.
func (sim *Simulation) integrate() {
	dt := sim.params.TimeStep
	g := sim.params.Gravity.Mul(dt)
	for i := range sim.particles {
		p := &sim.particles[i]
		p.V = p.V.Add(sim.internal[i].Mul(dt / p.Rho)).Add(g)
		p.X = p.X.Add(p.V.Mul(dt))
		sim.domain.Contain(&p.X, &p.V)
	}
}

func (sim *Simulation) firstNonFinite() int {
	for i := range sim.particles {
		p := &sim.particles[i]
		if !V.IsFinite(p.X) || !V.IsFinite(p.V) || !V.IsFinite(p.F) || !V.Finite(p.Rho) || !V.Finite(p.P) {
			return i
		}
	}
	return -1
}

//Particles - the live particle store. Read only, valid until the next Update
func (sim *Simulation) Particles() []Particle {
	return sim.particles
}

//Snapshot copies the particle store into dst, growing it when needed
func (sim *Simulation) Snapshot(dst []Particle) []Particle {
	if cap(dst) < len(sim.particles) {
		dst = make([]Particle, len(sim.particles))
	}
	dst = dst[:len(sim.particles)]
	copy(dst, sim.particles)
	return dst
}

func (sim *Simulation) Len() int {
	return len(sim.particles)
}

func (sim *Simulation) Parameters() Parameters {
	return sim.params
}

func (sim *Simulation) Kernel() Kernel {
	return sim.kernel
}

func (sim *Simulation) Domain() G.Domain {
	return sim.domain
}

func (sim *Simulation) Width() float32 {
	return sim.params.Width
}

func (sim *Simulation) Height() float32 {
	return sim.params.Height
}

//Stats - kinetic energy and density range of the current state. Densities are
//those of the last density pass, zero before the first Update.
func (sim *Simulation) Stats() Stats {
	s := Stats{Step: sim.Timer.Steps, Time: sim.Timer.T, Particles: len(sim.particles)}
	if len(sim.particles) == 0 {
		return s
	}

	s.MinDensity = sim.particles[0].Rho
	s.MaxDensity = sim.particles[0].Rho
	sum := float64(0)
	for i := range sim.particles {
		p := &sim.particles[i]
		v := float64(V.LengthSq(p.V))
		s.KineticEnergy += 0.5 * float64(sim.params.Mass) * v
		if p.Rho < s.MinDensity {
			s.MinDensity = p.Rho
		}
		if p.Rho > s.MaxDensity {
			s.MaxDensity = p.Rho
		}
		sum += float64(p.Rho)
	}
	s.MeanDensity = float32(sum / float64(len(sim.particles)))

	return s
}
