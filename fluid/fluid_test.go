package fluid

import (
	"math"
	rand "math/rand"
	"testing"

	V "diesel.com/sph2d/vector"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroGravity() Parameters {
	p := DefaultParameters()
	p.Gravity = V.Zero
	return p
}

func TestLattice(t *testing.T) {
	p := DefaultParameters()
	l := DefaultLattice(p)
	grid := l.Place(nil)
	require.Len(t, grid, 400)

	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			want := V.Vec2{float32(i)*16 + 150, float32(j)*16 + 150}
			if !V.VecEquals(grid[i*20+j].X, want) {
				t.Errorf("Particle (%d,%d) at %s expected %s\n", i, j, V.String(grid[i*20+j].X), V.String(want))
			}
		}
	}

	rnd := rand.New(rand.NewSource(295275912632))
	jittered := Initialize(p, rnd)
	require.Len(t, jittered, 400)
	distinct := map[float32]bool{}
	for k := range jittered {
		dx := jittered[k].X[0] - grid[k].X[0]
		assert.True(t, dx >= 0 && dx < 1, "jitter %f out of range", dx)
		assert.Equal(t, grid[k].X[1], jittered[k].X[1])
		assert.Equal(t, V.Zero, jittered[k].V)
		assert.Zero(t, jittered[k].Rho)
		distinct[dx] = true
	}
	//jitter is drawn per particle, not per column
	assert.True(t, len(distinct) > 20)

	assert.Zero(t, Lattice{Columns: 0, Rows: 5}.Count())
	assert.Empty(t, Lattice{Columns: 0, Rows: 5}.Place(nil))
}

func TestSelfDensity(t *testing.T) {
	sim := NewSeeded(7)
	require.NoError(t, sim.Update())

	for i, p := range sim.Particles() {
		if !(p.Rho > 0) {
			t.Errorf("Particle %d density %g not positive\n", i, p.Rho)
		}
	}
}

//A lone particle only sees itself
func TestSingleParticlePressure(t *testing.T) {
	p := DefaultParameters()
	sim, err := NewSimulation(p, []Particle{NewParticle(250, 250)})
	require.NoError(t, err)
	require.NoError(t, sim.Update())

	k := sim.Kernel()
	rho := float64(p.Mass) * float64(k.Poly6) * math.Pow(float64(k.H2), 3)
	got := sim.Particles()[0]
	assert.InEpsilon(t, rho, float64(got.Rho), 1e-5)
	assert.InEpsilon(t, float64(p.GasConstant)*(rho-float64(p.RestDensity)), float64(got.P), 1e-5)
	assert.True(t, got.P < 0)

	//no neighbours, only gravity acts on F
	assert.InEpsilon(t, float64(p.Gravity[1]*got.Rho), float64(got.F[1]), 1e-5)
	assert.Zero(t, got.F[0])
}

func TestPairForceSymmetry(t *testing.T) {
	sim, err := NewSimulation(zeroGravity(), []Particle{NewParticle(240, 250), NewParticle(250, 250)})
	require.NoError(t, err)
	require.NoError(t, sim.Update())

	a := sim.Particles()[0]
	b := sim.Particles()[1]
	assert.Equal(t, a.Rho, b.Rho)
	assert.True(t, V.Length(a.F) > 0)
	assert.InDelta(t, a.F[0], -b.F[0], 1e-3)
	assert.InDelta(t, a.F[1], -b.F[1], 1e-3)
	assert.Zero(t, a.F[1])
}

//Two approaching particles: pressure along the axis, viscosity across it
func TestPairForce(t *testing.T) {
	particles := []Particle{NewParticle(240, 250), NewParticle(250, 250)}
	particles[0].V = V.Vec2{0, 5}
	particles[1].V = V.Vec2{0, -5}
	p := zeroGravity()
	sim, err := NewSimulation(p, particles)
	require.NoError(t, err)
	require.NoError(t, sim.Update())

	k := sim.Kernel()
	a := sim.Particles()[0]
	b := sim.Particles()[1]
	mass := float64(p.Mass)
	r := 10.0
	x := float64(k.H) - r

	//far below rest density, the pair pressure sum is negative
	require.True(t, a.P+b.P < 0)
	press := -mass * float64(a.P+b.P) / (2 * float64(b.Rho)) * float64(k.SpikyGrad) * x * x
	visc := -10 * float64(p.Viscosity) * mass / float64(b.Rho) * float64(k.ViscLap) * x

	assert.InEpsilon(t, press, float64(a.F[0]), 1e-4)
	assert.InEpsilon(t, visc, float64(a.F[1]), 1e-4)
	assert.True(t, a.F[0] < 0, "pressure on the left particle points %f", a.F[0])
	assert.True(t, a.F[1] < 0, "viscosity on the rising particle points %f", a.F[1])

	assert.InEpsilon(t, -press, float64(b.F[0]), 1e-4)
	assert.InEpsilon(t, -visc, float64(b.F[1]), 1e-4)
}

//A lone particle falls freely: the rho scale in F does not reach the velocity
func TestGravityIntegration(t *testing.T) {
	p := DefaultParameters()
	x0 := V.Vec2{250, 250}
	sim, err := NewSimulation(p, []Particle{NewParticle(x0[0], x0[1])})
	require.NoError(t, err)

	g := p.Gravity.Mul(p.TimeStep)
	require.NoError(t, sim.Update())
	got := sim.Particles()[0]
	assert.Equal(t, g, got.V)
	assert.Equal(t, x0.Add(got.V.Mul(p.TimeStep)), got.X)

	x1 := got.X
	require.NoError(t, sim.Update())
	got = sim.Particles()[0]
	assert.Equal(t, g.Add(g), got.V)
	assert.Equal(t, x1.Add(got.V.Mul(p.TimeStep)), got.X)
}

func TestCoincidentParticles(t *testing.T) {
	sim, err := NewSimulation(zeroGravity(), []Particle{NewParticle(250, 250), NewParticle(250, 250)})
	require.NoError(t, err)
	require.NoError(t, sim.Update())

	for _, p := range sim.Particles() {
		assert.Equal(t, V.Vec2{250, 250}, p.X)
	}
}

func TestBoundaryContainment(t *testing.T) {
	particles := []Particle{NewParticle(2, 250), NewParticle(250, 600), NewParticle(498, -3)}
	particles[0].V = V.Vec2{-10, 0}
	particles[1].V = V.Vec2{0, 5}
	particles[2].V = V.Vec2{4, -6}

	sim, err := NewSimulation(zeroGravity(), particles)
	require.NoError(t, err)
	require.NoError(t, sim.Update())

	got := sim.Particles()
	assert.Equal(t, V.Vec2{8, 250}, got[0].X)
	assert.Equal(t, V.Vec2{5, 0}, got[0].V)
	assert.Equal(t, V.Vec2{250, 492}, got[1].X)
	assert.Equal(t, V.Vec2{0, -2.5}, got[1].V)
	assert.Equal(t, V.Vec2{492, 8}, got[2].X)
	assert.Equal(t, V.Vec2{-2, 3}, got[2].V)

	//the settling blob never leaves the inset box
	sim = NewSeeded(3)
	d := sim.Domain()
	for s := 0; s < 30; s++ {
		require.NoError(t, sim.Update())
		for i, p := range sim.Particles() {
			if !d.Contains(p.X) {
				t.Errorf("Step %d particle %d escaped to %s\n", s, i, V.String(p.X))
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	p := DefaultParameters()
	a, err := NewSimulation(p, DefaultLattice(p).Place(nil))
	require.NoError(t, err)
	b, err := NewSimulation(p, DefaultLattice(p).Place(nil))
	require.NoError(t, err)

	for s := 0; s < 20; s++ {
		require.NoError(t, a.Update())
		require.NoError(t, b.Update())
	}
	assert.Equal(t, a.Particles(), b.Particles())

	c := NewSeeded(42)
	e := NewSeeded(42)
	require.NoError(t, c.Update())
	require.NoError(t, e.Update())
	assert.Equal(t, c.Particles(), e.Particles())
}

func TestZeroStep(t *testing.T) {
	p := DefaultParameters()
	p.TimeStep = 0
	sim, err := NewSimulation(p, Initialize(p, rand.New(rand.NewSource(11))))
	require.NoError(t, err)
	before := sim.Snapshot(nil)

	require.NoError(t, sim.Update())
	require.NoError(t, sim.Update())
	for i, q := range sim.Particles() {
		assert.Equal(t, before[i].X, q.X)
		assert.Equal(t, before[i].V, q.V)
		assert.True(t, q.Rho > 0)
	}
	assert.Equal(t, 2, sim.Timer.Steps)
	assert.Zero(t, sim.Timer.T)
}

func TestTimer(t *testing.T) {
	sim := NewSeeded(1)
	for s := 0; s < 3; s++ {
		require.NoError(t, sim.Update())
	}
	assert.Equal(t, 3, sim.Timer.Steps)
	assert.InDelta(t, 3*DefaultTimeStep, sim.Timer.T, 1e-9)
	assert.InDelta(t, 2*DefaultTimeStep, sim.Timer.TIMELAST, 1e-9)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultParameters().Validate())

	cases := map[string]func(p *Parameters){
		"radius":    func(p *Parameters) { p.KernelRadius = 0 },
		"mass":      func(p *Parameters) { p.Mass = -1 },
		"rest":      func(p *Parameters) { p.RestDensity = float32(math.NaN()) },
		"width":     func(p *Parameters) { p.Width = float32(math.Inf(1)) },
		"gravity":   func(p *Parameters) { p.Gravity = V.Vec2{0, float32(math.NaN())} },
		"time step": func(p *Parameters) { p.TimeStep = -0.1 },
	}
	for name, mutate := range cases {
		p := DefaultParameters()
		mutate(&p)
		err := p.Validate()
		assert.True(t, errors.Is(err, ErrInvalidParameter), name)

		_, err = NewSimulation(p, nil)
		assert.True(t, errors.Is(err, ErrInvalidParameter), name)
	}

	p := DefaultParameters()
	p.Gravity = V.Vec2{3, 9.8}
	p.TimeStep = 0
	assert.NoError(t, p.Validate())
}

func TestNonFiniteState(t *testing.T) {
	p := DefaultParameters()
	particles := Lattice{Columns: 3, Rows: 3, Spacing: 10, Origin: V.Vec2{200, 200}}.Place(nil)
	particles[4].X = V.Vec2{float32(math.NaN()), 210}

	sim, err := NewSimulation(p, particles)
	require.NoError(t, err)

	err = sim.Update()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonFinite))

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 4, stepErr.Index)
	assert.Equal(t, 1, stepErr.Step)
	assert.Contains(t, err.Error(), "particle 4")

	//the rest of the blob is untouched by the bad particle
	for i, q := range sim.Particles() {
		if i != 4 {
			assert.True(t, V.IsFinite(q.X) && V.IsFinite(q.V), "particle %d", i)
		}
	}
}

func TestSnapshot(t *testing.T) {
	sim := NewSeeded(5)
	snap := sim.Snapshot(make([]Particle, 0, 8))
	require.Len(t, snap, sim.Len())

	snap[0].X = V.Vec2{-1, -1}
	assert.NotEqual(t, snap[0].X, sim.Particles()[0].X)

	again := sim.Snapshot(snap)
	assert.Equal(t, sim.Particles(), again)
	assert.Equal(t, float32(500), sim.Width())
	assert.Equal(t, float32(500), sim.Height())
	assert.Equal(t, DefaultParameters(), sim.Parameters())
}

func TestStats(t *testing.T) {
	particles := []Particle{NewParticle(100, 100), NewParticle(300, 300)}
	particles[0].V = V.Vec2{1, 0}
	particles[1].V = V.Vec2{0, 2}
	sim, err := NewSimulation(DefaultParameters(), particles)
	require.NoError(t, err)

	s := sim.Stats()
	assert.Equal(t, 2, s.Particles)
	assert.InDelta(t, 0.5*65*5, s.KineticEnergy, 1e-6)
	assert.Zero(t, s.MaxDensity)

	require.NoError(t, sim.Update())
	s = sim.Stats()
	assert.Equal(t, 1, s.Step)
	assert.True(t, s.MinDensity > 0)
	assert.Equal(t, s.MinDensity, s.MaxDensity)
	assert.InEpsilon(t, s.MinDensity, s.MeanDensity, 1e-6)

	empty, err := NewSimulation(DefaultParameters(), nil)
	require.NoError(t, err)
	require.NoError(t, empty.Update())
	assert.Zero(t, empty.Stats().Particles)
}

func TestDrag(t *testing.T) {
	particles := []Particle{NewParticle(100, 100), NewParticle(105, 100), NewParticle(300, 300)}
	sim, err := NewSimulation(DefaultParameters(), particles)
	require.NoError(t, err)

	n := sim.Drag(V.Vec2{100, 90}, V.Vec2{100, 100}, ImpulseRadius2, ImpulseStrength)
	assert.Equal(t, 2, n)
	got := sim.Particles()
	assert.Equal(t, V.Vec2{0, 20000}, got[0].V)
	assert.Equal(t, V.Vec2{0, 20000}, got[1].V)
	assert.Equal(t, V.Zero, got[2].V)

	//no motion, no direction
	assert.Zero(t, sim.Drag(V.Vec2{100, 100}, V.Vec2{100, 100}, ImpulseRadius2, ImpulseStrength))
	assert.Equal(t, V.Vec2{0, 20000}, sim.Particles()[0].V)
}

func TestApplyImpulse(t *testing.T) {
	particles := []Particle{NewParticle(100, 100), NewParticle(105, 105), NewParticle(104, 100)}
	sim, err := NewSimulation(DefaultParameters(), particles)
	require.NoError(t, err)

	//|d|² = 50 sits on the radius and is excluded
	n := sim.ApplyImpulse(V.Vec2{100, 100}, V.Vec2{3, -4}, 50)
	assert.Equal(t, 2, n)
	assert.Equal(t, V.Vec2{3, -4}, sim.Particles()[0].V)
	assert.Equal(t, V.Zero, sim.Particles()[1].V)
	assert.Equal(t, V.Vec2{3, -4}, sim.Particles()[2].V)
}

func BenchmarkUpdate(b *testing.B) {
	sim := NewSeeded(295275912632)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := sim.Update(); err != nil {
			b.Fatal(err)
		}
	}
}
