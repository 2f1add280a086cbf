package fluid

//Particle state and the initial lattice the fluid blob is seeded from.
//Mass, viscosity and the other shared properties live in Parameters.
import (
	"math/rand"

	V "diesel.com/sph2d/vector"
)

//Particle - one fluid element. All fields are rewritten by every Update
type Particle struct {
	X   V.Vec2  //Position
	V   V.Vec2  //Velocity
	F   V.Vec2  //Net force of the last step, overwritten each step
	Rho float32 //Density at X
	P   float32 //Pressure derived from Rho
}

func NewParticle(x float32, y float32) Particle {
	return Particle{X: V.Vec2{x, y}}
}

//Lattice - rectangular seeding block. Particle (i, j) starts at
//Origin + (i*Spacing + jitter, j*Spacing) with jitter uniform in [0, Jitter)
//drawn fresh for each particle.
type Lattice struct {
	Columns int     //Particles along x
	Rows    int     //Particles along y
	Spacing float32 //Grid step, normally the kernel radius
	Origin  V.Vec2  //Position of particle (0, 0) before jitter
	Jitter  float32 //Horizontal jitter range
}

//Default lattice: 20x20 particles one kernel radius apart, offset 150 into the domain
const (
	DefaultColumns = 20
	DefaultRows    = 20
	DefaultOrigin  = 150.0
	DefaultJitter  = 1.0
)

func DefaultLattice(p Parameters) Lattice {
	return Lattice{
		Columns: DefaultColumns,
		Rows:    DefaultRows,
		Spacing: p.KernelRadius,
		Origin:  V.Vec2{DefaultOrigin, DefaultOrigin},
		Jitter:  DefaultJitter,
	}
}

//Count - number of particles the lattice places
func (l Lattice) Count() int {
	if l.Columns <= 0 || l.Rows <= 0 {
		return 0
	}
	return l.Columns * l.Rows
}

//Place lays the particles out column by column (index i*Rows + j). A nil rng or
//zero Jitter gives an exact grid.
func (l Lattice) Place(rng *rand.Rand) []Particle {
	particles := make([]Particle, 0, l.Count())

	for i := 0; i < l.Columns; i++ {
		for j := 0; j < l.Rows; j++ {
			x := float32(i)*l.Spacing + l.Origin[0]
			y := float32(j)*l.Spacing + l.Origin[1]
			if rng != nil && l.Jitter != 0 {
				x += rng.Float32() * l.Jitter
			}
			particles = append(particles, NewParticle(x, y))
		}
	}

	return particles
}

//Initialize - the default 20x20 lattice for a parameter set
func Initialize(p Parameters, rng *rand.Rand) []Particle {
	return DefaultLattice(p).Place(rng)
}
