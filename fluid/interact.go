package fluid

import (
	V "diesel.com/sph2d/vector"
)

//Pointer interaction defaults: squared pick radius in world units² and the
//velocity kick of a drag
const (
	ImpulseRadius2  = 50.0
	ImpulseStrength = 20000.0
)

//ApplyImpulse adds dv to the velocity of every particle with |x - center|² < radius2.
//Returns the number of particles kicked.
func (sim *Simulation) ApplyImpulse(center V.Vec2, dv V.Vec2, radius2 float32) int {
	n := 0
	for i := range sim.particles {
		p := &sim.particles[i]
		if V.LengthSq(p.X.Sub(center)) < radius2 {
			p.V = p.V.Add(dv)
			n++
		}
	}
	return n
}

//Drag kicks the particles around `to` along the pointer motion from -> to with
//the given strength. A zero length drag has no direction and is ignored.
func (sim *Simulation) Drag(from V.Vec2, to V.Vec2, radius2 float32, strength float32) int {
	dir := to.Sub(from)
	if V.LengthSq(dir) == 0 {
		return 0
	}
	return sim.ApplyImpulse(to, V.NormalizeTo(dir, strength), radius2)
}
