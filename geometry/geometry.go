package geometry

import (
	"fmt"
	"math"

	V "diesel.com/sph2d/vector"
)

//diesel geometry library - particle boundary containment for the 2D solver
//The container is an axis aligned rectangle with its origin at the bottom-left
//corner. Particles never touch the walls themselves: they are held inside an
//inset box Margin away from every wall.

//Restitution applied to the velocity component normal to a wall on contact
const Restitution = -0.5

//Domain - rectangular fluid container
type Domain struct {
	Width       float32 //Domain width, x in [0, Width]
	Height      float32 //Domain height, y in [0, Height]
	Margin      float32 //Inset from each wall, typically half the kernel radius
	Restitution float32 //Velocity scale for a wall contact
}

func NewDomain(width float32, height float32, margin float32) Domain {
	return Domain{Width: width, Height: height, Margin: margin, Restitution: Restitution}
}

//Min - bottom-left corner of the inset box
func (d Domain) Min() V.Vec2 {
	return V.Vec2{d.Margin, d.Margin}
}

//Max - top-right corner of the inset box
func (d Domain) Max() V.Vec2 {
	return V.Vec2{d.Width - d.Margin, d.Height - d.Margin}
}

//Contains reports whether x lies inside the inset box, edges included
func (d Domain) Contains(x V.Vec2) bool {
	lo := d.Min()
	hi := d.Max()
	return x[0] >= lo[0] && x[1] >= lo[1] && x[0] <= hi[0] && x[1] <= hi[1]
}

//Contain clamps a position to the inset box. Each side is tested on its own
//(left, bottom, right, top) and a crossing clamps the coordinate and scales the
//matching velocity component by Restitution. Returns true if any side was hit.
func (d Domain) Contain(x *V.Vec2, v *V.Vec2) bool {
	lo := d.Min()
	hi := d.Max()
	hit := false

	if x[0] < lo[0] {
		v[0] *= d.Restitution
		x[0] = lo[0]
		hit = true
	}
	if x[1] < lo[1] {
		v[1] *= d.Restitution
		x[1] = lo[1]
		hit = true
	}
	if x[0] > hi[0] {
		v[0] *= d.Restitution
		x[0] = hi[0]
		hit = true
	}
	if x[1] > hi[1] {
		v[1] *= d.Restitution
		x[1] = hi[1]
		hit = true
	}

	return hit
}

//Outline - corners of the inset box in line loop order, counter clockwise from
//the bottom-left. Used by viewers to draw the container.
func (d Domain) Outline() []V.Vec2 {
	lo := d.Min()
	hi := d.Max()
	return []V.Vec2{
		{lo[0], lo[1]},
		{hi[0], lo[1]},
		{hi[0], hi[1]},
		{lo[0], hi[1]},
	}
}

//Disc - unit disc as a triangle list, detail fan segments around the origin.
//Scaled and translated per particle by the viewer.
func Disc(detail int) []V.Vec2 {
	if detail < 3 {
		detail = 3
	}
	point := func(i int) V.Vec2 {
		a := 2 * math.Pi * float64(i) / float64(detail)
		return V.Vec2{float32(math.Cos(a)), float32(math.Sin(a))}
	}

	tris := make([]V.Vec2, 0, detail*3)
	for i := 0; i < detail; i++ {
		tris = append(tris, point(i), point(i+1), V.Zero)
	}
	return tris
}

func (d Domain) String() string {
	return fmt.Sprintf("Domain %gx%g (margin %g)", d.Width, d.Height, d.Margin)
}
