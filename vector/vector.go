package vector

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

//Describes the 2D vector construct used by the solver. Storage and the
//arithmetic methods (Add, Sub, Mul, Dot) come from mgl32, the free functions
//here cover what the fluid passes need on top of that.

//Vec2 Default Vector Implementation - position, velocity and force of a particle
type Vec2 = mgl32.Vec2

//Zero vector
var Zero = Vec2{0, 0}

//LengthSq - squared magnitude, lets the density pass skip the square root
func LengthSq(a Vec2) float32 {
	return a[0]*a[0] + a[1]*a[1]
}

func Length(a Vec2) float32 {
	return float32(math.Sqrt(float64(a[0]*a[0] + a[1]*a[1])))
}

//Normalize - unit vector along a. The zero vector has no direction and maps to Zero
func Normalize(a Vec2) Vec2 {
	l := Length(a)
	if l == 0 {
		return Zero
	}
	return Vec2{a[0] / l, a[1] / l}
}

//NormalizeTo - a rescaled to the given magnitude, Zero for a zero vector
func NormalizeTo(a Vec2, magnitude float32) Vec2 {
	return Normalize(a).Mul(magnitude)
}

//IsFinite reports false if either component is NaN or +-Inf
func IsFinite(a Vec2) bool {
	return Finite(a[0]) && Finite(a[1])
}

//Finite - scalar counterpart of IsFinite
func Finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func VecEquals(v Vec2, a Vec2) bool {
	return v[0] == a[0] && v[1] == a[1]
}

func String(a Vec2) string {
	return fmt.Sprintf("[ %f, %f]", a[0], a[1])
}
