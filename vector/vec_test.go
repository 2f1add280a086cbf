package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

//Vector module testing
func TestLength(t *testing.T) {
	var x = Vec2{3, 4}

	if LengthSq(x) != 25 {
		t.Errorf("Squared length failed %f", LengthSq(x))
	}
	if Length(x) != 5 {
		t.Errorf("Length failed %f", Length(x))
	}
}

func TestNormalize(t *testing.T) {
	n := Normalize(Vec2{0, -2})
	assert.True(t, VecEquals(n, Vec2{0, -1}), String(n))

	d := Normalize(Vec2{1, 1})
	assert.InDelta(t, 1.0, Length(d), 2e-7, String(d))

	//Zero vector has no direction
	assert.True(t, VecEquals(Normalize(Zero), Zero))
	assert.True(t, VecEquals(NormalizeTo(Zero, 20000), Zero))
}

func TestNormalizeSymmetry(t *testing.T) {
	//Opposite vectors must normalise to exactly opposite directions
	a := Vec2{13.25, -7.5}
	b := Vec2{-13.25, 7.5}
	na := Normalize(a)
	nb := Normalize(b)
	assert.Equal(t, na[0], -nb[0])
	assert.Equal(t, na[1], -nb[1])
}

func TestNormalizeTo(t *testing.T) {
	v := NormalizeTo(Vec2{0, 3}, 20000)
	assert.InDelta(t, 0, v[0], 1e-6)
	assert.InDelta(t, 20000, v[1], 1e-2)
}

func TestIsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	assert.True(t, IsFinite(Vec2{1, -1}))
	assert.False(t, IsFinite(Vec2{nan, 0}))
	assert.False(t, IsFinite(Vec2{0, inf}))
	assert.False(t, IsFinite(Vec2{-inf, 0}))

	assert.True(t, Finite(-3.5))
	assert.False(t, Finite(nan))
	assert.False(t, Finite(-inf))
}
