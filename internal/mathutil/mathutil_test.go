package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func TestOrbitPosition(t *testing.T) {
	p := OrbitPosition(2.5, 30, 120)
	assert.InDelta(t, 2.5, p.Len(), tol)
	assert.InDelta(t, 2.5*math.Sin(math.Pi/6), p[1], tol)
	assert.InDelta(t, 2.5*math.Cos(math.Pi/6)*math.Cos(2*math.Pi/3), p[0], tol)
	assert.InDelta(t, 2.5*math.Cos(math.Pi/6)*math.Sin(2*math.Pi/3), p[2], tol)

	flat := OrbitPosition(1, 0, 0)
	assert.InDelta(t, 1, flat[0], tol)
	assert.InDelta(t, 0, flat[1], tol)
	assert.InDelta(t, 0, flat[2], tol)
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Origin, WorldUp)

	// The target lies straight ahead on the negative camera Z axis.
	v := m.MulVec3(Origin.Sub(eye))
	assert.InDelta(t, 0, v[0], tol)
	assert.InDelta(t, 0, v[1], tol)
	assert.InDelta(t, -5, v[2], tol)

	// Rows form an orthonormal basis.
	for r := 0; r < 3; r++ {
		assert.InDelta(t, 1, m.Row(r).Len(), tol)
	}
	assert.InDelta(t, 0, m.Row(0).Dot(m.Row(1)), tol)
	assert.InDelta(t, 0, m.Row(1).Dot(m.Row(2)), tol)

	// World up stays up on screen.
	up := m.MulVec3(WorldUp)
	assert.Greater(t, up[1], 0.99)
}

func TestLookAtDegenerateUp(t *testing.T) {
	m := LookAt(Vec3{0, 3, 0}, Origin, WorldUp)
	for r := 0; r < 3; r++ {
		assert.InDelta(t, 1, m.Row(r).Len(), tol)
	}
	v := m.MulVec3(Origin.Sub(Vec3{0, 3, 0}))
	assert.InDelta(t, -3, v[2], tol)
}

func TestRotYAndMul(t *testing.T) {
	r := RotY(Deg2Rad(90))
	v := r.MulVec3(Vec3{1, 0, 0})
	assert.InDelta(t, 0, v[0], tol)
	assert.InDelta(t, -1, v[2], tol)

	back := Mat3Mul(r, RotY(Deg2Rad(-90))).MulVec3(Vec3{1, 2, 3})
	assert.InDelta(t, 1, back[0], tol)
	assert.InDelta(t, 2, back[1], tol)
	assert.InDelta(t, 3, back[2], tol)
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-3))
	assert.Equal(t, 1.0, Clamp01(7))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 2.0, Lerp(2, 9, 0))
	assert.Equal(t, 9.0, Lerp(2, 9, 1))
	assert.InDelta(t, 10, NormalizeDeg(370), tol)
	assert.InDelta(t, 350, NormalizeDeg(-10), tol)
	assert.InDelta(t, 0, NormalizeDeg(720), tol)
}
