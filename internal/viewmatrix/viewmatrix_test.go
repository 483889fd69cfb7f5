package viewmatrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isomesh/internal/mathutil"
)

func TestProjectTargetAtCenter(t *testing.T) {
	cam := DefaultCamera()
	pr := NewProjector(cam, 200)
	x, y, z, ok := pr.Project(mathutil.Origin)
	require.True(t, ok)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 100, y, 1e-9)
	assert.InDelta(t, -cam.Eye.Len(), z, 1e-9)
}

func TestProjectUpIsScreenUp(t *testing.T) {
	cam := NewOrbitCamera(3, 0, 90, 45)
	pr := NewProjector(cam, 100)
	_, y, _, ok := pr.Project(mathutil.Vec3{0, 0.5, 0})
	require.True(t, ok)
	assert.Less(t, y, 50.0)
}

func TestProjectDepthOrder(t *testing.T) {
	cam := NewOrbitCamera(5, 0, 0, 45)
	pr := NewProjector(cam, 64)
	_, _, near, ok := pr.Project(mathutil.Vec3{1, 0, 0})
	require.True(t, ok)
	_, _, far, ok := pr.Project(mathutil.Vec3{-1, 0, 0})
	require.True(t, ok)
	assert.Greater(t, near, far)

	_, _, _, ok = pr.Project(mathutil.Vec3{10, 0, 0})
	assert.False(t, ok)
}

func TestProjectVertices(t *testing.T) {
	cam := NewOrbitCamera(5, 0, 0, 45)
	verts := []mathutil.Vec3{{0, 0, 0}, {20, 0, 0}}
	px, py, pz := ProjectVertices(verts, mathutil.Mat3Identity(), cam, 64)
	require.Len(t, px, 2)
	assert.InDelta(t, 32, px[0], 1e-9)
	assert.InDelta(t, 32, py[0], 1e-9)
	assert.True(t, math.IsInf(pz[1], -1))
}
