// Package viewmatrix places the preview camera and projects world positions
// into pixel space.
package viewmatrix

import (
	"math"

	"isomesh/internal/mathutil"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Eye    mathutil.Vec3
	Target mathutil.Vec3
	Up     mathutil.Vec3
	FOV    float64 // vertical field of view, degrees
	Near   float64
}

// NewOrbitCamera places a camera on a sphere around the origin from its
// radius, elevation and azimuth in degrees.
func NewOrbitCamera(radius, elevDeg, azimDeg, fov float64) Camera {
	return Camera{
		Eye:    mathutil.OrbitPosition(radius, elevDeg, azimDeg),
		Target: mathutil.Origin,
		Up:     mathutil.WorldUp,
		FOV:    fov,
		Near:   0.1,
	}
}

// DefaultCamera returns the reference orbit camera.
func DefaultCamera() Camera {
	return NewOrbitCamera(
		mathutil.DefaultCameraRadius,
		mathutil.DefaultCameraElevation,
		mathutil.DefaultCameraAzimuth,
		mathutil.DefaultCameraFOV,
	)
}

// View returns the world-to-camera rotation.
func (c Camera) View() mathutil.Mat3 {
	return mathutil.LookAt(c.Eye, c.Target, c.Up)
}

// Projector maps world positions to pixels for one camera and image size.
type Projector struct {
	view  mathutil.Mat3
	eye   mathutil.Vec3
	focal float64
	half  float64
	near  float64
}

// NewProjector precomputes the view and focal length for a square image of
// size pixels.
func NewProjector(c Camera, size int) Projector {
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = mathutil.DefaultCameraFOV
	}
	near := c.Near
	if near <= 0 {
		near = 0.1
	}
	return Projector{
		view:  c.View(),
		eye:   c.Eye,
		focal: 1 / math.Tan(mathutil.Deg2Rad(fov/2)),
		half:  float64(size) / 2,
		near:  near,
	}
}

// Project returns the screen position of p and its depth value. Larger z is
// nearer the camera. ok is false for points behind the near plane.
func (pr Projector) Project(p mathutil.Vec3) (x, y, z float64, ok bool) {
	c := pr.view.MulVec3(p.Sub(pr.eye))
	depth := -c[2]
	if depth < pr.near {
		return 0, 0, 0, false
	}
	x = c[0]*pr.focal/depth*pr.half + pr.half
	y = -c[1]*pr.focal/depth*pr.half + pr.half
	return x, y, -depth, true
}

// ProjectVertices transforms 3D vertices to 2D screen coordinates.
// Returns px, py, pz slices (screen X, screen Y, depth). Vertices behind the
// camera get -Inf depth so the z-test rejects them.
func ProjectVertices(verts []mathutil.Vec3, model mathutil.Mat3, cam Camera, size int) ([]float64, []float64, []float64) {
	n := len(verts)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	pr := NewProjector(cam, size)
	for i, v := range verts {
		x, y, z, ok := pr.Project(model.MulVec3(v))
		if !ok {
			pz[i] = math.Inf(-1)
			continue
		}
		px[i], py[i], pz[i] = x, y, z
	}
	return px, py, pz
}
