package surface

import (
	"isomesh/internal/field"
	"isomesh/internal/triangulate"
)

// Reference extraction parameters.
const (
	DefaultStep      = 0.05
	DefaultIsovalue  = 0.0
	DefaultTolerance = 1e-4
)

// Params fully determines one extraction. It is comparable, so a changed
// parameter set can be detected with ==.
type Params struct {
	Corners    field.CornerValues
	Bounds     field.Box
	Step       float64
	Isovalue   float64
	Tolerance  float64
	Projection triangulate.Axis2D
}

// DefaultParams returns the reference plane surface over the unit box.
func DefaultParams() Params {
	return Params{
		Corners:    field.PlaneCorners,
		Bounds:     field.UnitBox(),
		Step:       DefaultStep,
		Isovalue:   DefaultIsovalue,
		Tolerance:  DefaultTolerance,
		Projection: triangulate.XY,
	}
}

// Extract runs sample, triangulate and assemble for p. Runs share no state,
// so independent extractions may proceed concurrently.
func Extract(p Params) (*MeshDescriptor, error) {
	points := field.Sample(p.Corners, p.Bounds, p.Step, p.Isovalue, p.Tolerance)
	tris := triangulate.Triangulate(points, p.Projection)
	return Assemble(points, tris)
}
