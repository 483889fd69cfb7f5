// Package field samples a trilinear scalar field on a regular grid and keeps
// the grid points that lie on an isovalue.
package field

import (
	"math"

	"isomesh/internal/mathutil"
)

// GridSample is one grid position with the field value there.
type GridSample struct {
	Pos   mathutil.Vec3
	Value float64
}

// PointSet holds accepted samples in grid order: x-major, then y, then z.
// The order is part of the contract since triangulation indices refer to it.
type PointSet []GridSample

// Positions returns the sample positions in order.
func (ps PointSet) Positions() []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(ps))
	for i, s := range ps {
		out[i] = s.Pos
	}
	return out
}

// Evaluate returns the field value at world position p inside bounds.
func Evaluate(c CornerValues, bounds Box, p mathutil.Vec3) float64 {
	n := bounds.Normalize(p)
	return Trilinear(c, n[0], n[1], n[2])
}

// GridSize returns the number of grid points per axis for bounds and step.
func GridSize(bounds Box, step float64) [3]int {
	return [3]int{bounds.steps(0, step), bounds.steps(1, step), bounds.steps(2, step)}
}

// Sample walks the grid over bounds at the given step, inclusive of both
// bounds, and returns every point whose interpolated value is within
// tolerance of isovalue. It never fails: unusable parameters (non-positive
// step, inverted bounds) and fields with no matching points give an empty
// set.
func Sample(c CornerValues, bounds Box, step, isovalue, tolerance float64) PointSet {
	n := GridSize(bounds, step)
	if n[0] == 0 || n[1] == 0 || n[2] == 0 {
		return PointSet{}
	}

	var out PointSet
	for i := 0; i < n[0]; i++ {
		x := bounds.Min[0] + float64(i)*step
		for j := 0; j < n[1]; j++ {
			y := bounds.Min[1] + float64(j)*step
			for k := 0; k < n[2]; k++ {
				p := mathutil.Vec3{x, y, bounds.Min[2] + float64(k)*step}
				v := Evaluate(c, bounds, p)
				if math.Abs(v-isovalue) <= tolerance {
					out = append(out, GridSample{Pos: p, Value: v})
				}
			}
		}
	}
	if out == nil {
		return PointSet{}
	}
	return out
}
