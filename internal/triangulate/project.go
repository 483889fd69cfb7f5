package triangulate

import (
	"fmt"
	"strings"

	"isomesh/internal/field"
	"isomesh/internal/mathutil"
)

// Axis2D selects the plane points are projected onto before triangulation.
type Axis2D int

const (
	// XY drops Z. This is the reference projection.
	XY Axis2D = iota
	// XZ drops Y.
	XZ
	// YZ drops X.
	YZ
)

func (a Axis2D) String() string {
	switch a {
	case XY:
		return "xy"
	case XZ:
		return "xz"
	case YZ:
		return "yz"
	}
	return fmt.Sprintf("Axis2D(%d)", int(a))
}

// ParseAxis2D parses "xy", "xz" or "yz" (case-insensitive). An empty string
// selects XY.
func ParseAxis2D(s string) (Axis2D, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xy":
		return XY, nil
	case "xz":
		return XZ, nil
	case "yz":
		return YZ, nil
	}
	return XY, fmt.Errorf("triangulate: unknown projection %q", s)
}

// Point is a projected 2D position.
type Point struct {
	X, Y float64
}

// Project drops the axis not in the plane.
func (a Axis2D) Project(p mathutil.Vec3) Point {
	switch a {
	case XZ:
		return Point{p[0], p[2]}
	case YZ:
		return Point{p[1], p[2]}
	}
	return Point{p[0], p[1]}
}

// Project maps every sample to 2D; point i corresponds to points[i].
func Project(points field.PointSet, axis Axis2D) []Point {
	out := make([]Point, len(points))
	for i, s := range points {
		out[i] = axis.Project(s.Pos)
	}
	return out
}
