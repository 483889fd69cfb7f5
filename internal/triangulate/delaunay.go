// Package triangulate builds a planar Delaunay triangulation over projected
// isosurface samples, using the Delaunator sweep-hull algorithm.
package triangulate

import (
	"math"

	"github.com/fogleman/delaunay"

	"isomesh/internal/field"
)

// Triangle holds three indices into the triangulated point list.
type Triangle [3]int

// IndexBuffer is a triangle list. Indices are positional: they are only
// meaningful together with the exact point list that produced them.
type IndexBuffer []Triangle

// Flat returns the indices as a flat uint32 list, three per triangle.
func (b IndexBuffer) Flat() []uint32 {
	out := make([]uint32, 0, len(b)*3)
	for _, t := range b {
		out = append(out, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return out
}

// Triangulate projects points onto the plane selected by axis and returns a
// Delaunay triangulation of the projection. Surfaces seen edge-on from that
// plane come out as valid but visually wrong meshes; picking the plane is up
// to the caller.
func Triangulate(points field.PointSet, axis Axis2D) IndexBuffer {
	return Delaunay(Project(points, axis))
}

// Delaunay triangulates pts and returns counter-clockwise triangles that
// index into pts and cover their convex hull. Points sharing a position are
// triangulated once, by their first occurrence. Fewer than three distinct
// points, or a collinear set, give an empty buffer.
func Delaunay(pts []Point) IndexBuffer {
	if len(pts) < 3 {
		return IndexBuffer{}
	}

	ids := distinct(pts)
	if len(ids) < 3 || collinear(pts, ids) {
		return IndexBuffer{}
	}

	work := make([]delaunay.Point, len(ids))
	for i, id := range ids {
		work[i] = delaunay.Point{X: pts[id].X, Y: pts[id].Y}
	}
	tri, err := delaunay.Triangulate(work)
	if err != nil || tri == nil {
		return IndexBuffer{}
	}

	out := make(IndexBuffer, 0, len(tri.Triangles)/3)
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		a, b, c := ids[tri.Triangles[i]], ids[tri.Triangles[i+1]], ids[tri.Triangles[i+2]]
		o := orient(pts[a], pts[b], pts[c])
		switch {
		case o > 0:
			out = append(out, Triangle{a, b, c})
		case o < 0:
			out = append(out, Triangle{a, c, b})
		}
	}
	return out
}

// orient is twice the signed area of abc; positive when counter-clockwise.
func orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// distinct returns the index of the first occurrence of each finite
// position, in input order.
func distinct(pts []Point) []int {
	seen := make(map[Point]struct{}, len(pts))
	ids := make([]int, 0, len(pts))
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		ids = append(ids, i)
	}
	return ids
}

func collinear(pts []Point, ids []int) bool {
	a, b := pts[ids[0]], pts[ids[1]]
	ab := math.Hypot(b.X-a.X, b.Y-a.Y)
	for _, id := range ids[2:] {
		c := pts[id]
		ac := math.Hypot(c.X-a.X, c.Y-a.Y)
		if math.Abs(orient(a, b, c)) > 1e-12*ab*ac {
			return false
		}
	}
	return true
}
