// Package surface assembles sampled isosurface points and their
// triangulation into a mesh descriptor for a renderer, and runs the full
// extraction pipeline.
package surface

import (
	"fmt"
	"math"

	"isomesh/internal/field"
	"isomesh/internal/mathutil"
	"isomesh/internal/triangulate"
)

// MeshDescriptor is the minimal renderable geometry: positions plus a
// triangle index buffer, three indices per triangle. Normals and colors are
// left to the renderer.
type MeshDescriptor struct {
	Positions []mathutil.Vec3
	Indices   []uint32
}

// VertexCount returns the number of positions.
func (m *MeshDescriptor) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of index triples.
func (m *MeshDescriptor) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the corner positions of triangle i.
func (m *MeshDescriptor) Triangle(i int) [3]mathutil.Vec3 {
	return [3]mathutil.Vec3{
		m.Positions[m.Indices[3*i]],
		m.Positions[m.Indices[3*i+1]],
		m.Positions[m.Indices[3*i+2]],
	}
}

// Bounds returns the axis-aligned bounds of the positions. ok is false for
// an empty mesh.
func (m *MeshDescriptor) Bounds() (box field.Box, ok bool) {
	if len(m.Positions) == 0 {
		return field.Box{}, false
	}
	box.Min = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	box.Max = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range m.Positions {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box, true
}

// StructuralError reports a triangle index that does not refer to a point in
// the set it was assembled with. It means the point set and the index buffer
// came from different runs.
type StructuralError struct {
	Triangle int // triangle number in the buffer
	Index    int // offending index
	Points   int // size of the point set
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("surface: triangle %d references point %d, point set has %d", e.Triangle, e.Index, e.Points)
}

// Assemble packs points and triangles into a MeshDescriptor. Every index
// must lie in [0, len(points)); otherwise a *StructuralError is returned and
// no mesh is produced. Empty inputs give an empty mesh.
func Assemble(points field.PointSet, triangles triangulate.IndexBuffer) (*MeshDescriptor, error) {
	n := len(points)
	for i, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= n {
				return nil, &StructuralError{Triangle: i, Index: idx, Points: n}
			}
		}
	}

	return &MeshDescriptor{
		Positions: points.Positions(),
		Indices:   triangles.Flat(),
	}, nil
}
