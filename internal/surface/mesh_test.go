package surface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isomesh/internal/field"
	"isomesh/internal/mathutil"
	"isomesh/internal/triangulate"
)

func threePoints() field.PointSet {
	return field.PointSet{
		{Pos: mathutil.Vec3{0, 0, 0}},
		{Pos: mathutil.Vec3{1, 0, 0}},
		{Pos: mathutil.Vec3{0, 1, 0.5}},
	}
}

func TestAssembleValid(t *testing.T) {
	ps := threePoints()
	mesh, err := Assemble(ps, triangulate.IndexBuffer{{0, 1, 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, mesh.VertexCount())
	assert.Equal(t, 1, mesh.TriangleCount())
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.Equal(t, ps.Positions(), mesh.Positions)
	assert.Equal(t, [3]mathutil.Vec3{ps[0].Pos, ps[1].Pos, ps[2].Pos}, mesh.Triangle(0))

	box, ok := mesh.Bounds()
	require.True(t, ok)
	assert.Equal(t, mathutil.Vec3{0, 0, 0}, box.Min)
	assert.Equal(t, mathutil.Vec3{1, 1, 0.5}, box.Max)
}

func TestAssembleRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		tris triangulate.IndexBuffer
		want StructuralError
	}{
		{"equal to length", triangulate.IndexBuffer{{0, 1, 2}, {0, 3, 1}}, StructuralError{Triangle: 1, Index: 3, Points: 3}},
		{"far out", triangulate.IndexBuffer{{7, 1, 2}}, StructuralError{Triangle: 0, Index: 7, Points: 3}},
		{"negative", triangulate.IndexBuffer{{0, -1, 2}}, StructuralError{Triangle: 0, Index: -1, Points: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := Assemble(threePoints(), tt.tris)
			assert.Nil(t, mesh)
			var se *StructuralError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.want, *se)
			assert.Contains(t, err.Error(), "surface: triangle")
		})
	}
}

func TestAssembleEmpty(t *testing.T) {
	mesh, err := Assemble(field.PointSet{}, triangulate.IndexBuffer{})
	require.NoError(t, err)
	assert.Equal(t, 0, mesh.VertexCount())
	assert.Equal(t, 0, mesh.TriangleCount())
	_, ok := mesh.Bounds()
	assert.False(t, ok)

	// Any index into an empty set is dangling.
	_, err = Assemble(nil, triangulate.IndexBuffer{{0, 0, 0}})
	var se *StructuralError
	assert.ErrorAs(t, err, &se)
}

func TestExtractReference(t *testing.T) {
	for name, corners := range map[string]field.CornerValues{
		"plane":  field.PlaneCorners,
		"warped": field.WarpedCorners,
	} {
		t.Run(name, func(t *testing.T) {
			p := DefaultParams()
			p.Corners = corners
			mesh, err := Extract(p)
			require.NoError(t, err)
			require.NotZero(t, mesh.VertexCount())
			assert.Equal(t, 3*mesh.TriangleCount(), len(mesh.Indices))
			for _, idx := range mesh.Indices {
				assert.Less(t, int(idx), mesh.VertexCount())
			}
			for _, pos := range mesh.Positions {
				v := field.Evaluate(corners, p.Bounds, pos)
				assert.InDelta(t, 0, v, p.Tolerance)
			}
		})
	}
}

func TestExtractEmptyField(t *testing.T) {
	p := DefaultParams()
	p.Corners = field.CornerValues{1, 1, 1, 1, 1, 1, 1, 1}
	mesh, err := Extract(p)
	require.NoError(t, err)
	assert.Zero(t, mesh.VertexCount())
	assert.Zero(t, mesh.TriangleCount())
}

func TestExtractDenseField(t *testing.T) {
	p := DefaultParams()
	p.Corners = field.CornerValues{}
	p.Step = 0.25
	p.Tolerance = 0.001
	mesh, err := Extract(p)
	require.NoError(t, err)
	assert.Equal(t, 5*5*5, mesh.VertexCount())
	// Stacked points share a projection; the 5×5 XY grid is tiled once.
	assert.NotZero(t, mesh.TriangleCount())
	assert.LessOrEqual(t, mesh.TriangleCount(), 2*4*4)
}
