package field

import "isomesh/internal/mathutil"

// CornerValues holds the field at the eight corners of the unit cube, in the
// order c000, c001, c010, c011, c100, c101, c110, c111. The digits are the x,
// y and z corner bits, so the value at corner (x, y, z) is at index 4x+2y+z.
type CornerValues [8]float64

// At returns the value at corner (x, y, z), each 0 or 1.
func (c CornerValues) At(x, y, z int) float64 {
	return c[x<<2|y<<1|z]
}

// ReferenceCorners returns the corner values of the demo surfaces. Offset 0
// yields the nearly planar surface, offset 1 the warped one.
func ReferenceCorners(offset float64) CornerValues {
	return CornerValues{
		0,            // c000
		0.4 + offset, // c001
		0.1 - offset, // c010
		0.5,          // c011
		-0.5,         // c100
		-0.1,         // c101
		-0.4,         // c110
		0,            // c111
	}
}

var (
	// PlaneCorners is the "hyperplane" reference field.
	PlaneCorners = ReferenceCorners(0)

	// WarpedCorners is the "hypersurface" reference field.
	WarpedCorners = ReferenceCorners(1)
)

// Trilinear interpolates the corner values at (x, y, z). Each coordinate is
// clamped into [0, 1] first, so out-of-range inputs saturate at the cube
// faces instead of extrapolating.
func Trilinear(c CornerValues, x, y, z float64) float64 {
	x = mathutil.Clamp01(x)
	y = mathutil.Clamp01(y)
	z = mathutil.Clamp01(z)

	// x first: four edge values
	c00 := mathutil.Lerp(c[0], c[4], x)
	c01 := mathutil.Lerp(c[1], c[5], x)
	c10 := mathutil.Lerp(c[2], c[6], x)
	c11 := mathutil.Lerp(c[3], c[7], x)

	// then y: two face values
	c0 := mathutil.Lerp(c00, c10, y)
	c1 := mathutil.Lerp(c01, c11, y)

	return mathutil.Lerp(c0, c1, z)
}
