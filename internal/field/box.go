package field

import (
	"math"

	"isomesh/internal/mathutil"
)

// Box is an axis-aligned sampling volume.
type Box struct {
	Min mathutil.Vec3
	Max mathutil.Vec3
}

// UnitBox returns the reference volume [-0.5, 0.5]³, the unit cube centered
// on the origin.
func UnitBox() Box {
	return Box{
		Min: mathutil.Vec3{-0.5, -0.5, -0.5},
		Max: mathutil.Vec3{0.5, 0.5, 0.5},
	}
}

// Size returns the box extent per axis.
func (b Box) Size() mathutil.Vec3 {
	return b.Max.Sub(b.Min)
}

// Normalize maps p into box-relative coordinates, (p - min) / (max - min).
// Points outside the box map outside [0, 1]; clamping is left to the
// interpolation step. A zero-extent axis maps to 0.
func (b Box) Normalize(p mathutil.Vec3) mathutil.Vec3 {
	var n mathutil.Vec3
	for k := 0; k < 3; k++ {
		ext := b.Max[k] - b.Min[k]
		if ext == 0 {
			continue
		}
		n[k] = (p[k] - b.Min[k]) / ext
	}
	return n
}

// steps returns the number of grid samples along axis k, inclusive of both
// bounds. Zero means the axis cannot be sampled.
func (b Box) steps(k int, step float64) int {
	ext := b.Max[k] - b.Min[k]
	if !(step > 0) || math.IsInf(step, 0) || math.IsNaN(ext) || ext < 0 || math.IsInf(ext, 0) {
		return 0
	}
	// The epsilon keeps max inside the grid when ext/step lands just below an integer.
	return int(math.Floor(ext/step+1e-9)) + 1
}
