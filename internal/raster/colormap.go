package raster

import (
	"image/color"

	"isomesh/internal/mathutil"
)

// Color stops approximating Matplotlib's plasma map.
var (
	plasmaLow  = mathutil.Vec3{0.050383, 0.029803, 0.527975} // purple
	plasmaMid  = mathutil.Vec3{0.798216, 0.280197, 0.469538} // pink
	plasmaHigh = mathutil.Vec3{0.940015, 0.975158, 0.131326} // yellow
)

// DefaultLightDir is the camera-space direction the colormap is keyed on.
var DefaultLightDir = mathutil.Vec3{-1, 0, 0}

// PlasmaColormap maps v, clamped into [0, 1], onto the three plasma stops.
func PlasmaColormap(v float64) mathutil.Vec3 {
	v = mathutil.Clamp01(v)
	if v < 0.5 {
		return mixVec(plasmaLow, plasmaMid, v*2)
	}
	return mixVec(plasmaMid, plasmaHigh, (v-0.5)*2)
}

// ShadeColor colors a face by the cosine between its camera-space normal
// and dir, remapped from [-1, 1] to [0, 1].
func ShadeColor(normal, dir mathutil.Vec3) color.NRGBA {
	cos := normal.Normalize().Dot(dir.Normalize())
	c := PlasmaColormap(cos*0.5 + 0.5)
	return color.NRGBA{
		R: clamp255(c[0] * 255),
		G: clamp255(c[1] * 255),
		B: clamp255(c[2] * 255),
		A: 255,
	}
}

func mixVec(a, b mathutil.Vec3, t float64) mathutil.Vec3 {
	return mathutil.Vec3{
		mathutil.Lerp(a[0], b[0], t),
		mathutil.Lerp(a[1], b[1], t),
		mathutil.Lerp(a[2], b[2], t),
	}
}
