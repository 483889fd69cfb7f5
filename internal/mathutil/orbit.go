package mathutil

import "math"

// OrbitPosition converts a spherical camera placement (degrees, Y up) into a
// Cartesian position around the origin.
func OrbitPosition(radius, elevDeg, azimDeg float64) Vec3 {
	e := Deg2Rad(elevDeg)
	a := Deg2Rad(azimDeg)
	return Vec3{
		radius * math.Cos(e) * math.Cos(a),
		radius * math.Sin(e),
		radius * math.Cos(e) * math.Sin(a),
	}
}

// LookAt returns the world-to-camera rotation for a camera at eye looking at
// target. Rows are the camera right, up and back axes, so visible points end
// up with negative camera-space Z.
//
// If up is parallel to the view direction a fallback up axis is chosen.
func LookAt(eye, target, up Vec3) Mat3 {
	back := eye.Sub(target).Normalize()
	if back.Len() == 0 {
		return Mat3Identity()
	}
	right := up.Cross(back)
	if right.Len() < 1e-9 {
		right = Vec3{0, 0, 1}.Cross(back)
	}
	right = right.Normalize()
	camUp := back.Cross(right)
	return Mat3{
		right[0], right[1], right[2],
		camUp[0], camUp[1], camUp[2],
		back[0], back[1], back[2],
	}
}

// NormalizeDeg wraps an angle in degrees into [0, 360).
func NormalizeDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
