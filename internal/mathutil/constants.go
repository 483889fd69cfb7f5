package mathutil

// Reference camera placement for the isosurface canvases.
const (
	DefaultCameraRadius    = 2.5
	DefaultCameraElevation = 30.0
	DefaultCameraAzimuth   = 120.0
	DefaultCameraFOV       = 45.0
)

var (
	// WorldUp is the Y-up convention used by the renderer.
	WorldUp = Vec3{0, 1, 0}

	// Origin is the default camera target.
	Origin = Vec3{}
)
