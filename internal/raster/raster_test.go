package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isomesh/internal/mathutil"
	"isomesh/internal/surface"
	"isomesh/internal/viewmatrix"
)

func frontCamera() viewmatrix.Camera {
	return viewmatrix.Camera{
		Eye:    mathutil.Vec3{0, 0, 3},
		Target: mathutil.Origin,
		Up:     mathutil.WorldUp,
		FOV:    45,
		Near:   0.1,
	}
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Size = 64
	opts.Supersample = 1
	opts.Camera = frontCamera()
	opts.Frame = false
	return opts
}

func countNot(img *image.NRGBA, bg color.NRGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) != bg {
				n++
			}
		}
	}
	return n
}

func TestPlasmaColormap(t *testing.T) {
	assert.Equal(t, plasmaLow, PlasmaColormap(0))
	assert.Equal(t, plasmaLow, PlasmaColormap(-4))
	assert.Equal(t, plasmaMid, PlasmaColormap(0.5))
	assert.Equal(t, plasmaHigh, PlasmaColormap(1))
	assert.Equal(t, plasmaHigh, PlasmaColormap(3))

	q := PlasmaColormap(0.25)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, (plasmaLow[k]+plasmaMid[k])/2, q[k], 1e-12)
	}
}

func TestShadeColor(t *testing.T) {
	facing := ShadeColor(mathutil.Vec3{-2, 0, 0}, DefaultLightDir)
	away := ShadeColor(mathutil.Vec3{1, 0, 0}, DefaultLightDir)
	assert.Equal(t, color.NRGBA{240, 249, 33, 255}, facing)
	assert.Equal(t, color.NRGBA{13, 8, 135, 255}, away)
}

func TestRenderMeshTriangle(t *testing.T) {
	mesh := &surface.MeshDescriptor{
		Positions: []mathutil.Vec3{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	opts := testOptions()
	img := RenderMesh(mesh, opts)
	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	want := ShadeColor(mathutil.Vec3{0, 0, 1}, opts.LightDir)
	assert.Equal(t, want, img.NRGBAAt(32, 32))
	assert.Equal(t, opts.Background, img.NRGBAAt(1, 1))
}

func TestRenderMeshDepth(t *testing.T) {
	// Two overlapping triangles; the nearer one (z=0.5) must win.
	mesh := &surface.MeshDescriptor{
		Positions: []mathutil.Vec3{
			{-1, -1, 0.5}, {1, -1, 0.5}, {0, 1, 0.5},
			{-1, -1, -0.5}, {1, -1, -0.5}, {0, 1, -0.5},
			{0, 0, 0},
		},
		Indices: []uint32{0, 1, 2, 3, 4, 6},
	}
	opts := testOptions()
	img := RenderMesh(mesh, opts)
	front := ShadeColor(opts.Camera.View().MulVec3(mathutil.Vec3{0, 0, 1}), opts.LightDir)
	assert.Equal(t, front, img.NRGBAAt(32, 32))
}

func TestRenderMeshEmpty(t *testing.T) {
	opts := testOptions()
	for _, mesh := range []*surface.MeshDescriptor{nil, {}} {
		img := RenderMesh(mesh, opts)
		assert.Zero(t, countNot(img, opts.Background))
	}
}

func TestRenderFrame(t *testing.T) {
	opts := testOptions()
	opts.Camera = viewmatrix.DefaultCamera()
	opts.Frame = true
	opts.Supersample = 2
	img := RenderMesh(nil, opts)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.NotZero(t, countNot(img, opts.Background))

	opts.Spin = 45
	spun := RenderMesh(nil, opts)
	assert.NotEqual(t, img.Pix, spun.Pix)
}

func TestDrawCornerLabels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 256))
	bg := color.NRGBA{0xf0, 0xf0, 0xf0, 0xff}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}
	DrawCornerLabels(img, viewmatrix.DefaultCamera(), 0)
	assert.NotZero(t, countNot(img, bg))
}

func TestCornerLabelPosition(t *testing.T) {
	assert.Equal(t, mathutil.Vec3{-0.54, -0.54, -0.54}, CornerLabelPosition(0))
	assert.Equal(t, mathutil.Vec3{0.54, -0.54, -0.54}, CornerLabelPosition(1))
	assert.Equal(t, mathutil.Vec3{-0.54, 0.54, 0.54}, CornerLabelPosition(6))
	assert.Equal(t, mathutil.Vec3{0.54, 0.54, 0.54}, CornerLabelPosition(7))
}

func TestRasterizeTriangleSkipsBadIndex(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	px := []float64{0, 7, 0}
	py := []float64{0, 0, 7}
	pz := []float64{1, 1, 1}
	RasterizeTriangle(fb, px, py, pz, [3]int{0, 1, 5}, color.NRGBA{255, 0, 0, 255})
	for _, v := range fb.Color {
		assert.Zero(t, v)
	}
	RasterizeTriangle(fb, px, py, pz, [3]int{0, 1, 2}, color.NRGBA{255, 0, 0, 255})
	assert.Equal(t, uint8(255), fb.Color[0])
}
