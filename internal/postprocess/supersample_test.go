package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDownsampleSolid(t *testing.T) {
	c := color.NRGBA{200, 100, 50, 255}
	out := Downsample(solid(64, 64, c), 32, 32)
	require.Equal(t, image.Rect(0, 0, 32, 32), out.Bounds())
	got := out.NRGBAAt(16, 16)
	assert.InDelta(t, 200, int(got.R), 1)
	assert.InDelta(t, 100, int(got.G), 1)
	assert.InDelta(t, 50, int(got.B), 1)
	assert.Equal(t, uint8(255), got.A)
}

func TestDownsampleTransparentKeepsColor(t *testing.T) {
	// Premultiplying keeps half-transparent red from darkening.
	out := Downsample(solid(16, 16, color.NRGBA{255, 0, 0, 128}), 8, 8)
	got := out.NRGBAAt(4, 4)
	assert.InDelta(t, 255, int(got.R), 2)
	assert.InDelta(t, 128, int(got.A), 2)
}

func TestDownsampleNoop(t *testing.T) {
	img := solid(8, 8, color.NRGBA{1, 2, 3, 255})
	assert.Same(t, img, Downsample(img, 8, 8))
	assert.Same(t, img, Downsample(img, 16, 16))
	assert.Same(t, img, Resolve(img, 1))
}

func TestResolve(t *testing.T) {
	out := Resolve(solid(96, 96, color.NRGBA{9, 9, 9, 255}), 3)
	assert.Equal(t, 32, out.Bounds().Dx())
	assert.Equal(t, 32, out.Bounds().Dy())
}
