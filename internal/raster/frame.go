package raster

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"isomesh/internal/mathutil"
	"isomesh/internal/viewmatrix"
)

// CubeVertices are the corners of the [-0.5, 0.5]³ reference cube.
var CubeVertices = [8]mathutil.Vec3{
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
	{-0.5, -0.5, -0.5},
	{0.5, -0.5, -0.5},
	{0.5, 0.5, -0.5},
	{-0.5, 0.5, -0.5},
}

// CubeEdges index CubeVertices in pairs: front face, back face, sides.
var CubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

const labelOffset = 0.04

var (
	frameColor = color.NRGBA{0, 0, 0, 255}
	axisColors = [3]color.NRGBA{
		{0xff, 0, 0, 0xff},
		{0, 0xff, 0, 0xff},
		{0, 0, 0xff, 0xff},
	}
	axisOrigin = mathutil.Vec3{-0.5, -0.5, -0.5}
)

// CornerLabelPosition returns where label Pi sits: just outside cube corner
// i, where bit 1 selects +x, bit 2 +y and bit 4 +z.
func CornerLabelPosition(i int) mathutil.Vec3 {
	pick := func(bit int) float64 {
		if i&bit != 0 {
			return 0.5 + labelOffset
		}
		return -0.5 - labelOffset
	}
	return mathutil.Vec3{pick(1), pick(2), pick(4)}
}

func drawFrame(fb *FrameBuffer, model mathutil.Mat3, cam viewmatrix.Camera, width int) {
	pr := viewmatrix.NewProjector(cam, fb.Width)
	project := func(p mathutil.Vec3) (float64, float64, float64, bool) {
		return pr.Project(model.MulVec3(p))
	}

	// Axes from the cube's minimum corner, hidden behind the surface.
	for k := 0; k < 3; k++ {
		end := axisOrigin
		end[k] += 1
		x0, y0, z0, ok0 := project(axisOrigin)
		x1, y1, z1, ok1 := project(end)
		if ok0 && ok1 {
			DrawLine(fb, x0, y0, z0, x1, y1, z1, width, axisColors[k], 1, true)
		}
	}

	// Cube wireframe drawn on top at 70% opacity.
	for _, e := range CubeEdges {
		x0, y0, z0, ok0 := project(CubeVertices[e[0]])
		x1, y1, z1, ok1 := project(CubeVertices[e[1]])
		if ok0 && ok1 {
			DrawLine(fb, x0, y0, z0, x1, y1, z1, width, frameColor, 0.7, false)
		}
	}
}

// DrawCornerLabels writes P0..P7 next to the cube corners on a final-size
// image. Labels are drawn after downsampling so the text stays sharp.
func DrawCornerLabels(img *image.NRGBA, cam viewmatrix.Camera, spinDeg float64) {
	pr := viewmatrix.NewProjector(cam, img.Bounds().Dx())
	model := mathutil.RotY(mathutil.Deg2Rad(spinDeg))

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(frameColor),
		Face: basicfont.Face7x13,
	}
	for i := 0; i < 8; i++ {
		x, y, _, ok := pr.Project(model.MulVec3(CornerLabelPosition(i)))
		if !ok {
			continue
		}
		label := fmt.Sprintf("P%d", i)
		w := d.MeasureString(label)
		d.Dot = fixed.Point26_6{
			X: fixed.I(int(x)) - w/2,
			Y: fixed.I(int(y) + 4),
		}
		d.DrawString(label)
	}
}
