package raster

import (
	"image/color"
	"math"
)

// DrawLine draws a segment of the given pixel width, blended over the
// buffer with opacity. With depthTest the segment is hidden behind nearer
// surfaces; it never writes depth.
func DrawLine(fb *FrameBuffer, x0, y0, z0, x1, y1, z1 float64, width int, c color.NRGBA, opacity float64, depthTest bool) {
	if math.IsInf(z0, -1) || math.IsInf(z1, -1) {
		return
	}
	if width < 1 {
		width = 1
	}

	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps < 1 {
		steps = 1
	}
	// Very long segments come from points next to the near plane.
	if steps > 8*(fb.Width+fb.Height) {
		return
	}

	half := width / 2
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		cx := int(math.Round(x0 + (x1-x0)*t))
		cy := int(math.Round(y0 + (y1-y0)*t))
		z := z0 + (z1-z0)*t
		for oy := -half; oy < width-half; oy++ {
			y := cy + oy
			if y < 0 || y >= fb.Height {
				continue
			}
			for ox := -half; ox < width-half; ox++ {
				x := cx + ox
				if x < 0 || x >= fb.Width {
					continue
				}
				idx := y*fb.Width + x
				if depthTest && z < fb.ZBuf[idx]-1e-3 {
					continue
				}
				fb.blend(idx, c, opacity)
			}
		}
	}
}
