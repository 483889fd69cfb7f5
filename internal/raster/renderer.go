// Package raster is a small software renderer for previewing extracted
// meshes: flat plasma-shaded faces, a reference cube and corner labels.
package raster

import (
	"image"
	"image/color"

	"isomesh/internal/mathutil"
	"isomesh/internal/surface"
	"isomesh/internal/viewmatrix"
)

// Options controls a preview render.
type Options struct {
	Size        int // final image size in pixels
	Supersample int // render scale; the caller downsamples
	Camera      viewmatrix.Camera
	Spin        float64       // turntable rotation around Y, degrees
	LightDir    mathutil.Vec3 // camera-space colormap direction
	Background  color.NRGBA
	Frame       bool // draw the reference cube and axes
}

// DefaultOptions returns the reference preview settings.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Supersample: 2,
		Camera:      viewmatrix.DefaultCamera(),
		LightDir:    DefaultLightDir,
		Background:  color.NRGBA{0xf0, 0xf0, 0xf0, 0xff},
		Frame:       true,
	}
}

func (o Options) renderSize() int {
	ss := o.Supersample
	if ss < 1 {
		ss = 1
	}
	return o.Size * ss
}

func (o Options) model() mathutil.Mat3 {
	return mathutil.RotY(mathutil.Deg2Rad(o.Spin))
}

// RenderMesh renders mesh at Size*Supersample pixels. A nil or empty mesh
// still renders the background and frame. Face normals are computed here,
// per triangle, since the mesh carries none.
func RenderMesh(mesh *surface.MeshDescriptor, opts Options) *image.NRGBA {
	renderSize := opts.renderSize()
	fb := NewFrameBuffer(renderSize, renderSize)
	fb.Clear(opts.Background)

	model := opts.model()
	modelView := mathutil.Mat3Mul(opts.Camera.View(), model)
	lightDir := opts.LightDir
	if lightDir.Len() == 0 {
		lightDir = DefaultLightDir
	}

	if mesh != nil && mesh.TriangleCount() > 0 {
		px, py, pz := viewmatrix.ProjectVertices(mesh.Positions, model, opts.Camera, renderSize)
		for i := 0; i < mesh.TriangleCount(); i++ {
			tri := mesh.Triangle(i)
			n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
			if n.Len() < 1e-12 {
				continue
			}
			col := ShadeColor(modelView.MulVec3(n), lightDir)
			idx := [3]int{int(mesh.Indices[3*i]), int(mesh.Indices[3*i+1]), int(mesh.Indices[3*i+2])}
			RasterizeTriangle(fb, px, py, pz, idx, col)
		}
	}

	if opts.Frame {
		drawFrame(fb, model, opts.Camera, opts.Supersample)
	}

	return fb.Image()
}
