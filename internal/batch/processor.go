// Package batch extracts several surfaces concurrently and writes their
// meshes and previews.
package batch

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"isomesh/internal/export"
	"isomesh/internal/mathutil"
	"isomesh/internal/postprocess"
	"isomesh/internal/raster"
	"isomesh/internal/surface"
)

// Config holds the shared output settings for a batch run.
type Config struct {
	OutputDir     string
	MeshFormat    string
	PreviewFormat string // export.FormatNone skips previews
	Render        raster.Options
	Turntable     int // frames of an animated WebP preview; 0 renders a still
	FrameMs       uint
	Workers       int
	Logger        *slog.Logger
}

// Job is one named extraction.
type Job struct {
	Name   string
	Params surface.Params
}

// Result holds the outcome of processing one job.
type Result struct {
	Name      string        `json:"name"`
	Points    int           `json:"points"`
	Triangles int           `json:"triangles"`
	MeshFile  string        `json:"mesh_file,omitempty"`
	Preview   string        `json:"preview,omitempty"`
	Duration  time.Duration `json:"duration_ns"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Run processes all jobs using a worker pool. Results are in job order; a
// failed job never stops the others.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64
	log := cfg.logger()

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress", "done", p, "total", total, "per_sec", float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job Job) Result {
	start := time.Now()
	mesh, err := surface.Extract(job.Params)
	if err != nil {
		r := Result{Name: job.Name, Error: err.Error(), Duration: time.Since(start)}
		cfg.logger().Error("extract failed", "surface", job.Name, "err", err)
		return r
	}
	return Publish(cfg, job.Name, mesh, start)
}

// Publish writes mesh and its preview under cfg.OutputDir and reports the
// outcome. start is the time the extraction began.
func Publish(cfg Config, name string, mesh *surface.MeshDescriptor, start time.Time) Result {
	log := cfg.logger().With("surface", name)
	r := Result{
		Name:      name,
		Points:    mesh.VertexCount(),
		Triangles: mesh.TriangleCount(),
	}
	fail := func(err error) Result {
		r.Error = err.Error()
		r.Duration = time.Since(start)
		log.Error("publish failed", "err", err)
		return r
	}

	meshPath := filepath.Join(cfg.OutputDir, name+"."+cfg.MeshFormat)
	if err := export.WriteMesh(meshPath, mesh, cfg.MeshFormat); err != nil {
		return fail(err)
	}
	r.MeshFile = meshPath

	if cfg.PreviewFormat != "" && cfg.PreviewFormat != export.FormatNone {
		previewPath := filepath.Join(cfg.OutputDir, name+"."+cfg.PreviewFormat)
		if err := writePreview(cfg, mesh, previewPath); err != nil {
			return fail(err)
		}
		r.Preview = previewPath
	}

	r.Success = true
	r.Duration = time.Since(start)
	log.Debug("published", "points", r.Points, "triangles", r.Triangles, "elapsed", r.Duration)
	return r
}

// RenderPreview renders mesh at the final size with the camera spun by
// spinDeg around the vertical axis.
func RenderPreview(mesh *surface.MeshDescriptor, opts raster.Options, spinDeg float64) *image.NRGBA {
	opts.Spin = spinDeg
	img := raster.RenderMesh(mesh, opts)
	img = postprocess.Resolve(img, opts.Supersample)
	if opts.Frame {
		raster.DrawCornerLabels(img, opts.Camera, spinDeg)
	}
	return img
}

func writePreview(cfg Config, mesh *surface.MeshDescriptor, path string) error {
	if cfg.Turntable <= 0 {
		return export.WriteImage(path, RenderPreview(mesh, cfg.Render, cfg.Render.Spin), cfg.PreviewFormat)
	}
	if cfg.PreviewFormat != export.FormatWebP {
		return fmt.Errorf("batch: turntable needs webp previews, got %q", cfg.PreviewFormat)
	}

	frames := make([]image.Image, cfg.Turntable)
	for i := range frames {
		spin := mathutil.NormalizeDeg(cfg.Render.Spin + 360*float64(i)/float64(cfg.Turntable))
		frames[i] = RenderPreview(mesh, cfg.Render, spin)
	}
	frameMs := cfg.FrameMs
	if frameMs == 0 {
		frameMs = 80
	}
	return export.WriteAnimation(path, frames, frameMs)
}
