package batch

import (
	"log/slog"

	"isomesh/internal/config"
	"isomesh/internal/raster"
	"isomesh/internal/viewmatrix"
)

// FromConfig builds the batch settings of a resolved config.
func FromConfig(cfg config.Config, log *slog.Logger) Config {
	opts := raster.DefaultOptions()
	opts.Size = cfg.RenderSize
	opts.Supersample = cfg.Supersample
	opts.Camera = viewmatrix.NewOrbitCamera(cfg.Camera.Radius, cfg.Camera.Elevation, cfg.Camera.Azimuth, cfg.Camera.FOV)

	return Config{
		OutputDir:     cfg.OutputDir,
		MeshFormat:    cfg.MeshFormat,
		PreviewFormat: cfg.PreviewFormat,
		Render:        opts,
		Turntable:     cfg.Turntable,
		Workers:       cfg.Workers,
		Logger:        log,
	}
}

// Jobs converts surface definitions into jobs, stopping at the first
// invalid one.
func Jobs(surfaces []config.SurfaceConfig) ([]Job, error) {
	jobs := make([]Job, 0, len(surfaces))
	for _, s := range surfaces {
		p, err := s.Params()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, Job{Name: s.Name, Params: p})
	}
	return jobs, nil
}
