// Package config loads run settings and surface definitions from JSON, YAML
// or TOML files and merges them with command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"isomesh/internal/export"
	"isomesh/internal/field"
	"isomesh/internal/mathutil"
	"isomesh/internal/surface"
	"isomesh/internal/triangulate"
)

// ManifestFile is the run manifest written next to the surface outputs.
const ManifestFile = "manifest.json"

// Config holds output settings, the preview camera and the surfaces to
// extract.
type Config struct {
	// Output
	OutputDir     string `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	MeshFormat    string `json:"mesh_format" yaml:"mesh_format" toml:"mesh_format"`
	PreviewFormat string `json:"preview_format" yaml:"preview_format" toml:"preview_format"`

	// Render settings
	RenderSize  int `json:"render_size" yaml:"render_size" toml:"render_size"`
	Supersample int `json:"supersample" yaml:"supersample" toml:"supersample"`
	Turntable   int `json:"turntable_frames" yaml:"turntable_frames" toml:"turntable_frames"`
	Workers     int `json:"workers" yaml:"workers" toml:"workers"`

	Camera   CameraConfig    `json:"camera" yaml:"camera" toml:"camera"`
	Surfaces []SurfaceConfig `json:"surfaces" yaml:"surfaces" toml:"surfaces"`
}

// CameraConfig places the orbit camera. Angles are in degrees.
type CameraConfig struct {
	Radius    float64 `json:"radius" yaml:"radius" toml:"radius"`
	Elevation float64 `json:"elevation" yaml:"elevation" toml:"elevation"`
	Azimuth   float64 `json:"azimuth" yaml:"azimuth" toml:"azimuth"`
	FOV       float64 `json:"fov" yaml:"fov" toml:"fov"`
}

// SurfaceConfig describes one extraction. Corners, when given, must hold
// eight values in c000..c111 order; otherwise the reference corners shifted
// by Offset are used.
type SurfaceConfig struct {
	Name       string    `json:"name" yaml:"name" toml:"name"`
	Corners    []float64 `json:"corners,omitempty" yaml:"corners,omitempty" toml:"corners,omitempty"`
	Offset     float64   `json:"offset" yaml:"offset" toml:"offset"`
	BoundsMin  []float64 `json:"bounds_min,omitempty" yaml:"bounds_min,omitempty" toml:"bounds_min,omitempty"`
	BoundsMax  []float64 `json:"bounds_max,omitempty" yaml:"bounds_max,omitempty" toml:"bounds_max,omitempty"`
	Step       float64   `json:"step" yaml:"step" toml:"step"`
	Isovalue   float64   `json:"isovalue" yaml:"isovalue" toml:"isovalue"`
	Tolerance  float64   `json:"tolerance" yaml:"tolerance" toml:"tolerance"`
	Projection string    `json:"projection" yaml:"projection" toml:"projection"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir     string
	MeshFormat    string
	PreviewFormat string
	RenderSize    int
	Turntable     int
	Workers       int
}

// Load reads a config file. The format follows the extension: .json, .yaml,
// .yml or .toml. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies flags over the file values, then fills any empty fields
// with defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.MeshFormat != "" {
		c.MeshFormat = flags.MeshFormat
	}
	if flags.PreviewFormat != "" {
		c.PreviewFormat = flags.PreviewFormat
	}
	if flags.RenderSize > 0 {
		c.RenderSize = flags.RenderSize
	}
	if flags.Turntable > 0 {
		c.Turntable = flags.Turntable
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.MeshFormat == "" {
		c.MeshFormat = export.FormatJSON
	}
	c.MeshFormat = strings.ToLower(c.MeshFormat)
	if c.PreviewFormat == "" {
		c.PreviewFormat = export.FormatWebP
	}
	c.PreviewFormat = strings.ToLower(c.PreviewFormat)
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	// A fully zero camera means the reference view; otherwise only the
	// distance and lens fall back, since 0° is a valid angle.
	if c.Camera == (CameraConfig{}) {
		c.Camera = DefaultCamera()
	}
	if c.Camera.Radius <= 0 {
		c.Camera.Radius = mathutil.DefaultCameraRadius
	}
	if c.Camera.FOV <= 0 {
		c.Camera.FOV = mathutil.DefaultCameraFOV
	}
	c.Camera.Azimuth = mathutil.NormalizeDeg(c.Camera.Azimuth)

	if len(c.Surfaces) == 0 {
		c.Surfaces = DefaultSurfaces()
	}
	for i := range c.Surfaces {
		if c.Surfaces[i].Name == "" {
			c.Surfaces[i].Name = fmt.Sprintf("surface%d", i)
		}
	}
}

// DefaultCamera returns the reference orbit placement.
func DefaultCamera() CameraConfig {
	return CameraConfig{
		Radius:    mathutil.DefaultCameraRadius,
		Elevation: mathutil.DefaultCameraElevation,
		Azimuth:   mathutil.DefaultCameraAzimuth,
		FOV:       mathutil.DefaultCameraFOV,
	}
}

// DefaultSurfaces returns the plane and warped reference surfaces.
func DefaultSurfaces() []SurfaceConfig {
	return []SurfaceConfig{
		{Name: "hyperplane", Offset: 0},
		{Name: "hypersurface", Offset: 1},
	}
}

// Validate reports every problem found, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	if !export.ValidMeshFormat(c.MeshFormat) {
		errs = append(errs, fmt.Errorf("config: unknown mesh_format %q", c.MeshFormat))
	}
	if !export.ValidImageFormat(c.PreviewFormat) {
		errs = append(errs, fmt.Errorf("config: unknown preview_format %q", c.PreviewFormat))
	}
	if c.Turntable > 0 && c.PreviewFormat != export.FormatWebP {
		errs = append(errs, fmt.Errorf("config: turntable_frames needs preview_format webp, got %q", c.PreviewFormat))
	}
	seen := make(map[string]bool, len(c.Surfaces))
	for _, s := range c.Surfaces {
		if err := c.checkName(s.Name); err != nil {
			errs = append(errs, err)
		}
		if seen[s.Name] {
			errs = append(errs, fmt.Errorf("config: duplicate surface name %q", s.Name))
		}
		seen[s.Name] = true
		if _, err := s.Params(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// checkName rejects surface names that would write outside the output
// directory or over the manifest.
func (c *Config) checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("config: surface name %q is not a plain file name", name)
	}
	if strings.EqualFold(name+"."+c.MeshFormat, ManifestFile) || strings.EqualFold(name+"."+c.PreviewFormat, ManifestFile) {
		return fmt.Errorf("config: surface name %q collides with %s", name, ManifestFile)
	}
	return nil
}

// Select returns the surfaces named in names, in the order given. An empty
// names slice selects all surfaces.
func (c *Config) Select(names []string) ([]SurfaceConfig, error) {
	if len(names) == 0 {
		return c.Surfaces, nil
	}
	byName := make(map[string]SurfaceConfig, len(c.Surfaces))
	for _, s := range c.Surfaces {
		byName[s.Name] = s
	}
	out := make([]SurfaceConfig, 0, len(names))
	for _, n := range names {
		s, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("config: no surface named %q", n)
		}
		out = append(out, s)
	}
	return out, nil
}

// Params converts s into extraction parameters. Zero step and tolerance
// take the reference values; missing bounds take the unit box.
func (s SurfaceConfig) Params() (surface.Params, error) {
	p := surface.DefaultParams()

	// Params must stay comparable with ==, which NaN breaks.
	values := append([]float64{s.Offset, s.Step, s.Isovalue, s.Tolerance}, s.Corners...)
	values = append(append(values, s.BoundsMin...), s.BoundsMax...)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return p, fmt.Errorf("config: surface %q: non-finite value %g", s.Name, v)
		}
	}

	switch len(s.Corners) {
	case 0:
		p.Corners = field.ReferenceCorners(s.Offset)
	case 8:
		copy(p.Corners[:], s.Corners)
	default:
		return p, fmt.Errorf("config: surface %q: corners needs 8 values, got %d", s.Name, len(s.Corners))
	}

	if len(s.BoundsMin) > 0 || len(s.BoundsMax) > 0 {
		if len(s.BoundsMin) != 3 || len(s.BoundsMax) != 3 {
			return p, fmt.Errorf("config: surface %q: bounds_min and bounds_max need 3 values each", s.Name)
		}
		p.Bounds = field.Box{
			Min: mathutil.Vec3{s.BoundsMin[0], s.BoundsMin[1], s.BoundsMin[2]},
			Max: mathutil.Vec3{s.BoundsMax[0], s.BoundsMax[1], s.BoundsMax[2]},
		}
	}

	if s.Step < 0 {
		return p, fmt.Errorf("config: surface %q: negative step %g", s.Name, s.Step)
	}
	if s.Step > 0 {
		p.Step = s.Step
	}
	if s.Tolerance < 0 {
		return p, fmt.Errorf("config: surface %q: negative tolerance %g", s.Name, s.Tolerance)
	}
	if s.Tolerance > 0 {
		p.Tolerance = s.Tolerance
	}
	p.Isovalue = s.Isovalue

	axis, err := triangulate.ParseAxis2D(s.Projection)
	if err != nil {
		return p, fmt.Errorf("config: surface %q: %w", s.Name, err)
	}
	p.Projection = axis
	return p, nil
}
