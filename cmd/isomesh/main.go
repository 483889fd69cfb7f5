package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"isomesh/internal/batch"
	"isomesh/internal/config"
	"isomesh/internal/watch"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a .json, .yaml or .toml config file")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	meshFormat := flag.String("format", "", "Mesh format: json, obj or ply (default: json)")
	preview := flag.String("preview", "", "Preview format: webp, tga or none (default: webp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 512)")
	turntable := flag.Int("turntable", 0, "Render an animated WebP turntable with this many frames")
	surfaces := flag.String("surface", "", "Comma-separated surface names to extract (default: all)")
	watchMode := flag.Bool("watch", false, "Re-extract changed surfaces whenever the config file changes")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	flags := config.Flags{
		OutputDir:     *outputDir,
		MeshFormat:    *meshFormat,
		PreviewFormat: *preview,
		RenderSize:    *size,
		Turntable:     *turntable,
		Workers:       *workers,
	}
	names := splitNames(*surfaces)

	if *watchMode {
		if *configFile == "" {
			fmt.Fprintln(os.Stderr, "Error: -watch needs -config")
			os.Exit(1)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		w := watch.New(*configFile, flags, log)
		w.Surfaces = names
		if err := w.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	selected, err := cfg.Select(names)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	jobs, err := batch.Jobs(selected)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Isosurface extraction")
	fmt.Printf("Surfaces: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Mesh: %s, Preview: %s (%dpx)\n", cfg.MeshFormat, cfg.PreviewFormat, cfg.RenderSize)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	batchCfg := batch.FromConfig(cfg, log)
	results := batch.Run(batchCfg, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.2fs\n", elapsed.Seconds())

	// Count results
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			fmt.Printf("  %-16s FAILED: %s\n", r.Name, r.Error)
			continue
		}
		fmt.Printf("  %-16s %6d points %6d triangles  %s\n", r.Name, r.Points, r.Triangles, r.MeshFile)
	}
	fmt.Printf("Extracted: %d/%d\n", len(results)-failed, len(results))

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, config.ManifestFile)
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	m := batch.NewManifest(batchCfg, results)
	if err := batch.WriteManifest(manifestPath, m); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s (run %s)\n", manifestPath, m.RunID)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func splitNames(s string) []string {
	var out []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
