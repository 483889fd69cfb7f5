// Package watch keeps the outputs of a config file current: each reload
// re-extracts and republishes only the surfaces whose parameters changed.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"isomesh/internal/batch"
	"isomesh/internal/config"
	"isomesh/internal/surface"
)

// Debounce is how long Run waits after the last file event before reloading.
const Debounce = 200 * time.Millisecond

// Watcher holds one Extractor per surface name.
type Watcher struct {
	Path      string
	Flags     config.Flags
	Surfaces  []string                     // optional name filter
	Logger    *slog.Logger
	OnPublish func(results []batch.Result) // called after each reload that published

	mu         sync.Mutex
	extractors map[string]*surface.Extractor
	output     batch.Config
}

// New returns a Watcher for the config file at path.
func New(path string, flags config.Flags, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		Path:       path,
		Flags:      flags,
		Logger:     log,
		extractors: make(map[string]*surface.Extractor),
	}
}

// Reload reads the config and republishes every surface whose parameters
// or output settings changed since the previous reload. Unchanged surfaces
// are skipped and produce no result.
func (w *Watcher) Reload(ctx context.Context) ([]batch.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cfg, err := config.Load(w.Path)
	if err != nil {
		return nil, err
	}
	cfg.Resolve(w.Flags)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	selected, err := cfg.Select(w.Surfaces)
	if err != nil {
		return nil, err
	}
	jobs, err := batch.Jobs(selected)
	if err != nil {
		return nil, err
	}

	out := batch.FromConfig(cfg, w.Logger)
	if !sameOutput(out, w.output) {
		for _, e := range w.extractors {
			e.Invalidate()
		}
		w.output = out
	}

	live := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		live[j.Name] = true
		if w.extractors[j.Name] == nil {
			w.extractors[j.Name] = surface.NewExtractor()
		}
	}
	for name := range w.extractors {
		if !live[name] {
			delete(w.extractors, name)
		}
	}

	results := make([]*batch.Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(out.Workers, 1))
	for i, j := range jobs {
		ext := w.extractors[j.Name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			mesh, recomputed, err := ext.Mesh(j.Params)
			if err != nil {
				results[i] = &batch.Result{Name: j.Name, Error: err.Error(), Duration: time.Since(start)}
				return nil
			}
			if !recomputed {
				return nil
			}
			r := batch.Publish(out, j.Name, mesh, start)
			if !r.Success {
				// Retry on the next reload.
				ext.Invalidate()
			}
			results[i] = &r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var published []batch.Result
	for _, r := range results {
		if r != nil {
			published = append(published, *r)
		}
	}
	return published, nil
}

// sameOutput reports whether a and b write identical files for the same mesh.
func sameOutput(a, b batch.Config) bool {
	return a.OutputDir == b.OutputDir &&
		a.MeshFormat == b.MeshFormat &&
		a.PreviewFormat == b.PreviewFormat &&
		a.Render == b.Render &&
		a.Turntable == b.Turntable
}

// Run reloads once, then again after every change to the config file, until
// ctx is cancelled. Reload errors are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	// Editors often replace the file, so watch its directory.
	target := filepath.Clean(w.Path)
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(target), err)
	}

	w.reload(ctx)

	timer := time.NewTimer(Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(Debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watch error", "err", err)
		case <-timer.C:
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	results, err := w.Reload(ctx)
	if err != nil {
		w.Logger.Error("reload failed", "path", w.Path, "err", err)
		return
	}
	w.Logger.Info("reloaded", "path", w.Path, "published", len(results))
	if len(results) > 0 && w.OnPublish != nil {
		w.OnPublish(results)
	}
}
