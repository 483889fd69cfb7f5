package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isomesh/internal/batch"
	"isomesh/internal/config"
)

func writeConfig(t *testing.T, path, offset, format string) {
	t.Helper()
	body := "output_dir: " + filepath.Join(filepath.Dir(path), "out") + "\n" +
		"mesh_format: " + format + "\n" +
		"preview_format: none\n" +
		"surfaces:\n" +
		"  - name: hyperplane\n    offset: 0\n" +
		"  - name: hypersurface\n    offset: " + offset + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func names(results []batch.Result) []string {
	var out []string
	for _, r := range results {
		out = append(out, r.Name)
	}
	return out
}

func TestReloadRepublishesChangedSurfaces(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "surfaces.yaml")
	writeConfig(t, path, "1", "json")
	w := New(path, config.Flags{Workers: 2}, quiet())

	results, err := w.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"hyperplane", "hypersurface"}, names(results))
	for _, r := range results {
		assert.True(t, r.Success, r.Error)
		assert.FileExists(t, r.MeshFile)
	}

	results, err = w.Reload(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)

	writeConfig(t, path, "0.5", "json")
	results, err = w.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"hypersurface"}, names(results))

	writeConfig(t, path, "0.5", "obj")
	results, err = w.Reload(ctx)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, ".obj", filepath.Ext(results[0].MeshFile))
}

func TestReloadFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surfaces.yaml")
	writeConfig(t, path, "1", "json")
	w := New(path, config.Flags{}, quiet())
	w.Surfaces = []string{"hypersurface"}

	results, err := w.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"hypersurface"}, names(results))
	assert.Len(t, w.extractors, 1)
}

func TestReloadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surfaces.yaml")
	writeConfig(t, path, "1", "stl")
	w := New(path, config.Flags{}, quiet())

	_, err := w.Reload(context.Background())
	assert.ErrorContains(t, err, "mesh_format")
}

func TestRunReactsToWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surfaces.yaml")
	writeConfig(t, path, "1", "json")

	published := make(chan []batch.Result, 4)
	w := New(path, config.Flags{Workers: 1}, quiet())
	w.OnPublish = func(r []batch.Result) { published <- r }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case r := <-published:
		assert.Len(t, r, 2)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial publish")
	}

	writeConfig(t, path, "0.25", "json")
	select {
	case r := <-published:
		assert.Equal(t, []string{"hypersurface"}, names(r))
	case <-time.After(5 * time.Second):
		t.Fatal("no publish after write")
	}

	cancel()
	require.NoError(t, <-done)
}
