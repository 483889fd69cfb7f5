package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Manifest describes one run's outputs.
type Manifest struct {
	RunID      string    `json:"run_id"`
	Created    time.Time `json:"created"`
	MeshFormat string    `json:"mesh_format"`
	Preview    string    `json:"preview_format"`
	Surfaces   []Result  `json:"surfaces"`
}

// NewManifest stamps results with a fresh run id.
func NewManifest(cfg Config, results []Result) Manifest {
	return Manifest{
		RunID:      uuid.NewString(),
		Created:    time.Now().UTC(),
		MeshFormat: cfg.MeshFormat,
		Preview:    cfg.PreviewFormat,
		Surfaces:   results,
	}
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}
