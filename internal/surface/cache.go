package surface

import "sync"

// Extractor keeps the mesh of the last parameter set and re-extracts only
// when the parameters change. It is safe for concurrent use. The zero value
// is ready to use.
type Extractor struct {
	mu      sync.RWMutex
	valid   bool
	params  Params
	mesh    *MeshDescriptor
	extract func(Params) (*MeshDescriptor, error)
}

// NewExtractor returns an Extractor backed by Extract.
func NewExtractor() *Extractor {
	return &Extractor{extract: Extract}
}

// Mesh returns the mesh for p, recomputing it if p differs from the cached
// parameters. recomputed reports whether an extraction ran. The returned
// mesh is shared between callers and must be treated as read-only.
func (e *Extractor) Mesh(p Params) (mesh *MeshDescriptor, recomputed bool, err error) {
	// Fast path: read lock
	e.mu.RLock()
	if e.valid && e.params == p {
		mesh = e.mesh
		e.mu.RUnlock()
		return mesh, false, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.valid && e.params == p {
		return e.mesh, false, nil
	}

	run := e.extract
	if run == nil {
		run = Extract
	}
	mesh, err = run(p)
	if err != nil {
		e.valid = false
		e.mesh = nil
		return nil, true, err
	}
	e.params = p
	e.mesh = mesh
	e.valid = true
	return mesh, true, nil
}

// Invalidate drops the cached mesh so the next Mesh call re-extracts.
func (e *Extractor) Invalidate() {
	e.mu.Lock()
	e.valid = false
	e.mesh = nil
	e.mu.Unlock()
}
