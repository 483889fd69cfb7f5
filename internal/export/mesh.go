// Package export writes extracted meshes and preview images to disk.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"isomesh/internal/surface"
)

// Mesh file formats.
const (
	FormatOBJ  = "obj"
	FormatPLY  = "ply"
	FormatJSON = "json"
)

// MeshFormats lists the supported mesh formats.
var MeshFormats = []string{FormatJSON, FormatOBJ, FormatPLY}

// ValidMeshFormat reports whether format names a mesh writer.
func ValidMeshFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatOBJ, FormatPLY, FormatJSON:
		return true
	}
	return false
}

// EncodeMesh writes mesh to w in the given format.
func EncodeMesh(w io.Writer, mesh *surface.MeshDescriptor, format string) error {
	switch strings.ToLower(format) {
	case FormatOBJ:
		return WriteOBJ(w, mesh)
	case FormatPLY:
		return WritePLY(w, mesh)
	case FormatJSON:
		return WriteJSON(w, mesh)
	}
	return fmt.Errorf("export: unknown mesh format %q", format)
}

// WriteMesh creates path (and its directory) and writes mesh into it.
func WriteMesh(path string, mesh *surface.MeshDescriptor, format string) error {
	if !ValidMeshFormat(format) {
		return fmt.Errorf("export: unknown mesh format %q", format)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := EncodeMesh(f, mesh, format); err != nil {
		f.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return f.Close()
}

// WriteOBJ writes a Wavefront OBJ with one v line per position and one f
// line per triangle (1-based indices).
func WriteOBJ(w io.Writer, mesh *surface.MeshDescriptor) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# isomesh: %d vertices, %d triangles\n", mesh.VertexCount(), mesh.TriangleCount())
	for _, p := range mesh.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		fmt.Fprintf(bw, "f %d %d %d\n", mesh.Indices[i]+1, mesh.Indices[i+1]+1, mesh.Indices[i+2]+1)
	}
	return bw.Flush()
}

// WritePLY writes an ASCII PLY with float vertices and uchar-counted int
// face lists.
func WritePLY(w io.Writer, mesh *surface.MeshDescriptor) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("ply\n")
	bw.WriteString("format ascii 1.0\n")
	bw.WriteString("comment isomesh isosurface\n")
	fmt.Fprintf(bw, "element vertex %d\n", mesh.VertexCount())
	bw.WriteString("property float x\nproperty float y\nproperty float z\n")
	fmt.Fprintf(bw, "element face %d\n", mesh.TriangleCount())
	bw.WriteString("property list uchar int vertex_indices\n")
	bw.WriteString("end_header\n")
	for _, p := range mesh.Positions {
		fmt.Fprintf(bw, "%g %g %g\n", float32(p[0]), float32(p[1]), float32(p[2]))
	}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		fmt.Fprintf(bw, "3 %d %d %d\n", mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2])
	}
	return bw.Flush()
}

// bufferGeometry mirrors the three.js BufferGeometry JSON layout, so the
// page can load a mesh with BufferGeometryLoader.
type bufferGeometry struct {
	Metadata geometryMetadata `json:"metadata"`
	UUID     string           `json:"uuid,omitempty"`
	Type     string           `json:"type"`
	Data     geometryData     `json:"data"`
}

type geometryMetadata struct {
	Version   float64 `json:"version"`
	Type      string  `json:"type"`
	Generator string  `json:"generator"`
}

type geometryData struct {
	Attributes map[string]geometryAttribute `json:"attributes"`
	Index      *geometryIndex               `json:"index,omitempty"`
}

type geometryAttribute struct {
	ItemSize   int       `json:"itemSize"`
	Type       string    `json:"type"`
	Array      []float32 `json:"array"`
	Normalized bool      `json:"normalized"`
}

type geometryIndex struct {
	Type  string   `json:"type"`
	Array []uint32 `json:"array"`
}

// WriteJSON writes the mesh as three.js BufferGeometry JSON. Positions are
// narrowed to float32, matching Float32Array.
func WriteJSON(w io.Writer, mesh *surface.MeshDescriptor) error {
	pos := make([]float32, 0, 3*len(mesh.Positions))
	for _, p := range mesh.Positions {
		pos = append(pos, float32(p[0]), float32(p[1]), float32(p[2]))
	}
	idx := mesh.Indices
	if idx == nil {
		idx = []uint32{}
	}

	geo := bufferGeometry{
		Metadata: geometryMetadata{Version: 4.6, Type: "BufferGeometry", Generator: "isomesh"},
		UUID:     strings.ToUpper(uuid.NewString()),
		Type:     "BufferGeometry",
		Data: geometryData{
			Attributes: map[string]geometryAttribute{
				"position": {ItemSize: 3, Type: "Float32Array", Array: pos},
			},
			Index: &geometryIndex{Type: "Uint32Array", Array: idx},
		},
	}

	enc := json.NewEncoder(w)
	return enc.Encode(geo)
}
