package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"isomesh/internal/config"
	"isomesh/internal/mathutil"
	"isomesh/internal/surface"
)

func main() {
	configFile := flag.String("config", "", "Config file holding the surface (default: reference surfaces)")
	name := flag.String("surface", "hyperplane", "Surface to inspect")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{})

	selected, err := cfg.Select([]string{*name})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	p, err := selected[0].Params()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	mesh, err := surface.Extract(p)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Surface %q: points=%d, tris=%d, projection=%s\n", *name, mesh.VertexCount(), mesh.TriangleCount(), p.Projection)
	fmt.Printf("  Corners: %v\n", p.Corners)
	box, ok := mesh.Bounds()
	if !ok {
		fmt.Println("  (empty)")
		return
	}
	s := box.Size()
	fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n",
		box.Min[0], box.Max[0], box.Min[1], box.Max[1], box.Min[2], box.Max[2])
	fmt.Printf("  Size: %.3f x %.3f x %.3f\n", s[0], s[1], s[2])

	// Triangle areas and the axis each face mostly points along
	minArea, maxArea, total := math.Inf(1), 0.0, 0.0
	areaByDir := map[string]float64{}
	for i := 0; i < mesh.TriangleCount(); i++ {
		tri := mesh.Triangle(i)
		n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
		area := 0.5 * n.Len()
		minArea = math.Min(minArea, area)
		maxArea = math.Max(maxArea, area)
		total += area
		areaByDir[dominantAxis(n)] += area
	}
	if mesh.TriangleCount() == 0 {
		return
	}
	fmt.Printf("  Area: total=%.4f min=%.6f max=%.6f mean=%.6f\n",
		total, minArea, maxArea, total/float64(mesh.TriangleCount()))
	fmt.Println("  --- Surface area by direction ---")
	for _, d := range []string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"} {
		fmt.Printf("  %s: %.4f\n", d, areaByDir[d])
	}
}

func dominantAxis(n mathutil.Vec3) string {
	ax, ay, az := math.Abs(n[0]), math.Abs(n[1]), math.Abs(n[2])
	switch {
	case ax >= ay && ax >= az:
		if n[0] > 0 {
			return "+X"
		}
		return "-X"
	case ay >= az:
		if n[1] > 0 {
			return "+Y"
		}
		return "-Y"
	default:
		if n[2] > 0 {
			return "+Z"
		}
		return "-Z"
	}
}
