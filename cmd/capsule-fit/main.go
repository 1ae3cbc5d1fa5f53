// Command capsule-fit fits a bounding capsule to a 3D point cloud read from
// a JSON file and prints the result as JSON. With -refine it additionally
// runs a gradient-based refinement (gonum/optimize) that shrinks the capsule
// volume under a quadratic containment penalty, starting from the PCA fit.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/optimize"

	"github.com/banshee-data/capsulefit"
)

// Config holds the tool configuration.
type Config struct {
	InputFile     string
	Refine        bool
	PenaltyWeight float64
	Verbose       bool
}

// cloudFile is the input format: either a single point cloud or a list of
// clusters. Each point is an [x, y, z] triple.
type cloudFile struct {
	Points   [][3]float64   `json:"points,omitempty"`
	Clusters [][][3]float64 `json:"clusters,omitempty"`
}

// fitResult is the output format.
type fitResult struct {
	P0      [3]float64 `json:"p0"`
	P1      [3]float64 `json:"p1"`
	Radius  float64    `json:"radius"`
	Length  float64    `json:"length"`
	Volume  float64    `json:"volume"`
	Refined bool       `json:"refined"`
}

func main() {
	cfg := parseFlags()

	if !cfg.Verbose {
		capsulefit.SetLogger(nil)
	}

	points, clusters, err := loadClouds(cfg.InputFile)
	if err != nil {
		log.Fatalf("load %s: %v", cfg.InputFile, err)
	}

	capsule, err := fit(points, clusters)
	if err != nil {
		log.Fatalf("fit: %v", err)
	}

	refined := false
	if cfg.Refine {
		all := points
		for _, cluster := range clusters {
			all = append(all, cluster...)
		}
		capsule, err = refine(capsule, all, cfg.PenaltyWeight)
		if err != nil {
			log.Fatalf("refine: %v", err)
		}
		refined = true
	}

	out := fitResult{
		P0:      [3]float64{capsule.P0.X, capsule.P0.Y, capsule.P0.Z},
		P1:      [3]float64{capsule.P1.X, capsule.P1.Y, capsule.P1.Z},
		Radius:  capsule.Radius,
		Length:  capsule.Length(),
		Volume:  capsule.Volume(),
		Refined: refined,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.InputFile, "input", "", "JSON file with a point cloud ('-' for stdin)")
	flag.BoolVar(&cfg.Refine, "refine", false, "refine the PCA fit with gonum/optimize")
	flag.Float64Var(&cfg.PenaltyWeight, "penalty", 1e4, "containment penalty weight for -refine")
	flag.BoolVar(&cfg.Verbose, "v", false, "enable library diagnostics")
	flag.Parse()

	if cfg.InputFile == "" {
		flag.Usage()
		os.Exit(2)
	}
	return cfg
}

// loadClouds reads the input file and returns either a flat point cloud or a
// set of clusters (exactly one of the two is non-empty).
func loadClouds(path string) ([]r3.Vector, [][]r3.Vector, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		r = f
	}

	var file cloudFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, nil, fmt.Errorf("decode JSON: %w", err)
	}
	if len(file.Points) == 0 && len(file.Clusters) == 0 {
		return nil, nil, fmt.Errorf("input has neither points nor clusters")
	}

	points := toVectors(file.Points)
	clusters := make([][]r3.Vector, 0, len(file.Clusters))
	for _, c := range file.Clusters {
		clusters = append(clusters, toVectors(c))
	}
	return points, clusters, nil
}

func toVectors(raw [][3]float64) []r3.Vector {
	out := make([]r3.Vector, len(raw))
	for i, p := range raw {
		out[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}

// fit runs the PCA fitter. Clustered input goes through per-cluster convex
// hulls so the fit only touches extremal vertices.
func fit(points []r3.Vector, clusters [][]r3.Vector) (capsulefit.Capsule, error) {
	if len(clusters) == 0 {
		return capsulefit.CapsuleFromPoints(points)
	}

	polyhedra := make([]capsulefit.Polyhedron, 0, len(clusters))
	for i, cluster := range clusters {
		hull, err := capsulefit.ConvexHullFromPoints(cluster)
		if err != nil {
			return capsulefit.Capsule{}, fmt.Errorf("hull of cluster %d: %w", i, err)
		}
		polyhedra = append(polyhedra, hull)
	}
	return capsulefit.BoundingCapsuleOfPolyhedra(polyhedra)
}

// refine minimises capsule volume plus a quadratic penalty for every point
// left outside, using the library's differentiable functions through a gonum
// solver. The library supplies values and analytic gradients only; the
// solver, line search and stopping rules are all gonum's.
func refine(start capsulefit.Capsule, points []r3.Vector, weight float64) (capsulefit.Capsule, error) {
	volume := capsulefit.Volume{}
	dists := make([]capsulefit.DistanceCapsulePoint, len(points))
	for i, p := range points {
		dists[i] = capsulefit.NewDistanceCapsulePoint(p)
	}

	scratch := make([]float64, capsulefit.NumParams)
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			v := volume.Value(x)
			for _, d := range dists {
				if out := d.Value(x); out > 0 {
					v += weight * out * out
				}
			}
			if r := x[6]; r < 0 {
				v += weight * r * r
			}
			return v
		},
		Grad: func(grad, x []float64) {
			volume.Gradient(grad, x)
			for _, d := range dists {
				if out := d.Value(x); out > 0 {
					d.Gradient(scratch, x)
					for i := range grad {
						grad[i] += 2 * weight * out * scratch[i]
					}
				}
			}
			if r := x[6]; r < 0 {
				grad[6] += 2 * weight * r
			}
		},
	}

	result, err := optimize.Minimize(problem, start.Params(), nil, nil)
	if err != nil {
		return capsulefit.Capsule{}, err
	}
	return capsulefit.CapsuleFromParams(result.X)
}
