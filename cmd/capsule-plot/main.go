// Command capsule-plot fits a bounding capsule to a point cloud and renders
// a 2D projection of the cloud and the capsule outline to an image file.
// Useful for eyeballing fit quality without a 3D viewer.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"

	"github.com/golang/geo/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/capsulefit"
)

// Config holds the tool configuration.
type Config struct {
	InputFile  string
	OutputFile string
	Plane      string
}

type cloudFile struct {
	Points [][3]float64 `json:"points"`
}

func main() {
	cfg := parseFlags()

	points, err := loadPoints(cfg.InputFile)
	if err != nil {
		log.Fatalf("load %s: %v", cfg.InputFile, err)
	}

	capsule, err := capsulefit.CapsuleFromPoints(points)
	if err != nil {
		log.Fatalf("fit: %v", err)
	}

	if err := render(cfg, points, capsule); err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Printf("wrote %s (radius %.4f, length %.4f)\n", cfg.OutputFile, capsule.Radius, capsule.Length())
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.InputFile, "input", "", "JSON file with a point cloud")
	flag.StringVar(&cfg.OutputFile, "output", "capsule.png", "output image (extension selects format)")
	flag.StringVar(&cfg.Plane, "plane", "xy", "projection plane: xy, xz or yz")
	flag.Parse()

	if cfg.InputFile == "" {
		flag.Usage()
		os.Exit(2)
	}
	if cfg.Plane != "xy" && cfg.Plane != "xz" && cfg.Plane != "yz" {
		log.Fatalf("unknown plane %q", cfg.Plane)
	}
	return cfg
}

func loadPoints(path string) ([]r3.Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var file cloudFile
	if err := json.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	points := make([]r3.Vector, len(file.Points))
	for i, p := range file.Points {
		points[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	return points, nil
}

// project maps a 3D point onto the configured plane.
func project(p r3.Vector, plane string) plotter.XY {
	switch plane {
	case "xz":
		return plotter.XY{X: p.X, Y: p.Z}
	case "yz":
		return plotter.XY{X: p.Y, Y: p.Z}
	default:
		return plotter.XY{X: p.X, Y: p.Y}
	}
}

func render(cfg Config, points []r3.Vector, capsule capsulefit.Capsule) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Capsule fit (%s projection)", cfg.Plane)
	p.X.Label.Text = string(cfg.Plane[0])
	p.Y.Label.Text = string(cfg.Plane[1])

	cloud := make(plotter.XYs, len(points))
	for i, pt := range points {
		cloud[i] = project(pt, cfg.Plane)
	}
	scatter, err := plotter.NewScatter(cloud)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	scatter.GlyphStyle.Color = color.RGBA{B: 200, A: 255}
	p.Add(scatter)

	outline, err := plotter.NewLine(capsuleOutline(capsule, cfg.Plane))
	if err != nil {
		return fmt.Errorf("outline: %w", err)
	}
	outline.LineStyle.Width = vg.Points(1.5)
	outline.LineStyle.Color = color.RGBA{R: 200, A: 255}
	p.Add(outline)
	p.Legend.Add("points", scatter)
	p.Legend.Add("capsule", outline)

	return p.Save(6*vg.Inch, 6*vg.Inch, cfg.OutputFile)
}

// capsuleOutline traces the projected capsule silhouette: a stadium around
// the projected axis segment, or a circle when the segment projects to a
// point. The silhouette is exact for axes parallel to the projection plane
// and a conservative sketch otherwise.
func capsuleOutline(c capsulefit.Capsule, plane string) plotter.XYs {
	const capSteps = 32
	a := project(c.P0, plane)
	b := project(c.P1, plane)
	r := c.Radius

	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		// Axis is perpendicular to the plane: the silhouette is a circle.
		out := make(plotter.XYs, 0, 2*capSteps+1)
		for i := 0; i <= 2*capSteps; i++ {
			phi := 2 * math.Pi * float64(i) / float64(2*capSteps)
			out = append(out, plotter.XY{X: a.X + r*math.Cos(phi), Y: a.Y + r*math.Sin(phi)})
		}
		return out
	}

	// Unit normal to the projected axis; alpha is its polar angle. The two
	// cap arcs sweep half a turn each, joined by the offset edges.
	nx, ny := -dy/length, dx/length
	alpha := math.Atan2(ny, nx)

	out := make(plotter.XYs, 0, 2*capSteps+3)
	for i := 0; i <= capSteps; i++ { // cap around b: alpha → alpha-π
		phi := alpha - math.Pi*float64(i)/float64(capSteps)
		out = append(out, plotter.XY{X: b.X + r*math.Cos(phi), Y: b.Y + r*math.Sin(phi)})
	}
	for i := 0; i <= capSteps; i++ { // cap around a: alpha-π → alpha-2π
		phi := alpha - math.Pi - math.Pi*float64(i)/float64(capSteps)
		out = append(out, plotter.XY{X: a.X + r*math.Cos(phi), Y: a.Y + r*math.Sin(phi)})
	}
	out = append(out, out[0]) // close the loop
	return out
}
