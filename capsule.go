// Package capsulefit fits bounding capsules to 3D point clouds.
//
// A capsule is a swept sphere: a cylinder with hemispherical caps,
// parameterised by its two axis end points and a radius. The fitter uses a
// PCA heuristic — the capsule axis follows the direction of greatest point
// spread — so the result is a fast, reproducible fit suitable as an initial
// guess for a gradient-based optimizer, not a provably minimal bounding
// volume.
//
// The package also exposes the fit as a flat 7-parameter vector together
// with differentiable Volume and DistanceCapsulePoint functions over it, so
// an external solver (e.g. gonum/optimize) can refine the capsule against
// the original geometry.
package capsulefit

import (
	"math"

	"github.com/golang/geo/r3"
)

// Capsule is a cylinder of the given radius swept along the segment
// [P0, P1], capped by hemispheres of the same radius at both ends. P0 and P1
// may coincide, in which case the capsule degenerates to a sphere. A Capsule
// is a plain value; copy it freely.
type Capsule struct {
	P0     r3.Vector
	P1     r3.Vector
	Radius float64
}

// Length returns the length of the capsule axis segment.
func (c Capsule) Length() float64 {
	return c.P1.Sub(c.P0).Norm()
}

// Volume returns the capsule volume: cylinder plus two hemispheres,
// π·r²·L + (4/3)·π·r³.
func (c Capsule) Volume() float64 {
	r := c.Radius
	return math.Pi*r*r*c.Length() + (4.0/3.0)*math.Pi*r*r*r
}

// Contains reports whether p lies inside or on the capsule surface.
func (c Capsule) Contains(p r3.Vector) bool {
	return DistancePointToSegment(p, c.P0, c.P1) <= c.Radius
}

// BoundingBox returns the axis-aligned bounding box of the capsule.
func (c Capsule) BoundingBox() (min, max r3.Vector) {
	min = r3.Vector{
		X: math.Min(c.P0.X, c.P1.X) - c.Radius,
		Y: math.Min(c.P0.Y, c.P1.Y) - c.Radius,
		Z: math.Min(c.P0.Z, c.P1.Z) - c.Radius,
	}
	max = r3.Vector{
		X: math.Max(c.P0.X, c.P1.X) + c.Radius,
		Y: math.Max(c.P0.Y, c.P1.Y) + c.Radius,
		Z: math.Max(c.P0.Z, c.P1.Z) + c.Radius,
	}
	return min, max
}

// Polyhedron is a set of points, typically the vertex set of a convex hull.
// Order carries no meaning to the fitter.
type Polyhedron []r3.Vector

// MergePolyhedra unions the vertex sets of all polyhedra into a single
// polyhedron. Duplicate vertices (exact coordinate matches) are dropped; no
// re-hulling is performed.
func MergePolyhedra(polyhedra []Polyhedron) Polyhedron {
	var merged Polyhedron
	seen := make(map[r3.Vector]struct{})
	for _, poly := range polyhedra {
		for _, v := range poly {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			merged = append(merged, v)
		}
	}
	return merged
}
