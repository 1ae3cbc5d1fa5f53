package capsulefit

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	quickhull "github.com/markus-wa/quickhull-go/v2"
)

// ConvexHullFromPoints computes the convex hull of a point set and returns
// its vertex set. Hull construction is delegated to quickhull; this function
// only validates that a 3D hull exists at all. Fewer than 4 affinely
// independent points (including fully coplanar sets) yield ErrDegenerateHull.
func ConvexHullFromPoints(points []r3.Vector) (Polyhedron, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPointSet
	}
	if err := checkSpansVolume(points); err != nil {
		return nil, err
	}

	hull := new(quickhull.QuickHull).ConvexHull(points, true, false, 0)
	return Polyhedron(hull.Vertices), nil
}

// ConvexPolyhedron unions all polyhedra in the collection, computes the
// convex hull of the union, and returns it as a single-element collection.
// Used to reduce many per-cluster hulls to one global hull before fitting.
func ConvexPolyhedron(polyhedra []Polyhedron) ([]Polyhedron, error) {
	merged := MergePolyhedra(polyhedra)
	if len(merged) == 0 {
		return nil, ErrEmptyPointSet
	}
	hull, err := ConvexHullFromPoints(merged)
	if err != nil {
		return nil, fmt.Errorf("hull of merged polyhedra: %w", err)
	}
	return []Polyhedron{hull}, nil
}

// checkSpansVolume verifies that the point set contains 4 affinely
// independent points. It greedily grows a simplex the way quickhull seeds
// its own: a second point off the first, a third off that line, a fourth off
// that plane. The tolerance scales with the cloud extent so that the test is
// invariant under uniform scaling.
func checkSpansVolume(points []r3.Vector) error {
	if len(points) < 4 {
		return fmt.Errorf("%w: got %d points, need at least 4", ErrDegenerateHull, len(points))
	}

	scale := 0.0
	for _, p := range points {
		scale = math.Max(scale, p.Sub(points[0]).Norm())
	}
	if scale == 0 {
		return fmt.Errorf("%w: all points coincide", ErrDegenerateHull)
	}
	tol := 1e-10 * scale

	p0 := points[0]
	i1 := -1
	for i, p := range points {
		if p.Sub(p0).Norm() > tol {
			i1 = i
			break
		}
	}
	if i1 < 0 {
		return fmt.Errorf("%w: all points coincide", ErrDegenerateHull)
	}
	u := points[i1].Sub(p0)

	i2 := -1
	for i, p := range points {
		if p.Sub(p0).Cross(u).Norm() > tol*u.Norm() {
			i2 = i
			break
		}
	}
	if i2 < 0 {
		return fmt.Errorf("%w: points are collinear", ErrDegenerateHull)
	}
	normal := points[i2].Sub(p0).Cross(u)

	for _, p := range points {
		if math.Abs(p.Sub(p0).Dot(normal)) > tol*normal.Norm() {
			return nil
		}
	}
	return fmt.Errorf("%w: points are coplanar", ErrDegenerateHull)
}
