package capsulefit

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// CapsuleFromPoints fits a bounding capsule to a point set. The capsule axis
// follows the set's principal direction (largest-eigenvalue eigenvector of
// the covariance matrix), the axis end points are the extreme points along
// that direction, and the radius is the maximum point-to-segment distance —
// so every input point lies inside the returned capsule.
//
// The segment is not shortened to account for the hemispherical caps already
// covering points near its ends, so the capsule can be longer than strictly
// necessary. That looseness is deliberate: the fit is an initial guess for a
// downstream optimizer, which reclaims it.
func CapsuleFromPoints(points []r3.Vector) (Capsule, error) {
	cov, err := CovarianceMatrix(points)
	if err != nil {
		return Capsule{}, err
	}
	axis, err := PrincipalAxis(cov)
	if err != nil {
		return Capsule{}, fmt.Errorf("principal axis of %d points: %w", len(points), err)
	}

	imin, imax, err := ExtremePointsAlongDirection(axis, points)
	if err != nil {
		return Capsule{}, err
	}
	if imin == imax {
		// Zero spread along the principal axis: the whole cloud collapses to
		// a single point and the capsule degenerates to a sphere.
		Logf("capsulefit: degenerate point spread, fitting sphere at %v", points[imin])
	}

	c := Capsule{P0: points[imin], P1: points[imax]}
	for _, p := range points {
		if d := DistancePointToSegment(p, c.P0, c.P1); d > c.Radius {
			c.Radius = d
		}
	}
	return c, nil
}

// BoundingCapsuleOfPolyhedra fits a bounding capsule to the union of the
// vertex sets of a polyhedron collection. Fitting on hull vertices instead
// of the raw clouds is sound because the axis extremes and the bounding
// radius are realised at extremal points, which lie on the convex hull.
func BoundingCapsuleOfPolyhedra(polyhedra []Polyhedron) (Capsule, error) {
	merged := MergePolyhedra(polyhedra)
	if len(merged) == 0 {
		return Capsule{}, ErrEmptyPointSet
	}
	return CapsuleFromPoints(merged)
}
