package capsulefit

import "github.com/golang/geo/r3"

// epsilon guards the squared-length tests that separate degenerate geometry
// (zero-length segments, points on the axis) from the regular formulas.
const epsilon = 1e-12

// segmentParam returns the clamped projection parameter t ∈ [0,1] of p onto
// the segment [a,b], so that a + t·(b-a) is the closest segment point to p.
// For a degenerate segment (a == b within epsilon) it returns 0.
func segmentParam(p, a, b r3.Vector) float64 {
	ab := b.Sub(a)
	len2 := ab.Norm2()
	if len2 <= epsilon {
		return 0
	}
	t := p.Sub(a).Dot(ab) / len2
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// DistancePointToSegment returns the Euclidean distance from p to the
// closest point on the segment [a,b]. Points whose perpendicular foot falls
// outside the segment bind to the nearest end point; a degenerate segment
// (a == b) reduces to the point distance |p-a|.
func DistancePointToSegment(p, a, b r3.Vector) float64 {
	return p.Distance(ProjectionOnSegment(p, a, b))
}

// ProjectionOnSegment returns the closest point to p on the segment [a,b],
// using the same clamped projection as DistancePointToSegment.
func ProjectionOnSegment(p, a, b r3.Vector) r3.Vector {
	t := segmentParam(p, a, b)
	return a.Add(b.Sub(a).Mul(t))
}

// DistancePointToLine returns the distance from p to the infinite line
// through linePoint with direction dir. dir need not be normalised, but a
// zero direction is a precondition violation and yields ErrZeroDirection.
func DistancePointToLine(p, linePoint, dir r3.Vector) (float64, error) {
	if dir.Norm2() <= epsilon {
		return 0, ErrZeroDirection
	}
	return p.Sub(linePoint).Cross(dir).Norm() / dir.Norm(), nil
}
