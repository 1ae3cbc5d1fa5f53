package capsulefit

import "github.com/golang/geo/r3"

// ExtremePointsAlongDirection scans points once and returns the indices of
// the points with the minimum and maximum scalar projection onto dir. Ties
// resolve to the first occurrence, so the result is deterministic for
// identical input. An empty point set yields ErrEmptyPointSet.
func ExtremePointsAlongDirection(dir r3.Vector, points []r3.Vector) (imin, imax int, err error) {
	if len(points) == 0 {
		return 0, 0, ErrEmptyPointSet
	}

	minProj := points[0].Dot(dir)
	maxProj := minProj
	for i := 1; i < len(points); i++ {
		proj := points[i].Dot(dir)
		if proj < minProj {
			minProj = proj
			imin = i
		}
		if proj > maxProj {
			maxProj = proj
			imax = i
		}
	}
	return imin, imax, nil
}
