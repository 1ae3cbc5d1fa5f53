package capsulefit

import "errors"

var (
	// ErrEmptyPointSet is returned when an operation that needs at least one
	// point receives none.
	ErrEmptyPointSet = errors.New("capsulefit: empty point set")

	// ErrZeroDirection is returned when a direction vector with zero length
	// is passed where a line direction is required.
	ErrZeroDirection = errors.New("capsulefit: zero direction vector")

	// ErrDegenerateHull is returned when a point set cannot form a 3D convex
	// hull (fewer than 4 affinely independent points).
	ErrDegenerateHull = errors.New("capsulefit: point set has no 3D convex hull")

	// ErrBadParamLength is returned when a parameter vector does not hold
	// exactly NumParams scalars.
	ErrBadParamLength = errors.New("capsulefit: parameter vector must have length 7")
)
