package capsulefit

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// NumParams is the length of the flat parameter vector exchanged with the
// optimizer: [P0.X, P0.Y, P0.Z, P1.X, P1.Y, P1.Z, Radius]. The layout is a
// fixed contract; both codec directions round-trip exactly.
const NumParams = 7

// Params encodes the capsule into a freshly allocated 7-scalar parameter
// vector in the fixed layout above.
func (c Capsule) Params() []float64 {
	return []float64{c.P0.X, c.P0.Y, c.P0.Z, c.P1.X, c.P1.Y, c.P1.Z, c.Radius}
}

// CapsuleFromParams decodes a 7-scalar parameter vector back into a Capsule.
// It is the exact inverse of Params; any other vector length yields
// ErrBadParamLength.
func CapsuleFromParams(params []float64) (Capsule, error) {
	if len(params) != NumParams {
		return Capsule{}, fmt.Errorf("%w: got %d", ErrBadParamLength, len(params))
	}
	return decodeParams(params), nil
}

// decodeParams is the unchecked decode used on the hot differentiable-function
// path, after the caller has verified the length.
func decodeParams(params []float64) Capsule {
	return Capsule{
		P0:     r3.Vector{X: params[0], Y: params[1], Z: params[2]},
		P1:     r3.Vector{X: params[3], Y: params[4], Z: params[5]},
		Radius: params[6],
	}
}
