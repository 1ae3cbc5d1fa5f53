package capsulefit

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/optimize"
)

// DifferentiableFunction is the contract the capsule functions expose to a
// gradient-based optimizer: a single scalar value over the 7-parameter
// capsule vector, plus its analytic gradient. Value and Gradient panic on a
// vector of the wrong length (a programmer error, following gonum's
// dimension-mismatch convention); data-dependent failures do not occur —
// both implementations are total over finite inputs.
type DifferentiableFunction interface {
	// Dims returns the expected parameter vector length (always NumParams).
	Dims() int
	// Value evaluates the function at x.
	Value(x []float64) float64
	// Gradient stores the analytic gradient at x into grad, which must have
	// length Dims.
	Gradient(grad, x []float64)
}

// Problem adapts a DifferentiableFunction to a gonum optimize.Problem, the
// form consumed by gonum's solvers.
func Problem(f DifferentiableFunction) optimize.Problem {
	return optimize.Problem{
		Func: f.Value,
		Grad: f.Gradient,
	}
}

func checkParams(x []float64) {
	if len(x) != NumParams {
		panic(ErrBadParamLength)
	}
}

// Volume is the capsule volume as a differentiable function of the capsule
// parameter vector. Minimising it (subject to containment constraints)
// tightens a fitted capsule.
type Volume struct{}

// Dims implements DifferentiableFunction.
func (Volume) Dims() int { return NumParams }

// Value returns the capsule volume π·r²·L + (4/3)·π·r³ with L = |P1-P0|.
func (Volume) Value(x []float64) float64 {
	checkParams(x)
	return decodeParams(x).Volume()
}

// Gradient stores the analytic volume gradient into grad.
//
// The end-point components flow through L = |P1-P0| by the chain rule:
// ∂V/∂P0 = π·r²·(P0-P1)/L and symmetrically for P1. At L = 0 the norm is not
// differentiable, so those components are zero there. The radius component
// is 2π·r·L + 4π·r².
func (Volume) Gradient(grad, x []float64) {
	checkParams(x)
	checkParams(grad)
	c := decodeParams(x)

	u := c.P1.Sub(c.P0)
	l := u.Norm()
	r := c.Radius

	if u.Norm2() > epsilon {
		g := math.Pi * r * r / l
		grad[0] = -g * u.X
		grad[1] = -g * u.Y
		grad[2] = -g * u.Z
		grad[3] = g * u.X
		grad[4] = g * u.Y
		grad[5] = g * u.Z
	} else {
		for i := 0; i < 6; i++ {
			grad[i] = 0
		}
	}
	grad[6] = 2*math.Pi*r*l + 4*math.Pi*r*r
}

// DistanceCapsulePoint is the signed distance from a fixed reference point
// to the capsule surface, as a differentiable function of the capsule
// parameter vector. The value is negative when the point is inside the
// capsule and positive outside, which makes it directly usable as an
// inequality constraint (≤ 0 keeps the point contained).
type DistanceCapsulePoint struct {
	point r3.Vector
}

// NewDistanceCapsulePoint binds the reference point the function measures
// against. The point is fixed for the function's lifetime.
func NewDistanceCapsulePoint(point r3.Vector) DistanceCapsulePoint {
	return DistanceCapsulePoint{point: point}
}

// Point returns the bound reference point.
func (d DistanceCapsulePoint) Point() r3.Vector { return d.point }

// Dims implements DifferentiableFunction.
func (DistanceCapsulePoint) Dims() int { return NumParams }

// Value returns distancePointToSegment(q, P0, P1) - r for the bound point q.
func (d DistanceCapsulePoint) Value(x []float64) float64 {
	checkParams(x)
	c := decodeParams(x)
	return DistancePointToSegment(d.point, c.P0, c.P1) - c.Radius
}

// Gradient stores the analytic gradient of the signed distance into grad.
//
// The segment distance is piecewise: the closest point is either an interior
// point of the segment or a clamped end point, and the gradient takes the
// branch the value computation takes. With u = P1-P0, t the unclamped
// projection parameter and v the vector from the point to the closest
// segment point:
//
//   - t ≤ 0 (or degenerate segment): d = |q-P0|, so ∂d/∂P0 = v/d, ∂d/∂P1 = 0.
//   - t ≥ 1: mirrored onto P1.
//   - 0 < t < 1: ∂d/∂P0 = (1-t)·v/d and ∂d/∂P1 = t·v/d. The terms from t's
//     own dependence on the end points cancel because v ⊥ u at the interior
//     minimum.
//
// When the point lies on the segment (d = 0) the distance is not
// differentiable; the end-point components are zero there. The radius
// component is the constant -1.
func (d DistanceCapsulePoint) Gradient(grad, x []float64) {
	checkParams(x)
	checkParams(grad)
	c := decodeParams(x)
	q := d.point

	u := c.P1.Sub(c.P0)
	var t float64
	if len2 := u.Norm2(); len2 > epsilon {
		t = q.Sub(c.P0).Dot(u) / len2
	}

	var gradP0, gradP1 r3.Vector
	switch {
	case t <= 0:
		if v := c.P0.Sub(q); v.Norm2() > epsilon {
			gradP0 = v.Mul(1 / v.Norm())
		}
	case t >= 1:
		if v := c.P1.Sub(q); v.Norm2() > epsilon {
			gradP1 = v.Mul(1 / v.Norm())
		}
	default:
		closest := c.P0.Add(u.Mul(t))
		if v := closest.Sub(q); v.Norm2() > epsilon {
			dist := v.Norm()
			gradP0 = v.Mul((1 - t) / dist)
			gradP1 = v.Mul(t / dist)
		}
	}

	grad[0] = gradP0.X
	grad[1] = gradP0.Y
	grad[2] = gradP0.Z
	grad[3] = gradP1.X
	grad[4] = gradP1.Y
	grad[5] = gradP1.Z
	grad[6] = -1
}
