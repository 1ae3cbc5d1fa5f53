package capsulefit

import (
	"errors"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// CovarianceMatrix computes the 3×3 covariance matrix of a point set,
// C = (1/N) Σ (pᵢ-mean)(pᵢ-mean)ᵀ. Note the population (1/N) scaling: the
// matrix is used only for its eigenvectors, so the sample-variance correction
// would be irrelevant. A single point yields the zero matrix; an empty set
// yields ErrEmptyPointSet.
func CovarianceMatrix(points []r3.Vector) (*mat.SymDense, error) {
	n := len(points)
	if n == 0 {
		return nil, ErrEmptyPointSet
	}

	var mean r3.Vector
	for _, p := range points {
		mean = mean.Add(p)
	}
	mean = mean.Mul(1 / float64(n))

	var xx, xy, xz, yy, yz, zz float64
	for _, p := range points {
		d := p.Sub(mean)
		xx += d.X * d.X
		xy += d.X * d.Y
		xz += d.X * d.Z
		yy += d.Y * d.Y
		yz += d.Y * d.Z
		zz += d.Z * d.Z
	}
	inv := 1 / float64(n)

	cov := mat.NewSymDense(3, nil)
	cov.SetSym(0, 0, xx*inv)
	cov.SetSym(0, 1, xy*inv)
	cov.SetSym(0, 2, xz*inv)
	cov.SetSym(1, 1, yy*inv)
	cov.SetSym(1, 2, yz*inv)
	cov.SetSym(2, 2, zz*inv)
	return cov, nil
}

// PrincipalAxis returns the unit eigenvector of cov associated with its
// largest eigenvalue — the direction of greatest point spread. The
// eigen-decomposition is gonum's symmetric solver, which is deterministic:
// identical matrices always produce identical axes, including the sign.
// Under an eigenvalue tie (spherical distributions) the returned axis is an
// arbitrary but stable choice.
func PrincipalAxis(cov *mat.SymDense) (r3.Vector, error) {
	var es mat.EigenSym
	if !es.Factorize(cov, true) {
		return r3.Vector{}, errors.New("capsulefit: eigen-decomposition failed")
	}

	var vecs mat.Dense
	es.VectorsTo(&vecs)

	// Eigenvalues come back in ascending order; the principal axis is the
	// eigenvector in the last column.
	return r3.Vector{X: vecs.At(0, 2), Y: vecs.At(1, 2), Z: vecs.At(2, 2)}, nil
}
