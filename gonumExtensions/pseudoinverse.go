package gonumExtensions

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PinvRcond is the relative cutoff below which singular values are treated as
// zero when forming the pseudoinverse. Same value numerical libraries default
// to for double precision.
const PinvRcond = 1e-15

var (
	// ErrEmptyMatrix indicates a matrix with a zero dimension.
	ErrEmptyMatrix = errors.New("gonumExtensions: matrix must have at least one row and one column")
	// ErrFactorization indicates the SVD did not converge.
	ErrFactorization = errors.New("gonumExtensions: singular value decomposition failed")
)

// Pinv computes the Moore-Penrose pseudoinverse of a through its thin singular
// value decomposition
//
//	A = U Σ V^T  =>  A^+ = V Σ^+ U^T
//
// where Σ^+ inverts every singular value larger than PinvRcond*max(Σ) and
// zeroes the rest. For a of size (m by n) the result is (n by m).
func Pinv(a mat.Matrix) (*mat.Dense, error) {
	m, n := a.Dims()
	if m == 0 || n == 0 {
		return nil, ErrEmptyMatrix
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrFactorization
	}
	values := svd.Values(nil)

	// Invert the significant singular values
	cutoff := PinvRcond * floats.Max(values)
	inverted := make([]float64, len(values))
	for index, value := range values {
		if value > cutoff {
			inverted[index] = 1 / value
		}
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// A^+ = V Σ^+ U^T
	var res mat.Dense
	res.Product(&v, mat.NewDiagDense(len(inverted), inverted), u.T())
	return &res, nil
}
