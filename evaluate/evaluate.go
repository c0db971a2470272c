// Package evaluate scores recovered signals and inspects sensing matrices.
package evaluate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrLengthMismatch indicates signals of different lengths.
var ErrLengthMismatch = errors.New("evaluate: signals must have the same length")

// SNR returns the signal to noise ratio of recovered against original in dB
//
//	20 log10(|x| / |x̂ - x|)
//
// A perfect recovery gives +Inf.
func SNR(original, recovered []float64) (float64, error) {
	if len(original) != len(recovered) {
		return 0, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(original), len(recovered))
	}
	return 20 * math.Log10(floats.Norm(original, 2)/floats.Distance(original, recovered, 2)), nil
}

// RelativeError returns |x̂ - x| / |x|.
func RelativeError(original, recovered []float64) (float64, error) {
	if len(original) != len(recovered) {
		return 0, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(original), len(recovered))
	}
	return floats.Distance(original, recovered, 2) / floats.Norm(original, 2), nil
}

// Coherence returns the largest absolute inner product between two distinct
// columns of m after normalizing every column to unit length.
func Coherence(m mat.Matrix) float64 {
	normalized := normalizeColumns(m)
	var gram mat.Dense
	gram.Mul(normalized.T(), normalized)

	n, _ := gram.Dims()
	var coherence float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				coherence = math.Max(coherence, math.Abs(gram.At(i, j)))
			}
		}
	}
	return coherence
}

// IsNormalized reports whether every column of m has unit Euclidean norm.
func IsNormalized(m mat.Matrix) bool {
	_, c := m.Dims()
	for col := 0; col < c; col++ {
		if math.Abs(floats.Norm(mat.Col(nil, col, m), 2)-1) > 1e-8 {
			return false
		}
	}
	return true
}

// IndependentColumns returns the first rank columns of m, where rank counts
// the diagonal entries of R in the QR factorization of m's leading columns
// whose magnitude exceeds tol. An empty matrix is returned for rank zero.
func IndependentColumns(m mat.Matrix, tol float64) *mat.Dense {
	r, c := m.Dims()
	k := min(r, c)

	var qr mat.QR
	qr.Factorize(mat.DenseCopyOf(m).Slice(0, r, 0, k))
	var upper mat.Dense
	qr.RTo(&upper)

	rank := 0
	for i := 0; i < k; i++ {
		if math.Abs(upper.At(i, i)) > tol {
			rank++
		}
	}
	if rank == 0 {
		return &mat.Dense{}
	}
	res := mat.NewDense(r, rank, nil)
	for col := 0; col < rank; col++ {
		res.SetCol(col, mat.Col(nil, col, m))
	}
	return res
}

func normalizeColumns(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	res := mat.NewDense(r, c, nil)
	for col := 0; col < c; col++ {
		column := mat.Col(nil, col, m)
		floats.Scale(1/floats.Norm(column, 2), column)
		res.SetCol(col, column)
	}
	return res
}
