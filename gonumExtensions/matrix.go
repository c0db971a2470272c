// Package gonumExtensions collects the dense matrix helpers that gonum does
// not ship directly but that the recovery code needs: band identities,
// block-diagonal replication, finiteness checks and the Moore-Penrose
// pseudoinverse.
package gonumExtensions

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Eye returns an (m by n) matrix with ones on the k-th diagonal. k = 0 is the
// main diagonal, k > 0 lies above it and k < 0 below it.
func Eye(m, n, k int) mat.Matrix {
	if k == 0 {
		data := make([]float64, min(m, n))
		for entry := range data {
			data[entry] = 1
		}
		return mat.NewDiagonalRect(m, n, data)
	}
	res := mat.NewDense(m, n, nil)
	for row := 0; row < m; row++ {
		col := row + k
		if col >= 0 && col < n {
			res.Set(row, col, 1)
		}
	}
	return res
}

// KronIdentity returns kron(I_k, a), that is a replicated k times along the
// diagonal of an otherwise zero matrix. For a of size (m by n) the result is
// (k*m by k*n).
func KronIdentity(k int, a mat.Matrix) *mat.Dense {
	var res mat.Dense
	res.Kronecker(Eye(k, k, 0), a)
	return &res
}

// NANORINF checks if there are any NAN or INF in matrix
func NANORINF(matrix mat.Matrix) bool {
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			if math.IsNaN(matrix.At(row, col)) || math.IsInf(matrix.At(row, col), 0) {
				return true
			}
		}
	}
	return false
}
