package reconstruct

import (
	"github.com/hammal/compsens/linalg"
	"gonum.org/v1/gonum/mat"
)

// GroupFlatten stacks the k columns group*k, ..., group*k+k-1 of y into one
// vector in column-major order: the M entries of the first column, then the M
// entries of the second, and so on. This is the ordering kron(I_k, Φ) expects
// when it senses k consecutive blocks.
func GroupFlatten(y mat.Matrix, group, k int) (*mat.VecDense, error) {
	m, cols := y.Dims()
	if k < 1 || group < 0 || (group+1)*k > cols {
		return nil, linalg.Mismatch("group %d of %d columns is outside a batch of %d columns", group, k, cols)
	}
	flat := make([]float64, m*k)
	for j := 0; j < k; j++ {
		mat.Col(flat[j*m:(j+1)*m], group*k+j, y)
	}
	return mat.NewVecDense(m*k, flat), nil
}

// GroupUnflatten is the inverse of GroupFlatten: it splits v into consecutive
// runs of m entries and returns them as the columns of an (m by len(v)/m)
// matrix.
func GroupUnflatten(v mat.Vector, m int) (*mat.Dense, error) {
	n := v.Len()
	if m < 1 || n == 0 || n%m != 0 {
		return nil, linalg.Mismatch("vector of length %d does not split into columns of %d", n, m)
	}
	k := n / m
	res := mat.NewDense(m, k, nil)
	for j := 0; j < k; j++ {
		for i := 0; i < m; i++ {
			res.Set(i, j, v.AtVec(j*m+i))
		}
	}
	return res, nil
}
