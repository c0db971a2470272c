// Package dictionary builds sparsifying transform bases.
package dictionary

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DCT returns the (n by n) orthonormal DCT-II synthesis matrix. Column k is
// the k-th cosine atom
//
//	D[i, k] = α_k cos(π k (2i + 1) / 2n),  α_0 = sqrt(1/n),  α_k = sqrt(2/n)
//
// so a block x with DCT coefficients s is x = D s and s = D^T x.
func DCT(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	a0 := math.Sqrt(1 / float64(n))
	ak := math.Sqrt(2 / float64(n))
	for k := 0; k < n; k++ {
		alpha := ak
		if k == 0 {
			alpha = a0
		}
		for i := 0; i < n; i++ {
			d.Set(i, k, alpha*math.Cos(math.Pi*float64(k*(2*i+1))/float64(2*n)))
		}
	}
	return d
}
