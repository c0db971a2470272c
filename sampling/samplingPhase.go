package sampling

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Compress splits signal into consecutive blocks of phi's column count and
// returns Y whose i-th column is phi times the i-th block. Trailing samples
// that do not fill a whole block are dropped. It returns nil if the signal is
// shorter than one block.
func Compress(signal []float64, phi mat.Matrix) *mat.Dense {
	m, n := phi.Dims()
	blocks := len(signal) / n
	if blocks == 0 {
		return nil
	}

	y := mat.NewDense(m, blocks, nil)

	// Every block is sampled independently and writes its own column
	var wg sync.WaitGroup
	wg.Add(blocks)
	for index := 0; index < blocks; index++ {
		go func(index int) {
			defer wg.Done()
			var column mat.VecDense
			column.MulVec(phi, mat.NewVecDense(n, signal[index*n:(index+1)*n]))
			y.SetCol(index, column.RawVector().Data)
		}(index)
	}
	wg.Wait()
	return y
}
